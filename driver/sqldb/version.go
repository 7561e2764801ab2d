package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// ErrUnsupportedVersion is returned by CheckVersion when the server is older than the
// dialect's minimum.
var ErrUnsupportedVersion = errors.New("unsupported server version")

// ServerVersion queries the server's version string.
func (p *DB) ServerVersion(ctx context.Context) (string, error) {
	row, err := p.FetchOne(ctx, p.dialect.VersionQuery)
	if err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	var raw string
	if err := row.Scan("version", &raw); err != nil {
		return "", fmt.Errorf("failed to read server version: %w", err)
	}
	return raw, nil
}

// CheckVersion fails with ErrUnsupportedVersion when the server is older than the
// dialect's MinVersion. It returns the parsed server version.
func (p *DB) CheckVersion(ctx context.Context) (*version.Version, error) {
	raw, err := p.ServerVersion(ctx)
	if err != nil {
		return nil, err
	}
	return compareVersion(raw, p.dialect.MinVersion)
}

func compareVersion(raw, minimum string) (*version.Version, error) {
	// "16.2 (Debian 16.2-1)" and "8.0.36-0ubuntu0.22.04.1" both start with the number.
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid version format: %q", raw)
	}

	current, err := version.NewVersion(fields[0])
	if err != nil {
		return nil, fmt.Errorf("invalid version format: %w", err)
	}

	required, err := version.NewVersion(minimum)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum version format: %w", err)
	}

	if current.Core().LessThan(required) {
		return current, fmt.Errorf("%w: %s is older than %s", ErrUnsupportedVersion, current, required)
	}
	return current, nil
}
