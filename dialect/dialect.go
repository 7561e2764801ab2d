// Package dialect holds the per-engine data used to render SQL: the column type of each
// field kind and the literal form of each value.
package dialect

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/satishbabariya/datastore/record"
)

var (
	// ErrUnsupportedKind is returned for a field kind the dialect has no column type for.
	ErrUnsupportedKind = errors.New("unsupported field kind")

	// ErrUnknownDialect is returned by Lookup for an unregistered name.
	ErrUnknownDialect = errors.New("unknown dialect")
)

// EncodingError is returned when a value has no SQL literal form.
type EncodingError struct {
	Dialect string
	Kind    record.Kind
	Reason  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: cannot encode %s literal: %s", e.Dialect, e.Kind, e.Reason)
}

// Dialect describes one SQL engine.
type Dialect struct {
	// Name is the dialect name used in configuration.
	Name string

	// DriverName is the database/sql driver name.
	DriverName string

	// MinVersion is the oldest server version the rendered SQL is known to work with.
	MinVersion string

	// VersionQuery returns the server version in a column named "version".
	VersionQuery string

	columnTypes   map[record.Kind]string
	bytesLiteral  func(v []byte) string
	escapeString  func(v string) string
	rejectNULText bool
	// maxUint is the largest storable unsigned value; 0 means the full uint64 range.
	maxUint uint64
}

// ColumnType returns the column type name for kind.
func (d *Dialect) ColumnType(kind record.Kind) (string, error) {
	t, ok := d.columnTypes[kind]
	if !ok {
		return "", fmt.Errorf("%s: %w: %s", d.Name, ErrUnsupportedKind, kind)
	}
	return t, nil
}

// Bool renders TRUE or FALSE.
func (d *Dialect) Bool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// Int renders a signed integer in decimal.
func (d *Dialect) Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// Uint renders an unsigned integer in decimal. Engines whose integers are signed
// 64-bit reject values above math.MaxInt64.
func (d *Dialect) Uint(v uint64) (string, error) {
	if d.maxUint != 0 && v > d.maxUint {
		return "", &EncodingError{Dialect: d.Name, Kind: record.Uint64, Reason: "value exceeds " + strconv.FormatUint(d.maxUint, 10)}
	}
	return strconv.FormatUint(v, 10), nil
}

// Float renders the shortest decimal that reads back as v at the given bit size.
// NaN and infinities have no literal form.
func (d *Dialect) Float(v float64, bitSize int) (string, error) {
	kind := record.Float64
	if bitSize == 32 {
		kind = record.Float32
	}
	if math.IsNaN(v) {
		return "", &EncodingError{Dialect: d.Name, Kind: kind, Reason: "NaN"}
	}
	if math.IsInf(v, 0) {
		return "", &EncodingError{Dialect: d.Name, Kind: kind, Reason: "infinity"}
	}
	return strconv.FormatFloat(v, 'g', -1, bitSize), nil
}

// Bytes renders a binary literal.
func (d *Dialect) Bytes(v []byte) string {
	return d.bytesLiteral(v)
}

// Text renders a quoted text literal with embedded quotes escaped.
func (d *Dialect) Text(v string) (string, error) {
	if d.rejectNULText && strings.IndexByte(v, 0) >= 0 {
		return "", &EncodingError{Dialect: d.Name, Kind: record.String, Reason: "text contains NUL byte"}
	}
	return "'" + d.escapeString(v) + "'", nil
}

func (d *Dialect) String() string { return d.Name }

var quoteReplacer = strings.NewReplacer("'", "''")

// MySQL's default sql_mode treats backslash as an escape character inside strings.
// With NO_BACKSLASH_ESCAPES set, a backslash would be stored doubled.
var mysqlReplacer = strings.NewReplacer("'", "''", `\`, `\\`)

// MySQL is the default dialect. Text literals escape backslashes, so the server must run
// without NO_BACKSLASH_ESCAPES in sql_mode.
var MySQL = &Dialect{
	Name:         "mysql",
	DriverName:   "mysql",
	MinVersion:   "5.7.0",
	VersionQuery: "SELECT VERSION() AS version",
	columnTypes: map[record.Kind]string{
		record.Bool:    "BOOLEAN",
		record.Int8:    "TINYINT",
		record.Int16:   "SMALLINT",
		record.Int32:   "INT",
		record.Int64:   "BIGINT",
		record.Uint8:   "TINYINT UNSIGNED",
		record.Uint16:  "SMALLINT UNSIGNED",
		record.Uint32:  "INT UNSIGNED",
		record.Uint64:  "BIGINT UNSIGNED",
		record.Float32: "FLOAT",
		record.Float64: "DOUBLE",
		record.Bytes:   "BLOB",
		record.String:  "TEXT",
	},
	bytesLiteral: func(v []byte) string {
		if len(v) == 0 {
			// "0x" alone is not a valid hexadecimal literal.
			return "X''"
		}
		return "0x" + hex.EncodeToString(v)
	},
	escapeString: mysqlReplacer.Replace,
}

// Postgres renders for PostgreSQL with standard_conforming_strings on.
var Postgres = &Dialect{
	Name:         "postgres",
	DriverName:   "postgres",
	MinVersion:   "9.6.0",
	VersionQuery: "SELECT current_setting('server_version') AS version",
	columnTypes: map[record.Kind]string{
		record.Bool:    "BOOLEAN",
		record.Int8:    "SMALLINT",
		record.Int16:   "SMALLINT",
		record.Int32:   "INTEGER",
		record.Int64:   "BIGINT",
		record.Uint8:   "SMALLINT",
		record.Uint16:  "INTEGER",
		record.Uint32:  "BIGINT",
		record.Uint64:  "NUMERIC(20)",
		record.Float32: "REAL",
		record.Float64: "DOUBLE PRECISION",
		record.Bytes:   "BYTEA",
		record.String:  "TEXT",
	},
	bytesLiteral: func(v []byte) string {
		return `'\x` + hex.EncodeToString(v) + "'"
	},
	escapeString:  quoteReplacer.Replace,
	rejectNULText: true,
}

// SQLite renders for SQLite 3.23 or later (TRUE and FALSE keywords). INTEGER is signed
// 64-bit, so uint64 values above math.MaxInt64 are an encoding error.
var SQLite = &Dialect{
	Name:         "sqlite",
	DriverName:   "sqlite3",
	MinVersion:   "3.23.0",
	VersionQuery: "SELECT sqlite_version() AS version",
	columnTypes: map[record.Kind]string{
		record.Bool:    "BOOLEAN",
		record.Int8:    "INTEGER",
		record.Int16:   "INTEGER",
		record.Int32:   "INTEGER",
		record.Int64:   "INTEGER",
		record.Uint8:   "INTEGER",
		record.Uint16:  "INTEGER",
		record.Uint32:  "INTEGER",
		record.Uint64:  "INTEGER",
		record.Float32: "REAL",
		record.Float64: "REAL",
		record.Bytes:   "BLOB",
		record.String:  "TEXT",
	},
	bytesLiteral: func(v []byte) string {
		return "X'" + hex.EncodeToString(v) + "'"
	},
	escapeString: quoteReplacer.Replace,
	maxUint:      math.MaxInt64,
}

var registry = map[string]*Dialect{
	"mysql":      MySQL,
	"mariadb":    MySQL,
	"postgres":   Postgres,
	"postgresql": Postgres,
	"sqlite":     SQLite,
	"sqlite3":    SQLite,
}

// Lookup returns the dialect registered under name (case-insensitive).
func Lookup(name string) (*Dialect, error) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return d, nil
}

// Names returns the canonical dialect names.
func Names() []string {
	return []string{MySQL.Name, Postgres.Name, SQLite.Name}
}
