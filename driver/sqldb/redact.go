package sqldb

import (
	"net/url"

	"github.com/go-sql-driver/mysql"
	"github.com/satishbabariya/datastore/dialect"
)

// Redact returns dsn with its password masked, for logging. DSNs that cannot be parsed
// are replaced entirely.
func Redact(d *dialect.Dialect, dsn string) string {
	if dsn == "" {
		return ""
	}

	switch d {
	case dialect.MySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return "<redacted>"
		}
		if cfg.Passwd != "" {
			cfg.Passwd = "xxxxx"
		}
		return cfg.FormatDSN()
	case dialect.SQLite:
		return dsn
	}

	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		// key=value connection strings carry the password inline.
		return "<redacted>"
	}
	return u.Redacted()
}
