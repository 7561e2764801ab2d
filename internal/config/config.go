// Package config loads the datastore tool configuration from a YAML file, the
// environment and .env files.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/datastore/driver/sqldb"
)

var AppFs = afero.NewOsFs()

const (
	configName = ".datastore"
	envPrefix  = "DATASTORE"
)

// Keys understood in the config file. Each also reads DATASTORE_<KEY> from the
// environment, with dots replaced by underscores.
const (
	KeyDialect             = "dialect"
	KeyDSN                 = "dsn"
	KeyTable               = "table"
	KeyDebug               = "debug"
	KeyMaxOpenConns        = "pool.max_open_conns"
	KeyMaxIdleConns        = "pool.max_idle_conns"
	KeyConnMaxLifetime     = "pool.conn_max_lifetime"
	KeyConnMaxIdleTime     = "pool.conn_max_idle_time"
	KeyHealthCheckInterval = "pool.health_check_interval"
)

var keys = []string{
	KeyDialect, KeyDSN, KeyTable, KeyDebug,
	KeyMaxOpenConns, KeyMaxIdleConns, KeyConnMaxLifetime, KeyConnMaxIdleTime, KeyHealthCheckInterval,
}

// Config holds the tool configuration
type Config struct {
	Dialect string
	DSN     string
	Table   string
	Debug   bool
	Pool    sqldb.Config
}

// Load reads configuration. If configFile is empty, .datastore.yaml is looked up in
// the working directory, $HOME and $HOME/.config/datastore, and a missing file is not
// an error. Values from .env are used for variables not set in the environment, and
// .env.local overrides .env.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetFs(AppFs)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home)
		v.AddConfigPath(filepath.Join(home, ".config", "datastore"))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := sqldb.DefaultConfig()
	v.SetDefault(KeyDialect, "sqlite")
	v.SetDefault(KeyTable, "kv")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyMaxOpenConns, defaults.MaxOpenConns)
	v.SetDefault(KeyMaxIdleConns, defaults.MaxIdleConns)
	v.SetDefault(KeyConnMaxLifetime, defaults.ConnMaxLifetime)
	v.SetDefault(KeyConnMaxIdleTime, defaults.ConnMaxIdleTime)
	v.SetDefault(KeyHealthCheckInterval, defaults.HealthCheckInterval)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	dotenv, err := loadDotenv()
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		name := envName(key)
		if _, ok := os.LookupEnv(name); ok {
			continue
		}
		if value, ok := dotenv[name]; ok {
			v.Set(key, value)
		}
	}

	cfg := &Config{
		Dialect: v.GetString(KeyDialect),
		DSN:     v.GetString(KeyDSN),
		Table:   v.GetString(KeyTable),
		Debug:   v.GetBool(KeyDebug),
		Pool: sqldb.Config{
			MaxOpenConns:        v.GetInt(KeyMaxOpenConns),
			MaxIdleConns:        v.GetInt(KeyMaxIdleConns),
			ConnMaxLifetime:     v.GetDuration(KeyConnMaxLifetime),
			ConnMaxIdleTime:     v.GetDuration(KeyConnMaxIdleTime),
			HealthCheckInterval: v.GetDuration(KeyHealthCheckInterval),
		},
	}

	if cfg.DSN == "" {
		if url, ok := os.LookupEnv("DATABASE_URL"); ok {
			cfg.DSN = url
		} else {
			cfg.DSN = dotenv["DATABASE_URL"]
		}
	}

	return cfg, nil
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadDotenv parses .env and then .env.local from AppFs. Missing files are skipped.
func loadDotenv() (map[string]string, error) {
	values := make(map[string]string)
	for _, name := range []string{".env", ".env.local"} {
		f, err := AppFs.Open(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		parsed, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		maps.Copy(values, parsed)
	}
	return values, nil
}

// DefaultPath returns the file Save writes to when no path is given.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "datastore", configName+".yaml"), nil
}

// Save writes cfg to path, or to DefaultPath if path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
	}

	v := viper.New()
	v.SetFs(AppFs)
	v.Set(KeyDialect, cfg.Dialect)
	v.Set(KeyDSN, cfg.DSN)
	v.Set(KeyTable, cfg.Table)
	v.Set(KeyDebug, cfg.Debug)
	v.Set(KeyMaxOpenConns, cfg.Pool.MaxOpenConns)
	v.Set(KeyMaxIdleConns, cfg.Pool.MaxIdleConns)
	v.Set(KeyConnMaxLifetime, cfg.Pool.ConnMaxLifetime.String())
	v.Set(KeyConnMaxIdleTime, cfg.Pool.ConnMaxIdleTime.String())
	v.Set(KeyHealthCheckInterval, cfg.Pool.HealthCheckInterval.String())

	if err := AppFs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}
