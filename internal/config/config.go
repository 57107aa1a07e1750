// Package config loads the pidstore HCL configuration file.
package config

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the top-level pidstore configuration.
type Config struct {
	// LogLevel sets the hclog level (trace, debug, info, warn, error).
	LogLevel string `hcl:"log_level,optional"`

	// Database configures the relational store.
	Database *Database `hcl:"database,block"`

	// DataCite configures the external DOI registration authority.
	// Optional; the DOI provider is only wired when present.
	DataCite *DataCite `hcl:"datacite,block"`

	// RecordID overrides the random record identifier generation
	// defaults.
	RecordID *RecordID `hcl:"recid,block"`
}

// Database holds relational store connection settings.
type Database struct {
	Driver string `hcl:"driver,optional"` // "postgres" (default) or "sqlite"

	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`

	Path string `hcl:"path,optional"` // sqlite only
}

// DataCite holds DataCite MDS credentials and endpoint settings.
type DataCite struct {
	Username string `hcl:"username"`
	Password string `hcl:"password"`
	Prefix   string `hcl:"prefix"`
	URL      string `hcl:"url,optional"`
	TestMode bool   `hcl:"test_mode,optional"`
}

// RecordID holds record identifier generation options.
type RecordID struct {
	Length     int   `hcl:"length,optional"`
	SplitEvery int   `hcl:"split_every,optional"`
	Checksum   *bool `hcl:"checksum,optional"`
}

// NewConfig parses and validates the configuration file at path.
func NewConfig(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database == nil {
		return fmt.Errorf("config requires a database block")
	}

	switch c.Database.Driver {
	case "", "postgres":
		if err := validation.ValidateStruct(c.Database,
			validation.Field(&c.Database.Host, validation.Required),
			validation.Field(&c.Database.Port, validation.Required),
			validation.Field(&c.Database.User, validation.Required),
			validation.Field(&c.Database.DBName, validation.Required),
		); err != nil {
			return fmt.Errorf("invalid database block: %w", err)
		}
	case "sqlite":
		if err := validation.ValidateStruct(c.Database,
			validation.Field(&c.Database.Path, validation.Required),
		); err != nil {
			return fmt.Errorf("invalid database block: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.DataCite != nil {
		if err := validation.ValidateStruct(c.DataCite,
			validation.Field(&c.DataCite.Username, validation.Required),
			validation.Field(&c.DataCite.Password, validation.Required),
			validation.Field(&c.DataCite.Prefix, validation.Required),
		); err != nil {
			return fmt.Errorf("invalid datacite block: %w", err)
		}
	}

	return nil
}
