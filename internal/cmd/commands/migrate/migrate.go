// Package migrate implements the schema migration CLI command.
package migrate

import (
	"flag"
	"fmt"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/internal/config"
	schema "github.com/inveniosoftware/invenio-pidstore/internal/migrate"
	"github.com/inveniosoftware/invenio-pidstore/pkg/database"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Apply pending database schema migrations"
}

func (c *Command) Help() string {
	return `Usage: pidstore migrate -config=config.hcl

  This command applies all pending schema migrations to the configured
  database and prints the resulting schema version.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("migrate", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")

	return f
}

func (c *Command) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagConfig == "" {
		ui.Error("config flag is required")
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		ui.Error(fmt.Sprintf("error parsing config file: %v", err))
		return 1
	}

	driver := cfg.Database.Driver
	if driver == "" {
		driver = "postgres"
	}

	db, err := database.Connect(database.Config{
		Driver:   cfg.Database.Driver,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		Path:     cfg.Database.Path,
	}, c.Log)
	if err != nil {
		ui.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}

	sqlDB, err := db.DB()
	if err != nil {
		ui.Error(fmt.Sprintf("error getting underlying SQL DB: %v", err))
		return 1
	}

	if err := schema.RunMigrations(sqlDB, driver); err != nil {
		ui.Error(fmt.Sprintf("error running migrations: %v", err))
		return 1
	}

	version, dirty, err := schema.GetMigrationVersion(sqlDB, driver)
	if err != nil {
		ui.Error(fmt.Sprintf("error reading migration version: %v", err))
		return 1
	}
	if dirty {
		ui.Warn(fmt.Sprintf("schema version %d is dirty", version))
		return 1
	}

	ui.Info(fmt.Sprintf("schema is at version %d", version))
	return 0
}
