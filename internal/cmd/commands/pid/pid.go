// Package pid implements the persistent identifier CLI subcommands.
package pid

import (
	"errors"
	"fmt"

	"github.com/mitchellh/cli"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/internal/config"
	"github.com/inveniosoftware/invenio-pidstore/pkg/database"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

// Exit codes shared by the pid subcommands. Scripts branch on these to
// tell identifier failures apart from storage failures.
const (
	exitOK             = 0
	exitError          = 1
	exitDoesNotExist   = 2
	exitAlreadyExists  = 3
	exitInvalidAction  = 4
	exitObjectAssigned = 5
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage persistent identifiers"
}

func (c *Command) Help() string {
	return `Usage: pidstore pid <subcommand> [options]

  This command groups subcommands for managing persistent identifiers:
  creating them, assigning objects and inspecting their state.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// connect parses the config file at path and opens the database.
func connect(c *base.Command, path string) (*gorm.DB, *config.Config, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("config flag is required")
	}
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing config file: %w", err)
	}
	db, err := database.Connect(databaseConfig(cfg), c.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}
	return db, cfg, nil
}

func databaseConfig(cfg *config.Config) database.Config {
	d := cfg.Database
	return database.Config{
		Driver:   d.Driver,
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		DBName:   d.DBName,
		SSLMode:  d.SSLMode,
		Path:     d.Path,
	}
}

// exitCode maps identifier errors to the documented exit codes.
func exitCode(err error) int {
	var (
		doesNotExist   *models.PIDDoesNotExistError
		alreadyExists  *models.PIDAlreadyExistsError
		invalidAction  *models.PIDInvalidActionError
		objectAssigned *models.PIDObjectAlreadyAssignedError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &doesNotExist):
		return exitDoesNotExist
	case errors.As(err, &alreadyExists):
		return exitAlreadyExists
	case errors.As(err, &invalidAction):
		return exitInvalidAction
	case errors.As(err, &objectAssigned):
		return exitObjectAssigned
	default:
		return exitError
	}
}
