// Package base carries the dependencies shared by every CLI command.
package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded by all CLI commands.
type Command struct {
	// UI is used for command-line output.
	UI cli.Ui

	// Log is the structured logger.
	Log hclog.Logger
}

// NewCommand returns a base command with the given UI and logger.
func NewCommand(ui cli.Ui, log hclog.Logger) *Command {
	return &Command{
		UI:  ui,
		Log: log,
	}
}
