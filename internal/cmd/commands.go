package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	migratecmd "github.com/inveniosoftware/invenio-pidstore/internal/cmd/commands/migrate"
	pidcmd "github.com/inveniosoftware/invenio-pidstore/internal/cmd/commands/pid"
	versioncmd "github.com/inveniosoftware/invenio-pidstore/internal/cmd/commands/version"
)

// Commands is the mapping of all available CLI commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := base.NewCommand(ui, log)

	Commands = map[string]cli.CommandFactory{
		"pid": func() (cli.Command, error) {
			return &pidcmd.Command{Command: baseCommand}, nil
		},
		"pid create": func() (cli.Command, error) {
			return &pidcmd.CreateCommand{Command: baseCommand}, nil
		},
		"pid assign": func() (cli.Command, error) {
			return &pidcmd.AssignCommand{Command: baseCommand}, nil
		},
		"pid unassign": func() (cli.Command, error) {
			return &pidcmd.UnassignCommand{Command: baseCommand}, nil
		},
		"pid get": func() (cli.Command, error) {
			return &pidcmd.GetCommand{Command: baseCommand}, nil
		},
		"pid dereference": func() (cli.Command, error) {
			return &pidcmd.DereferenceCommand{Command: baseCommand}, nil
		},
		"migrate": func() (cli.Command, error) {
			return &migratecmd.Command{Command: baseCommand}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: baseCommand}, nil
		},
	}
}
