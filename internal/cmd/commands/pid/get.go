package pid

import (
	"flag"
	"fmt"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

type GetCommand struct {
	*base.Command

	flagConfig string
	flagType   string
	flagValue  string
}

func (c *GetCommand) Synopsis() string {
	return "Show a persistent identifier's status and object"
}

func (c *GetCommand) Help() string {
	return `Usage: pidstore pid get -config=config.hcl -type=recid -value=1

  This command prints the status and assigned object of a persistent
  identifier.` + c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")
	f.StringVar(&c.flagType, "type", "", "(Required) PID type")
	f.StringVar(&c.flagValue, "value", "", "(Required) PID value")

	return f
}

func (c *GetCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}
	if c.flagType == "" || c.flagValue == "" {
		ui.Error("type and value flags are required")
		return exitError
	}

	db, _, err := connect(c.Command, c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}

	pid, err := models.GetPID(db, c.flagType, c.flagValue, nil)
	if err != nil {
		ui.Error(err.Error())
		return exitCode(err)
	}

	if pid.HasObject() {
		ui.Info(fmt.Sprintf("%s %s %s", pid.Status.Title(),
			*pid.ObjectType, *pid.ObjectUUID))
	} else {
		ui.Info(pid.Status.Title())
	}
	return exitOK
}
