package pid

import (
	"flag"
	"fmt"

	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

type UnassignCommand struct {
	*base.Command

	flagConfig string
	flagType   string
	flagValue  string
}

func (c *UnassignCommand) Synopsis() string {
	return "Detach the object from a persistent identifier"
}

func (c *UnassignCommand) Help() string {
	return `Usage: pidstore pid unassign -config=config.hcl -type=recid -value=1

  This command detaches the assigned object from a persistent
  identifier. Unassigning a redirected identifier removes the redirect
  and restores registered status.` + c.Flags().Help()
}

func (c *UnassignCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("unassign", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")
	f.StringVar(&c.flagType, "type", "", "(Required) PID type")
	f.StringVar(&c.flagValue, "value", "", "(Required) PID value")

	return f
}

func (c *UnassignCommand) Run(args []string) int {
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

	err = db.Transaction(func(tx *gorm.DB) error {
		pid, err := models.GetPID(tx, c.flagType, c.flagValue, nil)
		if err != nil {
			return err
		}
		return pid.Unassign(tx)
	})
	if err != nil {
		ui.Error(err.Error())
		return exitCode(err)
	}

	ui.Info(fmt.Sprintf("%s:%s unassigned", c.flagType, c.flagValue))
	return exitOK
}
