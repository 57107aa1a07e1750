package pid

import (
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

type DereferenceCommand struct {
	*base.Command

	flagConfig     string
	flagObjectType string
	flagObjectUUID string
	flagStatus     string
}

func (c *DereferenceCommand) Synopsis() string {
	return "List persistent identifiers assigned to an object"
}

func (c *DereferenceCommand) Help() string {
	return `Usage: pidstore pid dereference -config=config.hcl -object-type=rec \
         -object-uuid=<uuid>

  This command lists every persistent identifier assigned to an object,
  optionally restricted to one status.` + c.Flags().Help()
}

func (c *DereferenceCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("dereference", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")
	f.StringVar(&c.flagObjectType, "object-type", "", "(Required) Object type, e.g. rec")
	f.StringVar(&c.flagObjectUUID, "object-uuid", "", "(Required) Object UUID")
	f.StringVar(&c.flagStatus, "status", "",
		"Only list identifiers with this status.")

	return f
}

func (c *DereferenceCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}
	if c.flagObjectType == "" || c.flagObjectUUID == "" {
		ui.Error("object-type and object-uuid flags are required")
		return exitError
	}

	objectUUID, err := uuid.Parse(c.flagObjectUUID)
	if err != nil {
		ui.Error(fmt.Sprintf("invalid object-uuid: %v", err))
		return exitError
	}

	var status *models.PIDStatus
	if c.flagStatus != "" {
		s, err := models.ParseStatus(c.flagStatus)
		if err != nil {
			ui.Error(err.Error())
			return exitError
		}
		status = &s
	}

	db, _, err := connect(c.Command, c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}

	pids, err := models.DereferenceObject(db, c.flagObjectType, objectUUID, status)
	if err != nil {
		ui.Error(err.Error())
		return exitCode(err)
	}

	for _, p := range pids {
		ui.Info(fmt.Sprintf("%s %s:%s", p.Status.Title(), p.PIDType, p.PIDValue))
	}
	return exitOK
}
