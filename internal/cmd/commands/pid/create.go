package pid

import (
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

type CreateCommand struct {
	*base.Command

	flagConfig     string
	flagType       string
	flagValue      string
	flagStatus     string
	flagProvider   string
	flagObjectType string
	flagObjectUUID string
}

func (c *CreateCommand) Synopsis() string {
	return "Create a new persistent identifier"
}

func (c *CreateCommand) Help() string {
	return `Usage: pidstore pid create -config=config.hcl -type=recid -value=1

  This command creates a persistent identifier with an explicit type and
  value. Pass -object-type and -object-uuid together to assign an object
  at creation time.` + c.Flags().Help()
}

func (c *CreateCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("create", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")
	f.StringVar(&c.flagType, "type", "", "(Required) PID type, e.g. recid or doi")
	f.StringVar(&c.flagValue, "value", "", "(Required) PID value")
	f.StringVar(&c.flagStatus, "status", "new",
		"Initial status: new, reserved or registered.")
	f.StringVar(&c.flagProvider, "provider", "",
		"Provider tag stored with the identifier.")
	f.StringVar(&c.flagObjectType, "object-type", "",
		"Type of the object to assign, e.g. rec.")
	f.StringVar(&c.flagObjectUUID, "object-uuid", "",
		"UUID of the object to assign.")

	return f
}

func (c *CreateCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}
	if c.flagType == "" || c.flagValue == "" {
		ui.Error("type and value flags are required")
		return exitError
	}
	if (c.flagObjectType == "") != (c.flagObjectUUID == "") {
		ui.Error("object-type and object-uuid must be provided together")
		return exitError
	}

	status, err := models.ParseStatus(c.flagStatus)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}

	var (
		objectType *string
		objectUUID *uuid.UUID
	)
	if c.flagObjectType != "" {
		id, err := uuid.Parse(c.flagObjectUUID)
		if err != nil {
			ui.Error(fmt.Sprintf("invalid object-uuid: %v", err))
			return exitError
		}
		objectType, objectUUID = &c.flagObjectType, &id
	}

	var provider *string
	if c.flagProvider != "" {
		provider = &c.flagProvider
	}

	db, _, err := connect(c.Command, c.flagConfig)
	if err != nil {
		ui.Error(err.Error())
		return exitError
	}

	pid, err := models.CreatePID(db, c.flagType, c.flagValue, provider,
		status, objectType, objectUUID)
	if err != nil {
		ui.Error(err.Error())
		return exitCode(err)
	}

	ui.Info(fmt.Sprintf("%s:%s created with status %s",
		pid.PIDType, pid.PIDValue, pid.Status.Title()))
	return exitOK
}
