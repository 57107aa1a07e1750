package pid

import (
	"flag"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	"github.com/inveniosoftware/invenio-pidstore/pkg/models"
)

type AssignCommand struct {
	*base.Command

	flagConfig     string
	flagType       string
	flagValue      string
	flagObjectType string
	flagObjectUUID string
	flagOverwrite  bool
}

func (c *AssignCommand) Synopsis() string {
	return "Assign an object to a persistent identifier"
}

func (c *AssignCommand) Help() string {
	return `Usage: pidstore pid assign -config=config.hcl -type=recid -value=1 \
         -object-type=rec -object-uuid=<uuid>

  This command binds an internal object to an existing persistent
  identifier. Assigning the same object again is a no-op; assigning a
  different one fails unless -overwrite is set.` + c.Flags().Help()
}

func (c *AssignCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("assign", flag.ExitOnError))

	f.StringVar(&c.flagConfig, "config", "", "(Required) Path to pidstore config file")
	f.StringVar(&c.flagType, "type", "", "(Required) PID type")
	f.StringVar(&c.flagValue, "value", "", "(Required) PID value")
	f.StringVar(&c.flagObjectType, "object-type", "", "(Required) Object type, e.g. rec")
	f.StringVar(&c.flagObjectUUID, "object-uuid", "", "(Required) Object UUID")
	f.BoolVar(&c.flagOverwrite, "overwrite", false,
		"Replace an already assigned object.")

	return f
}

func (c *AssignCommand) Run(args []string) int {
	ui := c.UI

	if err := c.Flags().Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return exitError
	}
	if c.flagType == "" || c.flagValue == "" ||
		c.flagObjectType == "" || c.flagObjectUUID == "" {
		ui.Error("type, value, object-type and object-uuid flags are required")
		return exitError
	}

	objectUUID, err := uuid.Parse(c.flagObjectUUID)
	if err != nil {
		ui.Error(fmt.Sprintf("invalid object-uuid: %v", err))
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
		return pid.Assign(tx, c.flagObjectType, objectUUID, c.flagOverwrite)
	})
	if err != nil {
		ui.Error(err.Error())
		return exitCode(err)
	}

	ui.Info(fmt.Sprintf("%s:%s assigned to %s:%s",
		c.flagType, c.flagValue, c.flagObjectType, objectUUID))
	return exitOK
}
