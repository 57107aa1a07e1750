// Package version implements the version CLI command.
package version

import (
	"github.com/inveniosoftware/invenio-pidstore/internal/cmd/base"
	pidversion "github.com/inveniosoftware/invenio-pidstore/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the pidstore version"
}

func (c *Command) Help() string {
	return `Usage: pidstore version

  This command prints the pidstore version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(pidversion.Version)
	return 0
}
