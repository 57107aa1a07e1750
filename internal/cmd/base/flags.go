package base

import (
	"bytes"
	"flag"
	"fmt"
)

// FlagSet wraps the standard library flag set with help rendering used
// by command Help() methods.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps a standard flag set.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	return &FlagSet{FlagSet: f}
}

// Help returns a usage string for all defined flags.
func (f *FlagSet) Help() string {
	var buf bytes.Buffer

	buf.WriteString("\n\nCommand Options:\n")
	f.VisitAll(func(fl *flag.Flag) {
		buf.WriteString(fmt.Sprintf("  -%s\n", fl.Name))
		if fl.DefValue != "" {
			buf.WriteString(fmt.Sprintf("      %s (default: %s)\n", fl.Usage, fl.DefValue))
		} else {
			buf.WriteString(fmt.Sprintf("      %s\n", fl.Usage))
		}
	})

	return buf.String()
}
