package main

import (
	"os"

	"github.com/inveniosoftware/invenio-pidstore/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
