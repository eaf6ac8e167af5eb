package main

import (
	"os"

	"github.com/Egor213/LogiStat/internal/cli"
)

// set by ldflags
var (
	version = "dev"
	commit  = ""
)

func main() {
	if err := cli.NewRootCommand(version, commit).Execute(); err != nil {
		os.Exit(1)
	}
}
