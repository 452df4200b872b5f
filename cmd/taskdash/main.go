package main

import (
	"os"

	"github.com/tgienger/taskdash/internal/cli"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	os.Exit(cli.Run(info, os.Args[1:], os.Stdout, os.Stderr))
}
