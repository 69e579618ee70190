package main

import (
	"os"

	"ticket-booking-cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(cmd.Execute(cmd.BuildInfo{Version: version, Commit: commit}))
}
