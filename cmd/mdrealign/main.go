// main is the entry point for the mdrealign CLI.
package main

import (
	"github.com/Tenjin25/MDRealignment/cmd"
	"github.com/Tenjin25/MDRealignment/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
