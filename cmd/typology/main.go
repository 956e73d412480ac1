// Command typology generates the language typology training files.
//
// Run without arguments it joins the embedded WALS tables and writes
// usertrain.txt, uservalid.txt and userunseen.txt into the current directory.
package main

import (
	"os"

	"github.com/spf13/viper"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
