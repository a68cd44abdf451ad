// Package cli is the command-line surface: a single "serve" command that
// starts the request dispatcher on stdin/stdout.
package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/daedaleanai/cobra"
	"github.com/daedaleanai/cxls/internal/util"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cxls",
	Short: "cxls is a persistent C/C++ symbol-location and completion server.",
	Long: `cxls drives libclang over a long-lived session so an editor can ask
"where is the thing at line L, column C of source S defined, declared, or
overridden" across a multi-file project without reparsing from scratch on
every keystroke.`,
	Version: fmt.Sprintf("%d.%d.%d", util.Version.Major, util.Version.Minor, util.Version.Revision),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "cxls.json", "path to the server tuning config file")
}

// Execute runs the root command, logging and exiting with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
