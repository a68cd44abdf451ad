package cli

import (
	"fmt"
	"os"

	"github.com/daedaleanai/cobra"
	"github.com/daedaleanai/cxls/internal/config"
	"github.com/daedaleanai/cxls/internal/protocol"
	"github.com/pkg/errors"
)

var serveCmd = &cobra.Command{
	Use:   "serve <source-file> [-- clang-args...]",
	Short: "Start the completion/locate server on stdin and stdout.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(filename string, clangArgs []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	srv, err := protocol.NewServer(filename, clangArgs, cfg)
	if err != nil {
		return errors.Wrapf(err, "starting session for %s", filename)
	}

	if err := srv.Run(os.Stdin, os.Stdout); err != nil {
		return errors.Wrap(err, "server loop")
	}
	fmt.Fprintln(os.Stderr, "cxls: shut down")
	return nil
}
