package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/creek-lang/creek/object"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "creek",
		Short:         "Run and inspect Creek bytecode files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			processGlobalFlags(cmd)
		},
	}
	root.SetVersionTemplate("creek {{.Version}} (" + commit + ", " + date + ")\n")

	flags := root.PersistentFlags()
	flags.String("config", "", "TOML configuration file")
	flags.Bool("no-color", false, "Disable colored output")

	root.AddCommand(newRunCmd(), newDisCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exit *object.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		fatal(err)
	}
}
