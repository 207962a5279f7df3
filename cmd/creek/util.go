package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/creek-lang/creek"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Adjusts the environment according to the global flags.
func processGlobalFlags(cmd *cobra.Command) {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor || !isTerminal(os.Stdout) {
		color.NoColor = true
	}
}

// Returns the interpreter options for the --config file, logging to w.
func configOptions(cmd *cobra.Command, w io.Writer) ([]creek.Option, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return nil, nil
	}
	c, err := creek.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return c.Options(w)
}
