package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/creek-lang/creek"
	"github.com/creek-lang/creek/object"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Evaluate a bytecode file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHandler,
	}
	cmd.Flags().Bool("stdin", false, "Read bytecode from stdin")
	cmd.Flags().Bool("no-builtins", false, "Disable the builtin functions")
	cmd.Flags().Bool("quiet", false, "Do not print the result")
	return cmd
}

// Reads the program from stdin or the path in args[0].
func readProgram(cmd *cobra.Command, args []string) ([]byte, error) {
	stdin, _ := cmd.Flags().GetBool("stdin")
	switch {
	case stdin && len(args) > 0:
		return nil, errors.New("multiple input sources specified")
	case stdin:
		return io.ReadAll(cmd.InOrStdin())
	case len(args) > 0:
		return os.ReadFile(args[0])
	default:
		return nil, errors.New("no input provided")
	}
}

func runHandler(cmd *cobra.Command, args []string) error {
	opts, err := configOptions(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts = append(opts, creek.WithStdout(cmd.OutOrStdout()))
	if noBuiltins, _ := cmd.Flags().GetBool("no-builtins"); noBuiltins {
		opts = append(opts, creek.WithoutBuiltins())
	}

	data, err := readProgram(cmd, args)
	if err != nil {
		return err
	}
	interp, err := creek.New(opts...)
	if err != nil {
		return err
	}
	result, err := interp.EvalBytes(data)
	if err != nil {
		return err
	}

	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return nil
	}
	if result.Type() == object.VOID {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Inspect())
	return nil
}
