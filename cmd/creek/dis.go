package main

import (
	"github.com/spf13/cobra"

	"github.com/creek-lang/creek"
	"github.com/creek-lang/creek/dis"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [file]",
		Short: "Disassemble a bytecode file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  disHandler,
	}
	cmd.Flags().Bool("stdin", false, "Read bytecode from stdin")
	return cmd
}

func disHandler(cmd *cobra.Command, args []string) error {
	data, err := readProgram(cmd, args)
	if err != nil {
		return err
	}
	root, err := creek.Unmarshal(data)
	if err != nil {
		return err
	}
	return dis.Fprint(cmd.OutOrStdout(), root)
}
