package main

import (
	"github.com/spf13/cobra"
)

func newMvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mv src dest",
		Short: "Rename or move a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fsys.Rename(args[0], args[1])
		},
	}
}
