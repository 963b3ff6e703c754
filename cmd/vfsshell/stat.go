package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat path",
		Short: "Print kind, size, and timestamps for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := fsys.Stat(args[0])
			if err != nil {
				return err
			}
			kind := "file"
			if info.IsDir() {
				kind = "dir"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\t%s\t%s\t%s\n",
				kind, args[0], info.Size,
				info.Created.Format("2006-01-02T15:04:05"),
				info.Accessed.Format("2006-01-02T15:04:05"),
				info.Modified.Format("2006-01-02T15:04:05"))
			return nil
		},
	}
}
