package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newWatchCommand surfaces the CanWatch/Watch stub so the CLI exposes
// every verb of the backend interface, even the ones the in-memory
// backend declines to implement: no filesystem-watcher event dispatcher.
func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Report whether this backend supports change notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fsys.Backend().CanWatch() {
				return fsys.Backend().Watch()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "watch: not supported by the in-memory backend")
			return nil
		},
	}
}
