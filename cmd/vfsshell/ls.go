package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/memfs"
	"github.com/vfscore/vfscore/upath"
)

func newLsCommand() *cobra.Command {
	var recursive bool
	var pattern string

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List paths under an anchor, defaulting to the root",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor := upath.MustNew("/")
			if len(args) == 1 {
				p, err := upath.New(args[0])
				if err != nil {
					return err
				}
				anchor = p
			}
			if pattern == "" {
				pattern = "*"
			}
			recursion := memfs.TopDirectoryOnly
			if recursive {
				recursion = memfs.AllDirectories
			}
			out, err := fsys.Backend().EnumeratePaths(context.Background(), anchor, pattern, recursion, memfs.Both)
			if err != nil {
				return err
			}
			for p := range out {
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "descend into subdirectories")
	cmd.Flags().StringVar(&pattern, "pattern", "*", "glob pattern to match names against")
	return cmd
}
