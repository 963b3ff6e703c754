package main

import (
	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/upath"
)

func newMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir path...",
		Short: "Create directories, including missing intermediates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				path, err := upath.New(raw)
				if err != nil {
					return err
				}
				if err := fsys.Backend().CreateDirectory(path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
