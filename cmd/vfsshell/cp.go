package main

import (
	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/upath"
)

func newCpCommand() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "cp src dest",
		Short: "Copy a file's content to a new path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := upath.New(args[0])
			if err != nil {
				return err
			}
			dest, err := upath.New(args[1])
			if err != nil {
				return err
			}
			return fsys.Backend().CopyFile(src, dest, overwrite)
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "force", "f", false, "overwrite dest if it already exists")
	return cmd
}

func newRmCommand() *cobra.Command {
	var recursive bool
	cmd := &cobra.Command{
		Use:   "rm path",
		Short: "Delete a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := upath.New(args[0])
			if err != nil {
				return err
			}
			if fsys.Backend().DirectoryExists(path) {
				return fsys.Backend().DeleteDirectory(path, recursive)
			}
			return fsys.Backend().DeleteFile(path)
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "delete a non-empty directory and its contents")
	return cmd
}
