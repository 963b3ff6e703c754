package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/memfs"
	"github.com/vfscore/vfscore/upath"
	"github.com/vfscore/vfscore/vfscommon"
)

// newOpenCommand exercises the raw Backend.OpenFile surface (mode,
// access, share) directly, the low-level verb write/cat sit on top of,
// the way the teacher exposes both a friendly VFS.OpenFile and the
// plumbing it's built from.
func newOpenCommand() *cobra.Command {
	share := vfscommon.ShareMode{Value: 0}
	var write bool

	cmd := &cobra.Command{
		Use:   "open path",
		Short: "Open a file with an explicit share mode and print its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := upath.New(args[0])
			if err != nil {
				return err
			}
			access := memfs.AccessRead
			mode := memfs.Open
			if write {
				access = memfs.AccessWrite
				mode = memfs.OpenOrCreate
			}
			h, err := fsys.Backend().OpenFile(path, mode, access, share.Value)
			if err != nil {
				return err
			}
			defer h.Close()

			if write {
				data, rerr := readAllStdin()
				if rerr != nil {
					return rerr
				}
				_, err = h.Write(data)
				return err
			}
			buf := make([]byte, h.Length())
			n, _ := h.Read(buf)
			fmt.Fprintln(cmd.OutOrStdout(), string(buf[:n]))
			return nil
		},
	}
	cmd.Flags().Var(&share, "share", "share mode: none, read, write, or readwrite")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "open for writing (reads content from stdin)")
	return cmd
}
