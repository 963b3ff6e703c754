package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/upath"
)

func newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat path",
		Short: "Print a file's content to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := upath.New(args[0])
			if err != nil {
				return err
			}
			data, err := fsys.ReadFile(args[0])
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newWriteCommand() *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "write path content",
		Short: "Create or truncate a file and write content to it",
		Args: func(cmd *cobra.Command, args []string) error {
			if fromStdin {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			content := []byte(args[len(args)-1])
			if fromStdin {
				data, err := readAllStdin()
				if err != nil {
					return err
				}
				content = data
			}
			return fsys.WriteFile(args[0], content)
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read content from stdin instead of an argument")
	return cmd
}

func readAllStdin() ([]byte, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, err := os.Stdin.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			break
		}
	}
	return buf, nil
}
