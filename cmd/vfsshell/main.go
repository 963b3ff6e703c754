// Command vfsshell mounts an in-memory vfscore filesystem and drives it
// interactively through a small set of cobra subcommands (ls, cat, write,
// mkdir, mv, cp, rm, stat, watch, open), the ambient cmd/ layer every teacher verb
// lives under, scaled down to the one backend this repository ships.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vfscore/vfscore/memfs"
	"github.com/vfscore/vfscore/vfs"
)

var (
	caseInsensitive bool
	sniffContent    bool
	debugLogging    bool

	fsys *vfs.VFS
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "vfsshell",
		Short: "Drive an in-memory vfscore filesystem from the command line",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugLogging {
				logrus.SetLevel(logrus.DebugLevel)
			}
			fsys = vfs.New(memfs.Options{
				CaseInsensitive:  caseInsensitive,
				SniffContentType: sniffContent,
			}, nil)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&caseInsensitive, "case-insensitive", false, "use the ordinal-ignore-case comparer")
	flags.BoolVar(&sniffContent, "sniff-content-type", false, "sniff file content types via mimetype")
	flags.BoolVar(&debugLogging, "debug", false, "set the logrus level to debug")

	root.AddCommand(
		newMkdirCommand(),
		newLsCommand(),
		newCatCommand(),
		newWriteCommand(),
		newMvCommand(),
		newCpCommand(),
		newRmCommand(),
		newStatCommand(),
		newWatchCommand(),
		newOpenCommand(),
	)
	return root
}
