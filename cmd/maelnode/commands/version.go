package commands

import (
	"fmt"
	"io"

	"github.com/mosaicnetworks/maelnode/src/version"
	"github.com/spf13/cobra"
)

// newVersionCmd returns the command that displays the version of maelnode
func newVersionCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, version.Version)
			fmt.Fprintln(out, "protocol:", version.Protocol)
		},
	}
}
