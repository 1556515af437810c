package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/mosaicnetworks/maelnode/src/message"
	"github.com/mosaicnetworks/maelnode/src/node"
	"github.com/mosaicnetworks/maelnode/src/nodes/broadcast"
	"github.com/mosaicnetworks/maelnode/src/nodes/echo"
	"github.com/mosaicnetworks/maelnode/src/nodes/uniqueids"
	"github.com/spf13/cobra"
)

type runner func(conf *config.Config, in io.Reader, out io.Writer) error

var runners = map[string]runner{
	"echo": func(conf *config.Config, in io.Reader, out io.Writer) error {
		return runNode[echo.Payload, *echo.Handler](conf, echo.NewCodec(), echo.New, in, out)
	},
	"unique-ids": func(conf *config.Config, in io.Reader, out io.Writer) error {
		return runNode[uniqueids.Payload, *uniqueids.Handler](conf, uniqueids.NewCodec(), uniqueids.New, in, out)
	},
	"broadcast": func(conf *config.Config, in io.Reader, out io.Writer) error {
		return runNode[broadcast.Payload, *broadcast.Handler](conf, broadcast.NewCodec(), broadcast.New, in, out)
	},
}

var shortDescriptions = map[string]string{
	"echo":       "Run an echo node",
	"unique-ids": "Run a node that generates globally unique ids",
	"broadcast":  "Run a single-node broadcast node",
}

// NodeTypes returns the names of the nodes this binary can run.
func NodeTypes() []string {
	res := make([]string, 0, len(runners))
	for name := range runners {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func newNodeCmd(name string, conf *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: shortDescriptions[name],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamed(name, conf, in, out)
		},
	}
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runNamed(name string, conf *config.Config, in io.Reader, out io.Writer) error {
	run, ok := runners[name]
	if !ok {
		if name == "" {
			return fmt.Errorf("no node selected: use a sub-command or --node (%v)", NodeTypes())
		}
		return fmt.Errorf("unknown node %q, expected one of %v", name, NodeTypes())
	}

	conf.Logger().WithField("node", name).Debug("RUN")

	return run(conf, in, out)
}

func runNode[P message.Payload, H node.Handler[P]](
	conf *config.Config,
	codec *message.Codec[P],
	factory node.Factory[P, H],
	in io.Reader,
	out io.Writer,
) error {
	n := node.NewNode[P, H](conf, codec, factory)
	return n.Run(in, out)
}
