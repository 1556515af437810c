package commands

import (
	"io"

	"github.com/mosaicnetworks/maelnode/src/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd returns the maelnode command. Nodes read messages from in and
// write them to out; logs never go to out.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	conf := config.NewDefaultConfig()
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "maelnode",
		Short: "Maelstrom node runtime",
		Long: `maelnode speaks the Maelstrom protocol over stdin and stdout.

Without a sub-command it runs the node named by --node (or MAELNODE_NODE, or
the "node" key of [datadir]/maelnode.toml).`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd, v, conf)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNamed(conf.NodeType, conf, in, out)
		},
	}

	AddConfigFlags(rootCmd, conf)

	for _, name := range NodeTypes() {
		rootCmd.AddCommand(newNodeCmd(name, conf, in, out))
	}

	rootCmd.AddCommand(newVersionCmd(out))

	return rootCmd
}
