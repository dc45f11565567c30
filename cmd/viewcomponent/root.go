package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	layoutPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "viewcomponent",
		Short:         "Render ordered, guarded action groups from a layout file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.layoutPath, "layout", "l", "", "Layout file (defaults to $XDG_CONFIG_HOME/viewcomponent/layout.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newActionCmd(flags))
	cmd.AddCommand(newGroupsCmd(flags))
	cmd.AddCommand(newOrderCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
