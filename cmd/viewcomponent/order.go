package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/diff"
)

func newOrderCmd(rootFlags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "order <group>",
		Short: "Show how the layout's order changes a group's registration order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, rootFlags, args[0])
		},
	}
}

func runOrder(cmd *cobra.Command, rootFlags *rootFlags, name string) error {
	rt, err := loadRuntime(cmd, "compare order", rootFlags)
	if err != nil {
		return err
	}

	g, err := rt.Store.Group(name)
	if err != nil {
		return newCommandError("compare order", fmt.Sprintf("looking up group %q", name), err, suggestionFor(err))
	}
	registered, err := rt.RegisteredOrder(name)
	if err != nil {
		return newCommandError("compare order", fmt.Sprintf("looking up group %q", name), err, suggestionFor(err))
	}

	out := cmd.OutOrStdout()
	for _, warning := range rt.Warnings {
		if warning.Group == name {
			fmt.Fprintf(out, "warning: %s\n", warning.Error())
		}
	}

	patch := diff.Orders(registered, g.Order(), "registered", "effective")
	if patch == "" {
		fmt.Fprintf(out, "Order of group %q matches registration.\n", name)
		return nil
	}
	fmt.Fprint(out, patch)
	return nil
}
