package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

type actionOptions struct {
	requestFlags
	placeholder string
}

func newActionCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &actionOptions{}

	cmd := &cobra.Command{
		Use:   "action <group> <name>",
		Short: "Render a single action of a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd, rootFlags, opts, args[0], args[1])
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "Value printed when the action produces no output")

	return cmd
}

func runAction(cmd *cobra.Command, rootFlags *rootFlags, opts *actionOptions, group, name string) error {
	rt, err := loadRuntime(cmd, "render action", rootFlags)
	if err != nil {
		return err
	}

	req, err := opts.request(rt)
	if err != nil {
		return newCommandError("render action", fmt.Sprintf("resolving subject %q", opts.path), err, suggestionFor(err))
	}

	renderOpts := opts.renderOptions()
	if cmd.Flags().Changed("placeholder") {
		renderOpts = append(renderOpts, viewcomponent.WithPlaceholder(opts.placeholder))
	}

	result, err := rt.Store.RenderAction(cmd.Context(), group, name, req, renderOpts...)
	if err != nil {
		return newCommandError("render action", fmt.Sprintf("rendering %q of group %q", name, group), err, suggestionFor(err))
	}

	return writeResult(cmd, result)
}
