package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

type renderOptions struct {
	requestFlags
	mode        string
	separator   string
	placeholder string
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <group>",
		Short: "Render every permitted action of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, rootFlags, opts, args[0])
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", string(viewcomponent.ModeSequence), "Output mode: sequence, list or dict")
	cmd.Flags().StringVar(&opts.separator, "separator", "", "Text placed between results (defaults to the layout's separator)")
	cmd.Flags().StringVar(&opts.placeholder, "placeholder", "", "Value substituted for actions that produce no output")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions, group string) error {
	mode, err := viewcomponent.ParseMode(opts.mode)
	if err != nil {
		return newCommandError("render", "parsing --mode", err, "Use one of: sequence, list, dict.")
	}

	rt, err := loadRuntime(cmd, "render", rootFlags)
	if err != nil {
		return err
	}

	req, err := opts.request(rt)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("resolving subject %q", opts.path), err, suggestionFor(err))
	}

	separator := rt.Separator(group)
	if cmd.Flags().Changed("separator") {
		separator = opts.separator
	}
	renderOpts := append(opts.renderOptions(), viewcomponent.WithSeparator(separator))
	if cmd.Flags().Changed("placeholder") {
		renderOpts = append(renderOpts, viewcomponent.WithPlaceholder(opts.placeholder))
	}

	result, err := rt.Store.Evaluate(cmd.Context(), group, mode, req, renderOpts...)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("rendering group %q", group), err, suggestionFor(err))
	}

	return writeResult(cmd, result)
}

func writeResult(cmd *cobra.Command, result any) error {
	switch v := result.(type) {
	case nil:
		return nil
	case string:
		_, err := fmt.Fprintln(cmd.OutOrStdout(), v)
		return err
	default:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
}
