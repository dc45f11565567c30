package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/viewcomponent/internal/app"
	"github.com/alexisbeaulieu97/viewcomponent/internal/config"
	"github.com/alexisbeaulieu97/viewcomponent/internal/resource"
	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

func resolveLayoutPath(flags *rootFlags) (string, error) {
	path := flags.layoutPath
	if strings.TrimSpace(path) == "" {
		path = config.DefaultPath()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve layout path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("layout file does not exist: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("layout path %s is a directory", abs)
	}
	return abs, nil
}

func loadRuntime(cmd *cobra.Command, operation string, flags *rootFlags) (*app.Runtime, error) {
	path, err := resolveLayoutPath(flags)
	if err != nil {
		return nil, newCommandError(operation, "locating layout file", err, "Pass --layout or create $XDG_CONFIG_HOME/viewcomponent/layout.yaml.")
	}

	rt, err := app.Load(app.Options{LayoutPath: path, LogWriter: cmd.ErrOrStderr(), Verbose: flags.verbose})
	if err != nil {
		return nil, newCommandError(operation, "loading layout", err, "Fix the reported field or line and try again.")
	}
	return rt, nil
}

// requestFlags describe who is rendering and where.
type requestFlags struct {
	path   string
	user   string
	groups []string
	extra  map[string]string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "path", "p", "/", "Resource path used as the render subject")
	cmd.Flags().StringVarP(&f.user, "user", "u", "", "Principal to render as (anonymous when empty)")
	cmd.Flags().StringSliceVar(&f.groups, "groups", nil, "Additional principals of the user")
	cmd.Flags().StringToStringVar(&f.extra, "set", nil, "Per-call options passed to every action (key=value)")
}

func (f *requestFlags) request(rt *app.Runtime) (viewcomponent.Request, error) {
	identity := &resource.Identity{UserID: f.user, Groups: f.groups}
	return rt.Request(f.path, identity)
}

func (f *requestFlags) renderOptions() []viewcomponent.RenderOption {
	if len(f.extra) == 0 {
		return nil
	}
	extra := make(map[string]any, len(f.extra))
	for k, v := range f.extra {
		extra[k] = v
	}
	return []viewcomponent.RenderOption{viewcomponent.WithExtra(extra)}
}

func suggestionFor(err error) string {
	var notFound *vcerrors.NotFoundError
	var actionErr *vcerrors.ActionError
	var mismatch *vcerrors.TypeMismatchError
	switch {
	case errors.As(err, &notFound) && notFound.Kind == "resource":
		return "Check --path against the resources section of the layout."
	case errors.As(err, &notFound):
		return "Run 'viewcomponent groups' to list the registered groups and actions."
	case errors.As(err, &mismatch):
		return "Use --mode list or --mode dict for actions that return structured values."
	case errors.As(err, &actionErr):
		return "Fix the template of the reported action."
	default:
		return "Re-run with --verbose for details."
	}
}
