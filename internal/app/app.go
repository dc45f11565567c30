// Package app wires a layout document into a frozen action store.
package app

import (
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/viewcomponent/internal/config"
	"github.com/alexisbeaulieu97/viewcomponent/internal/resource"
	"github.com/alexisbeaulieu97/viewcomponent/internal/templateaction"
	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/logger"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

// Options configures Load.
type Options struct {
	LayoutPath string
	LogWriter  io.Writer
	// Verbose forces debug logging regardless of the layout's level.
	Verbose bool
}

// Runtime is a populated store together with the resources it renders against.
type Runtime struct {
	Layout   *config.Layout
	Store    *viewcomponent.Store
	Root     *resource.Node
	Logger   *logger.Logger
	Warnings []vcerrors.OrderWarning

	registered map[string][]string
}

// Load parses the layout at opts.LayoutPath and builds a runtime from it.
func Load(opts Options) (*Runtime, error) {
	layout, err := config.ParseLayout(opts.LayoutPath)
	if err != nil {
		return nil, err
	}

	level := layout.Logging.Level
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: layout.Logging.HumanReadable,
		Writer:        opts.LogWriter,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return Build(layout, log.With("layout", opts.LayoutPath))
}

// Build populates a store from layout: resources first, then every declared
// action, then explicit group orders. The store is frozen unless the layout
// disables it.
func Build(layout *config.Layout, log *logger.Logger) (*Runtime, error) {
	if layout == nil {
		return nil, vcerrors.NewInvalidArgumentError("layout", "must not be nil")
	}

	rt := &Runtime{Layout: layout, Logger: log, registered: make(map[string][]string)}

	if layout.Resources != nil {
		root, err := BuildTree(*layout.Resources)
		if err != nil {
			return nil, fmt.Errorf("build resource tree: %w", err)
		}
		rt.Root = root
	}

	rt.Store = viewcomponent.NewStore(
		viewcomponent.WithDefaultPermissionChecker(resource.NewACLChecker(log)),
		viewcomponent.WithStoreLogger(log),
	)

	for _, group := range layout.Groups {
		if err := registerGroup(rt.Store, group); err != nil {
			return nil, err
		}
	}

	for _, group := range layout.Groups {
		if len(group.Order) == 0 {
			continue
		}
		g, err := rt.Store.Group(group.Name)
		if err != nil {
			// Groups without actions are never created.
			log.With("group", group.Name).Warn("order given for a group with no actions")
			continue
		}
		rt.registered[group.Name] = g.Order()
		rt.Warnings = append(rt.Warnings, g.SetOrder(group.Order)...)
	}

	if layout.ShouldFreeze() {
		rt.Store.Freeze()
	}

	return rt, nil
}

func registerGroup(store *viewcomponent.Store, group config.Group) error {
	for _, def := range group.Actions {
		handler, err := templateaction.New(group.Name+"."+def.Name, def.Template)
		if err != nil {
			return fmt.Errorf("group '%s' action '%s': %w", group.Name, def.Name, err)
		}

		opts := []viewcomponent.ActionOption{
			viewcomponent.WithTitle(def.Title),
			viewcomponent.WithPermission(def.Permission),
			viewcomponent.WithInterface(def.Interface),
			viewcomponent.WithContainment(def.Containment),
			viewcomponent.WithOptions(def.Options),
		}
		if def.Priority != nil {
			opts = append(opts, viewcomponent.WithPriority(*def.Priority))
		}

		if _, err := store.Register(group.Name, def.Name, handler, opts...); err != nil {
			return fmt.Errorf("register '%s' in group '%s': %w", def.Name, group.Name, err)
		}
	}
	return nil
}

// BuildTree converts a resource definition into a node tree.
func BuildTree(def config.Resource) (*resource.Node, error) {
	node := resource.New(def.Name, def.Provides...)
	if def.Title != "" {
		node.SetTitle(def.Title)
	}

	acl := make([]resource.ACE, 0, len(def.ACL))
	for _, ace := range def.ACL {
		acl = append(acl, resource.ACE{Deny: ace.Deny, Principal: ace.Principal, Permissions: ace.Permissions})
	}
	node.SetACL(acl...)

	for _, child := range def.Children {
		childNode, err := BuildTree(child)
		if err != nil {
			return nil, err
		}
		if err := node.Add(childNode); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Resolve finds the resource at path. An empty path selects the root. A
// runtime without resources resolves every path to a nil subject.
func (rt *Runtime) Resolve(path string) (*resource.Node, error) {
	if rt.Root == nil {
		if path == "" || path == "/" {
			return nil, nil
		}
		return nil, &vcerrors.NotFoundError{Kind: "resource", Name: path}
	}
	if path == "" {
		return rt.Root, nil
	}
	return rt.Root.Find(path)
}

// Request builds a render request for the resource at path on behalf of identity.
func (rt *Runtime) Request(path string, identity *resource.Identity) (viewcomponent.Request, error) {
	node, err := rt.Resolve(path)
	if err != nil {
		return viewcomponent.Request{}, err
	}

	req := viewcomponent.Request{State: identity}
	if node != nil {
		req.Subject = node
	}
	return req, nil
}

// Separator returns the layout's separator for the named group.
func (rt *Runtime) Separator(group string) string {
	if def, ok := rt.Layout.Group(group); ok {
		return def.Separator
	}
	return ""
}

// RegisteredOrder returns the order of the named group as it stood after
// registration, before any layout order was applied.
func (rt *Runtime) RegisteredOrder(group string) ([]string, error) {
	if order, ok := rt.registered[group]; ok {
		return order, nil
	}
	g, err := rt.Store.Group(group)
	if err != nil {
		return nil, err
	}
	return g.Order(), nil
}

// DeclaredOrder returns the order the layout requests for the named group.
func (rt *Runtime) DeclaredOrder(group string) []string {
	if def, ok := rt.Layout.Group(group); ok {
		return def.Order
	}
	return nil
}
