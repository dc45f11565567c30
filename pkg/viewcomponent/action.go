package viewcomponent

import (
	"context"
	"fmt"
	"maps"
	"strings"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

// Request bundles what a render call passes to every handler.
type Request struct {
	// Subject is the object being rendered for. Guards inspect it through GuardContext.
	Subject any
	// State is ancillary host state such as the current HTTP request or principal.
	State any
	// Options holds per-call extras.
	Options map[string]any
}

// Handler produces the output of an action. Returning nil or an empty
// string means "no output".
type Handler func(ctx context.Context, req Request, a *Action) (any, error)

// Action is a named handler with optional guards and an optional priority.
type Action struct {
	name        string
	title       string
	permission  string
	iface       string
	containment string
	priority    int
	hasPriority bool
	options     map[string]any
	handler     Handler
	parent      *Group
}

// ActionOption configures an Action at construction time.
type ActionOption func(*Action)

// WithTitle sets a display label.
func WithTitle(title string) ActionOption {
	return func(a *Action) { a.title = title }
}

// WithPermission requires the owning group's checker to grant permission.
func WithPermission(permission string) ActionOption {
	return func(a *Action) { a.permission = permission }
}

// WithInterface requires the subject to provide the capability tag.
func WithInterface(tag string) ActionOption {
	return func(a *Action) { a.iface = tag }
}

// WithContainment requires the subject or one of its ancestors to provide the tag.
func WithContainment(tag string) ActionOption {
	return func(a *Action) { a.containment = tag }
}

// WithPriority places the action among prioritized actions; lower sorts earlier.
func WithPriority(priority int) ActionOption {
	return func(a *Action) {
		a.priority = priority
		a.hasPriority = true
	}
}

// WithOptions attaches registration-time extras that handlers can read.
func WithOptions(options map[string]any) ActionOption {
	return func(a *Action) {
		if a.options == nil {
			a.options = make(map[string]any, len(options))
		}
		maps.Copy(a.options, options)
	}
}

// NewAction constructs an Action. It fails when the handler is nil or the
// name is blank.
func NewAction(name string, handler Handler, opts ...ActionOption) (*Action, error) {
	if handler == nil {
		return nil, vcerrors.NewInvalidArgumentError("handler", fmt.Sprintf("action '%s' requires a handler", name))
	}
	if strings.TrimSpace(name) == "" {
		return nil, vcerrors.NewInvalidArgumentError("name", "action name must not be blank")
	}

	a := &Action{name: name, handler: handler}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Name returns the action's identifier.
func (a *Action) Name() string { return a.name }

// Title returns the display label.
func (a *Action) Title() string { return a.title }

// Permission returns the required permission, or "".
func (a *Action) Permission() string { return a.permission }

// Interface returns the required capability tag, or "".
func (a *Action) Interface() string { return a.iface }

// Containment returns the required ancestor capability tag, or "".
func (a *Action) Containment() string { return a.containment }

// Priority returns the ordering value and whether one was set.
func (a *Action) Priority() (int, bool) { return a.priority, a.hasPriority }

// Parent returns the group the action was last added to.
func (a *Action) Parent() *Group { return a.parent }

// Options returns a copy of the registration-time extras.
func (a *Action) Options() map[string]any {
	return maps.Clone(a.options)
}

// Option returns a single registration-time extra.
func (a *Action) Option(key string) (any, bool) {
	v, ok := a.options[key]
	return v, ok
}

// Invoke evaluates the guards in order interface, permission, containment
// and calls the handler when all pass. A failing guard yields (nil, nil).
// A permission guard on an action without a parent returns ErrDetached.
func (a *Action) Invoke(ctx context.Context, req Request) (any, error) {
	if a.iface != "" && !providesCapability(req.Subject, a.iface) {
		return nil, nil
	}
	if a.permission != "" {
		if a.parent == nil {
			return nil, fmt.Errorf("action '%s' checks permission '%s': %w", a.name, a.permission, vcerrors.ErrDetached)
		}
		if !a.parent.permitted(ctx, a.permission, req) {
			return nil, nil
		}
	}
	if a.containment != "" && !containedIn(req.Subject, a.containment) {
		return nil, nil
	}
	return a.handler(ctx, req, a)
}

func (a *Action) String() string {
	return fmt.Sprintf("<Action '%s'>", a.name)
}
