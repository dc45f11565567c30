package viewcomponent

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/logger"
)

// Item pairs an action with the key it is stored under.
type Item struct {
	Key    string
	Action *Action
}

// Group is an ordered mapping of name to Action.
type Group struct {
	mu          sync.RWMutex
	name        string
	permissions PermissionChecker
	order       []string
	actions     map[string]*Action
	logger      *logger.Logger
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithPermissionChecker sets the checker used for permission guards.
func WithPermissionChecker(checker PermissionChecker) GroupOption {
	return func(g *Group) { g.permissions = checker }
}

// WithLogger sets the logger used for reorder warnings and action failures.
func WithLogger(log *logger.Logger) GroupOption {
	return func(g *Group) { g.logger = log }
}

// NewGroup creates an empty group. Without WithPermissionChecker every
// permission guard is denied.
func NewGroup(name string, opts ...GroupOption) *Group {
	g := &Group{
		name:    name,
		actions: make(map[string]*Action),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.permissions == nil {
		g.permissions = DenyAll
	}
	if g.logger != nil {
		g.logger = g.logger.With("group", name)
	}
	return g
}

// Name returns the group's identifier.
func (g *Group) Name() string { return g.name }

// Add stores a under its own name.
func (g *Group) Add(a *Action) error {
	if a == nil {
		return vcerrors.NewInvalidArgumentError("action", "must not be nil")
	}
	return g.Set(a.Name(), a)
}

// Set stores a under key, replacing any action already there, and makes
// the group its parent. The key's position is derived from a's priority.
func (g *Group) Set(key string, a *Action) error {
	if a == nil {
		return vcerrors.NewInvalidArgumentError("action", "must not be nil")
	}
	if strings.TrimSpace(key) == "" {
		return vcerrors.NewInvalidArgumentError("key", "must not be blank")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.actions[key] = a
	a.parent = g
	g.place(key, a)
	return nil
}

// place positions key in the order. Unprioritized keys are appended unless
// already present. Prioritized keys are re-inserted just after the last
// prioritized entry whose priority is lower or equal, scanning from the end.
func (g *Group) place(key string, a *Action) {
	priority, ok := a.Priority()
	if !ok {
		if !slices.Contains(g.order, key) {
			g.order = append(g.order, key)
		}
		return
	}

	g.order = removeKey(g.order, key)

	at := 0
	for i := len(g.order) - 1; i >= 0; i-- {
		other, exists := g.actions[g.order[i]]
		if !exists {
			continue
		}
		otherPriority, prioritized := other.Priority()
		if !prioritized {
			continue
		}
		if otherPriority <= priority {
			at = i + 1
			break
		}
	}

	g.order = slices.Insert(g.order, at, key)
}

// Remove deletes key from the group.
func (g *Group) Remove(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.actions[key]; !ok {
		return &vcerrors.NotFoundError{Kind: "action", Name: key, Group: g.name}
	}
	delete(g.actions, key)
	g.order = removeKey(g.order, key)
	return nil
}

// Get returns the action stored under key.
func (g *Group) Get(key string) (*Action, error) {
	a, ok := g.Lookup(key)
	if !ok {
		return nil, &vcerrors.NotFoundError{Kind: "action", Name: key, Group: g.name}
	}
	return a, nil
}

// Lookup returns the action stored under key and whether it exists.
func (g *Group) Lookup(key string) (*Action, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	a, ok := g.actions[key]
	return a, ok
}

// Has reports whether key is stored in the group.
func (g *Group) Has(key string) bool {
	_, ok := g.Lookup(key)
	return ok
}

// Len returns the number of actions.
func (g *Group) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.actions)
}

// Order returns a copy of the current order.
func (g *Group) Order() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.order)
}

// Keys is an alias for Order.
func (g *Group) Keys() []string {
	return g.Order()
}

// Values returns the actions in order.
func (g *Group) Values() []*Action {
	g.mu.RLock()
	defer g.mu.RUnlock()

	values := make([]*Action, 0, len(g.order))
	for _, key := range g.order {
		values = append(values, g.actions[key])
	}
	return values
}

// Items returns key/action pairs in order.
func (g *Group) Items() []Item {
	g.mu.RLock()
	defer g.mu.RUnlock()

	items := make([]Item, 0, len(g.order))
	for _, key := range g.order {
		items = append(items, Item{Key: key, Action: g.actions[key]})
	}
	return items
}

// SetOrder replaces the order. Keys that are not in the group are dropped
// and reported as warnings, repeated keys are ignored, and keys left out are
// appended in their previous relative order.
func (g *Group) SetOrder(keys []string) []vcerrors.OrderWarning {
	g.mu.Lock()
	defer g.mu.Unlock()

	var warnings []vcerrors.OrderWarning
	seen := make(map[string]struct{}, len(g.actions))
	next := make([]string, 0, len(g.actions))

	for _, key := range keys {
		if _, ok := g.actions[key]; !ok {
			warning := vcerrors.OrderWarning{Group: g.name, Key: key}
			warnings = append(warnings, warning)
			g.logger.With("key", key).Warn(warning.Error())
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		next = append(next, key)
	}

	for _, key := range g.order {
		if _, ok := seen[key]; !ok {
			next = append(next, key)
		}
	}

	g.order = next
	return warnings
}

func (g *Group) permitted(ctx context.Context, permission string, req Request) bool {
	g.mu.RLock()
	checker := g.permissions
	g.mu.RUnlock()

	return checker.HasPermission(ctx, permission, req.Subject, req.State)
}

func (g *Group) String() string {
	return fmt.Sprintf("<Group '%s'>", g.name)
}

func removeKey(order []string, key string) []string {
	return slices.DeleteFunc(order, func(k string) bool { return k == key })
}
