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

// Store is the table of groups an application renders from.
//
// Lifecycle: populate with Register or AddGroup during startup, call Freeze,
// then render concurrently. Mutations after Freeze fail with ErrFrozen.
type Store struct {
	mu          sync.RWMutex
	groups      map[string]*Group
	frozen      bool
	permissions PermissionChecker
	logger      *logger.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDefaultPermissionChecker sets the checker given to lazily created groups.
func WithDefaultPermissionChecker(checker PermissionChecker) StoreOption {
	return func(s *Store) { s.permissions = checker }
}

// WithStoreLogger sets the logger shared by the store and its lazily created groups.
func WithStoreLogger(log *logger.Logger) StoreOption {
	return func(s *Store) { s.logger = log }
}

// NewStore creates an empty, unfrozen store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{groups: make(map[string]*Group)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register builds an action and adds it to the named group, creating the
// group on first use. Re-registering a name replaces the earlier action.
func (s *Store) Register(groupName, actionName string, handler Handler, opts ...ActionOption) (*Action, error) {
	if strings.TrimSpace(groupName) == "" {
		return nil, vcerrors.NewInvalidArgumentError("group", "group name must not be blank")
	}

	a, err := NewAction(actionName, handler, opts...)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return nil, fmt.Errorf("register action '%s' in group '%s': %w", actionName, groupName, vcerrors.ErrFrozen)
	}

	g, ok := s.groups[groupName]
	if !ok {
		g = NewGroup(groupName, WithPermissionChecker(s.permissions), WithLogger(s.logger))
		s.groups[groupName] = g
		s.logger.With("group", groupName).Debug("group created")
	}
	if err := g.Add(a); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]any{"group": groupName, "action": actionName}).Debug("action registered")
	return a, nil
}

// AddGroup adds an explicitly constructed group.
func (s *Store) AddGroup(g *Group) error {
	if g == nil {
		return vcerrors.NewInvalidArgumentError("group", "must not be nil")
	}
	if strings.TrimSpace(g.Name()) == "" {
		return vcerrors.NewInvalidArgumentError("group", "group name must not be blank")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return fmt.Errorf("add group '%s': %w", g.Name(), vcerrors.ErrFrozen)
	}
	if _, exists := s.groups[g.Name()]; exists {
		return vcerrors.NewInvalidArgumentError("group", fmt.Sprintf("group '%s' already registered", g.Name()))
	}
	s.groups[g.Name()] = g
	return nil
}

// Group returns the named group.
func (s *Store) Group(name string) (*Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[name]
	if !ok {
		return nil, &vcerrors.NotFoundError{Kind: "group", Name: name}
	}
	return g, nil
}

// Groups returns every group sorted by name.
func (s *Store) Groups() []*Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *Group) int { return strings.Compare(a.Name(), b.Name()) })
	return groups
}

// Freeze ends the registration phase.
func (s *Store) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return
	}
	s.frozen = true
	s.logger.With("groups", len(s.groups)).Info("registry frozen")
}

// Frozen reports whether Freeze has been called.
func (s *Store) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// RenderGroup renders the named group as joined text.
func (s *Store) RenderGroup(ctx context.Context, groupName string, req Request, opts ...RenderOption) (string, error) {
	g, err := s.Group(groupName)
	if err != nil {
		return "", err
	}
	return g.Render(ctx, req, opts...)
}

// RenderAction renders one action of the named group.
func (s *Store) RenderAction(ctx context.Context, groupName, actionName string, req Request, opts ...RenderOption) (any, error) {
	g, err := s.Group(groupName)
	if err != nil {
		return nil, err
	}
	return g.RenderAction(ctx, actionName, req, opts...)
}

// Evaluate renders the named group in the given mode.
func (s *Store) Evaluate(ctx context.Context, groupName string, mode Mode, req Request, opts ...RenderOption) (any, error) {
	g, err := s.Group(groupName)
	if err != nil {
		return nil, err
	}
	return Evaluate(ctx, g, mode, req, opts...)
}
