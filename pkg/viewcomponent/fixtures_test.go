package viewcomponent

import (
	"context"
	"slices"
)

// node is a minimal containment tree used as a render subject.
type node struct {
	name     string
	provides []string
	parent   *node
}

func (n *node) SatisfiesCapability(tag string) bool {
	return slices.Contains(n.provides, tag)
}

func (n *node) AncestorSatisfies(tag string) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.SatisfiesCapability(tag) {
			return true
		}
	}
	return false
}

func nameHandler(_ context.Context, _ Request, a *Action) (any, error) {
	return a.Name(), nil
}

func constHandler(value any) Handler {
	return func(context.Context, Request, *Action) (any, error) {
		return value, nil
	}
}

func mustAction(name string, h Handler, opts ...ActionOption) *Action {
	a, err := NewAction(name, h, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

func groupOf(actions ...*Action) *Group {
	g := NewGroup("g")
	for _, a := range actions {
		if err := g.Add(a); err != nil {
			panic(err)
		}
	}
	return g
}
