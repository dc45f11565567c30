package resource

import (
	"fmt"
	"slices"
	"strings"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

// Node is a resource in a containment tree. It provides capability tags and
// carries an ACL consulted by ACLChecker.
type Node struct {
	name     string
	title    string
	provides []string
	acl      []ACE
	parent   *Node
	children []*Node
}

var _ viewcomponent.GuardContext = (*Node)(nil)

// New creates a detached node.
func New(name string, provides ...string) *Node {
	return &Node{name: name, provides: slices.Clone(provides)}
}

// Name returns the node's path segment. The root's name is not part of paths.
func (n *Node) Name() string { return n.name }

// Title returns the display title, falling back to the name.
func (n *Node) Title() string {
	if n.title != "" {
		return n.title
	}
	return n.name
}

// SetTitle sets the display title.
func (n *Node) SetTitle(title string) { n.title = title }

// Provides returns the node's own capability tags.
func (n *Node) Provides() []string { return slices.Clone(n.provides) }

// Parent returns the containing node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the contained nodes in insertion order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// SetACL replaces the node's access control entries.
func (n *Node) SetACL(entries ...ACE) { n.acl = slices.Clone(entries) }

// ACL returns the node's own access control entries.
func (n *Node) ACL() []ACE { return slices.Clone(n.acl) }

// Add attaches child below n.
func (n *Node) Add(child *Node) error {
	if child == nil {
		return vcerrors.NewInvalidArgumentError("child", "must not be nil")
	}
	if strings.TrimSpace(child.name) == "" || strings.Contains(child.name, "/") {
		return vcerrors.NewInvalidArgumentError("child", fmt.Sprintf("invalid resource name %q", child.name))
	}
	if child.parent != nil {
		return vcerrors.NewInvalidArgumentError("child", fmt.Sprintf("resource '%s' already has a parent", child.name))
	}
	if n.child(child.name) != nil {
		return vcerrors.NewInvalidArgumentError("child", fmt.Sprintf("resource '%s' already contains '%s'", n.Path(), child.name))
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

func (n *Node) child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Root returns the top of n's tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Lineage returns n followed by each of its ancestors up to the root.
func (n *Node) Lineage() []*Node {
	var lineage []*Node
	for cur := n; cur != nil; cur = cur.parent {
		lineage = append(lineage, cur)
	}
	return lineage
}

// Path returns the slash separated location of n, "/" for the root.
func (n *Node) Path() string {
	lineage := n.Lineage()
	if len(lineage) == 1 {
		return "/"
	}
	segments := make([]string, 0, len(lineage)-1)
	for i := len(lineage) - 2; i >= 0; i-- {
		segments = append(segments, lineage[i].name)
	}
	return "/" + strings.Join(segments, "/")
}

// Find traverses from n along a slash separated path. Absolute paths start
// at the root.
func (n *Node) Find(path string) (*Node, error) {
	cur := n
	if strings.HasPrefix(path, "/") {
		cur = n.Root()
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" || segment == "." {
			continue
		}
		next := cur.child(segment)
		if next == nil {
			return nil, &vcerrors.NotFoundError{Kind: "resource", Name: path}
		}
		cur = next
	}
	return cur, nil
}

// Walk calls fn for n and every descendant, depth first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// SatisfiesCapability reports whether n itself provides tag.
func (n *Node) SatisfiesCapability(tag string) bool {
	return slices.Contains(n.provides, tag)
}

// AncestorSatisfies reports whether n or any container provides tag.
func (n *Node) AncestorSatisfies(tag string) bool {
	for _, cur := range n.Lineage() {
		if cur.SatisfiesCapability(tag) {
			return true
		}
	}
	return false
}

func (n *Node) String() string {
	return n.Path()
}
