package resource

import (
	"context"
	"slices"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/logger"
	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

const (
	// Everyone matches every caller, authenticated or not.
	Everyone = "system.Everyone"
	// Authenticated matches callers with a user id.
	Authenticated = "system.Authenticated"
	// AllPermissions matches any permission in an ACE.
	AllPermissions = "ALL"
)

// ACE is one access control entry.
type ACE struct {
	Deny        bool
	Principal   string
	Permissions []string
}

func (e ACE) matches(principals []string, permission string) bool {
	if !slices.Contains(principals, e.Principal) {
		return false
	}
	return slices.Contains(e.Permissions, permission) || slices.Contains(e.Permissions, AllPermissions)
}

// PrincipalProvider is implemented by request state that knows who is asking.
type PrincipalProvider interface {
	Principals() []string
}

// Identity is the request state used by the CLI host.
type Identity struct {
	UserID string
	Groups []string
}

// Principals returns Everyone, plus Authenticated, the user id and groups
// when a user id is set.
func (i *Identity) Principals() []string {
	principals := []string{Everyone}
	if i == nil || i.UserID == "" {
		return principals
	}
	principals = append(principals, Authenticated, i.UserID)
	return append(principals, i.Groups...)
}

// ACLChecker grants permissions by walking the subject's lineage and
// applying the first matching ACE. No match denies.
type ACLChecker struct {
	logger *logger.Logger
}

var _ viewcomponent.PermissionChecker = (*ACLChecker)(nil)

// NewACLChecker creates a checker that logs its decisions at debug level.
func NewACLChecker(log *logger.Logger) *ACLChecker {
	return &ACLChecker{logger: log}
}

// HasPermission implements viewcomponent.PermissionChecker.
func (c *ACLChecker) HasPermission(_ context.Context, permission string, subject, state any) bool {
	node, ok := subject.(*Node)
	if !ok {
		return false
	}

	principals := []string{Everyone}
	if provider, ok := state.(PrincipalProvider); ok {
		principals = provider.Principals()
	}

	for _, cur := range node.Lineage() {
		for _, ace := range cur.acl {
			if ace.matches(principals, permission) {
				c.logger.WithFields(map[string]any{
					"permission": permission,
					"resource":   node.Path(),
					"granted_at": cur.Path(),
					"principal":  ace.Principal,
					"allowed":    !ace.Deny,
				}).Debug("permission decided")
				return !ace.Deny
			}
		}
	}

	c.logger.WithFields(map[string]any{"permission": permission, "resource": node.Path()}).Debug("permission denied by default")
	return false
}
