package viewcomponent

import "context"

// GuardContext is implemented by subjects that can answer capability guards.
// Subjects that do not implement it fail every interface and containment guard.
type GuardContext interface {
	// SatisfiesCapability reports whether the subject itself provides tag.
	SatisfiesCapability(tag string) bool
	// AncestorSatisfies reports whether the subject or any of its
	// containers provides tag.
	AncestorSatisfies(tag string) bool
}

// PermissionChecker decides whether permission is granted for subject.
type PermissionChecker interface {
	HasPermission(ctx context.Context, permission string, subject, state any) bool
}

// PermissionCheckerFunc adapts a function to PermissionChecker.
type PermissionCheckerFunc func(ctx context.Context, permission string, subject, state any) bool

// HasPermission calls f.
func (f PermissionCheckerFunc) HasPermission(ctx context.Context, permission string, subject, state any) bool {
	return f(ctx, permission, subject, state)
}

var (
	// DenyAll refuses every permission. Groups use it when no checker is configured.
	DenyAll PermissionChecker = PermissionCheckerFunc(func(context.Context, string, any, any) bool { return false })
	// AllowAll grants every permission.
	AllowAll PermissionChecker = PermissionCheckerFunc(func(context.Context, string, any, any) bool { return true })
)

func providesCapability(subject any, tag string) bool {
	guard, ok := subject.(GuardContext)
	if !ok {
		return false
	}
	return guard.SatisfiesCapability(tag)
}

func containedIn(subject any, tag string) bool {
	guard, ok := subject.(GuardContext)
	if !ok {
		return false
	}
	return guard.AncestorSatisfies(tag)
}
