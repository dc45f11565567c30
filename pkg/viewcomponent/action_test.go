package viewcomponent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

func TestNewActionValidatesArguments(t *testing.T) {
	t.Parallel()

	_, err := NewAction("name", nil)
	var invalid *vcerrors.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "handler", invalid.Field)

	_, err = NewAction("  ", nameHandler)
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "name", invalid.Field)
}

func TestNewActionAppliesOptions(t *testing.T) {
	t.Parallel()

	a := mustAction("logo", nameHandler,
		WithTitle("Logo"),
		WithPermission("view"),
		WithInterface("IRoot"),
		WithContainment("IOrganisation"),
		WithPriority(3),
		WithOptions(map[string]any{"css": "brand"}),
	)

	require.Equal(t, "logo", a.Name())
	require.Equal(t, "Logo", a.Title())
	require.Equal(t, "view", a.Permission())
	require.Equal(t, "IRoot", a.Interface())
	require.Equal(t, "IOrganisation", a.Containment())
	priority, ok := a.Priority()
	require.True(t, ok)
	require.Equal(t, 3, priority)
	css, ok := a.Option("css")
	require.True(t, ok)
	require.Equal(t, "brand", css)

	opts := a.Options()
	opts["css"] = "changed"
	css, _ = a.Option("css")
	require.Equal(t, "brand", css)

	_, ok = mustAction("plain", nameHandler).Priority()
	require.False(t, ok)
}

func TestActionInvokeWithoutRestrictions(t *testing.T) {
	t.Parallel()

	a := mustAction("name", nameHandler)
	out, err := a.Invoke(context.Background(), Request{})
	require.NoError(t, err)
	require.Equal(t, "name", out)
}

func TestActionReceivesRequestAndSelf(t *testing.T) {
	t.Parallel()

	var got Request
	var self *Action
	a := mustAction("echo", func(_ context.Context, req Request, a *Action) (any, error) {
		got = req
		self = a
		return "ok", nil
	})

	subject := &node{name: "doc"}
	_, err := a.Invoke(context.Background(), Request{Subject: subject, State: "request", Options: map[string]any{"k": 1}})
	require.NoError(t, err)
	require.Same(t, subject, got.Subject)
	require.Equal(t, "request", got.State)
	require.Equal(t, 1, got.Options["k"])
	require.Same(t, a, self)
}

func TestActionPermissionGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		checker PermissionChecker
		want    any
	}{
		{name: "allow", checker: AllowAll, want: "guarded"},
		{name: "deny", checker: DenyAll, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGroup("dummy", WithPermissionChecker(tt.checker))
			a := mustAction("guarded", nameHandler, WithPermission("Dummy"))
			require.NoError(t, g.Add(a))

			out, err := a.Invoke(context.Background(), Request{Subject: &node{}})
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestActionPermissionCheckerSeesArguments(t *testing.T) {
	t.Parallel()

	var gotPermission string
	var gotSubject, gotState any
	checker := PermissionCheckerFunc(func(_ context.Context, permission string, subject, state any) bool {
		gotPermission, gotSubject, gotState = permission, subject, state
		return true
	})

	g := NewGroup("dummy", WithPermissionChecker(checker))
	a := mustAction("edit", nameHandler, WithPermission("edit"))
	require.NoError(t, g.Add(a))

	subject := &node{name: "doc"}
	_, err := a.Invoke(context.Background(), Request{Subject: subject, State: "alice"})
	require.NoError(t, err)
	require.Equal(t, "edit", gotPermission)
	require.Same(t, subject, gotSubject)
	require.Equal(t, "alice", gotState)
}

func TestGroupWithoutCheckerDeniesPermissions(t *testing.T) {
	t.Parallel()

	g := NewGroup("dummy")
	a := mustAction("guarded", nameHandler, WithPermission("view"))
	require.NoError(t, g.Add(a))

	out, err := a.Invoke(context.Background(), Request{})
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestDetachedActionWithPermissionFails(t *testing.T) {
	t.Parallel()

	a := mustAction("guarded", nameHandler, WithPermission("view"))
	_, err := a.Invoke(context.Background(), Request{})
	require.ErrorIs(t, err, vcerrors.ErrDetached)
}

func TestActionInterfaceGuard(t *testing.T) {
	t.Parallel()

	root := &node{name: "root", provides: []string{"IRoot"}}

	out, err := mustAction("allow", nameHandler, WithInterface("IRoot")).Invoke(context.Background(), Request{Subject: root})
	require.NoError(t, err)
	require.Equal(t, "allow", out)

	out, err = mustAction("deny", nameHandler, WithInterface("IOrganisation")).Invoke(context.Background(), Request{Subject: root})
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestActionContainmentGuard(t *testing.T) {
	t.Parallel()

	root := &node{name: "root", provides: []string{"IRoot"}}
	child := &node{name: "d", parent: root}

	out, err := mustAction("allow", nameHandler, WithContainment("IRoot")).Invoke(context.Background(), Request{Subject: child})
	require.NoError(t, err)
	require.Equal(t, "allow", out)

	out, err = mustAction("deny", nameHandler, WithContainment("IOrganisation")).Invoke(context.Background(), Request{Subject: child})
	require.NoError(t, err)
	require.Nil(t, out)
}

func TestGuardsFailForSubjectsWithoutGuardContext(t *testing.T) {
	t.Parallel()

	for _, opt := range []ActionOption{WithInterface("IRoot"), WithContainment("IRoot")} {
		out, err := mustAction("x", nameHandler, opt).Invoke(context.Background(), Request{Subject: "plain string"})
		require.NoError(t, err)
		require.Nil(t, out)
	}
}

func TestGuardOrderStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	checked := false
	checker := PermissionCheckerFunc(func(context.Context, string, any, any) bool {
		checked = true
		return true
	})
	g := NewGroup("dummy", WithPermissionChecker(checker))
	a := mustAction("x", nameHandler, WithInterface("IRoot"), WithPermission("view"))
	require.NoError(t, g.Add(a))

	out, err := a.Invoke(context.Background(), Request{Subject: &node{}})
	require.NoError(t, err)
	require.Nil(t, out)
	require.False(t, checked, "permission must not be checked after a failed interface guard")
}
