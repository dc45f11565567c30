package config

import (
	"testing"

	"github.com/stretchr/testify/require"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

func validLayout() *Layout {
	return &Layout{
		Version: "1.0",
		Resources: &Resource{
			Name:     "root",
			Children: []Resource{{Name: "acme"}, {Name: "globex"}},
		},
		Groups: []Group{
			{Name: "nav", Actions: []Action{{Name: "home", Template: "home"}, {Name: "about", Template: "about"}}},
			{Name: "footer"},
		},
	}
}

func TestValidateLayout(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		mutate    func(*Layout)
		wantField string
	}{
		{name: "valid layout passes"},
		{
			name:      "version is required",
			mutate:    func(l *Layout) { l.Version = "" },
			wantField: "version",
		},
		{
			name:      "version must be semver-like",
			mutate:    func(l *Layout) { l.Version = "beta" },
			wantField: "version",
		},
		{
			name:      "unknown log level",
			mutate:    func(l *Layout) { l.Logging.Level = "loud" },
			wantField: "logging.level",
		},
		{
			name:      "group names must be identifiers",
			mutate:    func(l *Layout) { l.Groups[0].Name = "nav bar" },
			wantField: "groups[0].name",
		},
		{
			name:      "action template is required",
			mutate:    func(l *Layout) { l.Groups[0].Actions[1].Template = "" },
			wantField: "groups[0].actions[1].template",
		},
		{
			name:      "duplicate group names",
			mutate:    func(l *Layout) { l.Groups[1].Name = "nav" },
			wantField: "groups[1].name",
		},
		{
			name:      "duplicate action names",
			mutate:    func(l *Layout) { l.Groups[0].Actions[1].Name = "home" },
			wantField: "groups[0].actions[1].name",
		},
		{
			name:      "resource names cannot contain slashes",
			mutate:    func(l *Layout) { l.Resources.Children[0].Name = "a/b" },
			wantField: "resources.children[0].name",
		},
		{
			name:      "duplicate sibling resources",
			mutate:    func(l *Layout) { l.Resources.Children[1].Name = "acme" },
			wantField: "resources.children[1].name",
		},
		{
			name: "acl entries need permissions",
			mutate: func(l *Layout) {
				l.Resources.ACL = []ACE{{Principal: "admin"}}
			},
			wantField: "resources.acl[0].permissions",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			layout := validLayout()
			if tc.mutate != nil {
				tc.mutate(layout)
			}

			err := ValidateLayout(layout)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			var validationErr *vcerrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestValidateLayoutRejectsNil(t *testing.T) {
	t.Parallel()

	var validationErr *vcerrors.ValidationError
	require.ErrorAs(t, ValidateLayout(nil), &validationErr)
}

func TestShouldFreezeDefaultsToTrue(t *testing.T) {
	t.Parallel()

	require.True(t, (&Layout{}).ShouldFreeze())
	off := false
	require.False(t, (&Layout{Freeze: &off}).ShouldFreeze())
}
