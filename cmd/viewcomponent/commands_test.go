package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testLayout = `version: "1.0"
resources:
  name: root
  provides: [IRoot]
  acl:
    - principal: system.Everyone
      permissions: [view]
    - principal: group:editors
      permissions: [edit]
  children:
    - name: acme
      title: ACME
      provides: [IOrganisation]
groups:
  - name: nav
    separator: " | "
    order: [about, ghost]
    actions:
      - name: home
        title: Home
        priority: 1
        template: "Home"
      - name: about
        template: "About {{ .Subject.Title }}"
      - name: edit
        permission: edit
        template: "Edit"
      - name: org
        containment: IOrganisation
        template: "Org"
      - name: greeting
        template: "{{ if .Options.name }}Hi {{ .Options.name }}{{ end }}"
`

func writeTestLayout(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLayout), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	t.Parallel()

	layout := writeTestLayout(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"anonymous at root", []string{"render", "nav"}, "About root | Home\n"},
		{"inside organisation", []string{"render", "nav", "--path", "/acme"}, "About ACME | Home | Org\n"},
		{"editor", []string{"render", "nav", "--user", "ann", "--groups", "group:editors"}, "About root | Home | Edit\n"},
		{"custom separator", []string{"render", "nav", "--separator", ","}, "About root,Home\n"},
		{"per-call options", []string{"render", "nav", "--set", "name=Ann"}, "About root | Home | Hi Ann\n"},
		{"placeholder", []string{"render", "nav", "--placeholder", "?"}, "About root | Home | ? | ? | ?\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := execute(t, append(tt.args, "--layout", layout)...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestRenderCommandDictMode(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "render", "nav", "--mode", "dict", "--layout", writeTestLayout(t))
	require.NoError(t, err)

	var result map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, map[string]string{"about": "About root", "home": "Home"}, result)
}

func TestRenderCommandListMode(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "render", "nav", "--mode", "list", "--path", "/acme", "--layout", writeTestLayout(t))
	require.NoError(t, err)

	var result []string
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Equal(t, []string{"About ACME", "Home", "Org"}, result)
}

func TestRenderCommandErrors(t *testing.T) {
	t.Parallel()

	layout := writeTestLayout(t)

	_, err := execute(t, "render", "missing", "--layout", layout)
	require.ErrorContains(t, err, "group 'missing' not found")
	require.ErrorContains(t, err, "viewcomponent groups")

	_, err = execute(t, "render", "nav", "--path", "/nowhere", "--layout", layout)
	require.ErrorContains(t, err, "resolving subject")

	_, err = execute(t, "render", "nav", "--mode", "table", "--layout", layout)
	require.ErrorContains(t, err, "parsing --mode")

	_, err = execute(t, "render", "nav", "--layout", filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "locating layout file")
}

func TestActionCommand(t *testing.T) {
	t.Parallel()

	layout := writeTestLayout(t)

	out, err := execute(t, "action", "nav", "about", "--path", "/acme", "--layout", layout)
	require.NoError(t, err)
	require.Equal(t, "About ACME\n", out)

	out, err = execute(t, "action", "nav", "edit", "--layout", layout)
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = execute(t, "action", "nav", "edit", "--placeholder", "(hidden)", "--layout", layout)
	require.NoError(t, err)
	require.Equal(t, "(hidden)\n", out)

	_, err = execute(t, "action", "nav", "nope", "--layout", layout)
	require.ErrorContains(t, err, "action 'nope' not found in group 'nav'")
}

func TestGroupsCommand(t *testing.T) {
	t.Parallel()

	layout := writeTestLayout(t)

	out, err := execute(t, "groups", "--layout", layout)
	require.NoError(t, err)
	require.Contains(t, out, "nav (5 actions)")
	require.Contains(t, out, "CONTAINMENT")
	require.Contains(t, out, "IOrganisation")

	out, err = execute(t, "groups", "nav", "--json", "--layout", layout)
	require.NoError(t, err)

	var payload groupsJSONPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	require.Equal(t, 1, payload.Count)
	require.Equal(t, []string{"about", "home", "edit", "org", "greeting"}, payload.Groups[0].Order)
	require.Equal(t, "home", payload.Groups[0].Actions[1].Name)
	require.Equal(t, 1, *payload.Groups[0].Actions[1].Priority)
	require.Nil(t, payload.Groups[0].Actions[0].Priority)
	require.Equal(t, "edit", payload.Groups[0].Actions[2].Permission)

	_, err = execute(t, "groups", "footer", "--layout", layout)
	require.ErrorContains(t, err, "group 'footer' not found")
}

func TestOrderCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "order", "nav", "--layout", writeTestLayout(t))
	require.NoError(t, err)
	require.Contains(t, out, "warning: group 'nav' has no action 'ghost'; key dropped from order")
	require.Contains(t, out, "--- registered\n+++ effective\n")
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion := version
	originalCommit := commit
	originalDate := date
	t.Cleanup(func() {
		version = originalVersion
		commit = originalCommit
		date = originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2025-10-03"

	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "viewcomponent 1.2.3")
	require.Contains(t, out, "abcdef1")
	require.Contains(t, out, "2025-10-03")
}
