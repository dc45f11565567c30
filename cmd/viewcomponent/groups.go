package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

type groupsOptions struct {
	jsonOutput bool
}

func newGroupsCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &groupsOptions{}

	cmd := &cobra.Command{
		Use:   "groups [group...]",
		Short: "Inspect registered groups, their order and action guards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroups(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runGroups(cmd *cobra.Command, rootFlags *rootFlags, opts *groupsOptions, names []string) error {
	rt, err := loadRuntime(cmd, "inspect groups", rootFlags)
	if err != nil {
		return err
	}

	groups := rt.Store.Groups()
	if len(names) > 0 {
		groups = groups[:0]
		for _, name := range names {
			g, err := rt.Store.Group(name)
			if err != nil {
				return newCommandError("inspect groups", fmt.Sprintf("looking up group %q", name), err, suggestionFor(err))
			}
			groups = append(groups, g)
		}
	}

	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No groups registered.")
		return nil
	}

	if opts.jsonOutput {
		return renderGroupsJSON(cmd.OutOrStdout(), groups)
	}
	return renderGroupsText(cmd.OutOrStdout(), groups, newInspectorStyles(isTerminal(cmd.OutOrStdout())))
}

type groupJSON struct {
	Name    string       `json:"name"`
	Order   []string     `json:"order"`
	Actions []actionJSON `json:"actions"`
}

type actionJSON struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Priority    *int   `json:"priority,omitempty"`
	Permission  string `json:"permission,omitempty"`
	Interface   string `json:"interface,omitempty"`
	Containment string `json:"containment,omitempty"`
}

type groupsJSONPayload struct {
	Version string      `json:"version"`
	Count   int         `json:"count"`
	Groups  []groupJSON `json:"groups"`
}

func renderGroupsJSON(w io.Writer, groups []*viewcomponent.Group) error {
	payload := groupsJSONPayload{
		Version: "1.0",
		Count:   len(groups),
		Groups:  make([]groupJSON, len(groups)),
	}

	for i, g := range groups {
		items := g.Items()
		entry := groupJSON{Name: g.Name(), Order: g.Order(), Actions: make([]actionJSON, len(items))}
		for j, item := range items {
			a := item.Action
			entry.Actions[j] = actionJSON{
				Name:        item.Key,
				Title:       a.Title(),
				Permission:  a.Permission(),
				Interface:   a.Interface(),
				Containment: a.Containment(),
			}
			if priority, ok := a.Priority(); ok {
				entry.Actions[j].Priority = &priority
			}
		}
		payload.Groups[i] = entry
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

type inspectorStyles struct {
	group lipgloss.Style
	count lipgloss.Style
}

func newInspectorStyles(color bool) inspectorStyles {
	if !color {
		return inspectorStyles{group: lipgloss.NewStyle(), count: lipgloss.NewStyle()}
	}
	return inspectorStyles{
		group: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		count: lipgloss.NewStyle().Faint(true),
	}
}

func renderGroupsText(w io.Writer, groups []*viewcomponent.Group, styles inspectorStyles) error {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", styles.group.Render(g.Name()), styles.count.Render(fmt.Sprintf("(%d actions)", g.Len())))

		writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "  KEY\tTITLE\tPRIORITY\tPERMISSION\tINTERFACE\tCONTAINMENT")
		for _, item := range g.Items() {
			a := item.Action
			priority := "-"
			if p, ok := a.Priority(); ok {
				priority = strconv.Itoa(p)
			}
			fmt.Fprintf(writer, "  %s\t%s\t%s\t%s\t%s\t%s\n",
				item.Key,
				valueOrFallback(a.Title(), "-"),
				priority,
				valueOrFallback(a.Permission(), "-"),
				valueOrFallback(a.Interface(), "-"),
				valueOrFallback(a.Containment(), "-"),
			)
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
