// Package templateaction builds action handlers from text templates.
package templateaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/viewcomponent/pkg/viewcomponent"
)

// Data is the value a template executes against.
type Data struct {
	Subject any
	State   any
	Options map[string]any
	Action  *viewcomponent.Action
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"join":  strings.Join,
	"option": func(options map[string]any, key string, fallback any) any {
		if v, ok := options[key]; ok && v != nil {
			return v
		}
		return fallback
	},
}

// New parses source once and returns a handler that executes it per call.
// Per-call options override the action's registration options.
func New(name, source string) (viewcomponent.Handler, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.New("template source cannot be empty")
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=zero").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}

	return func(_ context.Context, req viewcomponent.Request, a *viewcomponent.Action) (any, error) {
		options := a.Options()
		if options == nil {
			options = make(map[string]any, len(req.Options))
		}
		for k, v := range req.Options {
			options[k] = v
		}

		var out bytes.Buffer
		data := Data{Subject: req.Subject, State: req.State, Options: options, Action: a}
		if err := tmpl.Execute(&out, data); err != nil {
			return nil, fmt.Errorf("render template %q: %w", name, err)
		}
		return out.String(), nil
	}, nil
}
