package viewcomponent

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"strings"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

// Mode selects how a group render aggregates action output.
type Mode string

const (
	// ModeSequence yields results in order; Render joins them as text.
	ModeSequence Mode = "sequence"
	// ModeList collects results eagerly into a slice.
	ModeList Mode = "list"
	// ModeDict maps action names to results.
	ModeDict Mode = "dict"
)

// ParseMode converts a user-supplied mode name. The empty string selects ModeSequence.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeSequence:
		return ModeSequence, nil
	case ModeList:
		return ModeList, nil
	case ModeDict:
		return ModeDict, nil
	default:
		return "", vcerrors.NewInvalidArgumentError("mode", fmt.Sprintf("unknown output mode %q (expected sequence, list or dict)", value))
	}
}

// Entry is one action result produced during a render.
type Entry struct {
	Name  string
	Value any
}

// RenderOption configures a single render call.
type RenderOption func(*renderConfig)

type renderConfig struct {
	separator      string
	placeholder    any
	hasPlaceholder bool
	extra          map[string]any
}

// WithSeparator sets the text placed between joined results.
func WithSeparator(separator string) RenderOption {
	return func(c *renderConfig) { c.separator = separator }
}

// WithPlaceholder substitutes value for actions that produce no output.
// Passing nil or "" still counts as a requested placeholder.
func WithPlaceholder(value any) RenderOption {
	return func(c *renderConfig) {
		c.placeholder = value
		c.hasPlaceholder = true
	}
}

// WithExtra merges per-call options into Request.Options for every handler.
func WithExtra(extra map[string]any) RenderOption {
	return func(c *renderConfig) {
		if c.extra == nil {
			c.extra = make(map[string]any, len(extra))
		}
		maps.Copy(c.extra, extra)
	}
}

func newRenderConfig(opts []RenderOption) *renderConfig {
	cfg := &renderConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *renderConfig) request(req Request) Request {
	if len(c.extra) == 0 {
		return req
	}
	merged := maps.Clone(req.Options)
	if merged == nil {
		merged = make(map[string]any, len(c.extra))
	}
	maps.Copy(merged, c.extra)
	req.Options = merged
	return req
}

// Sequence lazily renders the group in order. Actions that produce no
// output are skipped unless a placeholder was requested. Iteration stops at
// the first failing action, which is yielded with its attributed error.
func (g *Group) Sequence(ctx context.Context, req Request, opts ...RenderOption) iter.Seq2[Entry, error] {
	return g.sequence(ctx, req, newRenderConfig(opts))
}

func (g *Group) sequence(ctx context.Context, req Request, cfg *renderConfig) iter.Seq2[Entry, error] {
	req = cfg.request(req)
	return func(yield func(Entry, error) bool) {
		for _, item := range g.Items() {
			value, err := g.call(ctx, item.Action, req)
			if err != nil {
				yield(Entry{Name: item.Key}, err)
				return
			}
			if isEmpty(value) {
				if !cfg.hasPlaceholder {
					continue
				}
				value = cfg.placeholder
			}
			if !yield(Entry{Name: item.Key, Value: value}, nil) {
				return
			}
		}
	}
}

// Render joins the text output of every qualifying action with the
// configured separator (empty by default). Non-text output fails with a
// TypeMismatchError.
func (g *Group) Render(ctx context.Context, req Request, opts ...RenderOption) (string, error) {
	cfg := newRenderConfig(opts)

	var b strings.Builder
	first := true
	for entry, err := range g.sequence(ctx, req, cfg) {
		if err != nil {
			return "", err
		}
		text, ok := asText(entry.Value)
		if !ok {
			return "", &vcerrors.TypeMismatchError{
				Group:  g.name,
				Action: entry.Name,
				Mode:   string(ModeSequence),
				Type:   fmt.Sprintf("%T", entry.Value),
			}
		}
		if !first {
			b.WriteString(cfg.separator)
		}
		b.WriteString(text)
		first = false
	}
	return b.String(), nil
}

// List collects the output of every qualifying action.
func (g *Group) List(ctx context.Context, req Request, opts ...RenderOption) ([]any, error) {
	var values []any
	for entry, err := range g.Sequence(ctx, req, opts...) {
		if err != nil {
			return nil, err
		}
		values = append(values, entry.Value)
	}
	if values == nil {
		values = []any{}
	}
	return values, nil
}

// Dict maps action names to their output. Actions with no output are left
// out unless a placeholder was requested.
func (g *Group) Dict(ctx context.Context, req Request, opts ...RenderOption) (map[string]any, error) {
	values := make(map[string]any)
	for entry, err := range g.Sequence(ctx, req, opts...) {
		if err != nil {
			return nil, err
		}
		values[entry.Name] = entry.Value
	}
	return values, nil
}

// RenderAction invokes a single action of the group. A placeholder, when
// requested, replaces an empty result.
func (g *Group) RenderAction(ctx context.Context, key string, req Request, opts ...RenderOption) (any, error) {
	a, err := g.Get(key)
	if err != nil {
		return nil, err
	}

	cfg := newRenderConfig(opts)
	value, err := g.call(ctx, a, cfg.request(req))
	if err != nil {
		return nil, err
	}
	if isEmpty(value) {
		if cfg.hasPlaceholder {
			return cfg.placeholder, nil
		}
		return nil, nil
	}
	return value, nil
}

// Evaluate renders g in the given mode: joined text for ModeSequence,
// []any for ModeList and map[string]any for ModeDict.
func Evaluate(ctx context.Context, g *Group, mode Mode, req Request, opts ...RenderOption) (any, error) {
	switch mode {
	case "", ModeSequence:
		return g.Render(ctx, req, opts...)
	case ModeList:
		return g.List(ctx, req, opts...)
	case ModeDict:
		return g.Dict(ctx, req, opts...)
	default:
		return nil, vcerrors.NewInvalidArgumentError("mode", fmt.Sprintf("unknown output mode %q", mode))
	}
}

func (g *Group) call(ctx context.Context, a *Action, req Request) (value any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value = nil
			err = g.attribute(a, &vcerrors.PanicError{Value: recovered})
		}
	}()

	value, err = a.Invoke(ctx, req)
	if err != nil {
		return nil, g.attribute(a, err)
	}
	return value, nil
}

func (g *Group) attribute(a *Action, err error) error {
	g.logger.WithFields(map[string]any{"action": a.Name(), "error": err.Error()}).Debug("action failed")
	return vcerrors.NewActionError(g.name, a.Name(), err)
}

// isEmpty reports whether v counts as "no output": nil, a nil pointer,
// map, slice or interface, or an empty string or byte slice.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice:
		if rv.IsNil() {
			return true
		}
		return rv.Type().Elem().Kind() == reflect.Uint8 && rv.Len() == 0
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func asText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
