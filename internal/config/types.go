package config

// Layout is the document that describes a host's resources and action groups.
type Layout struct {
	Version   string    `yaml:"version" toml:"version" validate:"required,semver"`
	Logging   Logging   `yaml:"logging,omitempty" toml:"logging,omitempty"`
	Freeze    *bool     `yaml:"freeze,omitempty" toml:"freeze,omitempty"`
	Resources *Resource `yaml:"resources,omitempty" toml:"resources,omitempty"`
	Groups    []Group   `yaml:"groups" toml:"groups" validate:"omitempty,dive"`
}

// ShouldFreeze reports whether the store is frozen after population. Defaults to true.
func (l *Layout) ShouldFreeze() bool {
	if l == nil || l.Freeze == nil {
		return true
	}
	return *l.Freeze
}

// Group returns the named group definition.
func (l *Layout) Group(name string) (*Group, bool) {
	if l == nil {
		return nil, false
	}
	for i := range l.Groups {
		if l.Groups[i].Name == name {
			return &l.Groups[i], true
		}
	}
	return nil, false
}

// Logging configures the process logger.
type Logging struct {
	Level         string `yaml:"level,omitempty" toml:"level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	HumanReadable bool   `yaml:"human_readable,omitempty" toml:"human_readable,omitempty"`
}

// Resource is one node of the resource tree.
type Resource struct {
	Name     string     `yaml:"name" toml:"name" validate:"required,ident"`
	Title    string     `yaml:"title,omitempty" toml:"title,omitempty"`
	Provides []string   `yaml:"provides,omitempty" toml:"provides,omitempty" validate:"omitempty,dive,required"`
	ACL      []ACE      `yaml:"acl,omitempty" toml:"acl,omitempty" validate:"omitempty,dive"`
	Children []Resource `yaml:"children,omitempty" toml:"children,omitempty" validate:"omitempty,dive"`
}

// ACE is a single access control entry.
type ACE struct {
	Deny        bool     `yaml:"deny,omitempty" toml:"deny,omitempty"`
	Principal   string   `yaml:"principal" toml:"principal" validate:"required"`
	Permissions []string `yaml:"permissions" toml:"permissions" validate:"required,min=1,dive,required"`
}

// Group declares an action group and its display order.
type Group struct {
	Name      string   `yaml:"name" toml:"name" validate:"required,ident"`
	Separator string   `yaml:"separator,omitempty" toml:"separator,omitempty"`
	Order     []string `yaml:"order,omitempty" toml:"order,omitempty"`
	Actions   []Action `yaml:"actions" toml:"actions" validate:"omitempty,dive"`
}

// Action declares a template-backed action.
type Action struct {
	Name        string         `yaml:"name" toml:"name" validate:"required,ident"`
	Title       string         `yaml:"title,omitempty" toml:"title,omitempty"`
	Priority    *int           `yaml:"priority,omitempty" toml:"priority,omitempty"`
	Permission  string         `yaml:"permission,omitempty" toml:"permission,omitempty"`
	Interface   string         `yaml:"interface,omitempty" toml:"interface,omitempty"`
	Containment string         `yaml:"containment,omitempty" toml:"containment,omitempty"`
	Template    string         `yaml:"template" toml:"template" validate:"required"`
	Options     map[string]any `yaml:"options,omitempty" toml:"options,omitempty"`
}
