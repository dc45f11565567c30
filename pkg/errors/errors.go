package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrFrozen is returned when a store is mutated after Freeze.
	ErrFrozen = errors.New("registry store is frozen")
	// ErrDetached is returned when an action with a permission guard is
	// invoked before it has been added to a group.
	ErrDetached = errors.New("action is not attached to a group")
)

// InvalidArgumentError reports malformed construction input.
type InvalidArgumentError struct {
	Field   string
	Message string
}

// NewInvalidArgumentError constructs an InvalidArgumentError.
func NewInvalidArgumentError(field, message string) error {
	return &InvalidArgumentError{Field: field, Message: message}
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid argument: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// OrderWarning records a reorder key that does not exist in the group.
// It is never returned as a failure, only reported.
type OrderWarning struct {
	Group string
	Key   string
}

func (w OrderWarning) Error() string {
	return fmt.Sprintf("group '%s' has no action '%s'; key dropped from order", w.Group, w.Key)
}

// TypeMismatchError reports an action output the requested mode cannot aggregate.
type TypeMismatchError struct {
	Group  string
	Action string
	Mode   string
	Type   string
}

func (e *TypeMismatchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("action '%s' of group '%s' returned %s, which %s mode cannot join", e.Action, e.Group, e.Type, e.Mode)
}

// ActionError attributes a handler failure to its action and group.
// The original error stays reachable through Unwrap.
type ActionError struct {
	Group  string
	Action string
	Err    error
}

// NewActionError constructs an ActionError.
func NewActionError(group, action string, err error) error {
	return &ActionError{Group: group, Action: action, Err: err}
}

func (e *ActionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("action '%s' of group '%s' raised: %v", e.Action, e.Group, e.Err)
}

// Unwrap exposes the handler error.
func (e *ActionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PanicError carries a value recovered from a panicking handler.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if e == nil {
		return nil
	}
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// NotFoundError is returned for lookups of unknown groups or actions.
type NotFoundError struct {
	Kind  string
	Name  string
	Group string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ""
	}
	if e.Group != "" {
		return fmt.Sprintf("%s '%s' not found in group '%s'", e.Kind, e.Name, e.Group)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// ParseError represents a layout parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures layout validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
