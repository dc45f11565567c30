package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	vcerrors "github.com/alexisbeaulieu97/viewcomponent/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	identPattern  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
			return identPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateLayout performs schema and cross-field validation on the layout.
func ValidateLayout(layout *Layout) error {
	if layout == nil {
		return vcerrors.NewValidationError("layout", "layout is nil", nil)
	}

	if err := validatorInstance().Struct(layout); err != nil {
		return convertValidationError(err)
	}

	if layout.Resources != nil {
		if err := validateResource(*layout.Resources, "resources"); err != nil {
			return err
		}
	}

	groups := make(map[string]struct{}, len(layout.Groups))
	for i, group := range layout.Groups {
		if _, exists := groups[group.Name]; exists {
			return vcerrors.NewValidationError(fieldForGroup(i, "name"), fmt.Sprintf("duplicate group name %q", group.Name), nil)
		}
		groups[group.Name] = struct{}{}

		actions := make(map[string]struct{}, len(group.Actions))
		for j, action := range group.Actions {
			if _, exists := actions[action.Name]; exists {
				field := fmt.Sprintf("groups[%d].actions[%d].name", i, j)
				return vcerrors.NewValidationError(field, fmt.Sprintf("duplicate action name %q in group %q", action.Name, group.Name), nil)
			}
			actions[action.Name] = struct{}{}
		}
	}

	return nil
}

func validateResource(r Resource, field string) error {
	names := make(map[string]struct{}, len(r.Children))
	for i, child := range r.Children {
		childField := fmt.Sprintf("%s.children[%d]", field, i)
		if _, exists := names[child.Name]; exists {
			return vcerrors.NewValidationError(childField+".name", fmt.Sprintf("duplicate resource name %q under %q", child.Name, r.Name), nil)
		}
		names[child.Name] = struct{}{}

		if err := validateResource(child, childField); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return vcerrors.NewValidationError(field, msg, err)
	}

	return vcerrors.NewValidationError("layout", err.Error(), err)
}

// fieldName strips the root struct name from the namespace, leaving the
// document path, e.g. groups[0].actions[1].name.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldForGroup(index int, field string) string {
	return fmt.Sprintf("groups[%d].%s", index, field)
}
