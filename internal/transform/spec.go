package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// UnknownTypeError is returned when a manifest names a transform kind that
// is not registered.
type UnknownTypeError struct {
	Type string
	Line int
}

func (e *UnknownTypeError) Error() string {
	msg := fmt.Sprintf("unknown transform type %q (valid: %s)", e.Type, strings.Join(Kinds(), ", "))
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// IsUnknownTypeError returns true if the error is an UnknownTypeError.
func IsUnknownTypeError(err error) bool {
	var ute *UnknownTypeError
	return errors.As(err, &ute)
}

// compiler is implemented by transforms that hold compiled patterns.
type compiler interface {
	compile() error
}

// Spec is the manifest representation of a transform: a mapping with a
// "type" key plus the fields of that kind.
type Spec struct {
	Transform Transform
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return fmt.Errorf("line %d: decoding transform: %w", node.Line, err)
	}

	t, err := Decode(head.Type, node)
	if err != nil {
		var ute *UnknownTypeError
		if errors.As(err, &ute) {
			ute.Line = node.Line
			return ute
		}
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	s.Transform = t
	return nil
}

// Decode builds the transform of the given kind from a YAML mapping node,
// validates its required fields, and compiles its patterns.
func Decode(kind string, node *yaml.Node) (Transform, error) {
	t, err := newOfKind(kind)
	if err != nil {
		return nil, err
	}

	if err := node.Decode(t); err != nil {
		return nil, fmt.Errorf("decoding %s transform: %w", kind, err)
	}

	if err := validateFields(kind, t); err != nil {
		return nil, err
	}

	if c, ok := t.(compiler); ok {
		if err := c.compile(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// newOfKind returns a zero transform of the given kind.
func newOfKind(kind string) (Transform, error) {
	switch kind {
	case KindSed:
		return &Sed{}, nil
	case KindRemoveLines:
		return &RemoveLines{}, nil
	case KindStripTrailingBlankLines:
		return &StripTrailingBlankLines{}, nil
	case KindRemoveBlock:
		return &RemoveBlock{}, nil
	case KindReplaceBlock:
		return &ReplaceBlock{}, nil
	case KindRemovePrecommitHooks:
		return &RemovePrecommitHooks{}, nil
	default:
		return nil, &UnknownTypeError{Type: kind}
	}
}

func validateFields(kind string, t Transform) error {
	if err := validate.Struct(t); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%s: field %s %s", kind, yamlFieldName(fieldErrs[0]), describeTag(fieldErrs[0]))
		}
		return fmt.Errorf("%s: %w", kind, err)
	}
	return nil
}

// yamlFieldName maps a struct field back to its manifest key.
func yamlFieldName(fe validator.FieldError) string {
	if strings.HasPrefix(fe.StructField(), "HookIDs") {
		return "hook_ids"
	}
	switch fe.StructField() {
	case "Pattern":
		return "pattern"
	case "StartPattern":
		return "start_pattern"
	case "EndPattern":
		return "end_pattern"
	default:
		return strings.ToLower(fe.Field())
	}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s item(s)", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
