// Package correctness holds the validation predicate shared by every
// identifier kind.
//
// CheckValidString is the built-in predicate. Deployments that need stricter
// naming rules install a RuleChecker (or any Checker) with SetDefault.
package correctness

import (
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Checker validates a value for the named field.
type Checker interface {
	Check(value, field string) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(value, field string) error

// Check calls f(value, field).
func (f CheckerFunc) Check(value, field string) error {
	return f(value, field)
}

// CheckValidString rejects empty strings, strings made only of whitespace,
// and strings containing non-ASCII characters.
func CheckValidString(value, field string) error {
	if value == "" {
		return &ValidationError{Field: field, Value: value, Message: "was empty"}
	}

	if strings.TrimFunc(value, unicode.IsSpace) == "" {
		return &ValidationError{Field: field, Value: value, Message: "was all whitespace"}
	}
	for _, r := range value {
		if r > unicode.MaxASCII {
			return &ValidationError{Field: field, Value: value, Message: "contained a non-ASCII char"}
		}
	}
	return nil
}

// Rules are optional naming restrictions applied after CheckValidString.
type Rules struct {
	// MaxLength limits the value length in characters. Zero means unlimited.
	MaxLength int `mapstructure:"max_length" yaml:"max_length" validate:"gte=0"`
	// Pattern is a regular expression the whole value must match.
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	// Tag is an extra go-playground/validator tag, e.g. "alphanum".
	Tag string `mapstructure:"tag" yaml:"tag"`
}

// IsZero reports whether r adds no restriction.
func (r Rules) IsZero() bool {
	return r.MaxLength == 0 && r.Pattern == "" && r.Tag == ""
}

// RuleChecker applies CheckValidString followed by a set of Rules.
type RuleChecker struct {
	rules    Rules
	tag      string
	pattern  *regexp.Regexp
	validate *validator.Validate
}

// NewRuleChecker compiles rules into a Checker.
func NewRuleChecker(rules Rules) (*RuleChecker, error) {
	validate := validator.New()

	if err := validate.Struct(rules); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	c := &RuleChecker{
		rules:    rules,
		validate: validate,
	}

	if rules.Pattern != "" {
		// Anchors inside the group are redundant but harmless.
		re, err := regexp.Compile("^(?:" + rules.Pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", rules.Pattern, err)
		}
		c.pattern = re
	}

	var tags []string
	if rules.MaxLength > 0 {
		tags = append(tags, fmt.Sprintf("max=%d", rules.MaxLength))
	}
	if rules.Tag != "" {
		tags = append(tags, rules.Tag)
	}
	c.tag = strings.Join(tags, ",")

	if c.tag != "" {
		if err := probeTag(validate, c.tag); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// probeTag surfaces unknown or malformed tags as errors; validator panics on them.
func probeTag(validate *validator.Validate, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid validation tag %q: %v", tag, r)
		}
	}()
	_ = validate.Var("probe", tag)
	return nil
}

// Rules returns the rules c was built from.
func (c *RuleChecker) Rules() Rules {
	return c.rules
}

// Check implements Checker.
func (c *RuleChecker) Check(value, field string) error {
	if err := CheckValidString(value, field); err != nil {
		return err
	}

	if c.tag != "" {
		if err := c.validate.Var(value, c.tag); err != nil {
			return &ValidationError{Field: field, Value: value, Message: describe(err)}
		}
	}

	if c.pattern != nil && !c.pattern.MatchString(value) {
		return &ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must match pattern %s", c.rules.Pattern),
		}
	}

	return nil
}

func describe(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "alphanum":
		return "must contain only alphanumeric characters"
	case "alpha":
		return "must contain only alphabetic characters"
	case "printascii":
		return "must contain only printable ASCII characters"
	case "excludesall":
		return fmt.Sprintf("must not contain any of %q", fe.Param())
	default:
		return fmt.Sprintf("failed validation tag '%s'", fe.Tag())
	}
}

type checkerBox struct {
	c Checker
}

var current atomic.Pointer[checkerBox]

// Default returns the process-wide predicate used by identifier constructors.
func Default() Checker {
	if box := current.Load(); box != nil {
		return box.c
	}
	return CheckerFunc(CheckValidString)
}

// SetDefault installs c as the process-wide predicate. Passing nil restores
// CheckValidString.
func SetDefault(c Checker) {
	if c == nil {
		current.Store(nil)
		return
	}
	current.Store(&checkerBox{c: c})
}

// Check runs the process-wide predicate. The empty string is rejected
// whatever predicate is installed.
func Check(value, field string) error {
	if value == "" {
		return &ValidationError{Field: field, Value: value, Message: "was empty"}
	}
	return Default().Check(value, field)
}
