package schema

import (
	"fmt"
	"net/url"
	"strings"
)

// Checker accumulates violations across independent field checks so a
// payload's validators can surface complete feedback in a single pass.
type Checker struct {
	violations Violations
}

// Add records a violation directly.
func (c *Checker) Add(field, rule, message string) {
	c.violations = append(c.violations, Violation{
		Field:   field,
		Rule:    rule,
		Message: message,
	})
}

// Require fails when the value is empty after trimming whitespace.
func (c *Checker) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, RuleRequired, fmt.Sprintf("%s is required", field))
	}
}

// NotBlank fails when a provided value trims to empty. Unlike Require it
// accepts the zero value, for fields that are optional until supplied.
func (c *Checker) NotBlank(field, value string) {
	if value != "" && strings.TrimSpace(value) == "" {
		c.Add(field, RuleBlank, fmt.Sprintf("%s must not be blank", field))
	}
}

// MaxLen fails when the value exceeds max characters.
func (c *Checker) MaxLen(field, value string, max int) {
	if len([]rune(value)) > max {
		c.Add(field, RuleMaxLength, fmt.Sprintf("%s exceeds %d characters", field, max))
	}
}

// Range fails when the value falls outside [lo, hi].
func (c *Checker) Range(field string, value, lo, hi int) {
	if value < lo || value > hi {
		c.Add(field, RuleRange, fmt.Sprintf("%s must be between %d and %d", field, lo, hi))
	}
}

// Enum fails when the value is not a member of the closed set.
func (c *Checker) Enum(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.Add(field, RuleEnum, fmt.Sprintf(
		"%s must be one of: %s", field, strings.Join(allowed, ", "),
	))
}

// MaxItems fails when a collection exceeds its size ceiling. Exceeding the
// cap is a validation failure, never a silent truncation.
func (c *Checker) MaxItems(field string, count, max int) {
	if count > max {
		c.Add(field, RuleMaxItems, fmt.Sprintf("%s exceeds %d entries", field, max))
	}
}

// URL fails when the value does not parse as an absolute http(s) URI.
func (c *Checker) URL(field, value string) {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		c.Add(field, RuleURL, fmt.Sprintf("%s is not a well-formed URL", field))
	}
}

// Result returns the accumulated violations, nil when all checks passed.
func (c *Checker) Result() Violations {
	return c.violations
}
