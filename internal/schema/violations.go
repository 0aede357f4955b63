// Package schema implements the validation layer for Ramspack payloads.
// Each payload kind carries its own rule set; validation reports every
// violated field in one pass, never mutates its input, and performs no I/O.
package schema

import (
	"fmt"
	"strings"
)

// Rule identifiers attached to violations.
const (
	RuleRequired  = "required"
	RuleBlank     = "blank"
	RuleMaxLength = "max_length"
	RuleRange     = "range"
	RuleEnum      = "enum"
	RuleMaxItems  = "max_items"
	RuleURL       = "url"
	RuleExclusive = "exclusive"
)

// Violation identifies a single field that failed a validation rule.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is the full set of rule failures for one payload.
// It implements error so validators can return it directly.
type Violations []Violation

func (v Violations) Error() string {
	if len(v) == 0 {
		return "validation passed"
	}

	fields := make([]string, len(v))
	for i, violation := range v {
		fields[i] = violation.Field
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}

// Fields returns the offending field names in report order.
func (v Violations) Fields() []string {
	fields := make([]string, len(v))
	for i, violation := range v {
		fields[i] = violation.Field
	}
	return fields
}

// Has reports whether the set contains a violation for the field.
func (v Violations) Has(field string) bool {
	for _, violation := range v {
		if violation.Field == field {
			return true
		}
	}
	return false
}

// Detail exposes the violation set as structured error detail.
func (v Violations) Detail() any {
	return []Violation(v)
}

// AsError returns the set as an error, or nil when empty.
func (v Violations) AsError() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
