package schema_test

import (
	"strings"
	"testing"

	"github.com/fieldsafe/ramspack/internal/schema"
)

func TestRequire(t *testing.T) {
	tests := []struct {
		name  string
		value string
		fails bool
	}{
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
		{"populated", "Roof repair", false},
		{"padded", "  x  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c schema.Checker
			c.Require("field", tt.value)

			if got := c.Result().Has("field"); got != tt.fails {
				t.Errorf("Require(%q) violation = %v, want %v", tt.value, got, tt.fails)
			}
		})
	}
}

func TestNotBlankAcceptsZeroValue(t *testing.T) {
	var c schema.Checker
	c.NotBlank("field", "")

	if err := c.Result().AsError(); err != nil {
		t.Errorf("NotBlank(\"\") = %v, want pass", err)
	}
}

func TestNotBlankRejectsWhitespace(t *testing.T) {
	var c schema.Checker
	c.NotBlank("field", "   ")

	result := c.Result()
	if len(result) != 1 {
		t.Fatalf("violations = %d, want 1", len(result))
	}
	if result[0].Rule != schema.RuleBlank {
		t.Errorf("rule = %q, want %q", result[0].Rule, schema.RuleBlank)
	}
}

func TestMaxLenCountsRunes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		max   int
		fails bool
	}{
		{"under limit", "abc", 5, false},
		{"at limit", "abcde", 5, false},
		{"over limit", "abcdef", 5, true},
		{"multibyte at limit", "héllo", 5, false},
		{"multibyte over limit", strings.Repeat("é", 6), 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c schema.Checker
			c.MaxLen("field", tt.value, tt.max)

			if got := c.Result().Has("field"); got != tt.fails {
				t.Errorf("MaxLen(%q, %d) violation = %v, want %v", tt.value, tt.max, got, tt.fails)
			}
		})
	}
}

func TestRange(t *testing.T) {
	tests := []struct {
		name  string
		value int
		fails bool
	}{
		{"below", 0, true},
		{"lower bound", 1, false},
		{"interior", 3, false},
		{"upper bound", 5, false},
		{"above", 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c schema.Checker
			c.Range("field", tt.value, 1, 5)

			if got := c.Result().Has("field"); got != tt.fails {
				t.Errorf("Range(%d) violation = %v, want %v", tt.value, got, tt.fails)
			}
		})
	}
}

func TestEnum(t *testing.T) {
	var c schema.Checker
	c.Enum("status", "draft", "draft", "issued")
	c.Enum("other", "archived", "draft", "issued")

	result := c.Result()
	if result.Has("status") {
		t.Error("member value flagged")
	}
	if !result.Has("other") {
		t.Error("non-member value passed")
	}
}

func TestMaxItems(t *testing.T) {
	var c schema.Checker
	c.MaxItems("at", 25, 25)
	c.MaxItems("over", 26, 25)

	result := c.Result()
	if result.Has("at") {
		t.Error("count at cap flagged")
	}
	if !result.Has("over") {
		t.Error("count over cap passed")
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		name  string
		value string
		fails bool
	}{
		{"https", "https://example.com/plans.pdf", false},
		{"http", "http://example.com", false},
		{"no scheme", "example.com/plans.pdf", true},
		{"ftp scheme", "ftp://example.com/plans.pdf", true},
		{"no host", "https:///plans.pdf", true},
		{"relative path", "/plans.pdf", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c schema.Checker
			c.URL("field", tt.value)

			if got := c.Result().Has("field"); got != tt.fails {
				t.Errorf("URL(%q) violation = %v, want %v", tt.value, got, tt.fails)
			}
		})
	}
}

func TestResultNilWhenClean(t *testing.T) {
	var c schema.Checker
	c.Require("field", "value")

	if c.Result() != nil {
		t.Errorf("Result() = %v, want nil", c.Result())
	}
	if c.Result().AsError() != nil {
		t.Error("AsError() non-nil on clean checker")
	}
}

func TestViolationsError(t *testing.T) {
	var c schema.Checker
	c.Require("title", "")
	c.Require("reference", "")

	err := c.Result().AsError()
	if err == nil {
		t.Fatal("AsError() = nil, want error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "title") || !strings.Contains(msg, "reference") {
		t.Errorf("Error() = %q, want both field names", msg)
	}
}
