package render

import (
	"reflect"
	"strings"
	"testing"

	"github.com/fieldsafe/ramspack/internal/layout"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		value string
		width int
		want  []string
	}{
		{"empty", "", 10, []string{""}},
		{"whitespace only", "   ", 10, []string{""}},
		{"fits", "short line", 20, []string{"short line"}},
		{"breaks at width", "one two three four", 9, []string{"one two", "three", "four"}},
		{"single long word kept whole", "unbreakableword", 5, []string{"unbreakableword"}},
		{"collapses inner whitespace", "a  \t b", 20, []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.value, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrap(%q, %d) = %v, want %v", tt.value, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapHonorsWidth(t *testing.T) {
	value := strings.Repeat("word ", 60)
	for _, line := range wrap(value, maxLineRunes) {
		if len([]rune(line)) > maxLineRunes {
			t.Errorf("line exceeds %d runes: %q", maxLineRunes, line)
		}
	}
}

func TestWriterBreaksPages(t *testing.T) {
	w := newWriter()
	// Enough body lines to exhaust the first column.
	for i := 0; i < 60; i++ {
		w.line("body", "body line")
	}

	pages := w.finish()
	if len(pages) < 2 {
		t.Fatalf("pages = %d, want at least 2", len(pages))
	}
	if _, ok := pages["1"]; !ok {
		t.Error("pages not keyed from 1")
	}
	if len(pages["2"].Content.Text) == 0 {
		t.Error("overflow page empty")
	}
}

func TestDescribeWalksDocumentInOrder(t *testing.T) {
	doc := layout.Document{
		Header: layout.Header{
			Title:     "Flat roof replacement",
			Reference: "RAMS-20260115-0930",
			IssuedOn:  "15 Jan 2026",
		},
		Sections: []layout.Section{
			{Title: "Scope of Works", Body: layout.SectionBody{Narrative: "Strip and replace."}},
		},
	}

	d := describe(doc)

	if d.Paper != "A4" {
		t.Errorf("Paper = %q, want A4", d.Paper)
	}

	text := d.Pages["1"].Content.Text
	if len(text) == 0 {
		t.Fatal("first page empty")
	}
	if text[0].Value != "Flat roof replacement" {
		t.Errorf("first entry = %q, want the document title", text[0].Value)
	}

	var sawSection, sawNarrative bool
	for _, entry := range text {
		if entry.Value == "Scope of Works" {
			sawSection = true
		}
		if entry.Value == "Strip and replace." {
			sawNarrative = true
		}
	}
	if !sawSection || !sawNarrative {
		t.Error("section content missing from description")
	}
}
