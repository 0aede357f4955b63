package render

import (
	"fmt"
	"strings"

	"github.com/fieldsafe/ramspack/internal/layout"
)

// Page geometry for the generated description: A4 with a text column walked
// top to bottom, breaking to a new page when the column is exhausted.
const (
	pageTopY      = 780.0
	pageBottomY   = 60.0
	lineHeight    = 14.0
	headingHeight = 24.0
	marginX       = 50.0
	maxLineRunes  = 95
)

// description mirrors pdfcpu's create-JSON structure.
type description struct {
	Paper  string          `json:"paper"`
	Origin string          `json:"origin"`
	Fonts  map[string]font `json:"fonts"`
	Pages  map[string]page `json:"pages"`
}

type font struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type page struct {
	Content content `json:"content"`
}

type content struct {
	Text []textEntry `json:"text"`
}

type textEntry struct {
	Value    string    `json:"value"`
	Font     string    `json:"font,omitempty"`
	Position []float64 `json:"position"`
}

// writer accumulates text entries across pages, advancing the cursor and
// starting a fresh page when the column runs out.
type writer struct {
	pages   []content
	current content
	y       float64
}

func newWriter() *writer {
	return &writer{y: pageTopY}
}

func (w *writer) line(fontID, value string) {
	height := lineHeight
	if fontID == "heading" || fontID == "title" {
		height = headingHeight
	}

	if w.y-height < pageBottomY {
		w.breakPage()
	}

	w.current.Text = append(w.current.Text, textEntry{
		Value:    value,
		Font:     fontID,
		Position: []float64{marginX, w.y},
	})
	w.y -= height
}

func (w *writer) wrapped(fontID, value string) {
	for _, line := range wrap(value, maxLineRunes) {
		w.line(fontID, line)
	}
}

func (w *writer) gap() {
	w.y -= lineHeight / 2
}

func (w *writer) breakPage() {
	w.pages = append(w.pages, w.current)
	w.current = content{}
	w.y = pageTopY
}

func (w *writer) finish() map[string]page {
	pages := append(w.pages, w.current)
	out := make(map[string]page, len(pages))
	for i, c := range pages {
		out[fmt.Sprintf("%d", i+1)] = page{Content: c}
	}
	return out
}

// describe converts a layout document into pdfcpu's declarative page
// description. The renderer knows nothing about domain semantics; it walks
// the layout structure in order.
func describe(doc layout.Document) description {
	w := newWriter()

	w.line("title", doc.Header.Title)
	w.line("body", fmt.Sprintf("Reference: %s    Issued: %s", doc.Header.Reference, doc.Header.IssuedOn))
	w.line("body", fmt.Sprintf("Project: %s", doc.Header.ProjectName))
	w.line("body", fmt.Sprintf(
		"Overall Risk: %s (%s)",
		doc.Metadata.OverallRisk.Label,
		doc.Metadata.OverallRisk.Score,
	))
	w.gap()

	for _, card := range doc.CoverCards {
		w.line("heading", card.Title)
		for _, field := range card.Fields {
			w.wrapped("body", fmt.Sprintf("%s: %s", field.Label, field.Value))
		}
		w.gap()
	}

	if len(doc.Contents) > 0 {
		w.line("heading", "Contents")
		for _, entry := range doc.Contents {
			w.line("body", fmt.Sprintf("%d. %s", entry.Sequence, entry.Title))
		}
		w.gap()
	}

	for _, section := range doc.Sections {
		describeSection(w, section)
	}

	describeAppendices(w, doc.Appendices)
	describeSignOff(w, doc.SignOff)

	return description{
		Paper:  "A4",
		Origin: "upperLeft",
		Fonts: map[string]font{
			"title":   {Name: "Helvetica-Bold", Size: 18},
			"heading": {Name: "Helvetica-Bold", Size: 13},
			"body":    {Name: "Helvetica", Size: 10},
		},
		Pages: w.finish(),
	}
}

func describeSection(w *writer, section layout.Section) {
	w.line("heading", section.Title)
	body := section.Body

	if body.Narrative != "" {
		w.wrapped("body", body.Narrative)
	}

	for _, row := range body.RiskRows {
		w.wrapped("body", fmt.Sprintf("Hazard: %s (%s)", row.Hazard, row.PersonsAtRisk))
		w.wrapped("body", fmt.Sprintf("Controls: %s", row.ControlMeasures))
		w.line("body", fmt.Sprintf(
			"Initial %s (%s)  ->  Residual %s (%s)",
			row.Initial.Score, row.Initial.Label,
			row.Residual.Score, row.Residual.Label,
		))
	}

	if body.MethodStatement != "" {
		for _, line := range strings.Split(body.MethodStatement, "\n") {
			w.wrapped("body", line)
		}
	}

	if body.LiftPreview != nil {
		lift := body.LiftPreview
		w.line("body", fmt.Sprintf("Lifting Plan: %s [%s]", lift.Title, lift.Category))
		w.wrapped("body", fmt.Sprintf("Crane/Plant: %s", lift.CranePlant))
		w.wrapped("body", fmt.Sprintf("Load: %s (%s)", lift.LoadDescription, lift.LoadWeight))
		if lift.KeyNotes != "" {
			w.wrapped("body", fmt.Sprintf("Notes: %s", lift.KeyNotes))
		}
	}

	describeList(w, "PPE", body.PPE)
	describeList(w, "Plant & Equipment", body.PlantEquipment)
	describeList(w, "Tools", body.Tools)
	describeList(w, "Consumables", body.Consumables)
	describeList(w, "Materials", body.Materials)

	if body.Emergency != nil {
		w.line("body", fmt.Sprintf("First Aid Station: %s", body.Emergency.FirstAidStation))
		w.line("body", fmt.Sprintf("Assembly Point: %s", body.Emergency.AssemblyPoint))
		w.line("body", fmt.Sprintf("Emergency Contact: %s", body.Emergency.Contact))
	}

	w.gap()
}

func describeList(w *writer, label string, items []string) {
	if items == nil {
		return
	}

	if len(items) == 0 {
		w.line("body", fmt.Sprintf("%s: None specified", label))
		return
	}

	w.line("body", label+":")
	for _, item := range items {
		w.wrapped("body", "  - "+item)
	}
}

func describeAppendices(w *writer, appendices []layout.AppendixRef) {
	if len(appendices) == 0 {
		return
	}

	w.line("heading", "Appendices")
	for i, appendix := range appendices {
		switch {
		case appendix.PublicURL != "":
			w.wrapped("body", fmt.Sprintf("%d. %s - %s", i+1, appendix.Title, appendix.PublicURL))
		default:
			w.line("body", fmt.Sprintf("%d. %s (attached image)", i+1, appendix.Title))
		}
	}
	w.gap()
}

func describeSignOff(w *writer, signOff layout.SignOff) {
	w.line("heading", "Sign Off")
	w.wrapped("body", signOff.Text)
	for _, signer := range signOff.Signers {
		w.line("body", fmt.Sprintf("%s, %s - signed %s", signer.Name, signer.Role, signer.SignedOn))
	}
}

// wrap splits a value into rune-bounded lines on word boundaries.
func wrap(value string, width int) []string {
	words := strings.Fields(value)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len([]rune(line))+1+len([]rune(word)) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
