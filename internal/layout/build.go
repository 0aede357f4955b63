package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldsafe/ramspack/internal/liftplans"
	"github.com/fieldsafe/ramspack/internal/masters"
	"github.com/fieldsafe/ramspack/internal/rams"
	"github.com/fieldsafe/ramspack/internal/risk"
)

// dateLayout is the display format for dates in the layout document.
const dateLayout = "02 Jan 2006"

// signOffText is the fixed explanatory text of the sign-off block.
const signOffText = "By signing below, each person confirms they have read and " +
	"understood this risk assessment and method statement and will work in " +
	"accordance with the control measures it describes."

// layoutNamespace seeds deterministic layout document ids so the transform
// stays referentially transparent.
var layoutNamespace = uuid.MustParse("8c1f3e64-2b9a-4f5d-9c07-4e1d6a2b8f10")

// Input is the finalized entity triple handed to the transform. IssuedOn is
// supplied by the caller, never computed inside, to keep Build pure.
type Input struct {
	Master   masters.Master
	Document rams.Document
	LiftPlan *liftplans.LiftPlan
	IssuedOn time.Time
}

// Build reduces the input triple to a single layout document. It is
// idempotent and side-effect-free: unchanged input yields a field-for-field
// identical output.
func Build(in Input) Document {
	doc := Document{
		ID:       uuid.NewSHA1(layoutNamespace, []byte(in.Document.ID.String()+in.IssuedOn.Format(dateLayout))),
		Header:   buildHeader(in),
		Metadata: buildMetadata(in),
	}

	doc.CoverCards = buildCoverCards(in)
	doc.Sections = buildSections(in)
	doc.Contents = buildContents(doc.Sections)
	doc.Appendices = buildAppendices(in)
	doc.SignOff = buildSignOff(in.Document.Signatures)

	return doc
}

// ScoreBadge pairs a score with its display badge. Classification is
// computed fresh on every call, never cached.
func ScoreBadge(score int) Badge {
	level := risk.Classify(score)
	return Badge{
		Score: strconv.Itoa(score),
		Level: level,
		Label: level.Label(),
	}
}

func buildHeader(in Input) Header {
	return Header{
		Title:       in.Document.Title,
		Reference:   in.Document.Reference,
		ProjectName: in.Master.ProjectName,
		IssuedOn:    in.IssuedOn.Format(dateLayout),
	}
}

func buildMetadata(in Input) Metadata {
	return Metadata{
		ClientName:     in.Master.ClientName,
		ContractorName: in.Master.ContractorName,
		SiteAddress:    in.Master.SiteAddress,
		PreparedBy:     in.Document.PreparedBy,
		ApprovedBy:     in.Document.ApprovedBy,
		Status:         in.Document.Status,
		OverallRisk:    ScoreBadge(risk.MaxResidualScore(in.Document.Risks)),
	}
}

func buildCoverCards(in Input) []CoverCard {
	cards := []CoverCard{
		{
			Title: "Project Details",
			Fields: []Field{
				{Label: "Project", Value: in.Master.ProjectName},
				{Label: "Site Address", Value: in.Master.SiteAddress},
				{Label: "Client", Value: in.Master.ClientName},
				{Label: "Principal Contractor", Value: in.Master.ContractorName},
			},
		},
		{
			Title: "Emergency Information",
			Fields: []Field{
				{Label: "Emergency Contact", Value: in.Master.EmergencyContact},
				{Label: "Nearest Hospital", Value: in.Master.HospitalName},
				{Label: "Directions", Value: in.Master.HospitalDirections},
			},
		},
	}

	contacts := CoverCard{Title: "Key Contacts"}
	for _, kc := range in.Master.KeyContacts {
		if kc.Name == "" && kc.Role == "" && kc.Phone == "" {
			continue
		}
		label := kc.Role
		if label == "" {
			label = "Contact"
		}
		value := kc.Name
		if kc.Phone != "" {
			value = fmt.Sprintf("%s (%s)", kc.Name, kc.Phone)
		}
		contacts.Fields = append(contacts.Fields, Field{Label: label, Value: value})
	}
	if len(contacts.Fields) > 0 {
		cards = append(cards, contacts)
	}

	return cards
}

func buildSections(in Input) []Section {
	sections := []Section{
		{
			Title: "Scope of Works",
			Body:  SectionBody{Narrative: in.Document.ScopeOfWorks},
		},
		{
			Title: "Risk Assessment",
			Body:  SectionBody{RiskRows: buildRiskRows(in.Document.Risks)},
		},
		{
			Title: "Method Statement",
			Body: SectionBody{
				MethodStatement: buildMethodNarrative(in.Document.MethodSteps),
				LiftPreview:     buildLiftPreview(in.LiftPlan),
			},
		},
		{
			Title: "PPE, Plant & Materials",
			Body: SectionBody{
				PPE:            copyList(in.Document.PPE),
				PlantEquipment: copyList(in.Document.PlantEquipment),
				Tools:          copyList(in.Document.Tools),
				Consumables:    copyList(in.Document.Consumables),
				Materials:      copyList(in.Document.Materials),
			},
		},
		{
			Title: "Emergency Arrangements",
			Body: SectionBody{
				Emergency: &EmergencySlots{
					FirstAidStation: in.Document.Emergency.FirstAidStation,
					AssemblyPoint:   in.Document.Emergency.AssemblyPoint,
					Contact:         in.Document.Emergency.Contact,
				},
			},
		},
	}

	return sections
}

func buildContents(sections []Section) []ContentsEntry {
	contents := make([]ContentsEntry, len(sections))
	for i, section := range sections {
		contents[i] = ContentsEntry{Sequence: i + 1, Title: section.Title}
	}
	return contents
}

func buildRiskRows(entries []risk.Entry) []RiskRow {
	rows := make([]RiskRow, len(entries))
	for i := range entries {
		e := &entries[i]
		rows[i] = RiskRow{
			Activity:        e.Activity,
			Hazard:          e.Hazard,
			PersonsAtRisk:   e.PersonsAtRisk,
			ControlMeasures: e.ControlMeasures,
			Initial:         ScoreBadge(e.InitialScore()),
			Residual:        ScoreBadge(e.ResidualScore()),
		}
	}
	return rows
}

// buildMethodNarrative collapses the ordered steps into a single narrative
// field, sequence preserved.
func buildMethodNarrative(steps []rams.MethodStep) string {
	if len(steps) == 0 {
		return ""
	}

	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("%d. %s", step.Sequence, step.Description)
	}
	return strings.Join(lines, "\n")
}

// buildLiftPreview condenses an included lift plan. A nil plan yields a nil
// preview: the slot is absent, not a placeholder.
func buildLiftPreview(lp *liftplans.LiftPlan) *LiftPreview {
	if lp == nil {
		return nil
	}

	notes := lp.ExclusionZone
	if lp.EmergencyNotes != "" {
		if notes != "" {
			notes += "; "
		}
		notes += lp.EmergencyNotes
	}

	return &LiftPreview{
		Title:           lp.Title,
		Category:        string(lp.Category),
		CranePlant:      lp.CranePlant,
		LoadDescription: lp.LoadDescription,
		LoadWeight:      lp.LoadWeight,
		KeyNotes:        notes,
	}
}

func buildAppendices(in Input) []AppendixRef {
	refs := make([]AppendixRef, 0, len(in.Document.Appendices)+1)

	for _, a := range in.Document.Appendices {
		refs = append(refs, AppendixRef{
			Title:     a.Title,
			Image:     a.Image,
			PublicURL: a.PublicURL,
		})
	}

	if len(in.Master.HospitalMapImage) > 0 {
		refs = append(refs, AppendixRef{
			Title: "Hospital Location Map",
			Image: in.Master.HospitalMapImage,
		})
	}

	return refs
}

func buildSignOff(signatures []rams.Signature) SignOff {
	signers := make([]Signer, len(signatures))
	for i, sig := range signatures {
		signers[i] = Signer{
			Name:     sig.Name,
			Role:     sig.Role,
			SignedOn: sig.SignedAt.Format(dateLayout),
			Image:    sig.Image,
		}
	}
	return SignOff{Text: signOffText, Signers: signers}
}

func copyList(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
