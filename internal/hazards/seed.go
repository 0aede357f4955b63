package hazards

import "github.com/google/uuid"

// Seed returns the built-in hazard template set used to pre-populate an
// empty library. The table is constructed fresh on every call so callers
// can never mutate shared state through it.
func Seed() []Template {
	return []Template{
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a01"),
			Category:           "Working at Height",
			Title:              "Falls from scaffold or mobile tower",
			RiskTo:             "Operatives, visitors, public below",
			ControlMeasures:    "Scaffold erected and inspected by competent person; guardrails and toe boards fitted; harnesses clipped to designated anchor points; exclusion zone below the work area.",
			InitialLikelihood:  4,
			InitialSeverity:    5,
			ResidualLikelihood: 2,
			ResidualSeverity:   5,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a02"),
			Category:           "Manual Handling",
			Title:              "Musculoskeletal injury lifting heavy materials",
			RiskTo:             "Operatives",
			ControlMeasures:    "Mechanical aids used where practicable; two-person lifts for loads over 25kg; manual handling training current for all operatives.",
			InitialLikelihood:  4,
			InitialSeverity:    3,
			ResidualLikelihood: 2,
			ResidualSeverity:   3,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a03"),
			Category:           "Electrical",
			Title:              "Contact with live services",
			RiskTo:             "Operatives, other trades",
			ControlMeasures:    "Services located and marked before work; permits to dig in place; 110V tools only; isolation confirmed and locked off by authorised person.",
			InitialLikelihood:  3,
			InitialSeverity:    5,
			ResidualLikelihood: 1,
			ResidualSeverity:   5,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a04"),
			Category:           "Plant & Machinery",
			Title:              "Struck by moving plant",
			RiskTo:             "Operatives, pedestrians",
			ControlMeasures:    "Segregated pedestrian routes; banksman for all reversing movements; plant fitted with reversing alarms and cameras; high-visibility clothing worn at all times.",
			InitialLikelihood:  3,
			InitialSeverity:    5,
			ResidualLikelihood: 2,
			ResidualSeverity:   4,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a05"),
			Category:           "Lifting Operations",
			Title:              "Load falling during crane lift",
			RiskTo:             "Operatives, public, adjacent property",
			ControlMeasures:    "Lift plan prepared by appointed person; rigging inspected before each lift; exclusion zone enforced; tag lines used to control load.",
			InitialLikelihood:  3,
			InitialSeverity:    5,
			ResidualLikelihood: 1,
			ResidualSeverity:   5,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a06"),
			Category:           "Noise & Vibration",
			Title:              "Hearing damage and HAVS from power tools",
			RiskTo:             "Operatives",
			ControlMeasures:    "Low-vibration tooling selected; trigger-time rotation enforced; hearing protection mandatory in marked zones.",
			InitialLikelihood:  4,
			InitialSeverity:    3,
			ResidualLikelihood: 2,
			ResidualSeverity:   2,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a07"),
			Category:           "Dust & COSHH",
			Title:              "Inhalation of silica dust during cutting",
			RiskTo:             "Operatives, other trades",
			ControlMeasures:    "On-tool extraction and water suppression; FFP3 face fit tested masks; cutting area screened off.",
			InitialLikelihood:  4,
			InitialSeverity:    4,
			ResidualLikelihood: 2,
			ResidualSeverity:   3,
		},
		{
			ID:                 uuid.MustParse("6f1a2d6e-8f0b-4c3a-9a51-0d2f3b7c1a08"),
			Category:           "Slips, Trips & Falls",
			Title:              "Slips and trips on site walkways",
			RiskTo:             "All site personnel, visitors",
			ControlMeasures:    "Daily housekeeping inspections; cables routed overhead or covered; designated walkways lit and kept clear.",
			InitialLikelihood:  4,
			InitialSeverity:    2,
			ResidualLikelihood: 2,
			ResidualSeverity:   2,
		},
	}
}
