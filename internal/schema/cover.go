package schema

// CoverConfig controls the cover page of an exported document. Heading is
// required; the rest decorate. LogoURL, when supplied, must be a
// well-formed URL.
type CoverConfig struct {
	Heading          string `json:"heading"`
	Subheading       string `json:"subheading"`
	LogoURL          string `json:"logo_url"`
	ShowContentsPage bool   `json:"show_contents_page"`
	ShowSignOff      bool   `json:"show_sign_off"`
}

// Validate checks the cover configuration.
func (p CoverConfig) Validate() Violations {
	var c Checker

	c.Require("heading", p.Heading)
	c.MaxLen("heading", p.Heading, MaxTitleLength)
	c.NotBlank("subheading", p.Subheading)
	c.MaxLen("subheading", p.Subheading, MaxTitleLength)
	if p.LogoURL != "" {
		c.URL("logo_url", p.LogoURL)
	}

	return c.Result()
}
