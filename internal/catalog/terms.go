package catalog

// GeneralTerms are printed on every invoice, after any package terms.
var GeneralTerms = []string{
	"Payment terms: 50% advance, 50% upon project completion",
	"Design revisions as per package terms",
	"Timeline may vary based on project scope and complexity",
	"All rates are exclusive of materials and execution costs",
	"Client approval required at each design milestone",
}

// TermsSection is a titled list of contractual terms.
type TermsSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Terms lists the invoice terms: the package guidelines when pkg is set,
// then the general terms.
func Terms(pkg *Package, general []string) []TermsSection {
	sections := make([]TermsSection, 0, 2)
	if pkg != nil {
		sections = append(sections, TermsSection{
			Title: pkg.Name + " - Project Guidelines:",
			Items: append([]string(nil), pkg.Rules...),
		})
	}
	sections = append(sections, TermsSection{
		Title: "General Terms:",
		Items: append([]string(nil), general...),
	})
	return sections
}
