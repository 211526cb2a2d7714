package skills

import (
	"github.com/jonathan/internship-wizard/internal/selection"
	"github.com/jonathan/internship-wizard/internal/types"
)

// MaxSuggestions caps how many skills are offered at once.
const MaxSuggestions = 12

var sectorSkills = map[types.SectorID][]string{
	"technology":  {"Programming", "Web Development", "Digital Marketing", "Data Analysis"},
	"government":  {"Research", "Report Writing", "Policy Analysis", "Communication"},
	"healthcare":  {"Data Analysis", "Research", "Healthcare Knowledge", "Statistics"},
	"education":   {"Teaching", "Communication", "Content Development", "Technology"},
	"environment": {"Environmental Science", "Research", "Field Work", "Documentation"},
	"finance":     {"Finance", "Data Analysis", "Communication", "Excel"},
	"social_work": {"Communication", "Community Engagement", "Social Work", "Documentation"},
	"agriculture": {"Agriculture", "Field Work", "Data Collection", "Technology"},
	"tourism":     {"Communication", "Marketing", "Local Knowledge", "Customer Service"},
	"culture":     {"Research", "History", "Cultural Knowledge", "Documentation"},
}

// Suggest proposes skills to click. With no sectors selected it returns the
// head of the catalog; otherwise the skills associated with the selected
// sectors, in selection order, deduplicated. Either list holds at most
// MaxSuggestions entries.
func Suggest(catalog []string, sectors *selection.Set[types.SectorID]) []string {
	out := selection.New[string]()
	if sectors.Empty() {
		for _, s := range catalog {
			if out.Len() == MaxSuggestions {
				break
			}
			if s != "" {
				out.Add(s)
			}
		}
		return out.Values()
	}

	for _, sector := range sectors.Values() {
		for _, s := range sectorSkills[sector] {
			if out.Len() == MaxSuggestions {
				return out.Values()
			}
			out.Add(s)
		}
	}
	return out.Values()
}
