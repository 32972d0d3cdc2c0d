//nolint:revive // types is a standard Go package name pattern
package types

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.AmericanEnglish)

// MaxSkillTags caps the number of skill tags shown on a job card.
const MaxSkillTags = 3

// SalaryRange is the advertised yearly salary window.
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// JobRecommendation is a single remote job match returned by the backend.
type JobRecommendation struct {
	ID             string      `json:"id,omitempty"`
	Title          string      `json:"title"`
	Company        string      `json:"company"`
	Location       string      `json:"location"`
	RemoteFriendly bool        `json:"remote_friendly"`
	SalaryRange    SalaryRange `json:"salary_range"`
	RequiredSkills []string    `json:"required_skills"`
	Description    string      `json:"description"`
	ApplicationURL string      `json:"application_url,omitempty"`
}

// RecommendationsResponse is the body of /jobs/recommendations/{user_id}.
type RecommendationsResponse struct {
	Recommendations []JobRecommendation `json:"recommendations"`
}

// SkillTags returns at most MaxSkillTags skills, in order.
func (j JobRecommendation) SkillTags() []string {
	n := min(len(j.RequiredSkills), MaxSkillTags)
	out := make([]string, n)
	copy(out, j.RequiredSkills[:n])
	return out
}

// LocationClass is the badge class for the location tag.
func (j JobRecommendation) LocationClass() string {
	if j.RemoteFriendly {
		return "remote-friendly"
	}
	return "hybrid"
}

// Display renders the range as "$min - $max" with en-US digit grouping.
func (r SalaryRange) Display() string {
	return "$" + FormatThousands(r.Min) + " - $" + FormatThousands(r.Max)
}

// FormatThousands formats n with comma group separators (120000 -> "120,000").
func FormatThousands(n int) string {
	return numberPrinter.Sprintf("%d", n)
}
