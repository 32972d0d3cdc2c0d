//nolint:revive // types is a standard Go package name pattern
package types

// FeaturedLocation is a highlighted destination card on the dashboard.
type FeaturedLocation struct {
	Name      string  `json:"name"`
	Score     float64 `json:"score"`
	Highlight string  `json:"highlight"`
}

// Insight is a static insight card on the destination screen.
type Insight struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// FeaturedLocations returns the dashboard's featured destinations.
func FeaturedLocations() []FeaturedLocation {
	return []FeaturedLocation{
		{Name: "Phoenix, AZ", Score: 8.2, Highlight: "Low cost, tech growth"},
		{Name: "Austin, TX", Score: 9.1, Highlight: "Thriving startup scene"},
		{Name: "Peak District, UK", Score: 9.2, Highlight: "Remote-first culture"},
	}
}

// LocationInsights returns the destination screen's insight cards.
func LocationInsights() []Insight {
	return []Insight{
		{
			Title: "Market Analysis",
			Body:  "Based on your skills, the remote job market in your target locations shows 23% growth in opportunities.",
		},
		{
			Title: "Salary Optimization",
			Body:  "Relocating to your selected area could increase your effective income by 15-20% due to cost of living differences.",
		},
		{
			Title: "Network Expansion",
			Body:  "3 professional communities and 12 networking events identified in your target locations.",
		},
	}
}
