package observability

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/relocateme/internal/types"
)

func TestPrintSystemStatus(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSystemStatus(&types.SystemStatus{Version: "6.0", Uptime: "99.9%"})
	output := buf.String()

	assert.Contains(t, output, "THRIVEREMOTEOS SYSTEM STATUS")
	assert.Contains(t, output, "v6.0")
	assert.Contains(t, output, "99.9%")
}

func TestPrintSystemStatus_NilUsesDefaults(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSystemStatus(nil)
	output := buf.String()

	assert.Contains(t, output, "v5.5")
	assert.Contains(t, output, "99.8%")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.JobRecommendation{
		{
			Title:          "Backend Engineer",
			Company:        "Acme",
			Location:       "Remote",
			RemoteFriendly: true,
			SalaryRange:    types.SalaryRange{Min: 120000, Max: 150000},
			RequiredSkills: []string{"Go", "SQL", "AWS", "Docker"},
			Description:    "<p>Ship <em>things</em></p>",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "CURATED JOB MATCHES")
	assert.Contains(t, output, "Backend Engineer @ Acme")
	assert.Contains(t, output, "remote-friendly")
	assert.Contains(t, output, "$120,000 - $150,000")
	assert.Contains(t, output, "Skills: Go, SQL, AWS")
	assert.NotContains(t, output, "Docker")
	assert.Contains(t, output, "Ship things")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Contains(t, buf.String(), "No recommendations available")
}

func TestPrintRecommendations_Overflow(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jobs := make([]types.JobRecommendation, 7)
	for i := range jobs {
		jobs[i] = types.JobRecommendation{Title: "Engineer", Company: "Co"}
	}
	p.PrintRecommendations(jobs)

	assert.Contains(t, buf.String(), "... and 2 more matches")
}

func TestPrintFeaturedLocations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintFeaturedLocations(types.FeaturedLocations())
	output := buf.String()

	assert.Contains(t, output, "FEATURED OPPORTUNITIES")
	assert.Contains(t, output, "Phoenix, AZ")
	assert.Contains(t, output, " 9.2")
}

func TestPrintSearchRequest(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	req := types.NewSearchCriteria().
		WithCurrentLocation("Phoenix, AZ").
		WithTargetCities("Austin, Denver").
		Request()
	p.PrintSearchRequest(req)
	output := buf.String()

	assert.Contains(t, output, "LOCATION SEARCH")
	assert.Contains(t, output, "Austin, Denver")
	assert.Contains(t, output, "$2,000 - $5,000")
	assert.Contains(t, output, "moderate")
}

func TestPrintLocationSearch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLocationSearch(&types.LocationSearch{
		ID:              "abc",
		UserID:          "user_001",
		CurrentLocation: "Phoenix, AZ",
		TargetCities:    []string{"Austin"},
		Timestamp:       "2025-01-02T03:04:05.123456",
	})
	output := buf.String()

	assert.Contains(t, output, "SEARCH CREATED")
	assert.Contains(t, output, "abc")
	assert.Contains(t, output, "2025-01-02T03:04:05.123456")
}

func TestPrintLocationSearch_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintLocationSearch(nil)
	assert.Empty(t, buf.String())
}

func TestPrintInsights(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInsights(types.LocationInsights())
	output := buf.String()

	assert.Contains(t, output, "AI LOCATION INSIGHTS")
	assert.Contains(t, output, "Market Analysis")
	assert.Contains(t, output, "Network Expansion")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("x", 200)+"\nPHOENIX ➔ PEAK DISTRICT")

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)
}
