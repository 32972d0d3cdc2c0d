// Package observability provides boxed text output for the CLI commands.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/relocateme/internal/backend"
	"github.com/jonathan/relocateme/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes formatted summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

func pad(s string, n int) string {
	if gap := n - utf8.RuneCountInString(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// PrintSystemStatus outputs the backend status, falling back to the defaults for missing fields.
func (p *Printer) PrintSystemStatus(status *types.SystemStatus) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Version:  v%s\n", status.VersionOrDefault()))
	sb.WriteString(fmt.Sprintf("Uptime:   %s\n", status.UptimeOrDefault()))
	sb.WriteString("Services: Online")

	if status != nil && len(status.Extra) > 0 {
		sb.WriteString(fmt.Sprintf("\n\n%d additional field(s) reported", len(status.Extra)))
	}

	p.printBox("THRIVEREMOTEOS SYSTEM STATUS", sb.String())
}

// PrintRecommendations outputs job cards the way the destination screen shows them.
func (p *Printer) PrintRecommendations(jobs []types.JobRecommendation) {
	if len(jobs) == 0 {
		p.printBox("CURATED JOB MATCHES", "No recommendations available")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(jobs)))

	count := min(len(jobs), maxItemsToShow)
	for i := 0; i < count; i++ {
		job := jobs[i]
		sb.WriteString(fmt.Sprintf("#%d  %s @ %s\n", i+1, job.Title, job.Company))
		sb.WriteString(fmt.Sprintf("    %s [%s]\n", job.Location, job.LocationClass()))
		sb.WriteString(fmt.Sprintf("    %s\n", job.SalaryRange.Display()))
		if skills := job.SkillTags(); len(skills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", strings.Join(skills, ", ")))
		}
		if desc := backend.PlainText(job.Description); desc != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", strings.ReplaceAll(desc, "\n", " ")))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(jobs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(jobs)-maxItemsToShow))
	}

	p.printBox("CURATED JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeaturedLocations outputs the dashboard's featured destinations.
func (p *Printer) PrintFeaturedLocations(locations []types.FeaturedLocation) {
	if len(locations) == 0 {
		return
	}

	var sb strings.Builder
	for i, loc := range locations {
		sb.WriteString(fmt.Sprintf("%4.1f  %-20s %s", loc.Score, loc.Name, loc.Highlight))
		if i < len(locations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("FEATURED OPPORTUNITIES", sb.String())
}

// PrintSearchRequest outputs the body about to be posted.
func (p *Printer) PrintSearchRequest(req types.SearchRequest) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:     %s\n", req.UserID))
	sb.WriteString(fmt.Sprintf("From:     %s\n", req.CurrentLocation))
	sb.WriteString(fmt.Sprintf("To:       %s\n", strings.Join(req.TargetCities, ", ")))
	sb.WriteString(fmt.Sprintf("Budget:   $%s - $%s\n", types.FormatThousands(req.BudgetRange.Min), types.FormatThousands(req.BudgetRange.Max)))
	sb.WriteString(fmt.Sprintf("Climate:  %s\n", req.Preferences.Climate))
	sb.WriteString(fmt.Sprintf("Cost:     %s", req.Preferences.CostOfLiving))

	p.printBox("LOCATION SEARCH", sb.String())
}

// PrintLocationSearch outputs the backend's record of a created search.
func (p *Printer) PrintLocationSearch(search *types.LocationSearch) {
	if search == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", search.ID))
	sb.WriteString(fmt.Sprintf("User:     %s\n", search.UserID))
	sb.WriteString(fmt.Sprintf("From:     %s\n", search.CurrentLocation))
	sb.WriteString(fmt.Sprintf("To:       %s", strings.Join(search.TargetCities, ", ")))
	if search.Timestamp != "" {
		sb.WriteString(fmt.Sprintf("\nCreated:  %s", search.Timestamp))
	}

	p.printBox("SEARCH CREATED", sb.String())
}

// PrintInsights outputs the destination screen's insight cards.
func (p *Printer) PrintInsights(insights []types.Insight) {
	if len(insights) == 0 {
		return
	}

	var sb strings.Builder
	for i, in := range insights {
		sb.WriteString(in.Title + "\n")
		for _, line := range wrap(in.Body, boxWidth-6) {
			sb.WriteString("  " + line + "\n")
		}
		if i < len(insights)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("AI LOCATION INSIGHTS", strings.TrimSuffix(sb.String(), "\n"))
}

// wrap breaks text on spaces into lines of at most width runes.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && utf8.RuneCountInString(line.String())+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
