package backend

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText reduces a description that may carry HTML markup to its visible text.
// Input that cannot be parsed is returned trimmed.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return cleanWhitespace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style, noscript").Remove()

	return cleanWhitespace(doc.Text())
}

func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
