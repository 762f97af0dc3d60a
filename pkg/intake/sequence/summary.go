package sequence

import (
	"fmt"
	"strings"

	"greenwatch-be/pkg/intake/schema"
)

// MissingAnswer stands in for questions that were never answered.
const MissingAnswer = "N/A"

// BuildSummary renders answers as markdown, one line per question in
// sequence order.
func BuildSummary(title string, questions []Question, answers map[string]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s Summary\n", title)

	var category Category
	for _, q := range questions {
		if q.Category != category {
			category = q.Category
			fmt.Fprintf(&b, "\n#### %s\n\n", categoryHeading(category))
		}
		answer := strings.TrimSpace(answers[q.ID])
		if answer == "" {
			answer = MissingAnswer
		}
		fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", q.DisplayLabel(), q.ID, answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

func categoryHeading(c Category) string {
	switch c {
	case CategoryDocument:
		return "Operations"
	case CategoryReflective:
		return "Well-being"
	default:
		return string(c)
	}
}

func formatAnswer(v any) string {
	return schema.FormatValue(v)
}
