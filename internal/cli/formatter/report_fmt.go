package formatter

import (
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/validation"
)

// FormatValidationReport renders the full findings list grouped under a
// health-score summary line.
func FormatValidationReport(r *validation.Report) string {
	var b strings.Builder
	b.WriteString(Header("Validation") + "\n")
	fmt.Fprintf(&b, "  Health %s   %s %d  %s %d  %s %d\n",
		healthCell(r.HealthScore),
		StyleRed.Render("critical"), r.Critical,
		StyleYellow.Render("warning"), r.Warning,
		StyleBlue.Render("info"), r.Info,
	)

	if len(r.Issues) == 0 {
		b.WriteString("\n  " + StyleGreen.Render("No issues found.") + "\n")
		return b.String()
	}

	b.WriteString("\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "  %s  %s\n", SeverityBadge(issue.Severity), issue.Message)
		meta := fmt.Sprintf("%s · %s", issue.Category, issue.Check)
		if len(issue.AffectedItems) > 0 {
			meta += " · " + strings.Join(issue.AffectedItems, ", ")
		}
		fmt.Fprintf(&b, "     %s\n", Dim(meta))
	}
	return b.String()
}

func healthCell(score int) string {
	text := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 90:
		return StyleGreen.Render(text)
	case score >= 60:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}
