package validation

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

type Category string

const (
	CategoryCompleteness Category = "completeness"
	CategoryConsistency  Category = "consistency"
	CategoryAccuracy     Category = "accuracy"
	CategoryCompliance   Category = "compliance"
	CategoryLogic        Category = "logic"
	CategoryFormat       Category = "format"
)

// Issue is one validation finding. The ID is derived from the severity, the
// check name and the affected item key, so re-running validation over
// unchanged data reproduces the same identities even though nothing is
// persisted between passes.
type Issue struct {
	ID            string
	Severity      Severity
	Category      Category
	Check         string
	Message       string
	AffectedItems []string
	Resolved      bool // caller state; the engine always emits false
}

func newIssue(sev Severity, cat Category, check, itemKey, message string, affected []string) Issue {
	return Issue{
		ID:            fmt.Sprintf("%s:%s:%s", sev, check, itemKey),
		Severity:      sev,
		Category:      cat,
		Check:         check,
		Message:       message,
		AffectedItems: affected,
	}
}

// HealthScore derives the portfolio health from issue counts:
// 100 - 30 per critical - 10 per warning - 5 per info, floored at 0.
func HealthScore(issues []Issue) int {
	score := 100
	for _, is := range issues {
		switch is.Severity {
		case SeverityCritical:
			score -= 30
		case SeverityWarning:
			score -= 10
		case SeverityInfo:
			score -= 5
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// CountBySeverity tallies issues per severity level.
func CountBySeverity(issues []Issue) (critical, warning, info int) {
	for _, is := range issues {
		switch is.Severity {
		case SeverityCritical:
			critical++
		case SeverityWarning:
			warning++
		case SeverityInfo:
			info++
		}
	}
	return
}

func joinItems(items []string) string {
	return strings.Join(items, ", ")
}
