package validation

import (
	"fmt"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
)

// Rule is a configurable acceptance check evaluated once per selected
// project. Check returning false means the rule is violated and produces one
// issue for that (rule, project) pair. Rules are plain data: adding one never
// touches engine control flow.
type Rule struct {
	Name     string
	Severity Severity
	Category Category
	Message  string
	Check    func(p domain.Project, d domain.BusinessDomain, m portfolio.Metrics) bool
}

// DefaultRules returns the rules evaluated when the caller supplies none:
// the per-domain acceptance thresholds that live on BusinessDomain.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:     "payback_within_domain_max",
			Severity: SeverityWarning,
			Category: CategoryCompliance,
			Message:  "payback period exceeds the domain maximum",
			Check: func(p domain.Project, d domain.BusinessDomain, _ portfolio.Metrics) bool {
				if d.MaxPayback <= 0 {
					return true
				}
				return p.PaybackYears <= d.MaxPayback
			},
		},
		{
			Name:     "risk_within_domain_tolerance",
			Severity: SeverityWarning,
			Category: CategoryCompliance,
			Message:  "project risk exceeds the domain risk tolerance",
			Check: func(p domain.Project, d domain.BusinessDomain, _ portfolio.Metrics) bool {
				return riskRank(p.RiskLevel()) <= riskRank(d.RiskTolerance)
			},
		},
	}
}

func riskRank(level domain.RiskLevel) int {
	switch level {
	case domain.RiskLow:
		return 1
	case domain.RiskMedium:
		return 2
	case domain.RiskHigh:
		return 3
	}
	return 2 // unset tolerance reads as medium
}

// evalRules produces one issue per violated (rule, project) pair.
func evalRules(ctx *snapshot, rules []Rule) []Issue {
	var issues []Issue
	for _, r := range rules {
		for i := range ctx.selected {
			p := ctx.selected[i]
			d := ctx.domainByID[p.DomainID]
			if r.Check(p, d, ctx.metrics) {
				continue
			}
			msg := fmt.Sprintf("%s: %s", p.DisplayID(), r.Message)
			issues = append(issues, newIssue(r.Severity, r.Category, r.Name, p.ID, msg, []string{p.ID}))
		}
	}
	return issues
}
