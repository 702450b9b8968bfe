// Package validation evaluates configurable rules and built-in structural
// checks over a snapshot of domains and projects, producing severity-ranked
// issues with stable identities and a derived health score.
package validation

import (
	"fmt"
	"sort"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
)

// Thresholds used by the built-in structural checks.
const (
	minAcceptableIRR     = 5.0  // percent
	maxAcceptableIRR     = 50.0 // percent
	minAcceptablePayback = 0.5  // years
	maxAcceptablePayback = 15.0 // years

	riskConcentrationShare = 0.30 // share of risky projects per domain
	riskConcentrationFloor = 2    // domains with <= this many selected are exempt
	minStrategicFit        = 5.0
	clusteringThreshold    = 5    // selected projects sharing a start quarter
	domainSkewShare        = 0.30 // one domain's share of total selected CAPEX
)

// Report is the outcome of one validation pass over one snapshot.
type Report struct {
	Issues      []Issue
	HealthScore int
	Critical    int
	Warning     int
	Info        int
}

// snapshot carries derived views shared by all checks within one pass.
type snapshot struct {
	domains    []domain.BusinessDomain
	selected   []domain.Project
	byDomain   map[string][]domain.Project
	domainByID map[string]domain.BusinessDomain
	metrics    portfolio.Metrics
}

// checkFunc is one built-in structural check. Checks never short-circuit:
// every violation in the snapshot is enumerated.
type checkFunc func(*snapshot) []Issue

var builtinChecks = []checkFunc{
	checkPortfolioBudget,
	checkDuplicateSelection,
	checkDomainBudgets,
	checkDomainIRR,
	checkRiskConcentration,
	checkStrategicFit,
	checkFinancialOutliers,
	checkTimelineClustering,
	checkDataCompleteness,
	checkDomainSkew,
}

// Run evaluates the given rules plus every built-in check against the
// current snapshot and returns the full fresh issue set. Prior resolution
// state is a caller concern; Run never carries state between passes.
func Run(domains []domain.BusinessDomain, projects []domain.Project, rules []Rule) Report {
	ctx := buildSnapshot(domains, projects)

	var issues []Issue
	issues = append(issues, evalRules(ctx, rules)...)
	for _, check := range builtinChecks {
		issues = append(issues, check(ctx)...)
	}

	sortIssues(issues)

	report := Report{Issues: issues, HealthScore: HealthScore(issues)}
	report.Critical, report.Warning, report.Info = CountBySeverity(issues)
	return report
}

func buildSnapshot(domains []domain.BusinessDomain, projects []domain.Project) *snapshot {
	ctx := &snapshot{
		domains:    domains,
		byDomain:   make(map[string][]domain.Project),
		domainByID: make(map[string]domain.BusinessDomain, len(domains)),
	}
	for _, d := range domains {
		ctx.domainByID[d.ID] = d
	}
	for _, p := range projects {
		if !p.IsSelected() {
			continue
		}
		ctx.selected = append(ctx.selected, p)
		ctx.byDomain[p.DomainID] = append(ctx.byDomain[p.DomainID], p)
	}
	ctx.metrics = portfolio.Aggregate(projects)
	return ctx
}

// checkPortfolioBudget flags the whole selection when total selected CAPEX
// exceeds the sum of all domain budgets.
func checkPortfolioBudget(ctx *snapshot) []Issue {
	var totalBudget float64
	for _, d := range ctx.domains {
		totalBudget += d.Budget
	}
	if ctx.metrics.TotalCapex <= totalBudget {
		return nil
	}
	return []Issue{newIssue(SeverityCritical, CategoryCompliance, "portfolio_budget_exceeded", "portfolio",
		fmt.Sprintf("total selected CAPEX %.2f exceeds total domain budgets %.2f", ctx.metrics.TotalCapex, totalBudget),
		projectIDs(ctx.selected))}
}

// checkDuplicateSelection flags selected projects sharing a business ID.
func checkDuplicateSelection(ctx *snapshot) []Issue {
	seen := make(map[string][]string)
	for _, p := range ctx.selected {
		seen[p.ProjectID] = append(seen[p.ProjectID], p.ID)
	}
	var dups []string
	for pid, ids := range seen {
		if len(ids) > 1 {
			dups = append(dups, pid)
		}
	}
	sort.Strings(dups)

	var issues []Issue
	for _, pid := range dups {
		issues = append(issues, newIssue(SeverityCritical, CategoryConsistency, "duplicate_selection", pid,
			fmt.Sprintf("project ID %s appears more than once in the selection", pid),
			seen[pid]))
	}
	return issues
}

// checkDomainBudgets emits one critical issue per domain whose selected
// CAPEX exceeds its budget, listing that domain's selected projects.
func checkDomainBudgets(ctx *snapshot) []Issue {
	var issues []Issue
	for _, d := range ctx.domains {
		selected := ctx.byDomain[d.ID]
		if len(selected) == 0 {
			continue
		}
		var spend float64
		for _, p := range selected {
			spend += p.Capex
		}
		if spend <= d.Budget {
			continue
		}
		issues = append(issues, newIssue(SeverityCritical, CategoryCompliance, "domain_budget_exceeded", d.ID,
			fmt.Sprintf("%s: selected CAPEX %.2f exceeds domain budget %.2f", d.Name, spend, d.Budget),
			projectIDs(selected)))
	}
	return issues
}

// checkDomainIRR emits one warning per domain that has selected projects
// below its minimum IRR threshold. Projects with an undefined IRR are
// covered by the outlier check instead.
func checkDomainIRR(ctx *snapshot) []Issue {
	var issues []Issue
	for _, d := range ctx.domains {
		if d.MinIRR <= 0 {
			continue
		}
		var below []string
		for _, p := range ctx.byDomain[d.ID] {
			if p.IRR != nil && *p.IRR < d.MinIRR {
				below = append(below, p.ID)
			}
		}
		if len(below) == 0 {
			continue
		}
		issues = append(issues, newIssue(SeverityWarning, CategoryCompliance, "irr_below_domain_minimum", d.ID,
			fmt.Sprintf("%s: %d project(s) below the domain minimum IRR of %.1f%%", d.Name, len(below), d.MinIRR),
			below))
	}
	return issues
}

// checkRiskConcentration warns when more than 30% of a domain's selected
// projects are high-risk and the domain has more than two selected projects.
func checkRiskConcentration(ctx *snapshot) []Issue {
	var issues []Issue
	for _, d := range ctx.domains {
		selected := ctx.byDomain[d.ID]
		if len(selected) <= riskConcentrationFloor {
			continue
		}
		var risky []string
		for _, p := range selected {
			if p.RiskScore >= 7 {
				risky = append(risky, p.ID)
			}
		}
		if float64(len(risky))/float64(len(selected)) <= riskConcentrationShare {
			continue
		}
		issues = append(issues, newIssue(SeverityWarning, CategoryLogic, "high_risk_concentration", d.ID,
			fmt.Sprintf("%s: %d of %d selected projects are high-risk", d.Name, len(risky), len(selected)),
			risky))
	}
	return issues
}

// checkStrategicFit warns per domain when selected projects score below the
// strategic fit floor.
func checkStrategicFit(ctx *snapshot) []Issue {
	var issues []Issue
	for _, d := range ctx.domains {
		var weak []string
		for _, p := range ctx.byDomain[d.ID] {
			if p.StrategicFit < minStrategicFit {
				weak = append(weak, p.ID)
			}
		}
		if len(weak) == 0 {
			continue
		}
		issues = append(issues, newIssue(SeverityWarning, CategoryLogic, "low_strategic_alignment", d.ID,
			fmt.Sprintf("%s: %d selected project(s) with strategic fit below %.0f", d.Name, len(weak), minStrategicFit),
			weak))
	}
	return issues
}

// checkFinancialOutliers warns per project on implausible financials: IRR
// outside [5, 50]%, payback outside [0.5, 15] years, or negative NPV. An
// undefined IRR is reported here rather than silently passing.
func checkFinancialOutliers(ctx *snapshot) []Issue {
	var issues []Issue
	for _, p := range ctx.selected {
		var reasons []string
		switch {
		case p.IRR == nil:
			reasons = append(reasons, "IRR is undefined (cash flows never change sign or did not converge)")
		case *p.IRR < minAcceptableIRR || *p.IRR > maxAcceptableIRR:
			reasons = append(reasons, fmt.Sprintf("IRR %.1f%% outside [%.0f, %.0f]", *p.IRR, minAcceptableIRR, maxAcceptableIRR))
		}
		if p.PaybackYears < minAcceptablePayback || p.PaybackYears > maxAcceptablePayback {
			reasons = append(reasons, fmt.Sprintf("payback %.1fy outside [%.1f, %.1f]", p.PaybackYears, minAcceptablePayback, maxAcceptablePayback))
		}
		if p.NPV < 0 {
			reasons = append(reasons, fmt.Sprintf("negative NPV %.2f", p.NPV))
		}
		if len(reasons) == 0 {
			continue
		}
		issues = append(issues, newIssue(SeverityWarning, CategoryAccuracy, "financial_outlier", p.ID,
			fmt.Sprintf("%s: %s", p.DisplayID(), joinItems(reasons)),
			[]string{p.ID}))
	}
	return issues
}

// checkTimelineClustering warns when five or more selected projects start in
// the same quarter.
func checkTimelineClustering(ctx *snapshot) []Issue {
	byQuarter := make(map[string][]string)
	for _, p := range ctx.selected {
		if p.StartQuarter == "" {
			continue
		}
		byQuarter[p.StartQuarter] = append(byQuarter[p.StartQuarter], p.ID)
	}
	quarters := make([]string, 0, len(byQuarter))
	for q, ids := range byQuarter {
		if len(ids) >= clusteringThreshold {
			quarters = append(quarters, q)
		}
	}
	sort.Strings(quarters)

	var issues []Issue
	for _, q := range quarters {
		issues = append(issues, newIssue(SeverityWarning, CategoryLogic, "timeline_clustering", q,
			fmt.Sprintf("%d selected projects all start in %s", len(byQuarter[q]), q),
			byQuarter[q]))
	}
	return issues
}

// checkDataCompleteness reports selected projects missing descriptive fields.
func checkDataCompleteness(ctx *snapshot) []Issue {
	var issues []Issue
	for _, p := range ctx.selected {
		var missing []string
		if p.BusinessUnit == "" {
			missing = append(missing, "businessUnit")
		}
		if p.Geography == "" {
			missing = append(missing, "geography")
		}
		if p.Sponsor == "" {
			missing = append(missing, "sponsor")
		}
		if len(missing) == 0 {
			continue
		}
		issues = append(issues, newIssue(SeverityInfo, CategoryCompleteness, "incomplete_project_data", p.ID,
			fmt.Sprintf("%s: missing %s", p.DisplayID(), joinItems(missing)),
			[]string{p.ID}))
	}
	return issues
}

// checkDomainSkew warns when a single domain holds more than 30% of the
// total selected CAPEX.
func checkDomainSkew(ctx *snapshot) []Issue {
	if ctx.metrics.TotalCapex <= 0 {
		return nil
	}
	var skewed []string
	for id, capex := range ctx.metrics.CapexByDomain {
		if capex/ctx.metrics.TotalCapex > domainSkewShare {
			skewed = append(skewed, id)
		}
	}
	sort.Strings(skewed)

	var issues []Issue
	for _, id := range skewed {
		d := ctx.domainByID[id]
		name := d.Name
		if name == "" {
			name = id
		}
		issues = append(issues, newIssue(SeverityWarning, CategoryLogic, "portfolio_skew", id,
			fmt.Sprintf("%s holds %.0f%% of total selected CAPEX", name, ctx.metrics.CapexByDomain[id]/ctx.metrics.TotalCapex*100),
			projectIDs(ctx.byDomain[id])))
	}
	return issues
}

var severityOrder = map[Severity]int{SeverityCritical: 0, SeverityWarning: 1, SeverityInfo: 2}

// sortIssues orders by severity then stable ID so output order is
// deterministic across runs.
func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if severityOrder[issues[i].Severity] != severityOrder[issues[j].Severity] {
			return severityOrder[issues[i].Severity] < severityOrder[issues[j].Severity]
		}
		return issues[i].ID < issues[j].ID
	})
}

func projectIDs(projects []domain.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
