package formatter

import (
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/balance"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// FormatSettings renders the plan configuration block.
func FormatSettings(s *domain.PlanSettings) string {
	rate := Dim("not set")
	if s.DiscountRate != nil {
		rate = Percent(*s.DiscountRate)
	}
	start := s.StartQuarter
	if start == "" {
		start = "-"
	}

	var b strings.Builder
	b.WriteString(Header("Plan Settings") + "\n")
	fmt.Fprintf(&b, "  Total Budget    %s\n", Amount(s.TotalBudget, s.Currency))
	fmt.Fprintf(&b, "  Discount Rate   %s\n", rate)
	fmt.Fprintf(&b, "  Currency        %s\n", s.Currency)
	fmt.Fprintf(&b, "  Budget Mode     %s\n", string(s.BudgetMode))
	fmt.Fprintf(&b, "  Start Quarter   %s\n", start)
	return b.String()
}

// FormatDomainList renders the business domains as a table followed by the
// active share total. mode controls the drift warning: dollar-mode plans
// never drift.
func FormatDomainList(domains []domain.BusinessDomain, currency string, mode domain.BudgetMode) string {
	headers := []string{"CODE", "NAME", "SHARE", "BUDGET", "REMAINING", "TOLERANCE", "ACTIVE"}
	rows := make([][]string, 0, len(domains))
	for i := range domains {
		d := &domains[i]
		active := StyleGreen.Render("yes")
		if !d.IsActive {
			active = Dim("no")
		}
		remaining := AmountCompact(d.RemainingBudget, currency)
		if d.RemainingBudget < 0 {
			remaining = StyleRed.Render(remaining)
		}
		rows = append(rows, []string{
			Bold(d.Code),
			d.Name,
			Percent(d.BudgetPercent),
			AmountCompact(d.Budget, currency),
			remaining,
			RiskStyle(d.RiskTolerance).Render(string(d.RiskTolerance)),
			active,
		})
	}

	sum := balance.ActivePercentSum(domains)
	total := fmt.Sprintf("Active share total: %s", Percent(sum))
	if balance.NeedsRebalance(domains, mode) {
		total = StyleYellow.Render(total + "  (drifted, run 'capalloc domain balance')")
	} else {
		total = Dim(total)
	}
	return RenderTable(headers, rows) + "\n" + total
}

// FormatApprovalMatrix renders the domain x role approval grid.
func FormatApprovalMatrix(domains []domain.BusinessDomain, records []domain.ApprovalRecord) string {
	byDomainRole := make(map[string]map[domain.ApprovalRole]domain.ApprovalRecord)
	for _, rec := range records {
		if byDomainRole[rec.DomainID] == nil {
			byDomainRole[rec.DomainID] = make(map[domain.ApprovalRole]domain.ApprovalRecord)
		}
		byDomainRole[rec.DomainID][rec.Role] = rec
	}

	headers := []string{"DOMAIN"}
	for _, role := range domain.AllApprovalRoles {
		headers = append(headers, strings.ToUpper(strings.ReplaceAll(string(role), "_", " ")))
	}
	headers = append(headers, "PROGRESS")

	rows := make([][]string, 0, len(domains))
	for i := range domains {
		d := &domains[i]
		row := []string{Bold(d.Code)}
		approved := 0
		for _, role := range domain.AllApprovalRoles {
			rec, ok := byDomainRole[d.ID][role]
			if !ok {
				row = append(row, Dim("—"))
				continue
			}
			if rec.State == domain.ApprovalApproved {
				approved++
			}
			row = append(row, StateStyle(rec.State).Render(string(rec.State)))
		}
		row = append(row, RenderProgress(float64(approved)/float64(len(domain.AllApprovalRoles)), 8))
		rows = append(rows, row)
	}
	return RenderTable(headers, rows)
}
