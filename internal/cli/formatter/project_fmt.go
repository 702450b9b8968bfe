package formatter

import (
	"fmt"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// FormatProjectList renders projects as a table. domainCodes maps domain ID
// to display code.
func FormatProjectList(projects []domain.Project, domainCodes map[string]string, currency string) string {
	headers := []string{"ID", "NAME", "DOMAIN", "CAPEX", "NPV", "IRR", "PAYBACK", "RISK", "STATUS", "RANK"}
	rows := make([][]string, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		rows = append(rows, []string{
			Bold(p.DisplayID()),
			truncate(p.Name, 28),
			domainCodes[p.DomainID],
			AmountCompact(p.Capex, currency),
			AmountCompact(p.NPV, currency),
			OptionalPercent(p.IRR),
			fmt.Sprintf("%.1fy", p.PaybackYears),
			RiskStyle(p.RiskLevel()).Render(string(p.RiskLevel())),
			statusCell(p.Status),
			rankCell(p.PortfolioRank),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectDetail renders one project in full, including cash flows and
// the quarterly allocation when present.
func FormatProjectDetail(p *domain.Project, domainCode, currency string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s %s", p.DisplayID(), p.Name)) + "\n")
	fmt.Fprintf(&b, "  Domain         %s\n", domainCode)
	if p.Category != "" {
		fmt.Fprintf(&b, "  Category       %s\n", p.Category)
	}
	fmt.Fprintf(&b, "  Status         %s\n", statusCell(p.Status))
	if p.PortfolioRank > 0 {
		fmt.Fprintf(&b, "  Rank           #%d\n", p.PortfolioRank)
	}
	fmt.Fprintf(&b, "  CAPEX          %s\n", Amount(p.Capex, currency))
	if p.Opex != 0 {
		fmt.Fprintf(&b, "  OPEX           %s\n", Amount(p.Opex, currency))
	}
	fmt.Fprintf(&b, "  NPV            %s\n", Amount(p.NPV, currency))
	fmt.Fprintf(&b, "  IRR            %s   MIRR %s\n", OptionalPercent(p.IRR), OptionalPercent(p.MIRR))
	fmt.Fprintf(&b, "  Payback        %.1f years\n", p.PaybackYears)
	fmt.Fprintf(&b, "  Risk           %s (%.0f/10)\n", RiskStyle(p.RiskLevel()).Render(string(p.RiskLevel())), p.RiskScore)
	if p.StrategicFit > 0 {
		fmt.Fprintf(&b, "  Strategic Fit  %.0f/10\n", p.StrategicFit)
	}
	if p.Sponsor != "" {
		fmt.Fprintf(&b, "  Sponsor        %s\n", p.Sponsor)
	}

	if len(p.CashFlows) > 0 {
		b.WriteString("\n" + Header("Cash Flows") + "\n")
		for _, cf := range p.CashFlows {
			amount := AmountCompact(cf.Amount, currency)
			if cf.Amount < 0 {
				amount = StyleRed.Render(amount)
			} else {
				amount = StyleGreen.Render(amount)
			}
			fmt.Fprintf(&b, "  Year %d  %s\n", cf.Period, amount)
		}
	}
	if len(p.QuarterlyAlloc) > 0 {
		b.WriteString("\n" + Header("Quarterly Allocation") + "\n")
		for _, qa := range p.QuarterlyAlloc {
			fmt.Fprintf(&b, "  %s  %s\n", qa.Quarter, AmountCompact(qa.Amount, currency))
		}
	}
	return b.String()
}

func statusCell(s domain.ProjectStatus) string {
	switch s {
	case domain.ProjectSelected:
		return StyleGreen.Render("selected")
	case domain.ProjectExcluded:
		return StyleRed.Render("excluded")
	default:
		return Dim("available")
	}
}

func rankCell(rank int) string {
	if rank == 0 {
		return Dim("-")
	}
	return fmt.Sprintf("#%d", rank)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
