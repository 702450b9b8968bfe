package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/portfolio"
)

// FormatPortfolioMetrics renders the aggregated portfolio block.
// domainCodes maps domain ID to display code for the per-domain breakdown.
func FormatPortfolioMetrics(m portfolio.Metrics, domainCodes map[string]string, currency string) string {
	var b strings.Builder
	b.WriteString(Header("Portfolio") + "\n")
	fmt.Fprintf(&b, "  Projects       %d\n", m.ProjectCount)
	fmt.Fprintf(&b, "  Total CAPEX    %s\n", Amount(m.TotalCapex, currency))
	fmt.Fprintf(&b, "  Total NPV      %s\n", Amount(m.TotalNPV, currency))
	fmt.Fprintf(&b, "  Portfolio IRR  %s %s\n", Percent(m.PortfolioIRR), Dim("(capex-weighted)"))
	fmt.Fprintf(&b, "  Avg Payback    %.1f years\n", m.AvgPaybackYears)
	fmt.Fprintf(&b, "  Avg Risk       %.1f/10\n", m.AvgRiskScore)
	fmt.Fprintf(&b, "  Avg Fit        %.1f/10\n", m.AvgStrategicFit)

	b.WriteString("\n" + Header("Risk Mix") + "\n")
	fmt.Fprintf(&b, "  %s %d   %s %d   %s %d\n",
		StyleGreen.Render("low"), m.Risk.Low,
		StyleYellow.Render("medium"), m.Risk.Medium,
		StyleRed.Render("high"), m.Risk.High,
	)

	if len(m.CapexByDomain) > 0 {
		b.WriteString("\n" + Header("CAPEX by Domain") + "\n")
		ids := make([]string, 0, len(m.CapexByDomain))
		for id := range m.CapexByDomain {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return domainCodes[ids[i]] < domainCodes[ids[j]] })
		for _, id := range ids {
			capex := m.CapexByDomain[id]
			share := 0.0
			if m.TotalCapex > 0 {
				share = capex / m.TotalCapex
			}
			code := domainCodes[id]
			if code == "" {
				code = id
			}
			fmt.Fprintf(&b, "  %-8s %s %s\n", Bold(code), RenderProgress(share, 16), AmountCompact(capex, currency))
		}
	}
	return b.String()
}
