package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// WriteProjects emits the projects in the interchange CSV format. The
// quarter columns are the union of all quarters any project allocates to,
// in chronological order, so a re-import round-trips every allocation.
// domainCodes maps domain ID to code for the domain_code column.
func WriteProjects(w io.Writer, projects []domain.Project, domainCodes map[string]string) error {
	quarters, err := collectQuarters(projects)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := append(append([]string{}, FixedColumns...), quarters...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := range projects {
		p := &projects[i]
		record := []string{
			p.ProjectID,
			p.Name,
			p.Category,
			domainCodes[p.DomainID],
			formatAmount(p.Capex),
			formatAmount(p.Opex),
			formatAmount(p.RevenuePotential),
			formatAmount(p.SavingsPotential),
			formatAmount(p.RiskScore),
			formatAmount(p.StrategicFit),
			p.BusinessUnit,
			p.Geography,
			p.Sponsor,
			p.StartQuarter,
		}
		byQuarter := make(map[string]float64, len(p.QuarterlyAlloc))
		for _, qa := range p.QuarterlyAlloc {
			byQuarter[qa.Quarter] = qa.Amount
		}
		for _, label := range quarters {
			record = append(record, formatAmount(byQuarter[label]))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing project %s: %w", p.DisplayID(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func collectQuarters(projects []domain.Project) ([]string, error) {
	seen := make(map[string]allocation.Quarter)
	for i := range projects {
		for _, qa := range projects[i].QuarterlyAlloc {
			if _, ok := seen[qa.Quarter]; ok {
				continue
			}
			q, err := allocation.ParseQuarter(qa.Quarter)
			if err != nil {
				return nil, fmt.Errorf("project %s: %w", projects[i].DisplayID(), err)
			}
			seen[qa.Quarter] = q
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := seen[labels[i]], seen[labels[j]]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Q < b.Q
	})
	return labels, nil
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
