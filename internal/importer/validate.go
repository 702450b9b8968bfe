package importer

import (
	"fmt"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// ValidateFile checks every row before conversion and returns all errors
// found, so a bad file is reported in one pass instead of one error per
// attempt.
func ValidateFile(file *ImportFile) []error {
	var errs []error
	seen := make(map[string]int)

	for _, row := range file.Rows {
		errs = append(errs, validateRow(&row)...)

		if row.ProjectID != "" {
			if prev, dup := seen[row.ProjectID]; dup {
				errs = append(errs, fmt.Errorf("line %d: duplicate project_id %q (first seen on line %d)", row.Line, row.ProjectID, prev))
			} else {
				seen[row.ProjectID] = row.Line
			}
		}
	}
	return errs
}

func validateRow(row *ProjectRow) []error {
	var errs []error
	prefix := fmt.Sprintf("line %d", row.Line)

	probe := domain.Project{ProjectID: row.ProjectID}
	if err := probe.ValidateProjectID(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %v", prefix, err))
	}
	if row.Name == "" {
		errs = append(errs, fmt.Errorf("%s: name is required", prefix))
	}
	codeProbe := domain.BusinessDomain{Code: row.DomainCode}
	if err := codeProbe.ValidateCode(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %v", prefix, err))
	}
	if row.Capex < 0 {
		errs = append(errs, fmt.Errorf("%s: capex %.2f must not be negative", prefix, row.Capex))
	}
	if row.RiskScore != 0 && (row.RiskScore < 1 || row.RiskScore > 10) {
		errs = append(errs, fmt.Errorf("%s: risk_score %.1f must be between 1 and 10", prefix, row.RiskScore))
	}
	if row.StrategicFit != 0 && (row.StrategicFit < 1 || row.StrategicFit > 10) {
		errs = append(errs, fmt.Errorf("%s: strategic_fit %.1f must be between 1 and 10", prefix, row.StrategicFit))
	}
	if row.StartQuarter != "" {
		if _, err := allocation.ParseQuarter(row.StartQuarter); err != nil {
			errs = append(errs, fmt.Errorf("%s: start_quarter: %v", prefix, err))
		}
	}
	for _, qa := range row.Quarterly {
		if qa.Amount < 0 {
			errs = append(errs, fmt.Errorf("%s: quarter %q allocation %.2f must not be negative", prefix, qa.Quarter, qa.Amount))
		}
	}
	return errs
}
