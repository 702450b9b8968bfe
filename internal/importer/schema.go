// Package importer reads and writes the CSV project interchange format.
//
// The file carries one row per project. The first fourteen columns are
// fixed; any further columns are quarter labels ("Q1 2026", "Q2 2026", ...)
// holding that project's time-phased CAPEX allocation.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/allocation"
	"github.com/AyalaRamjee/KA-Capital-Allocation-sub002/internal/domain"
)

// FixedColumns is the required header prefix, in order.
var FixedColumns = []string{
	"project_id", "name", "category", "domain_code",
	"capex", "opex", "revenue_potential", "savings_potential",
	"risk_score", "strategic_fit",
	"business_unit", "geography", "sponsor", "start_quarter",
}

// ProjectRow is one parsed CSV line.
type ProjectRow struct {
	ProjectID        string
	Name             string
	Category         string
	DomainCode       string
	Capex            float64
	Opex             float64
	RevenuePotential float64
	SavingsPotential float64
	RiskScore        float64
	StrategicFit     float64
	BusinessUnit     string
	Geography        string
	Sponsor          string
	StartQuarter     string
	Quarterly        []domain.QuarterAmount
	Line             int // 1-based line in the source file, for error messages
}

// ImportFile is the parsed CSV: rows plus the quarter labels the header
// declared, in column order.
type ImportFile struct {
	Rows     []ProjectRow
	Quarters []string
}

// LoadProjects reads and parses a project CSV from disk.
func LoadProjects(path string) (*ImportFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return ParseProjects(f)
}

// ParseProjects parses the project CSV from a reader.
func ParseProjects(r io.Reader) (*ImportFile, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	quarters, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	file := &ImportFile{Quarters: quarters}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := parseRow(record, quarters, line)
		if err != nil {
			return nil, err
		}
		file.Rows = append(file.Rows, row)
	}
	return file, nil
}

func parseHeader(header []string) ([]string, error) {
	if len(header) < len(FixedColumns) {
		return nil, fmt.Errorf("header has %d columns, expected at least %d (%s)",
			len(header), len(FixedColumns), strings.Join(FixedColumns, ","))
	}
	for i, want := range FixedColumns {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("header column %d is %q, expected %q", i+1, header[i], want)
		}
	}
	quarters := make([]string, 0, len(header)-len(FixedColumns))
	for _, label := range header[len(FixedColumns):] {
		label = strings.TrimSpace(label)
		if _, err := allocation.ParseQuarter(label); err != nil {
			return nil, fmt.Errorf("header quarter column %q: %w", label, err)
		}
		quarters = append(quarters, label)
	}
	return quarters, nil
}

func parseRow(record []string, quarters []string, line int) (ProjectRow, error) {
	row := ProjectRow{Line: line}
	if len(record) != len(FixedColumns)+len(quarters) {
		return row, fmt.Errorf("line %d: %d columns, expected %d", line, len(record), len(FixedColumns)+len(quarters))
	}

	row.ProjectID = strings.TrimSpace(record[0])
	row.Name = strings.TrimSpace(record[1])
	row.Category = strings.TrimSpace(record[2])
	row.DomainCode = strings.TrimSpace(record[3])

	var err error
	numeric := []struct {
		name string
		dst  *float64
		idx  int
	}{
		{"capex", &row.Capex, 4},
		{"opex", &row.Opex, 5},
		{"revenue_potential", &row.RevenuePotential, 6},
		{"savings_potential", &row.SavingsPotential, 7},
		{"risk_score", &row.RiskScore, 8},
		{"strategic_fit", &row.StrategicFit, 9},
	}
	for _, col := range numeric {
		if *col.dst, err = parseAmount(record[col.idx]); err != nil {
			return row, fmt.Errorf("line %d: %s: %w", line, col.name, err)
		}
	}

	row.BusinessUnit = strings.TrimSpace(record[10])
	row.Geography = strings.TrimSpace(record[11])
	row.Sponsor = strings.TrimSpace(record[12])
	row.StartQuarter = strings.TrimSpace(record[13])

	for i, label := range quarters {
		amount, err := parseAmount(record[len(FixedColumns)+i])
		if err != nil {
			return row, fmt.Errorf("line %d: quarter %q: %w", line, label, err)
		}
		if amount == 0 {
			continue
		}
		row.Quarterly = append(row.Quarterly, domain.QuarterAmount{Quarter: label, Amount: amount})
	}
	return row, nil
}

// parseAmount accepts an empty cell as zero.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
