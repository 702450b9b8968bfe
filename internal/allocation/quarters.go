package allocation

import (
	"fmt"
	"regexp"
	"strconv"
)

var quarterPattern = regexp.MustCompile(`^Q([1-4]) (\d{4})$`)

// Quarter is a calendar quarter, e.g. {1, 2026} rendered as "Q1 2026".
type Quarter struct {
	Q    int
	Year int
}

func (q Quarter) String() string {
	return fmt.Sprintf("Q%d %d", q.Q, q.Year)
}

// Next returns the following calendar quarter.
func (q Quarter) Next() Quarter {
	if q.Q == 4 {
		return Quarter{Q: 1, Year: q.Year + 1}
	}
	return Quarter{Q: q.Q + 1, Year: q.Year}
}

// ParseQuarter parses a "Q<n> <year>" label.
func ParseQuarter(s string) (Quarter, error) {
	m := quarterPattern.FindStringSubmatch(s)
	if m == nil {
		return Quarter{}, fmt.Errorf("invalid quarter label %q (expected e.g. \"Q1 2026\")", s)
	}
	qn, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return Quarter{Q: qn, Year: year}, nil
}

// QuarterLabels generates n consecutive quarter labels starting at start.
func QuarterLabels(start Quarter, n int) []string {
	labels := make([]string, 0, n)
	q := start
	for i := 0; i < n; i++ {
		labels = append(labels, q.String())
		q = q.Next()
	}
	return labels
}
