package hlsreport

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ReconfigureIO/hlsflow/models"
)

const timingSummaryTitle = "Design Timing Summary"

// ParseTimingSummary reads the "Design Timing Summary" table of a Vivado
// timing report: a header line, a dashed rule and one line of values, with
// columns separated by two or more spaces.
func ParseTimingSummary(report string) (models.Record, error) {
	pos := strings.Index(report, timingSummaryTitle)
	if pos == -1 {
		return nil, fmt.Errorf("no %q section in timing report", timingSummaryTitle)
	}

	lines := strings.Split(report[pos:], "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	if len(lines) > 3 {
		lines = lines[3:]
	} else {
		lines = nil
	}
	table := []string{}
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			table = append(table, strings.TrimRight(line, "\r"))
		}
	}
	if len(table) < 3 {
		return nil, fmt.Errorf("timing summary table is truncated")
	}
	if strings.Trim(table[1], " -") != "" {
		return nil, fmt.Errorf("timing summary rule %q is not a dashed line", table[1])
	}

	keys := splitColumns(table[0])
	vals := splitColumns(table[2])
	if len(keys) != len(vals) {
		return nil, fmt.Errorf("timing summary has %d columns but %d values", len(keys), len(vals))
	}

	r := models.Record{}
	for i, k := range keys {
		v, err := parseTimingValue(vals[i])
		if err != nil {
			return nil, fmt.Errorf("timing summary %s: %w", k, err)
		}
		r[k] = v
	}
	return r, nil
}

func splitColumns(line string) []string {
	out := []string{}
	for _, f := range strings.Split(line, "  ") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseTimingValue(v string) (interface{}, error) {
	if strings.Contains(v, ".") {
		return strconv.ParseFloat(v, 64)
	}
	return strconv.Atoi(v)
}
