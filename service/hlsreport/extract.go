package hlsreport

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/ReconfigureIO/hlsflow/models"
)

// Kind selects how the text of a report field is coerced.
type Kind int

const (
	// Auto turns all-digit text into an int and keeps anything else as a
	// string.
	Auto Kind = iota
	// Clock parses a period in ns; the tools write "NA" when timing was
	// never met or never run.
	Clock
)

// Field is a named location inside a report document.
type Field struct {
	Name string
	Path string
	Kind Kind
}

// MissingFieldError is returned when a report has nothing at a field's path.
type MissingFieldError struct {
	Field string
	Path  string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("report field %s not found at %s", e.Field, e.Path)
}

// EstimateFields are read from the synthesis estimate (csynth) report.
var EstimateFields = []Field{
	{"best_latency", "/profile/PerformanceEstimates/SummaryOfOverallLatency/Best-caseLatency", Auto},
	{"worst_latency", "/profile/PerformanceEstimates/SummaryOfOverallLatency/Worst-caseLatency", Auto},
	{"pipeline", "/profile/PerformanceEstimates/PipelineType", Auto},
	{"best_II", "/profile/PerformanceEstimates/SummaryOfOverallLatency/Interval-min", Auto},
	{"worst_II", "/profile/PerformanceEstimates/SummaryOfOverallLatency/Interval-max", Auto},
	{"BRAM18", "/profile/AreaEstimates/Resources/BRAM_18K", Auto},
	{"DSP", "/profile/AreaEstimates/Resources/DSP", Auto},
	{"FF", "/profile/AreaEstimates/Resources/FF", Auto},
	{"LUT", "/profile/AreaEstimates/Resources/LUT", Auto},
	{"URAM", "/profile/AreaEstimates/Resources/URAM", Auto},
}

// ExportFields are read from the post-implementation export report.
var ExportFields = []Field{
	{"CLB", "/profile/AreaReport/Resources/CLB", Auto},
	{"BRAM18", "/profile/AreaReport/Resources/BRAM", Auto},
	{"DSP", "/profile/AreaReport/Resources/DSP", Auto},
	{"FF", "/profile/AreaReport/Resources/FF", Auto},
	{"LUT", "/profile/AreaReport/Resources/LUT", Auto},
	{"URAM", "/profile/AreaReport/Resources/URAM", Auto},
	{"target_clock_period", "/profile/TimingReport/TargetClockPeriod", Clock},
	{"actual_clock_period", "/profile/TimingReport/AchievedClockPeriod", Clock},
	{"avail_LUT", "/profile/AreaReport/AvailableResources/LUT", Auto},
	{"avail_DSP", "/profile/AreaReport/AvailableResources/DSP", Auto},
	{"avail_FF", "/profile/AreaReport/AvailableResources/FF", Auto},
	{"avail_BRAM18", "/profile/AreaReport/AvailableResources/BRAM", Auto},
	{"avail_URAM", "/profile/AreaReport/AvailableResources/URAM", Auto},
}

// Different device families name the DSP slice DSP48, DSP48E1, DSP48E2...
var dspVariant = regexp.MustCompile(`DSP48E?\d?`)

// Extract reads fields out of an XML report.
func Extract(doc []byte, fields []Field) (models.Record, error) {
	doc = dspVariant.ReplaceAll(doc, []byte("DSP"))

	root, err := xmlquery.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, err
	}

	r := models.Record{}
	for _, f := range fields {
		node, err := xmlquery.Query(root, f.Path)
		if err != nil {
			return nil, fmt.Errorf("report field %s: %w", f.Name, err)
		}
		if node == nil {
			return nil, MissingFieldError{Field: f.Name, Path: f.Path}
		}
		r[f.Name] = coerce(strings.TrimSpace(node.InnerText()), f.Kind)
	}
	return r, nil
}

func coerce(text string, kind Kind) interface{} {
	switch kind {
	case Clock:
		if text == "NA" {
			return math.NaN()
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	default:
		if isDigits(text) {
			if i, err := strconv.Atoi(text); err == nil {
				return i
			}
		}
	}
	return text
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
