package hlsreport

import (
	"fmt"

	"github.com/ReconfigureIO/hlsflow/models"
)

// InconsistentEstimateError is returned when the best and worst case
// estimates of a design differ. Only designs with a uniform pipeline are
// supported.
type InconsistentEstimateError struct {
	Field string
	Best  interface{}
	Worst interface{}
}

func (e InconsistentEstimateError) Error() string {
	return fmt.Sprintf("best case %s (%v) differs from worst case (%v)", e.Field, e.Best, e.Worst)
}

// Summarize merges the estimate and export fields of one build into a flat
// record.
func Summarize(estimate, export models.Record) (models.Record, error) {
	if estimate["worst_latency"] != estimate["best_latency"] {
		return nil, InconsistentEstimateError{Field: "latency", Best: estimate["best_latency"], Worst: estimate["worst_latency"]}
	}
	if estimate["worst_II"] != estimate["best_II"] {
		return nil, InconsistentEstimateError{Field: "II", Best: estimate["best_II"], Worst: estimate["worst_II"]}
	}

	latency, ok := estimate["worst_latency"].(int)
	if !ok {
		return nil, fmt.Errorf("latency %v is not a cycle count", estimate["worst_latency"])
	}
	period, ok := export["actual_clock_period"].(float64)
	if !ok {
		return nil, fmt.Errorf("achieved clock period %v is not a number", export["actual_clock_period"])
	}

	summary := models.Record{
		"Latency":             latency,
		"LUT":                 export["LUT"],
		"DSP":                 export["DSP"],
		"FF":                  export["FF"],
		"II":                  estimate["worst_II"],
		"BRAM18":              export["BRAM18"],
		"URAM":                export["URAM"],
		"pipeline":            estimate["pipeline"],
		"target_clock_period": export["target_clock_period"],
		"actual_clock_period": period,
		"avail_LUT":           export["avail_LUT"],
		"avail_DSP":           export["avail_DSP"],
		"avail_FF":            export["avail_FF"],
		"avail_BRAM18":        export["avail_BRAM18"],
		"avail_URAM":          export["avail_URAM"],
	}
	summary["Latency [ns]"] = float64(latency) * period
	summary["Fmax [MHz]"] = 1000.0 / period

	return summary, nil
}
