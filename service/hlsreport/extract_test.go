package hlsreport

import (
	"errors"
	"math"
	"testing"

	"github.com/gotestyourself/gotestyourself/assert"
)

func TestExtractEstimate(t *testing.T) {
	r, err := Extract([]byte(csynthXML("10", "10", "1", "1")), EstimateFields)
	assert.NilError(t, err)

	assert.Equal(t, r["best_latency"], 10)
	assert.Equal(t, r["worst_II"], 1)
	assert.Equal(t, r["pipeline"], "function")
	assert.Equal(t, r["LUT"], 20110)
	assert.Equal(t, r["DSP"], 12)
}

func TestExtractKeepsNonNumericText(t *testing.T) {
	r, err := Extract([]byte(csynthXML("undef", "undef", "1", "1")), EstimateFields)
	assert.NilError(t, err)
	assert.Equal(t, r["best_latency"], "undef")
}

func TestExtractExportClockPeriods(t *testing.T) {
	r, err := Extract([]byte(exportXML("4.2")), ExportFields)
	assert.NilError(t, err)

	assert.Equal(t, r["target_clock_period"], 5.0)
	assert.Equal(t, r["actual_clock_period"], 4.2)
	assert.Equal(t, r["DSP"], 8)
	assert.Equal(t, r["avail_DSP"], 12288)
	assert.Equal(t, r["CLB"], 2500)
}

func TestExtractNAClockPeriod(t *testing.T) {
	r, err := Extract([]byte(exportXML("NA")), ExportFields)
	assert.NilError(t, err)
	assert.Assert(t, math.IsNaN(r["actual_clock_period"].(float64)))
}

func TestExtractMissingField(t *testing.T) {
	doc := `<profile><AreaReport><Resources><LUT>1</LUT></Resources></AreaReport></profile>`
	_, err := Extract([]byte(doc), ExportFields)

	var missing MissingFieldError
	assert.Assert(t, errors.As(err, &missing))
	assert.Equal(t, missing.Field, "CLB")
}

func TestExtractMalformedDocument(t *testing.T) {
	_, err := Extract([]byte("<profile><unclosed>"), EstimateFields)
	assert.Assert(t, err != nil)
}
