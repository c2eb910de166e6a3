package hlsreport

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gotestyourself/gotestyourself/assert"
	"github.com/gotestyourself/gotestyourself/fs"
)

func TestProjectName(t *testing.T) {
	dir := fs.NewDir(t, "prj", fs.WithFile("project.tcl", "set project_name \"conv_net\"\r\nset backend vitis\n"))
	defer dir.Remove()

	name, err := ProjectName(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, name, "conv_net")
}

func TestProjectNameMissing(t *testing.T) {
	dir := fs.NewDir(t, "prj", fs.WithFile("project.tcl", "set part xcvu13p\n"))
	defer dir.Remove()

	_, err := ProjectName(dir.Path())
	var missing ProjectNameError
	assert.Assert(t, errors.As(err, &missing))
}

func TestLoad(t *testing.T) {
	for _, lang := range []string{"vhdl", "verilog"} {
		dir := buildDir(t, "build", lang, csynthXML("20", "20", "1", "1"), exportXML("4.0"))

		r, err := Loader{}.Load(dir.Path())
		assert.NilError(t, err)
		assert.Equal(t, r["Latency"], 20)
		assert.Equal(t, r["Latency [ns]"], 80.0)
		assert.Equal(t, r["Fmax [MHz]"], 250.0)
		dir.Remove()
	}
}

func TestLoadPrefersProjectExport(t *testing.T) {
	dir := buildDir(t, "build", "verilog", csynthXML("20", "20", "1", "1"), exportXML("4.0"))
	defer dir.Remove()
	preferred := filepath.Join(dir.Path(), "myproject_prj", "solution1", "impl", "report", "verilog", "myproject_export.xml")
	assert.NilError(t, ioutil.WriteFile(preferred, []byte(exportXML("2.0")), 0644))

	r, err := Loader{}.Load(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, r["actual_clock_period"], 2.0)
}

func TestLoadWithoutExport(t *testing.T) {
	dir := buildDir(t, "build", "verilog", csynthXML("20", "20", "1", "1"), "")
	defer dir.Remove()

	_, err := Loader{}.Load(dir.Path())
	var notFound ReportNotFoundError
	assert.Assert(t, errors.As(err, &notFound))
	assert.Equal(t, notFound.Dir, dir.Path())
}

func TestLoadWithoutEstimate(t *testing.T) {
	dir := buildDir(t, "build", "verilog", "", exportXML("4.0"))
	defer dir.Remove()

	r, err := Loader{}.Load(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, len(r), 0)
}

func TestLoadInconsistent(t *testing.T) {
	dir := buildDir(t, "build", "vhdl", csynthXML("20", "21", "1", "1"), exportXML("4.0"))
	defer dir.Remove()

	_, err := Loader{}.Load(dir.Path())
	var inconsistent InconsistentEstimateError
	assert.Assert(t, errors.As(err, &inconsistent))
}

func TestLoadTimingSummary(t *testing.T) {
	dir := buildDir(t, "build", "verilog", csynthXML("20", "20", "1", "1"), exportXML("4.0"))
	defer dir.Remove()
	assert.NilError(t, ioutil.WriteFile(filepath.Join(dir.Path(), "timing.rpt"), []byte(timingReport), 0644))

	r, err := Loader{TimingReport: "timing.rpt"}.Load(dir.Path())
	assert.NilError(t, err)
	assert.Equal(t, r["WNS(ns)"], 0.25)
	assert.Equal(t, r["TNS Total Endpoints"], 4096)
}

func TestLoadAllAnnotatesFromDirectoryName(t *testing.T) {
	dir := buildDir(t, "builds", "verilog", csynthXML("20", "20", "1", "1"), exportXML("4.0"))
	defer dir.Remove()
	named := filepath.Join(filepath.Dir(dir.Path()), "epoch=3-LUT=7-p=4.0")
	assert.NilError(t, os.Rename(dir.Path(), named))
	defer os.RemoveAll(named)

	records, err := Loader{}.LoadAll([]string{named + "/"})
	assert.NilError(t, err)
	assert.Equal(t, len(records), 1)
	assert.Equal(t, records[0]["epoch"], 3)
	assert.Equal(t, records[0]["p"], 4.0)
	// fields from the reports win over the directory name
	assert.Equal(t, records[0]["LUT"], 15000)
}
