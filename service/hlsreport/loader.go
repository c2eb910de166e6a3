package hlsreport

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/kr/pretty"
	log "github.com/sirupsen/logrus"

	"github.com/ReconfigureIO/hlsflow/models"
)

const projectNameDirective = "set project_name "

// ReportNotFoundError is returned when a build directory has no export
// report under any of the known locations.
type ReportNotFoundError struct {
	Dir string
}

func (e ReportNotFoundError) Error() string {
	return fmt.Sprintf("no export report found in %s", e.Dir)
}

// ProjectNameError is returned when project.tcl does not name the project.
type ProjectNameError struct {
	Path string
}

func (e ProjectNameError) Error() string {
	return fmt.Sprintf("no project_name set in %s", e.Path)
}

// Loader reads build directories into records.
type Loader struct {
	// TimingReport, when set, is a timing summary path relative to each
	// build directory whose figures are added to the record.
	TimingReport string
}

// ProjectName reads the HLS project name out of dir/project.tcl.
func ProjectName(dir string) (string, error) {
	path := filepath.Join(dir, "project.tcl")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return "", err
	}
	txt := string(data)
	pos := strings.Index(txt, projectNameDirective)
	if pos == -1 {
		return "", ProjectNameError{Path: path}
	}
	line := txt[pos+len(projectNameDirective):]
	if end := strings.IndexAny(line, "\r\n"); end != -1 {
		line = line[:end]
	}
	return strings.Trim(strings.TrimSpace(line), `"`), nil
}

// EstimateReportPath is where the synthesis estimate of project is written.
func EstimateReportPath(dir, project string) string {
	return filepath.Join(dir, project+"_prj", "solution1", "syn", "report", project+"_csynth.xml")
}

// ExportReportPath returns the first export report that exists in dir.
func ExportReportPath(dir, project string) (string, error) {
	for _, lang := range []string{"vhdl", "verilog"} {
		for _, name := range []string{project + "_export.xml", "export_impl.xml"} {
			path := filepath.Join(dir, project+"_prj", "solution1", "impl", "report", lang, name)
			if exists(path) {
				return path, nil
			}
		}
	}
	return "", ReportNotFoundError{Dir: dir}
}

// Load summarizes the build in dir. A build without an estimate report
// yields an empty record.
func (l Loader) Load(dir string) (models.Record, error) {
	logger := log.WithFields(log.Fields{"dir": dir})

	project, err := ProjectName(dir)
	if err != nil {
		return nil, err
	}
	exportPath, err := ExportReportPath(dir, project)
	if err != nil {
		return nil, err
	}
	estimatePath := EstimateReportPath(dir, project)
	if !exists(estimatePath) {
		logger.Warnf("No csynth report found at %s", estimatePath)
		return models.Record{}, nil
	}

	estimate, err := extractFile(estimatePath, EstimateFields)
	if err != nil {
		return nil, err
	}
	export, err := extractFile(exportPath, ExportFields)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(estimate, export)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	if l.TimingReport != "" {
		timing, err := l.loadTiming(dir)
		if err != nil {
			return nil, err
		}
		summary.Merge(timing)
	}

	logger.Debugf("summary %# v", pretty.Formatter(summary))
	return summary, nil
}

// LoadAll loads every directory, then annotates each record with the
// key=value tokens of its directory name.
func (l Loader) LoadAll(dirs []string) ([]models.Record, error) {
	records := make([]models.Record, 0, len(dirs))
	for _, dir := range dirs {
		r, err := l.Load(dir)
		if err != nil {
			return nil, err
		}
		r.Merge(FromFilename(filepath.Base(filepath.Clean(dir))))
		records = append(records, r)
	}
	return records, nil
}

func (l Loader) loadTiming(dir string) (models.Record, error) {
	data, err := ioutil.ReadFile(filepath.Join(dir, l.TimingReport))
	if err != nil {
		return nil, err
	}
	return ParseTimingSummary(string(data))
}

func extractFile(path string, fields []Field) (models.Record, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Extract(data, fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
