package hlsreport

import (
	"fmt"
	"testing"

	"github.com/gotestyourself/gotestyourself/fs"
)

func csynthXML(best, worst, bestII, worstII string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<profile>
  <PerformanceEstimates>
    <PipelineType>function</PipelineType>
    <SummaryOfOverallLatency>
      <Best-caseLatency>%s</Best-caseLatency>
      <Average-caseLatency>%s</Average-caseLatency>
      <Worst-caseLatency>%s</Worst-caseLatency>
      <Interval-min>%s</Interval-min>
      <Interval-max>%s</Interval-max>
    </SummaryOfOverallLatency>
  </PerformanceEstimates>
  <AreaEstimates>
    <Resources>
      <BRAM_18K>0</BRAM_18K>
      <DSP48E>12</DSP48E>
      <FF>3120</FF>
      <LUT>20110</LUT>
      <URAM>0</URAM>
    </Resources>
  </AreaEstimates>
</profile>
`, best, best, worst, bestII, worstII)
}

func exportXML(achieved string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<profile>
  <AreaReport>
    <Resources>
      <CLB>2500</CLB>
      <BRAM>0</BRAM>
      <DSP48E2>8</DSP48E2>
      <FF>2900</FF>
      <LUT>15000</LUT>
      <URAM>0</URAM>
    </Resources>
    <AvailableResources>
      <CLB>216000</CLB>
      <BRAM>5376</BRAM>
      <DSP48E2>12288</DSP48E2>
      <FF>3456000</FF>
      <LUT>1728000</LUT>
      <URAM>1280</URAM>
    </AvailableResources>
  </AreaReport>
  <TimingReport>
    <TargetClockPeriod>5.000</TargetClockPeriod>
    <AchievedClockPeriod>%s</AchievedClockPeriod>
  </TimingReport>
</profile>
`, achieved)
}

const timingReport = `Timing Report

------------------------------------------------------------------------------------------------
| Design Timing Summary
| ---------------------
------------------------------------------------------------------------------------------------

    WNS(ns)      TNS(ns)  TNS Failing Endpoints  TNS Total Endpoints
    -------      -------  ---------------------  -------------------
      0.250        0.000                      0                 4096


All user specified timing constraints are met.
`

// buildDir lays out an HLS project the way the synthesis flow writes it.
func buildDir(t *testing.T, name string, lang string, csynth string, export string) *fs.Dir {
	ops := []fs.PathOp{
		fs.WithFile("project.tcl", "variable project_name\nset project_name \"myproject\"\nset part \"xcvu13p\"\n"),
	}
	solution := []fs.PathOp{}
	if csynth != "" {
		solution = append(solution, fs.WithDir("syn", fs.WithDir("report",
			fs.WithFile("myproject_csynth.xml", csynth))))
	}
	if export != "" {
		solution = append(solution, fs.WithDir("impl", fs.WithDir("report",
			fs.WithDir(lang, fs.WithFile("export_impl.xml", export)))))
	}
	ops = append(ops, fs.WithDir("myproject_prj", fs.WithDir("solution1", solution...)))
	return fs.NewDir(t, name, ops...)
}
