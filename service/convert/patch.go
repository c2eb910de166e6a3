package convert

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abiosoft/errs"
)

// Run the flow out of context with Vivado's default strategy: synthesis and
// export only.
const buildOptions = `array set opt {
    reset      0
    csim       0
    synth      1
    cosim      0
    validation 0
    export     1
    vsynth     0
    fifo_opt   0
}
`

const (
	exportDesign     = "export_design -format"
	exportDesignImpl = "export_design -flow impl -rtl verilog -format"

	denseCache        = "data_T cache;"
	denseCacheInlined = "#pragma HLS INLINE\n    data_T cache;"
)

var topPipelinePragma = regexp.MustCompile(`#pragma HLS (?:PIPELINE|DATAFLOW)\s*\n`)

// TopFunctionPragma returns the pragmas the top function is pipelined with.
// Inlining recursively suits II=1 designs better.
func TopFunctionPragma(forceLatency int) string {
	pragma := "#pragma HLS PIPELINE II=1\n    #pragma HLS INLINE recursive\n"
	if forceLatency > 0 {
		pragma += fmt.Sprintf("    #pragma HLS LATENCY min=%d max=%d\n", forceLatency, forceLatency)
	}
	return pragma
}

// Patch adjusts a generated project in place.
func Patch(opts Options) error {
	dir := opts.OutputDir
	var e errs.Group

	e.Add(func() error {
		return ioutil.WriteFile(filepath.Join(dir, "build_opt.tcl"), []byte(buildOptions), 0644)
	})
	e.Add(func() error {
		return rewriteFile(filepath.Join(dir, "build_prj.tcl"), func(s string) string {
			return strings.Replace(s, exportDesign, exportDesignImpl, -1)
		})
	})
	e.Add(func() error {
		pragma := TopFunctionPragma(opts.ForceLatency)
		return rewriteFile(filepath.Join(dir, "firmware", opts.ProjectName+".cpp"), func(s string) string {
			return topPipelinePragma.ReplaceAllLiteralString(s, pragma)
		})
	})
	if !opts.UseDA && opts.ForceLatency > 0 {
		// the latency pragma is not honoured unless the dense kernel is inlined
		e.Add(func() error {
			return rewriteFile(filepath.Join(dir, "firmware", "nnet_utils", "nnet_dense_latency.h"), func(s string) string {
				s = strings.Replace(s, denseCacheInlined, denseCache, -1)
				return strings.Replace(s, denseCache, denseCacheInlined, -1)
			})
		})
	}

	return e.Exec()
}

func rewriteFile(path string, edit func(string) string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, []byte(edit(string(data))), info.Mode())
}
