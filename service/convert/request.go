package convert

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RequestFile is the name of the request the toolchain reads, written into
// the output directory.
const RequestFile = "hlsflow_request.json"

// The default precision is never used; every layer carries its own.
const placeholderPrecision = "fixed<-1,0>"

type ModelConfig struct {
	Precision   string `json:"Precision"`
	ReuseFactor int    `json:"ReuseFactor"`
	Strategy    string `json:"Strategy"`
}

type HLSConfig struct {
	Model ModelConfig `json:"Model"`
}

// Request is what the HLS toolchain is asked to generate.
type Request struct {
	ModelPath        string    `json:"model_path"`
	OutputDir        string    `json:"output_dir"`
	ProjectName      string    `json:"project_name"`
	HLSConfig        HLSConfig `json:"hls_config"`
	ClockPeriod      float64   `json:"clock_period"`
	ClockUncertainty float64   `json:"clock_uncertainty"`
	Part             string    `json:"part"`
	Backend          string    `json:"backend"`

	// Env is the environment the toolchain runs with, as KEY=VALUE.
	Env []string `json:"-"`
}

// NewRequest builds the toolchain request for opts. Paths are made absolute
// so they stay valid inside a container.
func NewRequest(opts Options, conf ServiceConfig) (Request, error) {
	model, err := filepath.Abs(opts.ModelPath)
	if err != nil {
		return Request{}, err
	}
	output, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return Request{}, err
	}
	return Request{
		ModelPath:   model,
		OutputDir:   output,
		ProjectName: opts.ProjectName,
		HLSConfig: HLSConfig{Model: ModelConfig{
			Precision:   placeholderPrecision,
			ReuseFactor: 1,
			Strategy:    opts.Strategy(),
		}},
		ClockPeriod: opts.ClockPeriod,
		Part:        conf.Part,
		Backend:     conf.Backend,
		Env: []string{
			"KERAS_BACKEND=jax",
			"JAX_PLATFORM_NAME=cpu",
			fmt.Sprintf("DA_HARD_DC=%d", opts.DelayConstraint),
		},
	}, nil
}

// Path is where the request is written.
func (r Request) Path() string {
	return filepath.Join(r.OutputDir, RequestFile)
}

// Write stores the request in the output directory.
func (r Request) Write() error {
	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(r.Path(), data, 0644)
}
