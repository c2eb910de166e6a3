package convert

import (
	"errors"
	"reflect"

	validator "gopkg.in/validator.v2"
)

// ServiceConfig holds configuration for the HLS toolchain.
type ServiceConfig struct {
	Toolchain   []string `env:"HLSFLOW_TOOLCHAIN" envDefault:"hls4ml-driver" envSeparator:" "`
	Part        string   `env:"HLSFLOW_PART" envDefault:"xcvu13p-flga2577-2-e"`
	Backend     string   `env:"HLSFLOW_BACKEND" envDefault:"vitis"`
	DockerImage string   `env:"HLSFLOW_DOCKER_IMAGE"`
}

func isPositive(v interface{}, param string) error {
	st := reflect.ValueOf(v)
	switch st.Kind() {
	case reflect.Float32, reflect.Float64:
		if st.Float() > 0 {
			return nil
		}
		return errors.New("value must be positive")
	case reflect.Int, reflect.Int64:
		if st.Int() > 0 {
			return nil
		}
		return errors.New("value must be positive")
	}
	return errors.New("positive only validates numbers")
}

func init() {
	validator.SetValidationFunc("positive", isPositive)
}

// Options describe one model conversion.
type Options struct {
	ModelPath string `validate:"nonzero"`
	OutputDir string `validate:"nonzero"`

	// UseDA selects the distributed arithmetic strategy instead of Latency.
	UseDA bool

	DelayConstraint int     `validate:"min=0"`
	ClockPeriod     float64 `validate:"positive"`

	// ForceLatency pins the pipeline latency of the top function when > 0.
	ForceLatency int `validate:"min=0"`

	ProjectName string `validate:"nonzero,regexp=^[A-Za-z_][A-Za-z0-9_]*$"`
}

// DefaultOptions returns the options used when no flag overrides them.
func DefaultOptions() Options {
	return Options{
		DelayConstraint: 2,
		OutputDir:       "hls4ml_output",
		ClockPeriod:     5.0,
		ProjectName:     "myproject",
	}
}

// Strategy is the HLS model strategy the options select.
func (o Options) Strategy() string {
	if o.UseDA {
		return "distributed_arithmetic"
	}
	return "Latency"
}
