package convert

import (
	"context"

	"github.com/dchest/uniuri"
	"github.com/docker/docker/client"
	log "github.com/sirupsen/logrus"
	validator "gopkg.in/validator.v2"
)

// Converter turns trained models into patched HLS projects.
type Converter struct {
	Toolchain Toolchain
	Config    ServiceConfig
}

// New creates a converter with conf. A configured docker image runs the
// toolchain in a container, otherwise it runs as a local process.
func New(conf ServiceConfig) (*Converter, error) {
	c := Converter{Config: conf}
	if conf.DockerImage == "" {
		c.Toolchain = ExecToolchain{Command: conf.Toolchain}
		return &c, nil
	}

	dockerClient, err := client.NewEnvClient()
	if err != nil {
		return nil, err
	}
	c.Toolchain = DockerToolchain{
		Client:  dockerClient,
		Image:   conf.DockerImage,
		Command: conf.Toolchain,
	}
	return &c, nil
}

// Convert generates the HLS project described by opts and patches it.
func (c *Converter) Convert(ctx context.Context, opts Options) error {
	if err := validator.Validate(opts); err != nil {
		return err
	}

	logger := log.WithFields(log.Fields{
		"run":    uniuri.NewLen(8),
		"model":  opts.ModelPath,
		"output": opts.OutputDir,
	})

	req, err := NewRequest(opts, c.Config)
	if err != nil {
		return err
	}
	if err := req.Write(); err != nil {
		return err
	}

	logger.WithFields(log.Fields{"strategy": opts.Strategy(), "part": req.Part}).Info("running HLS toolchain")
	if err := c.Toolchain.Run(ctx, req); err != nil {
		return err
	}

	logger.Info("patching generated project")
	return Patch(opts)
}
