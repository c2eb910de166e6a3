package convert

//go:generate mockgen -source=toolchain.go -package=convert -destination=toolchain_mock.go

import (
	"context"
	"errors"
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// ErrNoToolchain is returned when no toolchain command is configured.
var ErrNoToolchain = errors.New("no HLS toolchain command configured")

// Toolchain generates an HLS project from a request.
type Toolchain interface {
	Run(ctx context.Context, req Request) error
}

// ExecToolchain runs the toolchain as a local process, passing the request
// file as the last argument.
type ExecToolchain struct {
	Command []string
}

func (e ExecToolchain) Run(ctx context.Context, req Request) error {
	if len(e.Command) == 0 {
		return ErrNoToolchain
	}
	args := append(append([]string{}, e.Command[1:]...), req.Path())

	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Dir = req.OutputDir
	cmd.Env = append(os.Environ(), req.Env...)

	out := log.WithFields(log.Fields{"toolchain": e.Command[0]}).WriterLevel(log.InfoLevel)
	defer out.Close()
	cmd.Stdout = out
	cmd.Stderr = out

	return cmd.Run()
}
