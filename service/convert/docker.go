package convert

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dchest/uniuri"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
	log "github.com/sirupsen/logrus"
)

type dockerClient interface {
	ContainerCreate(
		ctx context.Context,
		config *container.Config,
		hostConfig *container.HostConfig,
		networkingConfig *network.NetworkingConfig,
		containerName string,
	) (
		container.ContainerCreateCreatedBody,
		error,
	)

	ContainerStart(
		ctx context.Context,
		containerID string,
		options types.ContainerStartOptions,
	) error

	ContainerWait(
		ctx context.Context,
		containerID string,
		condition container.WaitCondition,
	) (
		<-chan container.ContainerWaitOKBody,
		<-chan error,
	)

	ContainerLogs(
		ctx context.Context,
		container string,
		options types.ContainerLogsOptions,
	) (
		io.ReadCloser,
		error,
	)

	ContainerRemove(
		ctx context.Context,
		containerID string,
		options types.ContainerRemoveOptions,
	) error
}

// DockerToolchain runs the toolchain inside a container. The output
// directory and the model's directory are mounted at the same paths they
// have on the host.
type DockerToolchain struct {
	Client  dockerClient
	Image   string
	Command []string
}

func (d DockerToolchain) Run(ctx context.Context, req Request) error {
	if len(d.Command) == 0 {
		return ErrNoToolchain
	}
	name := "hlsflow-" + uniuri.NewLen(12)
	logger := log.WithFields(log.Fields{"container": name, "image": d.Image})

	modelDir := filepath.Dir(req.ModelPath)
	created, err := d.Client.ContainerCreate(
		ctx,
		&container.Config{
			Image:      d.Image,
			Cmd:        append(append([]string{}, d.Command...), req.Path()),
			Env:        req.Env,
			WorkingDir: req.OutputDir,
		},
		&container.HostConfig{
			Binds: []string{
				req.OutputDir + ":" + req.OutputDir,
				modelDir + ":" + modelDir + ":ro",
			},
		},
		nil,
		name,
	)
	if err != nil {
		return err
	}
	defer func() {
		err := d.Client.ContainerRemove(context.Background(), created.ID, types.ContainerRemoveOptions{Force: true})
		if err != nil {
			logger.Warnf("ContainerRemove: %v", err)
		}
	}()

	err = d.Client.ContainerStart(ctx, created.ID, types.ContainerStartOptions{})
	if err != nil {
		return err
	}

	exited, errored := d.Client.ContainerWait(ctx, created.ID, container.WaitConditionNotRunning)
	var status container.ContainerWaitOKBody
	select {
	case status = <-exited:
	case err := <-errored:
		return err
	}

	if err := d.copyLogs(ctx, created.ID, logger); err != nil {
		logger.Warnf("ContainerLogs: %v", err)
	}

	if status.Error != nil {
		return fmt.Errorf("toolchain container: %s", status.Error.Message)
	}
	if status.StatusCode != 0 {
		return fmt.Errorf("toolchain container exited with status %d", status.StatusCode)
	}
	return nil
}

func (d DockerToolchain) copyLogs(ctx context.Context, id string, logger *log.Entry) error {
	rc, err := d.Client.ContainerLogs(ctx, id, types.ContainerLogsOptions{
		ShowStdout: true,
		ShowStderr: true,
	})
	if err != nil {
		return err
	}
	defer rc.Close()

	stdout := logger.WriterLevel(log.InfoLevel)
	defer stdout.Close()
	stderr := logger.WriterLevel(log.WarnLevel)
	defer stderr.Close()

	_, err = stdcopy.StdCopy(stdout, stderr, rc)
	return err
}
