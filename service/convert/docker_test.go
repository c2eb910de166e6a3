package convert

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"reflect"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/pkg/stdcopy"
)

type fakeDockerClient struct {
	dockerClient

	config     *container.Config
	hostConfig *container.HostConfig
	status     container.ContainerWaitOKBody
	started    bool
	removed    bool
}

func (f *fakeDockerClient) ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, containerName string) (container.ContainerCreateCreatedBody, error) {
	f.config = config
	f.hostConfig = hostConfig
	return container.ContainerCreateCreatedBody{ID: "c0ffee"}, nil
}

func (f *fakeDockerClient) ContainerStart(ctx context.Context, containerID string, options types.ContainerStartOptions) error {
	f.started = true
	return nil
}

func (f *fakeDockerClient) ContainerWait(ctx context.Context, containerID string, condition container.WaitCondition) (<-chan container.ContainerWaitOKBody, <-chan error) {
	exited := make(chan container.ContainerWaitOKBody, 1)
	exited <- f.status
	return exited, make(chan error)
}

func (f *fakeDockerClient) ContainerLogs(ctx context.Context, id string, options types.ContainerLogsOptions) (io.ReadCloser, error) {
	var buf bytes.Buffer
	stdcopy.NewStdWriter(&buf, stdcopy.Stdout).Write([]byte("writing project\n"))
	stdcopy.NewStdWriter(&buf, stdcopy.Stderr).Write([]byte("warning: deprecated layer\n"))
	return ioutil.NopCloser(&buf), nil
}

func (f *fakeDockerClient) ContainerRemove(ctx context.Context, containerID string, options types.ContainerRemoveOptions) error {
	f.removed = true
	return nil
}

func dockerRequest() Request {
	opts := validOptions()
	opts.ModelPath = "/models/jet.keras"
	opts.OutputDir = "/builds/jet"
	req, _ := NewRequest(opts, testConfig)
	return req
}

func TestDockerToolchain(t *testing.T) {
	client := &fakeDockerClient{}
	toolchain := DockerToolchain{Client: client, Image: "hls4ml:latest", Command: []string{"hls4ml-driver"}}

	req := dockerRequest()
	if err := toolchain.Run(context.Background(), req); err != nil {
		t.Fatal(err)
	}
	if !client.started || !client.removed {
		t.Errorf("container not started and removed: %+v", client)
	}

	expectedCmd := []string{"hls4ml-driver", "/builds/jet/hlsflow_request.json"}
	if !reflect.DeepEqual(client.config.Cmd, expectedCmd) {
		t.Fatalf("\nExpected: %+v\nGot:      %+v\n", expectedCmd, client.config.Cmd)
	}
	if !reflect.DeepEqual(client.config.Env, req.Env) {
		t.Fatalf("\nExpected: %+v\nGot:      %+v\n", req.Env, client.config.Env)
	}
	expectedBinds := []string{"/builds/jet:/builds/jet", "/models:/models:ro"}
	if !reflect.DeepEqual(client.hostConfig.Binds, expectedBinds) {
		t.Fatalf("\nExpected: %+v\nGot:      %+v\n", expectedBinds, client.hostConfig.Binds)
	}
}

func TestDockerToolchainExitCode(t *testing.T) {
	client := &fakeDockerClient{status: container.ContainerWaitOKBody{StatusCode: 2}}
	toolchain := DockerToolchain{Client: client, Image: "hls4ml:latest", Command: []string{"hls4ml-driver"}}

	if err := toolchain.Run(context.Background(), dockerRequest()); err == nil {
		t.Fatal("expected an error for a non-zero exit")
	}
	if !client.removed {
		t.Errorf("container not removed after a failed run")
	}
}
