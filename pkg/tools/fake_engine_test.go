package tools

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"

	"github.com/kalyanram262/docker-mcp-server/pkg/engine"
)

// fakeEngine implements engine.API with overridable function fields so
// each test wires only the calls it cares about. Errors returned by the
// fields stand in for the adapter's already-translated errors.
type fakeEngine struct {
	listContainersFn   func(ctx context.Context, all bool) ([]types.Container, error)
	createContainerFn  func(ctx context.Context, cfg *container.Config, host *container.HostConfig, name string) (container.CreateResponse, error)
	startContainerFn   func(ctx context.Context, id string) error
	stopContainerFn    func(ctx context.Context, id string, timeout *int) error
	removeContainerFn  func(ctx context.Context, id string, force bool) error
	inspectContainerFn func(ctx context.Context, id string) (types.ContainerJSON, error)
	containerStatsFn   func(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error)
	listImagesFn       func(ctx context.Context) ([]image.Summary, error)
	pullImageFn        func(ctx context.Context, ref string) (io.ReadCloser, error)
	pushImageFn        func(ctx context.Context, ref string, auth string) (io.ReadCloser, error)
	tagImageFn         func(ctx context.Context, source, target string) error
	inspectImageFn     func(ctx context.Context, ref string) (types.ImageInspect, error)
	buildImageFn       func(ctx context.Context, buildCtx io.Reader, opts types.ImageBuildOptions) (types.ImageBuildResponse, error)
	listNetworksFn     func(ctx context.Context) ([]network.Summary, error)
	listVolumesFn      func(ctx context.Context) (volume.ListResponse, error)
}

var _ engine.API = &fakeEngine{}

func (f *fakeEngine) ListContainers(ctx context.Context, all bool) ([]types.Container, error) {
	return f.listContainersFn(ctx, all)
}

func (f *fakeEngine) CreateContainer(ctx context.Context, cfg *container.Config, host *container.HostConfig, name string) (container.CreateResponse, error) {
	return f.createContainerFn(ctx, cfg, host, name)
}

func (f *fakeEngine) StartContainer(ctx context.Context, id string) error {
	return f.startContainerFn(ctx, id)
}

func (f *fakeEngine) StopContainer(ctx context.Context, id string, timeout *int) error {
	return f.stopContainerFn(ctx, id, timeout)
}

func (f *fakeEngine) RemoveContainer(ctx context.Context, id string, force bool) error {
	return f.removeContainerFn(ctx, id, force)
}

func (f *fakeEngine) InspectContainer(ctx context.Context, id string) (types.ContainerJSON, error) {
	return f.inspectContainerFn(ctx, id)
}

func (f *fakeEngine) ContainerStats(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
	return f.containerStatsFn(ctx, id, stream)
}

func (f *fakeEngine) ListImages(ctx context.Context) ([]image.Summary, error) {
	return f.listImagesFn(ctx)
}

func (f *fakeEngine) PullImage(ctx context.Context, ref string) (io.ReadCloser, error) {
	return f.pullImageFn(ctx, ref)
}

func (f *fakeEngine) PushImage(ctx context.Context, ref string, auth string) (io.ReadCloser, error) {
	return f.pushImageFn(ctx, ref, auth)
}

func (f *fakeEngine) TagImage(ctx context.Context, source, target string) error {
	return f.tagImageFn(ctx, source, target)
}

func (f *fakeEngine) InspectImage(ctx context.Context, ref string) (types.ImageInspect, error) {
	return f.inspectImageFn(ctx, ref)
}

func (f *fakeEngine) BuildImage(ctx context.Context, buildCtx io.Reader, opts types.ImageBuildOptions) (types.ImageBuildResponse, error) {
	return f.buildImageFn(ctx, buildCtx, opts)
}

func (f *fakeEngine) ListNetworks(ctx context.Context) ([]network.Summary, error) {
	return f.listNetworksFn(ctx)
}

func (f *fakeEngine) ListVolumes(ctx context.Context) (volume.ListResponse, error) {
	return f.listVolumesFn(ctx)
}

func (f *fakeEngine) Close() error { return nil }
