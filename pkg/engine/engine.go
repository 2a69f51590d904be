// Package engine is a thin adapter over the Docker Engine API client.
// It exposes the management surface as capability-typed interfaces and
// translates engine-native errors into the shared taxonomy.
package engine

import (
	"context"
	"io"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
)

// ContainerAPI covers container lifecycle, inspection and stats.
type ContainerAPI interface {
	ListContainers(ctx context.Context, all bool) ([]types.Container, error)
	CreateContainer(ctx context.Context, cfg *container.Config, host *container.HostConfig, name string) (container.CreateResponse, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string, timeout *int) error
	RemoveContainer(ctx context.Context, id string, force bool) error
	InspectContainer(ctx context.Context, id string) (types.ContainerJSON, error)
	// ContainerStats opens the engine-side stats subscription. The
	// caller owns the returned body and must close it.
	ContainerStats(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error)
}

// ImageAPI covers image listing, transfer, tagging and builds.
type ImageAPI interface {
	ListImages(ctx context.Context) ([]image.Summary, error)
	// PullImage and PushImage return the engine's progress stream; the
	// caller owns it and must drain and close it.
	PullImage(ctx context.Context, ref string) (io.ReadCloser, error)
	PushImage(ctx context.Context, ref string, registryAuth string) (io.ReadCloser, error)
	TagImage(ctx context.Context, source, target string) error
	InspectImage(ctx context.Context, ref string) (types.ImageInspect, error)
	BuildImage(ctx context.Context, buildCtx io.Reader, opts types.ImageBuildOptions) (types.ImageBuildResponse, error)
}

// NetworkAPI covers network listing.
type NetworkAPI interface {
	ListNetworks(ctx context.Context) ([]network.Summary, error)
}

// VolumeAPI covers volume listing.
type VolumeAPI interface {
	ListVolumes(ctx context.Context) (volume.ListResponse, error)
}

// API is the full engine management surface used by the executor.
type API interface {
	ContainerAPI
	ImageAPI
	NetworkAPI
	VolumeAPI
	Close() error
}
