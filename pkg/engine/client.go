package engine

import (
	"context"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/rs/zerolog"
)

// Client adapts *client.Client to the capability interfaces. The
// underlying SDK client multiplexes one engine connection and is safe
// for concurrent use, so one Client is shared process-wide.
type Client struct {
	cli *client.Client
	log zerolog.Logger
}

var _ API = (*Client)(nil)

// New connects to the engine named by the usual DOCKER_HOST environment
// and verifies reachability with a short ping retry loop.
func New(ctx context.Context, log zerolog.Logger) (*Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, translate(err)
	}

	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_, err := cli.Ping(pingCtx)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		cli.Close()
		return nil, translate(err)
	}

	log.Debug().Str("host", cli.DaemonHost()).Str("api_version", cli.ClientVersion()).
		Msg("connected to docker engine")
	return &Client{cli: cli, log: log.With().Str("component", "engine").Logger()}, nil
}

// Close releases the engine connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

func (c *Client) ListContainers(ctx context.Context, all bool) ([]types.Container, error) {
	list, err := c.cli.ContainerList(ctx, container.ListOptions{All: all})
	return list, translate(err)
}

func (c *Client) CreateContainer(ctx context.Context, cfg *container.Config, host *container.HostConfig, name string) (container.CreateResponse, error) {
	resp, err := c.cli.ContainerCreate(ctx, cfg, host, nil, nil, name)
	return resp, translate(err)
}

func (c *Client) StartContainer(ctx context.Context, id string) error {
	return translate(c.cli.ContainerStart(ctx, id, container.StartOptions{}))
}

func (c *Client) StopContainer(ctx context.Context, id string, timeout *int) error {
	return translate(c.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: timeout}))
}

func (c *Client) RemoveContainer(ctx context.Context, id string, force bool) error {
	return translate(c.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: force}))
}

func (c *Client) InspectContainer(ctx context.Context, id string) (types.ContainerJSON, error) {
	info, err := c.cli.ContainerInspect(ctx, id)
	return info, translate(err)
}

func (c *Client) ContainerStats(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
	rdr, err := c.cli.ContainerStats(ctx, id, stream)
	return rdr, translate(err)
}

func (c *Client) ListImages(ctx context.Context) ([]image.Summary, error) {
	list, err := c.cli.ImageList(ctx, image.ListOptions{})
	return list, translate(err)
}

func (c *Client) PullImage(ctx context.Context, ref string) (io.ReadCloser, error) {
	rdr, err := c.cli.ImagePull(ctx, ref, image.PullOptions{})
	return rdr, translate(err)
}

func (c *Client) PushImage(ctx context.Context, ref string, registryAuth string) (io.ReadCloser, error) {
	rdr, err := c.cli.ImagePush(ctx, ref, image.PushOptions{RegistryAuth: registryAuth})
	return rdr, translate(err)
}

func (c *Client) TagImage(ctx context.Context, source, target string) error {
	return translate(c.cli.ImageTag(ctx, source, target))
}

func (c *Client) InspectImage(ctx context.Context, ref string) (types.ImageInspect, error) {
	info, _, err := c.cli.ImageInspectWithRaw(ctx, ref)
	return info, translate(err)
}

func (c *Client) BuildImage(ctx context.Context, buildCtx io.Reader, opts types.ImageBuildOptions) (types.ImageBuildResponse, error) {
	resp, err := c.cli.ImageBuild(ctx, buildCtx, opts)
	return resp, translate(err)
}

func (c *Client) ListNetworks(ctx context.Context) ([]network.Summary, error) {
	list, err := c.cli.NetworkList(ctx, network.ListOptions{})
	return list, translate(err)
}

func (c *Client) ListVolumes(ctx context.Context) (volume.ListResponse, error) {
	resp, err := c.cli.VolumeList(ctx, volume.ListOptions{})
	return resp, translate(err)
}
