package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/google/shlex"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

func (e *Executor) listContainers(ctx context.Context, args Args) (any, error) {
	list, err := e.engine.ListContainers(ctx, args.Bool("all_containers"))
	if err != nil {
		return nil, err
	}
	out := make([]ContainerSummary, 0, len(list))
	for _, c := range list {
		out = append(out, projectContainerSummary(c))
	}
	return out, nil
}

func (e *Executor) createContainer(ctx context.Context, args Args) (any, error) {
	cfg, host, err := containerSpec(args)
	if err != nil {
		return nil, err
	}
	resp, err := e.engine.CreateContainer(ctx, cfg, host, args.String("name"))
	if err != nil {
		return nil, err
	}
	return CreatedContainer{
		ID:       resp.ID,
		Name:     args.String("name"),
		Status:   "created",
		Warnings: resp.Warnings,
	}, nil
}

func (e *Executor) runContainer(ctx context.Context, args Args) (any, error) {
	cfg, host, err := containerSpec(args)
	if err != nil {
		return nil, err
	}
	resp, err := e.engine.CreateContainer(ctx, cfg, host, args.String("name"))
	if err != nil {
		return nil, err
	}
	if err := e.engine.StartContainer(ctx, resp.ID); err != nil {
		// The created container is left in place so the caller can
		// inspect or remove it.
		return nil, err
	}
	return CreatedContainer{
		ID:       resp.ID,
		Name:     args.String("name"),
		Status:   "running",
		Warnings: resp.Warnings,
	}, nil
}

func (e *Executor) startContainer(ctx context.Context, args Args) (any, error) {
	id := args.String("container_id")
	if err := e.engine.StartContainer(ctx, id); err != nil {
		return nil, err
	}
	return Ack{ID: id, Status: "started"}, nil
}

func (e *Executor) stopContainer(ctx context.Context, args Args) (any, error) {
	id := args.String("container_id")
	var timeout *int
	if t, ok := args.Int("timeout"); ok {
		timeout = &t
	}
	if err := e.engine.StopContainer(ctx, id, timeout); err != nil {
		return nil, err
	}
	return Ack{ID: id, Status: "stopped"}, nil
}

func (e *Executor) removeContainer(ctx context.Context, args Args) (any, error) {
	id := args.String("container_id")
	if err := e.engine.RemoveContainer(ctx, id, args.Bool("force")); err != nil {
		return nil, err
	}
	return Ack{ID: id, Status: "removed"}, nil
}

func (e *Executor) inspectContainer(ctx context.Context, args Args) (any, error) {
	info, err := e.engine.InspectContainer(ctx, args.String("container_id"))
	if err != nil {
		return nil, err
	}
	return projectInspection(info), nil
}

// containerSpec builds the engine-side container configuration from
// normalized create/run arguments.
func containerSpec(args Args) (*container.Config, *container.HostConfig, error) {
	cfg := &container.Config{
		Image: args.String("image"),
		Env:   envList(args.StringMap("environment")),
	}

	if cmd := args.String("command"); cmd != "" {
		parts, err := shlex.Split(cmd)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "unparseable command", err)
		}
		cfg.Cmd = parts
	}

	host := &container.HostConfig{}

	if ports := args.StringMap("ports"); len(ports) > 0 {
		exposed, bindings, err := portBindings(ports)
		if err != nil {
			return nil, nil, err
		}
		cfg.ExposedPorts = exposed
		host.PortBindings = bindings
	}

	if volumes := args.StringMap("volumes"); len(volumes) > 0 {
		binds := make([]string, 0, len(volumes))
		for hostPath, containerPath := range volumes {
			if hostPath == "" || containerPath == "" {
				return nil, nil, apperrors.New(apperrors.CodeInvalidArgument,
					"volume entries need both a host and a container path")
			}
			binds = append(binds, hostPath+":"+containerPath)
		}
		sort.Strings(binds)
		host.Binds = binds
	}

	return cfg, host, nil
}

// envList renders an environment mapping as the engine's KEY=VALUE
// list, sorted for determinism.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// portBindings maps container ports ("80" or "80/tcp") to host ports.
func portBindings(ports map[string]string) (nat.PortSet, nat.PortMap, error) {
	exposed := nat.PortSet{}
	bindings := nat.PortMap{}
	for containerPort, hostPort := range ports {
		proto, portNum := nat.SplitProtoPort(containerPort)
		port, err := nat.NewPort(proto, portNum)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.CodeInvalidArgument,
				fmt.Sprintf("invalid container port %q", containerPort), err)
		}
		exposed[port] = struct{}{}
		if strings.TrimSpace(hostPort) == "" {
			continue
		}
		bindings[port] = append(bindings[port], nat.PortBinding{HostPort: hostPort})
	}
	return exposed, bindings, nil
}
