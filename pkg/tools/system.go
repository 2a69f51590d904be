package tools

import (
	"context"
)

func (e *Executor) listNetworks(ctx context.Context, args Args) (any, error) {
	list, err := e.engine.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]NetworkInfo, 0, len(list))
	for _, n := range list {
		out = append(out, projectNetworkInfo(n))
	}
	return out, nil
}

func (e *Executor) listVolumes(ctx context.Context, args Args) (any, error) {
	resp, err := e.engine.ListVolumes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VolumeInfo, 0, len(resp.Volumes))
	for _, v := range resp.Volumes {
		if v == nil {
			continue
		}
		out = append(out, projectVolumeInfo(v))
	}
	return out, nil
}
