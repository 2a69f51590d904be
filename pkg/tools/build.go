package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/pkg/archive"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

func (e *Executor) buildImage(ctx context.Context, args Args) (any, error) {
	path := args.String("path")
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, apperrors.Newf(apperrors.CodeInvalidArgument,
			"build context %q is not a readable directory", path)
	}

	opts := types.ImageBuildOptions{
		Dockerfile: args.String("dockerfile"),
		Labels:     args.StringMap("labels"),
		PullParent: args.Bool("pull"),
		NoCache:    args.Bool("no_cache"),
		Remove:     args.Bool("rm"),
	}
	if tag := args.String("tag"); tag != "" {
		opts.Tags = []string{tag}
	}
	if buildArgs := args.StringMap("build_args"); len(buildArgs) > 0 {
		opts.BuildArgs = make(map[string]*string, len(buildArgs))
		for k, v := range buildArgs {
			v := v
			opts.BuildArgs[k] = &v
		}
	}

	timeout := e.cfg.BuildTimeout
	if secs, ok := args.Int("timeout"); ok {
		if secs <= 0 {
			return nil, apperrors.Newf(apperrors.CodeInvalidArgument,
				"timeout must be positive, got %d", secs)
		}
		timeout = time.Duration(secs) * time.Second
	}

	result := BuildResult{Tags: opts.Tags}
	err = e.runBounded(ctx, timeout, func(ctx context.Context) error {
		// The build context is tarred afresh per invocation and holds
		// no state once the call returns.
		buildCtx, err := archive.TarWithOptions(path, &archive.TarOptions{})
		if err != nil {
			return apperrors.Wrap(apperrors.CodeEngineFailure,
				fmt.Sprintf("tarring build context %q", path), err)
		}
		defer buildCtx.Close()

		resp, err := e.engine.BuildImage(ctx, buildCtx, opts)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		logs, err := collectProgress(resp.Body, func(raw []byte) {
			var br types.BuildResult
			if json.Unmarshal(raw, &br) == nil && br.ID != "" {
				result.ImageID = br.ID
			}
		})
		result.Logs = logs
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
