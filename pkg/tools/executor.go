package tools

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/kalyanram262/docker-mcp-server/pkg/config"
	"github.com/kalyanram262/docker-mcp-server/pkg/engine"
	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
	"github.com/kalyanram262/docker-mcp-server/pkg/scout"
)

// handlerFunc executes one operation with normalized arguments and
// returns its projected payload.
type handlerFunc func(ctx context.Context, args Args) (any, error)

// Executor owns the execution strategies: simple synchronous calls,
// bounded long-running calls, and the stats stream. Engine calls are
// never retried; a failed Docker operation is not assumed safe to
// replay.
type Executor struct {
	engine   engine.API
	scout    scout.Scanner
	cfg      *config.Config
	log      zerolog.Logger
	handlers map[string]handlerFunc
}

// NewExecutor wires the executor to the engine adapter and the scout
// scanner.
func NewExecutor(eng engine.API, sc scout.Scanner, cfg *config.Config, log zerolog.Logger) *Executor {
	e := &Executor{
		engine: eng,
		scout:  sc,
		cfg:    cfg,
		log:    log.With().Str("component", "executor").Logger(),
	}
	e.handlers = map[string]handlerFunc{
		OpListContainers:       e.listContainers,
		OpCreateContainer:      e.createContainer,
		OpRunContainer:         e.runContainer,
		OpStartContainer:       e.startContainer,
		OpStopContainer:        e.stopContainer,
		OpRemoveContainer:      e.removeContainer,
		OpInspectContainer:     e.inspectContainer,
		OpGetContainerStats:    e.getContainerStats,
		OpListImages:           e.listImages,
		OpPullImage:            e.pullImage,
		OpTagImage:             e.tagImage,
		OpPushImage:            e.pushImage,
		OpBuildImage:           e.buildImage,
		OpListNetworks:         e.listNetworks,
		OpListVolumes:          e.listVolumes,
		OpScanImage:            e.scanImage,
		OpImageRecommendations: e.imageRecommendations,
	}
	return e
}

// Execute runs the named operation. The dispatcher guarantees the name
// is registered before calling.
func (e *Executor) Execute(ctx context.Context, name string, args Args) (any, error) {
	h, ok := e.handlers[name]
	if !ok {
		return nil, apperrors.Newf(apperrors.CodeUnknownOperation, "operation %q has no executor", name)
	}
	return h(ctx, args)
}

// runBounded runs fn under a wall-clock deadline and converts deadline
// expiry into a TIMEOUT failure, distinct from an engine failure.
// Cancellation is best-effort: abandoning the client-side call does not
// guarantee the engine-side operation stops.
func (e *Executor) runBounded(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	err := fn(ctx)
	if err == nil {
		return nil
	}
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) && !apperrors.IsCode(err, apperrors.CodeTimeout) {
		return apperrors.Wrap(apperrors.CodeTimeout,
			"operation exceeded its deadline (engine-side work may continue)", err)
	}
	return err
}
