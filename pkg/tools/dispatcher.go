package tools

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

// Dispatcher is the single entry point for the transports. It routes an
// operation name to its descriptor, normalizes the arguments, executes
// and returns a fully-populated Result. No error or panic ever crosses
// this boundary.
type Dispatcher struct {
	exec  *Executor
	log   zerolog.Logger
	index map[string]Descriptor
}

// NewDispatcher builds a dispatcher over the registered operation
// table.
func NewDispatcher(exec *Executor, log zerolog.Logger) *Dispatcher {
	index := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		index[d.Name] = d
	}
	return &Dispatcher{
		exec:  exec,
		log:   log.With().Str("component", "dispatcher").Logger(),
		index: index,
	}
}

// Descriptors returns the operation table for transports to expose.
func (d *Dispatcher) Descriptors() []Descriptor {
	return Descriptors()
}

// Dispatch executes one invocation and always produces exactly one
// Result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, raw map[string]any) (res *Result) {
	start := time.Now()
	log := d.log.With().Str("invocation", uuid.NewString()).Str("operation", name).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("operation panicked")
			res = Fail(apperrors.Newf(apperrors.CodeEngineFailure, "internal failure executing %s", name))
		}
	}()

	desc, ok := d.index[name]
	if !ok {
		log.Warn().Msg("unknown operation")
		return Fail(apperrors.Newf(apperrors.CodeUnknownOperation, "unknown operation %q", name))
	}

	args, err := Normalize(desc, raw)
	if err != nil {
		log.Warn().Err(err).Msg("argument normalization failed")
		return Fail(err)
	}

	payload, err := d.exec.Execute(ctx, name, args)
	if err != nil {
		log.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("operation failed")
		return Fail(err)
	}

	log.Debug().Dur("elapsed", time.Since(start)).Msg("operation succeeded")
	return Succeed(payload)
}
