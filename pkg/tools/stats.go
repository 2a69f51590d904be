package tools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

// statsCursor is a pull-based reader over one engine stats
// subscription. It is owned by a single invocation; Close tears down
// the engine-side subscription and must run on every exit path.
type statsCursor struct {
	body io.ReadCloser
	dec  *json.Decoder
}

func newStatsCursor(body io.ReadCloser) *statsCursor {
	return &statsCursor{body: body, dec: json.NewDecoder(body)}
}

// next returns the following snapshot in strict arrival order. io.EOF
// signals a clean end of the subscription, which the engine produces
// when the container leaves the running state.
func (c *statsCursor) next() (container.StatsResponse, error) {
	var s container.StatsResponse
	if err := c.dec.Decode(&s); err != nil {
		return container.StatsResponse{}, err
	}
	return s, nil
}

func (c *statsCursor) close() error {
	return c.body.Close()
}

func (e *Executor) getContainerStats(ctx context.Context, args Args) (any, error) {
	id := args.String("container_id")

	if !args.Bool("stream") {
		rdr, err := e.engine.ContainerStats(ctx, id, false)
		if err != nil {
			return nil, err
		}
		cur := newStatsCursor(rdr.Body)
		defer cur.close()
		snap, err := cur.next()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeEngineFailure, "reading stats snapshot", err)
		}
		return StatsResult{Snapshot: projectStats(snap)}, nil
	}

	// Streaming mode: one initial snapshot plus a finite sequence,
	// bounded by the sample cap and the stats window. A read error
	// mid-stream ends the sequence; snapshots collected so far are
	// still returned.
	streamCtx, cancel := context.WithTimeout(ctx, e.cfg.StatsWindow)
	defer cancel()

	rdr, err := e.engine.ContainerStats(streamCtx, id, true)
	if err != nil {
		return nil, err
	}
	cur := newStatsCursor(rdr.Body)
	defer cur.close()

	initial, err := cur.next()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEngineFailure, "reading initial stats snapshot", err)
	}
	result := StatsResult{Snapshot: projectStats(initial)}

	for len(result.Stream) < e.cfg.StatsMaxSamples-1 {
		snap, err := cur.next()
		if err != nil {
			if !stderrors.Is(err, io.EOF) && streamCtx.Err() == nil {
				e.log.Debug().Err(err).Str("container", id).
					Msg("stats stream ended early, returning partial sequence")
			}
			break
		}
		if snap.Read.Equal(time.Time{}) {
			// The engine sends a zeroed record when the container
			// stops; the subscription is over.
			break
		}
		result.Stream = append(result.Stream, projectStats(snap))
	}
	return result, nil
}
