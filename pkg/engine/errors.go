package engine

import (
	"context"
	stderrors "errors"

	"github.com/docker/docker/errdefs"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

// translate maps an engine-native error onto the shared taxonomy by its
// reported category, never by matching message text. A nil error stays
// nil; errors already in the taxonomy pass through unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if stderrors.As(err, &appErr) {
		return err
	}

	switch {
	case errdefs.IsNotFound(err):
		return apperrors.Wrap(apperrors.CodeNotFound, "no such object", err)
	case errdefs.IsConflict(err):
		return apperrors.Wrap(apperrors.CodeConflict, "conflicting object state", err)
	case errdefs.IsInvalidParameter(err):
		return apperrors.Wrap(apperrors.CodeInvalidArgument, "engine rejected parameters", err)
	case stderrors.Is(err, context.DeadlineExceeded) || errdefs.IsDeadline(err):
		return apperrors.Wrap(apperrors.CodeTimeout, "engine call exceeded its deadline", err)
	default:
		return apperrors.Wrap(apperrors.CodeEngineFailure, "engine call failed", err)
	}
}
