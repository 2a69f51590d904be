package tools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/distribution/reference"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/pkg/jsonmessage"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
)

func (e *Executor) listImages(ctx context.Context, args Args) (any, error) {
	list, err := e.engine.ListImages(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ImageInfo, 0, len(list))
	for _, img := range list {
		out = append(out, projectImageInfo(img))
	}
	return out, nil
}

func (e *Executor) pullImage(ctx context.Context, args Args) (any, error) {
	ref, err := imageRef(args.String("repository"), args.String("tag"))
	if err != nil {
		return nil, err
	}

	result := PullResult{Reference: ref}
	err = e.runBounded(ctx, e.cfg.PullTimeout, func(ctx context.Context) error {
		rdr, err := e.engine.PullImage(ctx, ref)
		if err != nil {
			return err
		}
		defer rdr.Close()
		logs, err := collectProgress(rdr, nil)
		result.Logs = logs
		return err
	})
	if err != nil {
		return nil, err
	}

	if info, err := e.engine.InspectImage(ctx, ref); err == nil {
		result.ID = info.ID
		result.Tags = info.RepoTags
	}
	return result, nil
}

func (e *Executor) tagImage(ctx context.Context, args Args) (any, error) {
	target, err := imageRef(args.String("repository"), args.String("tag"))
	if err != nil {
		return nil, err
	}
	source := args.String("image_reference")
	if err := e.engine.TagImage(ctx, source, target); err != nil {
		return nil, err
	}
	return Ack{ID: target, Status: "tagged"}, nil
}

func (e *Executor) pushImage(ctx context.Context, args Args) (any, error) {
	ref, err := imageRef(args.String("repository"), args.String("tag"))
	if err != nil {
		return nil, err
	}
	auth, err := encodeAuth(args.StringMap("auth_config"))
	if err != nil {
		return nil, err
	}

	result := PushResult{Reference: ref}
	err = e.runBounded(ctx, e.cfg.PushTimeout, func(ctx context.Context) error {
		rdr, err := e.engine.PushImage(ctx, ref, auth)
		if err != nil {
			return err
		}
		defer rdr.Close()
		logs, err := collectProgress(rdr, nil)
		result.Logs = logs
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Executor) scanImage(ctx context.Context, args Args) (any, error) {
	var report any
	err := e.runBounded(ctx, e.cfg.ScoutTimeout, func(ctx context.Context) error {
		r, err := e.scout.CVEs(ctx, args.String("image_reference"))
		report = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (e *Executor) imageRecommendations(ctx context.Context, args Args) (any, error) {
	var recs any
	err := e.runBounded(ctx, e.cfg.ScoutTimeout, func(ctx context.Context) error {
		r, err := e.scout.Recommendations(ctx, args.String("image_reference"))
		recs = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// imageRef validates and normalizes a repository plus tag into a
// familiar image reference, e.g. ("nginx", "alpine") -> "nginx:alpine".
func imageRef(repository, tag string) (string, error) {
	named, err := reference.ParseNormalizedNamed(repository)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidArgument,
			fmt.Sprintf("invalid repository %q", repository), err)
	}
	if tag == "" {
		tag = "latest"
	}
	tagged, err := reference.WithTag(reference.TrimNamed(named), tag)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidArgument,
			fmt.Sprintf("invalid tag %q", tag), err)
	}
	return reference.FamiliarString(tagged), nil
}

// encodeAuth renders caller-supplied registry credentials into the
// engine's X-Registry-Auth header value. The engine expects the header
// on push even when no credentials are needed.
func encodeAuth(auth map[string]string) (string, error) {
	cfg := registry.AuthConfig{
		Username:      auth["username"],
		Password:      auth["password"],
		ServerAddress: auth["serveraddress"],
	}
	encoded, err := registry.EncodeAuthConfig(cfg)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidArgument, "unencodable auth_config", err)
	}
	return encoded, nil
}

// collectProgress drains a jsonmessage stream, keeping the ordered,
// append-only sequence of human-readable lines. An in-stream error
// record aborts with an engine failure; onAux, when set, receives raw
// aux payloads (the classic builder reports the image ID this way).
func collectProgress(r io.Reader, onAux func(raw []byte)) ([]string, error) {
	var logs []string
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if stderrors.Is(err, io.EOF) {
				return logs, nil
			}
			return logs, apperrors.Wrap(apperrors.CodeEngineFailure, "unreadable engine progress stream", err)
		}
		if msg.Error != nil {
			return logs, apperrors.Wrap(apperrors.CodeEngineFailure, "engine reported an error",
				stderrors.New(msg.Error.Message))
		}
		if msg.Aux != nil && onAux != nil {
			onAux(*msg.Aux)
		}
		if line := progressLine(msg); line != "" {
			logs = append(logs, line)
		}
	}
}

func progressLine(msg jsonmessage.JSONMessage) string {
	if msg.Stream != "" {
		return strings.TrimRight(msg.Stream, "\n")
	}
	if msg.Status == "" {
		return ""
	}
	if msg.ID != "" {
		return msg.ID + ": " + msg.Status
	}
	return msg.Status
}
