package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
	"github.com/kalyanram262/docker-mcp-server/pkg/tools"
)

// HTTPServer exposes every operation as POST /tools/{name} with a JSON
// body holding the raw argument map, plus a liveness endpoint. The
// transport accepts concurrent requests; isolation between invocations
// is the dispatcher's contract.
type HTTPServer struct {
	dispatcher *tools.Dispatcher
	log        zerolog.Logger
	addr       string
}

// NewHTTP builds the HTTP binding.
func NewHTTP(dispatcher *tools.Dispatcher, addr string, log zerolog.Logger) *HTTPServer {
	return &HTTPServer{
		dispatcher: dispatcher,
		log:        log.With().Str("component", "http").Logger(),
		addr:       addr,
	}
}

// Router returns the request router. Split out for tests.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/tools", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/tools/{name}", s.handleInvoke).Methods(http.MethodPost)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- httpServer.ListenAndServe()
	}()
	s.log.Info().Str("addr", s.addr).Msg("http transport listening")

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down http transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-done:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// handleHealth reports process liveness only; it deliberately does not
// probe engine reachability.
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request) {
	type toolInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Schema      any    `json:"input_schema"`
	}
	descs := s.dispatcher.Descriptors()
	out := make([]toolInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, toolInfo{Name: d.Name, Description: d.Description, Schema: d.InputSchema()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": out})
}

func (s *HTTPServer) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	raw := map[string]any{}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, tools.Fail(
				apperrors.Wrap(apperrors.CodeInvalidArgument, "request body is not a JSON object", err)))
			return
		}
	}

	result := s.dispatcher.Dispatch(r.Context(), name, raw)
	writeJSON(w, statusFor(result), result)
}

// statusFor maps the failure taxonomy onto HTTP status codes.
func statusFor(res *tools.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Error.Code {
	case apperrors.CodeUnknownOperation, apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeMissingArgument, apperrors.CodeUnknownArgument, apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeConflict:
		return http.StatusConflict
	case apperrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
