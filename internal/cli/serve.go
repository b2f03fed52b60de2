package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/lhartmann/forcefield/internal/demo"
	"github.com/lhartmann/forcefield/pkg/buildinfo"
	apperrors "github.com/lhartmann/forcefield/pkg/errors"
	"github.com/lhartmann/forcefield/pkg/graph"
	"github.com/lhartmann/forcefield/pkg/observability"
	"github.com/lhartmann/forcefield/pkg/pipeline"
)

// shutdownGrace bounds how long in-flight requests may finish after the
// serve context is cancelled.
const shutdownGrace = 10 * time.Second

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	apperrors.FormatSVG:  "image/svg+xml",
	apperrors.FormatDOT:  "text/vnd.graphviz",
	apperrors.FormatJSON: "application/json",
	apperrors.FormatPNG:  "image/png",
}

// newServeCmd creates the serve command exposing the pipeline over HTTP.
func newServeCmd() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Endpoints:
  GET  /healthz          liveness probe
  GET  /version          build information
  GET  /demo/{name}      render a built-in dataset (?format=svg&nodes=24)
  POST /render           render a posted graph

POST /render accepts {"graph": {...}, "options": {...}} and responds
with the first requested format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if addr == "" {
				addr = cfg.Server.Addr
			}
			return runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8466)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func runServe(ctx context.Context, addr string, noCache bool) error {
	logger := loggerFromContext(ctx)

	runner, err := newRunner(ctx, configFromContext(ctx), noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(runner),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// newRouter builds the chi router with all endpoints registered.
func newRouter(runner *pipeline.Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware)

	r.Get("/healthz", handleHealthz)
	r.Get("/version", handleVersion)
	r.Get("/demo/{name}", handleDemo(runner))
	r.Post("/render", handleRender(runner))

	return r
}

// hookMiddleware reports request lifecycle events to the registered
// observability hooks.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		observability.HTTP().OnRequest(ctx, req.Method, req.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		observability.HTTP().OnResponse(ctx, req.Method, req.URL.Path, ww.Status(), time.Since(start))
	})
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// renderRequest is the body accepted by POST /render.
type renderRequest struct {
	Graph   *graph.Graph     `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// handleRender renders a posted graph and responds with the first
// requested format.
func handleRender(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body renderRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeError(w, req, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
			return
		}
		if body.Graph == nil {
			writeError(w, req, apperrors.New(apperrors.ErrCodeInvalidInput, "missing graph"))
			return
		}
		serveArtifact(w, req, runner, body.Graph, body.Options)
	}
}

// handleDemo renders a built-in dataset.
func handleDemo(runner *pipeline.Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		size, _ := strconv.Atoi(req.URL.Query().Get("nodes"))

		g, err := demo.Build(name, size)
		if err != nil {
			writeError(w, req, err)
			return
		}

		var opts pipeline.Options
		opts.Labels = req.URL.Query().Get("labels") == "true"
		opts.Theme = req.URL.Query().Get("theme")
		serveArtifact(w, req, runner, g, opts)
	}
}

// serveArtifact runs the pipeline and writes one artifact, chosen by the
// format query parameter (overriding the options).
func serveArtifact(w http.ResponseWriter, req *http.Request, runner *pipeline.Runner, g *graph.Graph, opts pipeline.Options) {
	if format := req.URL.Query().Get("format"); format != "" {
		opts.Formats = []string{format}
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{apperrors.FormatSVG}
	}

	result, err := runner.Execute(req.Context(), g, opts)
	if err != nil {
		writeError(w, req, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// writeError reports the failure to the HTTP hooks, maps application
// error codes to HTTP statuses, and emits a JSON error body.
func writeError(w http.ResponseWriter, req *http.Request, err error) {
	observability.HTTP().OnError(req.Context(), req.Method, req.URL.Path, err)

	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidDataset,
		apperrors.ErrCodeUnknownNode:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeRateLimited:
		status = http.StatusTooManyRequests
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": apperrors.UserMessage(err),
	})
}
