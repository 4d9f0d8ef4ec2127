package cli

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/buildinfo"
	"github.com/matzehuels/stackchart/pkg/chart"
	"github.com/matzehuels/stackchart/pkg/draw/sink"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/fonts"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	defaultMaxBody  = 1 << 20
	requestIDHeader = "X-Request-ID"
)

type serveOpts struct {
	addr    string
	timeout time.Duration
	maxBody int64
	cache   cacheFlags
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr, timeout: 30 * time.Second, maxBody: defaultMaxBody}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render server",
		Long: `Run an HTTP server that renders chart documents.

  POST /v1/render?format=svg&width=600&height=400   body: chart document
  GET  /v1/kinds                                    chart types, formats, fonts
  GET  /healthz
  GET  /version`,
		Example: `  stackchart serve --addr :8080 --redis redis://localhost:6379/0
  curl --data-binary @examples/sales.yaml -H 'Content-Type: application/yaml' \
      'localhost:8080/v1/render?format=png' > sales.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), opts.cache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.serve(cmd.Context(), runner, opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request timeout")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "largest accepted chart document in bytes")
	opts.cache.register(cmd)
	return cmd
}

// serve runs until ctx is cancelled, then drains in-flight requests.
func (c *CLI) serve(ctx context.Context, runner *pipeline.Runner, opts serveOpts) error {
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger, opts).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Listening on %s", StyleHighlight.Render("http://"+opts.addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   serveOpts
}

func newServer(runner *pipeline.Runner, logger *log.Logger, opts serveOpts) *server {
	if opts.maxBody <= 0 {
		opts.maxBody = defaultMaxBody
	}
	return &server{runner: runner, logger: logger, opts: opts}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(observe)
	r.Use(middleware.Recoverer)
	if s.opts.timeout > 0 {
		r.Use(middleware.Timeout(s.opts.timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		io.WriteString(w, "ok\n")
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/kinds", s.handleKinds)
		r.With(middleware.RequestSize(s.opts.maxBody)).Post("/render", s.handleRender)
	})
	return r
}

type kindsResponse struct {
	Kinds   []string `json:"kinds"`
	Formats []string `json:"formats"`
	Fonts   []string `json:"fonts"`
}

func (s *server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	formats := make([]string, len(sink.Formats))
	for i, f := range sink.Formats {
		formats[i] = string(f)
	}
	writeJSON(w, http.StatusOK, kindsResponse{Kinds: chart.Kinds(), Formats: formats, Fonts: fonts.Families()})
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := renderRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	format := opts.Formats[0]
	f, _ := sink.ParseFormat(format)
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("X-Chart-Kind", res.Kind)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifacts[format])
}

// renderRequest reads pipeline options from the query string and the
// document from the body. The input format comes from ?input= or the
// Content-Type header.
func renderRequest(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	doc, err := io.ReadAll(r.Body)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	opts := pipeline.Options{
		Document:    doc,
		Source:      "request",
		InputFormat: q.Get("input"),
		Background:  q.Get("background"),
		Title:       q.Get("title"),
		Refresh:     q.Get("refresh") == "true",
	}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	if opts.InputFormat == "" {
		opts.InputFormat = inputFromContentType(r.Header.Get("Content-Type"))
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		if v := q.Get(p.name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, v)
			}
			*p.dst = n
		}
	}
	if v := q.Get("scale"); v != "" {
		s, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale must be a number, got %q", v)
		}
		opts.Scale = s
	}
	return opts, nil
}

func inputFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch mt {
	case "application/json":
		return "json"
	case "application/toml":
		return "toml"
	case "application/yaml", "application/x-yaml", "text/yaml":
		return "yaml"
	}
	return ""
}

type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	Needed    float64     `json:"needed,omitempty"`
	Available float64     `json:"available,omitempty"`
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	resp := errorResponse{Code: code, Message: errors.UserMessage(err), RequestID: requestIDFrom(r.Context())}
	var se *errors.SpaceError
	if errors.As(err, &se) {
		resp.Needed, resp.Available = se.Needed, se.Available
	}
	status := httpStatus(code)
	if status >= 500 {
		s.logger.Error("render failed", "id", resp.RequestID, "err", err)
	}
	writeJSON(w, status, resp)
}

// httpStatus maps an error code to a response status.
func httpStatus(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidChartType:
		return http.StatusBadRequest
	case errors.ErrCodeEmptyDataset, errors.ErrCodeInvalidDatasets, errors.ErrCodeNotEnoughSpace, errors.ErrCodeFontLoading:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type requestIDKey struct{}

// requestID tags each request with a UUID, reusing a valid incoming
// X-Request-ID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// observe reports each request to the server hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestIDFrom(r.Context())
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), id, r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), id, r.Method, r.URL.Path, status, time.Since(start))
	})
}
