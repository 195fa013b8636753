package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/stackbar/pkg/buildinfo"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/config"
	"github.com/matzehuels/stackbar/pkg/errors"
	dsio "github.com/matzehuels/stackbar/pkg/io"
	"github.com/matzehuels/stackbar/pkg/pipeline"
	"github.com/matzehuels/stackbar/pkg/source"
)

// Request is the body of the POST endpoints.
type Request struct {
	Dataset json.RawMessage `json:"dataset,omitempty"`
	CSV     string          `json:"csv,omitempty"`
	Source  string          `json:"source,omitempty"`
	Config  json.RawMessage `json:"config,omitempty"`
	Format  string          `json:"format,omitempty"`
	Scale   float64         `json:"scale,omitempty"`
}

// RangeResponse is the body returned by /v1/range.
type RangeResponse struct {
	ChartID  string      `json:"chart_id"`
	Range    *data.Range `json:"range,omitempty"`
	Groups   []string    `json:"groups"`
	BarWidth []float64   `json:"bar_widths"`
	Items    int         `json:"items"`
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	body := result.Artifacts[format]
	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("X-Chart-Id", result.ChartID)
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.Runner.Build(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := RangeResponse{
		ChartID:  result.ChartID,
		Groups:   opts.Chart.GroupMap().Groups(),
		BarWidth: result.Frame.Pass.BarWidth,
		Items:    result.Frame.Pass.Items,
	}
	if result.Frame.Pass.HasRange {
		rng := result.Frame.Pass.Range
		resp.Range = &rng
	}
	writeJSON(w, http.StatusOK, resp)
}

// decode turns a request body into pipeline options. The ?format= query
// parameter wins over the body's format.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options

	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}

	switch {
	case len(req.Dataset) > 0:
		opts.Dataset, err = dsio.Decode(req.Dataset, "json")
	case req.CSV != "":
		opts.Dataset, err = dsio.Decode([]byte(req.CSV), "csv")
	case req.Source != "":
		if source.KindOf(req.Source) != source.KindHTTP {
			return opts, errors.New(errors.ErrCodeInvalidInput, "source must be an http or https URL")
		}
		if !s.allowsSource(req.Source) {
			return opts, errors.New(errors.ErrCodeInvalidInput, "source host is not allowed")
		}
		opts.Source = req.Source
	default:
		return opts, errors.New(errors.ErrCodeInvalidInput, "one of dataset, csv or source is required")
	}
	if err != nil {
		return opts, err
	}

	chart, err := config.DecodeJSON(req.Config)
	if err != nil {
		return opts, err
	}
	opts.Chart = &chart

	format := r.URL.Query().Get("format")
	if format == "" {
		format = req.Format
	}
	if format != "" {
		opts.Formats = []string{format}
	}
	opts.Scale = req.Scale
	opts.Logger = s.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// StatusOf maps an error code to an HTTP status.
func StatusOf(err error) int {
	switch code := errors.GetCode(err); {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case code == errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      errors.GetCode(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
