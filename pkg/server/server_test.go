package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

const salesBody = `{
  "dataset": {
    "series": ["Apples (US)", "Apples (EU)", "Pears (US)"],
    "categories": ["Q1", "Q2"],
    "values": [[1, 3], [2, -1], [4, null]]
  },
  "config": {
    "title": "Sales",
    "default_group": "US",
    "groups": [{"name": "EU", "series": ["Apples (EU)"]}]
  }
}`

func newTestServer(t *testing.T, c cache.Cache, allowHosts ...string) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(c, cache.NewScopedKeyer(nil, "test:"), logger), logger)
	s.AllowedHosts = allowHosts
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])

	_, err = uuid.Parse(resp.Header.Get(RequestIDHeader))
	assert.NoError(t, err, "every response carries a request id")
}

func TestRequestIDIsKeptWhenWellFormed(t *testing.T) {
	ts := newTestServer(t, nil)
	id := uuid.NewString()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	req.Header.Set(RequestIDHeader, "not-a-uuid")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.NotEqual(t, "not-a-uuid", resp2.Header.Get(RequestIDHeader))
}

func TestRenderSVG(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/v1/render", salesBody)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Chart-Id"))
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	svg := readAll(t, resp)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "Sales")
}

func TestRenderFormatFromQuery(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/v1/render?format=json", salesBody)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "vertical", body["orientation"])
}

func TestRenderCachedOnSecondRequest(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	ts := newTestServer(t, fc)

	first := post(t, ts.URL+"/v1/render", salesBody)
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, "miss", first.Header.Get("X-Cache"))

	second := post(t, ts.URL+"/v1/render", salesBody)
	require.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, "hit", second.Header.Get("X-Cache"))
	assert.Equal(t, readAll(t, first), readAll(t, second))
}

func TestRenderCSV(t *testing.T) {
	ts := newTestServer(t, nil)
	body := `{"csv": "series,Q1\nA,1\nB,2\n", "format": "json"}`
	resp := post(t, ts.URL+"/v1/render", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRange(t *testing.T) {
	ts := newTestServer(t, nil)
	resp := post(t, ts.URL+"/v1/range", salesBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body RangeResponse
	decodeBody(t, resp, &body)
	require.NotNil(t, body.Range)
	// US stacks 1+4 in Q1; EU goes to -1 in Q2.
	assert.Equal(t, -1.0, body.Range.Lower)
	assert.Equal(t, 5.0, body.Range.Upper)
	assert.Equal(t, []string{"US", "EU"}, body.Groups)
	assert.Equal(t, 5, body.Items)
	assert.Len(t, body.BarWidth, 1)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"not json", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"no dataset", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"local source", `{"source": "/etc/passwd"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", `{"csv": "s,Q1\nA,1\n", "format": "gif"}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad config", `{"csv": "s,Q1\nA,1\n", "config": {"width": -1}}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"bad dataset", `{"csv": "s,Q1\nA,x\n"}`, http.StatusBadRequest, errors.ErrCodeInvalidDataset},
		{"huge chart", `{"csv": "s,Q1\nA,1\n", "config": {"width": 1e9, "height": 1e9}, "format": "png"}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"huge png", `{"csv": "s,Q1\nA,1\n", "config": {"width": 9000, "height": 9000}, "format": "png"}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"huge scale", `{"csv": "s,Q1\nA,1\n", "format": "png", "scale": 1e6}`, http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"remote source not allowed", `{"source": "http://169.254.169.254/latest/meta-data"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body errorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, resp.Header.Get(RequestIDHeader), body.RequestID)
		})
	}
}

func TestRemoteSourceNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(upstream.Close)
	ts := newTestServer(t, nil, "127.0.0.1")

	resp := post(t, ts.URL+"/v1/render", fmt.Sprintf(`{"source": %q}`, upstream.URL+"/sales.csv"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRemoteSourceAllowList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "series,Q1\nA,1\n")
	}))
	t.Cleanup(upstream.Close)
	body := fmt.Sprintf(`{"source": %q, "format": "json"}`, upstream.URL+"/sales.csv")

	refused := post(t, newTestServer(t, nil).URL+"/v1/render", body)
	assert.Equal(t, http.StatusBadRequest, refused.StatusCode)

	other := post(t, newTestServer(t, nil, "data.example.com").URL+"/v1/render", body)
	assert.Equal(t, http.StatusBadRequest, other.StatusCode)

	listed := post(t, newTestServer(t, nil, "127.0.0.1").URL+"/v1/render", body)
	assert.Equal(t, http.StatusOK, listed.StatusCode)

	wildcard := post(t, newTestServer(t, nil, "*").URL+"/v1/render", body)
	assert.Equal(t, http.StatusOK, wildcard.StatusCode)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidArgument, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeNetwork, "x"), http.StatusBadGateway},
		{errors.New(errors.ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), "%v", tt.err)
	}
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
