package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/config"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
)

const salesCSV = `series,Q1,Q2,Q3
Apples,1,3,2
Pears,2,-1,
Plums,4,1,1
`

func sales() *data.Table {
	ds := data.NewTable()
	ds.SetValue(1, "Apples", "Q1")
	ds.SetValue(3, "Apples", "Q2")
	ds.SetValue(2, "Pears", "Q1")
	ds.SetValue(-1, "Pears", "Q2")
	return ds
}

func writeSales(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o644))
	return path
}

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(discard{}, log.Options{}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		formats []string
		wantErr bool
	}{
		{[]string{"svg", "png", "pdf", "json"}, false},
		{nil, false},
		{[]string{"svg", "invalid"}, true},
		{[]string{"SVG"}, true},
		{[]string{""}, true},
	}
	for _, tt := range tests {
		err := ValidateFormats(tt.formats)
		if tt.wantErr {
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "formats %v", tt.formats)
		} else {
			assert.NoError(t, err, "formats %v", tt.formats)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "sales.csv"}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, []string{FormatSVG}, opts.Formats)
	assert.Equal(t, 2.0, opts.Scale)
	assert.NotNil(t, opts.Logger)
	require.NotNil(t, opts.Chart)
	assert.Equal(t, config.Default().Width, opts.Chart.Width)
}

func TestOptionsOverridesDoNotTouchCallerChart(t *testing.T) {
	c := config.Default()
	opts := Options{
		Dataset:     sales(),
		Chart:       &c,
		Title:       "Fruit",
		Width:       400,
		Orientation: "horizontal",
	}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, "Fruit", opts.Chart.Title)
	assert.Equal(t, 400.0, opts.Chart.Width)
	assert.Equal(t, "horizontal", opts.Chart.Orientation)
	assert.Empty(t, c.Title)
	assert.Equal(t, 800.0, c.Width)
}

func TestOptionsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Dataset: sales(), Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad orientation", Options{Dataset: sales(), Orientation: "diagonal"}, errors.ErrCodeInvalidConfig},
		{"missing config", Options{Dataset: sales(), ConfigPath: "/no/such/chart.toml"}, errors.ErrCodeFileNotFound},
		{"negative scale", Options{Dataset: sales(), Scale: -1}, errors.ErrCodeInvalidConfig},
		{"huge scale", Options{Dataset: sales(), Scale: 100}, errors.ErrCodeInvalidConfig},
		{"huge png", Options{Dataset: sales(), Width: 9000, Height: 9000, Formats: []string{FormatPNG}}, errors.ErrCodeInvalidConfig},
		{"huge chart", Options{Dataset: sales(), Width: 1e9, Height: 1e9}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestArtifactKeyOptsScaleOnlyForPNG(t *testing.T) {
	opts := Options{Dataset: sales(), Scale: 3}
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Zero(t, opts.ArtifactKeyOpts(FormatSVG).Scale)
	assert.Equal(t, 3.0, opts.ArtifactKeyOpts(FormatPNG).Scale)
	assert.Equal(t, opts.Chart.Hash(), opts.ArtifactKeyOpts(FormatSVG).ConfigHash)
}

func TestExecuteInlineDataset(t *testing.T) {
	r := quietRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Dataset: sales(),
		Title:   "Fruit",
		Formats: []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ChartID)
	assert.NotEmpty(t, result.DatasetHash)
	assert.Equal(t, 2, result.Stats.Rows)
	assert.Equal(t, 2, result.Stats.Columns)
	assert.Equal(t, 1, result.Stats.Groups)
	assert.Equal(t, 4, result.Stats.Items)
	assert.Equal(t, 4, result.Frame.Entities.Len())
	assert.False(t, result.CacheInfo.LoadHit)
	assert.False(t, result.CacheInfo.RenderHit)

	require.Contains(t, result.Artifacts, FormatSVG)
	assert.True(t, strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg"))
	assert.Contains(t, string(result.Artifacts[FormatSVG]), "Fruit")
	assert.Contains(t, string(result.Artifacts[FormatJSON]), `"orientation"`)
}

func TestExecuteFileSource(t *testing.T) {
	r := quietRunner(nil)
	result, err := r.Execute(context.Background(), Options{Source: writeSales(t)})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.Rows)
	assert.Equal(t, 3, result.Stats.Columns)
	// Pears has no Q3 value.
	assert.Equal(t, 8, result.Stats.Items)
	assert.Equal(t, -1.0, result.Frame.Pass.Range.Lower)
}

func TestExecuteCachesArtifacts(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := quietRunner(fc)
	path := writeSales(t)

	first, err := r.Execute(context.Background(), Options{Source: path, Formats: []string{FormatSVG, FormatJSON}})
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(context.Background(), Options{Source: path, Formats: []string{FormatSVG, FormatJSON}})
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.False(t, second.CacheInfo.LoadHit, "local files are never cached")
	assert.Equal(t, first.DatasetHash, second.DatasetHash)
	assert.Equal(t, first.Artifacts, second.Artifacts)

	refreshed, err := r.Execute(context.Background(), Options{Source: path, Formats: []string{FormatSVG, FormatJSON}, Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.CacheInfo.RenderHit)

	retitled, err := r.Execute(context.Background(), Options{Source: path, Formats: []string{FormatSVG}, Title: "New"})
	require.NoError(t, err)
	assert.False(t, retitled.CacheInfo.RenderHit, "a new title is a new artifact")
}

func TestBuildDoesNotRender(t *testing.T) {
	r := quietRunner(nil)
	result, err := r.Build(context.Background(), Options{Dataset: sales()})
	require.NoError(t, err)
	assert.Nil(t, result.Artifacts)
	assert.NotNil(t, result.Plot)
	assert.True(t, result.Frame.Pass.HasRange)
}

func TestExecuteMissingFile(t *testing.T) {
	r := quietRunner(nil)
	_, err := r.Execute(context.Background(), Options{Source: filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)
}

func TestRenderUnsupportedFormat(t *testing.T) {
	opts := Options{Dataset: sales()}
	require.NoError(t, opts.ValidateAndSetDefaults())
	p, err := opts.Chart.Build(opts.Dataset)
	require.NoError(t, err)

	_, err = Render(context.Background(), p, []string{"gif"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	loads, draws, renders int
	items                 int
	formats               []string
}

func (h *recordingHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {
	h.loads++
}

func (h *recordingHooks) OnDrawComplete(_ context.Context, items int, _ time.Duration) {
	h.draws++
	h.items = items
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, _ error) {
	h.renders++
	h.formats = formats
}

func TestExecuteFiresHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	r := quietRunner(nil)
	_, err := r.Execute(context.Background(), Options{Source: writeSales(t), Formats: []string{FormatJSON}})
	require.NoError(t, err)

	assert.Equal(t, 1, hooks.loads)
	assert.Equal(t, 1, hooks.draws)
	assert.Equal(t, 8, hooks.items)
	assert.Equal(t, 1, hooks.renders)
	assert.Equal(t, []string{FormatJSON}, hooks.formats)
}
