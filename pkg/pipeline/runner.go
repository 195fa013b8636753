package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/httputil"
	dsio "github.com/matzehuels/stackbar/pkg/io"
	"github.com/matzehuels/stackbar/pkg/observability"
	"github.com/matzehuels/stackbar/pkg/render/sink"
	"github.com/matzehuels/stackbar/pkg/source"
)

// Runner executes the pipeline with caching. It keeps no per-run state, so
// one Runner can serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *source.Loader
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// [cache.DefaultKeyer] and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: &source.Loader{Fetcher: httputil.NewFetcher(c, keyer)},
	}
}

// Execute runs load → build → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	opts = result.opts

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered chart",
		"id", result.ChartID,
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// Build loads the dataset and lays the chart out without rendering.
func (r *Runner) Build(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	result := &Result{ChartID: uuid.NewString(), opts: opts}

	loadStart := time.Now()
	ds, hit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Rows, result.Stats.Columns = ds.RowCount(), ds.ColumnCount()
	result.CacheInfo.LoadHit = hit
	if b, err := dsio.MarshalJSON(ds); err == nil {
		result.DatasetHash = cache.Hash(b)
	}

	opts.Logger.Debug("loaded dataset",
		"source", sourceName(opts),
		"series", ds.RowCount(),
		"categories", ds.ColumnCount(),
		"cached", hit)

	p, err := opts.Chart.Build(ds)
	if err != nil {
		return nil, err
	}
	groups := p.Renderer(0).GroupMap().Count()

	hooks := observability.Pipeline()
	hooks.OnDrawStart(ctx, groups, ds.RowCount()*ds.ColumnCount())
	drawStart := time.Now()
	result.Plot = p
	result.Frame = sink.Measure(p, opts.SinkOptions()...)
	result.Stats.DrawTime = time.Since(drawStart)
	result.Stats.Groups = groups
	result.Stats.Items = result.Frame.Pass.Items
	hooks.OnDrawComplete(ctx, result.Stats.Items, result.Stats.DrawTime)

	opts.Logger.Debug("laid out chart",
		"groups", groups,
		"items", result.Stats.Items,
		"range", result.Frame.Pass.Range)
	return result, nil
}

// LoadWithCacheInfo returns the dataset and whether it came from the cache.
// Only remote sources are cached; files and stdin are always read.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*data.Table, bool, error) {
	if opts.Dataset != nil {
		return opts.Dataset, false, nil
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()

	kind := source.KindOf(opts.Source)
	cacheable := kind == source.KindHTTP || kind == source.KindMongo
	key := r.Keyer.DatasetKey(opts.Source)

	if cacheable && !opts.Refresh {
		if b, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			if ds, err := dsio.UnmarshalJSON(b); err == nil {
				hooks.OnLoadComplete(ctx, opts.Source, ds.RowCount(), ds.ColumnCount(), time.Since(start), nil)
				return ds, true, nil
			}
		}
	}

	var loader source.Loader
	if r.Loader != nil {
		loader = *r.Loader
	}
	loader.Format = opts.InputFormat
	if opts.Refresh && loader.Fetcher != nil {
		f := *loader.Fetcher
		f.Cache = cache.NewNullCache()
		loader.Fetcher = &f
	}
	ds, err := loader.Load(ctx, opts.Source)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLoadComplete(ctx, opts.Source, ds.RowCount(), ds.ColumnCount(), time.Since(start), nil)

	if cacheable {
		if b, err := dsio.MarshalJSON(ds); err == nil {
			_ = r.Cache.Set(ctx, key, b, cache.TTLDataset)
		}
	}
	return ds, false, nil
}

// RenderWithCacheInfo renders every requested format, reusing cached
// artifacts when all of them are present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	if !opts.Refresh && result.DatasetHash != "" {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(result.DatasetHash, opts.ArtifactKeyOpts(format))
			b, ok, err := r.Cache.Get(ctx, key)
			if err != nil || !ok {
				break
			}
			artifacts[format] = b
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
	}

	artifacts, err := Render(ctx, result.Plot, opts.Formats, opts.SinkOptions()...)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if result.DatasetHash != "" {
		for format, b := range artifacts {
			key := r.Keyer.ArtifactKey(result.DatasetHash, opts.ArtifactKeyOpts(format))
			_ = r.Cache.Set(ctx, key, b, cache.TTLArtifact)
		}
	}
	return artifacts, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func sourceName(opts Options) string {
	if opts.Dataset != nil {
		return "inline"
	}
	return opts.Source
}
