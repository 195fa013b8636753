// Package source loads datasets from files, URLs and MongoDB.
//
// A reference picks the backend by its form:
//
//	sales.csv                                  file (CSV or JSON by extension)
//	-                                          standard input
//	https://example.com/sales.csv              HTTP GET through httputil.Fetcher
//	mongodb://localhost:27017/shop/sales       MongoDB database "shop", collection "sales"
package source

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/stackbar/pkg/chart/data"
	"github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/httputil"
	dsio "github.com/matzehuels/stackbar/pkg/io"
)

// Kind names a source backend.
type Kind string

const (
	KindFile  Kind = "file"
	KindStdin Kind = "stdin"
	KindHTTP  Kind = "http"
	KindMongo Kind = "mongo"
)

// KindOf classifies ref.
func KindOf(ref string) Kind {
	switch {
	case ref == "-":
		return KindStdin
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return KindHTTP
	case strings.HasPrefix(ref, "mongodb://"), strings.HasPrefix(ref, "mongodb+srv://"):
		return KindMongo
	}
	return KindFile
}

// Loader resolves dataset references.
type Loader struct {
	// Fetcher serves HTTP references. Nil means an uncached fetcher.
	Fetcher *httputil.Fetcher
	// Stdin serves "-". Nil means os.Stdin.
	Stdin io.Reader
	// Format forces "csv" or "json" for files, stdin and URLs.
	Format string
}

// Load reads the dataset ref points at.
func (l *Loader) Load(ctx context.Context, ref string) (*data.Table, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no dataset given")
	}
	switch KindOf(ref) {
	case KindStdin:
		in := l.Stdin
		if in == nil {
			in = os.Stdin
		}
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return dsio.Decode(b, l.Format)
	case KindHTTP:
		return l.loadHTTP(ctx, ref)
	case KindMongo:
		return LoadMongo(ctx, ref)
	}
	return l.loadFile(ref)
}

func (l *Loader) loadFile(path string) (*data.Table, error) {
	if l.Format == "" {
		return dsio.ImportFile(path)
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return dsio.Decode(b, l.Format)
}

func (l *Loader) loadHTTP(ctx context.Context, url string) (*data.Table, error) {
	f := l.Fetcher
	if f == nil {
		f = httputil.NewFetcher(nil, nil)
	}
	b, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	format := l.Format
	if format == "" {
		format = dsio.FormatOf(url)
	}
	return dsio.Decode(b, format)
}
