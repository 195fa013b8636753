// Package label produces the text attached to chart items: item labels drawn
// next to bars, tooltips, and link targets for image maps.
//
// Templates use positional placeholders:
//
//	{0}  series key
//	{1}  category key
//	{2}  the item value
//	{3}  the item value as a percentage of its category total
//
// Numbers are formatted with golang.org/x/text so that grouping separators
// follow the configured locale.
package label

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/stackbar/pkg/chart/data"
)

// Generator produces the text for one dataset item.
type Generator interface {
	GenerateLabel(ds data.Dataset, row, column int) string
}

// URLGenerator produces a link target for one dataset item.
type URLGenerator interface {
	GenerateURL(ds data.Dataset, row, column int) string
}

const (
	// DefaultLabelFormat shows the bare value.
	DefaultLabelFormat = "{2}"
	// DefaultToolTipFormat names the series and category alongside the value.
	DefaultToolTipFormat = "({0}, {1}) = {2}"
)

// Standard fills a template with item values.
type Standard struct {
	format   string
	printer  *message.Printer
	decimals int
}

// Option configures a [Standard] generator.
type Option func(*Standard)

// WithLocale formats numbers for the given BCP 47 tag. Unknown tags fall
// back to English.
func WithLocale(tag string) Option {
	return func(s *Standard) {
		t, err := language.Parse(tag)
		if err != nil {
			t = language.English
		}
		s.printer = message.NewPrinter(t)
	}
}

// WithDecimals sets the maximum number of fraction digits printed for values.
func WithDecimals(n int) Option {
	return func(s *Standard) { s.decimals = max(0, n) }
}

// NewStandard returns a generator for format. An empty format uses
// [DefaultLabelFormat].
func NewStandard(format string, opts ...Option) *Standard {
	if format == "" {
		format = DefaultLabelFormat
	}
	s := &Standard{
		format:   format,
		printer:  message.NewPrinter(language.English),
		decimals: 2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Format returns the template this generator fills.
func (s *Standard) Format() string { return s.format }

// FormatValue formats v the way {2} is filled. Axis tick labels use it so
// that ticks and item labels agree.
func (s *Standard) FormatValue(v float64) string {
	return s.printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(s.decimals)))
}

// GenerateLabel implements [Generator]. Absent items produce an empty string.
func (s *Standard) GenerateLabel(ds data.Dataset, row, column int) string {
	v, ok := ds.Value(row, column)
	if !ok {
		return ""
	}
	r := strings.NewReplacer(
		"{0}", ds.RowKey(row),
		"{1}", ds.ColumnKey(column),
		"{2}", s.FormatValue(v),
		"{3}", s.printer.Sprintf("%v", number.Percent(share(ds, v, column), number.MaxFractionDigits(1))),
	)
	return r.Replace(s.format)
}

// share returns v as a fraction of the sum of present values in column.
func share(ds data.Dataset, v float64, column int) float64 {
	var total float64
	for r := range ds.RowCount() {
		if x, ok := ds.Value(r, column); ok {
			total += x
		}
	}
	if total == 0 {
		return 0
	}
	return v / total
}

// StandardURL links every item to Prefix with series and category query
// parameters, e.g. "index.html?series=A&category=Q1".
type StandardURL struct {
	Prefix            string
	SeriesParameter   string
	CategoryParameter string
}

// NewStandardURL returns a URL generator using the default parameter names.
func NewStandardURL(prefix string) *StandardURL {
	return &StandardURL{Prefix: prefix, SeriesParameter: "series", CategoryParameter: "category"}
}

// GenerateURL implements [URLGenerator].
func (u *StandardURL) GenerateURL(ds data.Dataset, row, column int) string {
	sep := "?"
	if strings.Contains(u.Prefix, "?") {
		sep = "&"
	}
	q := url.Values{}
	q.Set(u.SeriesParameter, ds.RowKey(row))
	q.Set(u.CategoryParameter, ds.ColumnKey(column))
	return u.Prefix + sep + q.Encode()
}
