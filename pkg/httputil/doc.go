// Package httputil fetches remote datasets over HTTP.
//
// [Fetcher] performs GET requests with [Retry] around transient failures
// (connection errors, 429 and 5xx responses) and keeps response bodies in a
// [cache.Cache] keyed by URL, so repeated renders of the same remote CSV do
// not hit the network.
//
//	f := httputil.NewFetcher(c, cache.NewDefaultKeyer())
//	body, err := f.Get(ctx, "https://example.com/sales.csv")
package httputil
