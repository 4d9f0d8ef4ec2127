// Package httputil fetches chart documents over HTTP.
//
// [Fetcher] downloads a document with retries and keeps the body in a
// file-based [Cache] for a while, so re-rendering a remote chart does not
// hit the server each time:
//
//	cache, _ := httputil.NewCache("", time.Hour)
//	f := httputil.NewFetcher(cache)
//	doc, err := f.Fetch(ctx, "https://example.com/charts/sales.yaml")
//	c, err := io.ParseChart(doc.Body, io.DetectFormat(url, doc.Body))
//
// Network errors, 5xx responses and 429 responses are retried with
// exponential backoff by [Retry]; other statuses fail at once.
package httputil
