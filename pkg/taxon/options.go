package taxon

import (
	"errors"
	"time"

	"github.com/silver-fir/taxon/internal/engine/index"
	"github.com/silver-fir/taxon/internal/source"
)

type options struct {
	sourceURL   string
	sourceFile  string
	sourceText  string
	httpTimeout time.Duration
	cacheTTL    time.Duration

	topK        int
	temperature float64
	heuristics  bool
	minDepth    int
}

// Option configures a Detector.
type Option func(*options)

// WithSourceURL fetches the taxonomy listing from a URL, with retry and a
// stale-serving cache.
func WithSourceURL(url string) Option {
	return func(o *options) {
		o.sourceURL = url
	}
}

// WithSourceFile reads the taxonomy listing from a local file.
func WithSourceFile(path string) Option {
	return func(o *options) {
		o.sourceFile = path
	}
}

// WithSourceText uses an in-memory taxonomy listing. Useful for tests and
// embedded snapshots.
func WithSourceText(text string) Option {
	return func(o *options) {
		o.sourceText = text
	}
}

// WithHTTPTimeout sets the per-request timeout for a URL source.
// Default: 30s.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) {
		o.httpTimeout = d
	}
}

// WithCacheTTL sets how long a fetched listing stays fresh for a URL
// source. Default: 1h.
func WithCacheTTL(d time.Duration) Option {
	return func(o *options) {
		o.cacheTTL = d
	}
}

// WithTopK caps how many candidates Detect returns. Default: 8.
func WithTopK(k int) Option {
	return func(o *options) {
		o.topK = k
	}
}

// WithTemperature sets softmax sharpness; lower values concentrate
// probability on the top candidate. Must be positive. Default: 0.7.
func WithTemperature(t float64) Option {
	return func(o *options) {
		o.temperature = t
	}
}

// WithHeuristics toggles the depth and leaf-phrase score adjustments.
// Default: enabled.
func WithHeuristics(enabled bool) Option {
	return func(o *options) {
		o.heuristics = enabled
	}
}

// WithMinDepth excludes categories shallower than depth from Detect
// results entirely. Default: 1 (nothing excluded).
func WithMinDepth(depth int) Option {
	return func(o *options) {
		o.minDepth = depth
	}
}

func defaultOptions() options {
	return options{
		httpTimeout: 30 * time.Second,
		cacheTTL:    time.Hour,
		topK:        index.DefaultTopK,
		temperature: index.DefaultTemperature,
		heuristics:  true,
		minDepth:    index.DefaultMinDepth,
	}
}

// buildSource picks the configured taxonomy source. URL wins over file,
// file over text, matching how specific the operator's intent is.
func (o options) buildSource() (source.Source, error) {
	switch {
	case o.sourceURL != "":
		return source.NewHTTP(o.sourceURL,
			source.WithTimeout(o.httpTimeout),
			source.WithCacheTTL(o.cacheTTL)), nil
	case o.sourceFile != "":
		return source.NewFile(o.sourceFile), nil
	case o.sourceText != "":
		return source.Static(o.sourceText), nil
	}
	return nil, errors.New("taxon: no taxonomy source configured")
}
