// Package engine wires the taxonomy source, loader, and similarity index
// into a category detector. Construction is explicit: callers create a
// Detector, Load it once at startup, and Refresh it on whatever cadence
// the taxonomy source warrants. There is no hidden first-call
// initialization.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/silver-fir/taxon/internal/engine/index"
	"github.com/silver-fir/taxon/internal/engine/loader"
	"github.com/silver-fir/taxon/internal/model"
	"github.com/silver-fir/taxon/internal/source"
)

// ErrNoMatch is returned by DetectCategory when ranking yields no
// candidates at all, for example when the depth filter excludes every
// entry. It is never silently converted to a default category.
var ErrNoMatch = errors.New("engine: no category matched")

// Fixed defaults for the single-best-category operation: a slightly
// tighter candidate pool, and root categories excluded since a bare root
// is never a useful product category.
const (
	bestTopK     = 6
	bestMinDepth = 2
)

// Detector turns item titles into ranked taxonomy categories.
// Detect and DetectCategory are safe for concurrent use, including
// concurrently with Load and Refresh.
type Detector struct {
	src   source.Source
	index *index.Index

	mu     sync.Mutex // serializes Load/Refresh
	loaded bool
}

// New creates a Detector over the given taxonomy source. Call Load before
// detecting.
func New(src source.Source) *Detector {
	return &Detector{
		src:   src,
		index: index.New(),
	}
}

// Load fetches, parses, and ingests the taxonomy. It runs the full cycle
// at most once; later calls are no-ops so callers don't rebuild the index
// redundantly. Use Refresh to force a rebuild.
func (d *Detector) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}
	return d.rebuild(ctx)
}

// Refresh re-fetches the taxonomy and rebuilds the index. Concurrent
// Detect calls see either the old build or the new one, never a partial
// state.
func (d *Detector) Refresh(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rebuild(ctx)
}

// rebuild runs fetch → parse → ingest. Caller holds d.mu.
func (d *Detector) rebuild(ctx context.Context) error {
	raw, err := d.src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	entries, err := loader.Parse(raw)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	d.index.Ingest(entries)
	d.loaded = true

	st := d.index.Stats()
	slog.Info("taxonomy ingested", "entries", st.Entries, "vocab", st.VocabSize)
	return nil
}

// Detect ranks categories for the title. Returns index.ErrNotReady if
// Load has never succeeded.
func (d *Detector) Detect(title string, opts index.Options) ([]model.Candidate, error) {
	return d.index.Detect(title, opts)
}

// DetectCategory returns the single best category for the title, using
// fixed defaults, or ErrNoMatch when nothing qualifies.
func (d *Detector) DetectCategory(title string) (model.Match, error) {
	candidates, err := d.index.Detect(title, index.Options{
		TopK:     bestTopK,
		MinDepth: bestMinDepth,
	})
	if err != nil {
		return model.Match{}, err
	}
	if len(candidates) == 0 {
		return model.Match{}, ErrNoMatch
	}
	best := candidates[0]
	return model.Match{ID: best.ID, Path: best.Path}, nil
}

// Stats exposes the underlying index build stats.
func (d *Detector) Stats() index.Stats {
	return d.index.Stats()
}
