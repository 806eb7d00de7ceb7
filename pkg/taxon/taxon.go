package taxon

import (
	"context"
	"fmt"

	"github.com/silver-fir/taxon/internal/engine"
	"github.com/silver-fir/taxon/internal/engine/index"
	"github.com/silver-fir/taxon/internal/engine/loader"
	"github.com/silver-fir/taxon/internal/model"
)

// Errors surfaced by the detector. Compare with errors.Is.
var (
	// ErrNotReady: Detect called before a successful Load.
	ErrNotReady = index.ErrNotReady
	// ErrNoMatch: DetectCategory found no qualifying category.
	ErrNoMatch = engine.ErrNoMatch
	// ErrEmptySource: the taxonomy source yielded no entries.
	ErrEmptySource = loader.ErrEmptySource
)

// Detector ranks product taxonomy categories for free-text item titles.
// Create one with New, Load it once at startup, and reuse it across
// requests; all methods are safe for concurrent use.
type Detector struct {
	eng  *engine.Detector
	opts index.Options
}

// New creates a Detector from the given options. Exactly one source
// option (WithSourceURL, WithSourceFile, or WithSourceText) is required.
// The taxonomy is not fetched here; call Load.
func New(opts ...Option) (*Detector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.temperature <= 0 {
		return nil, fmt.Errorf("taxon: temperature must be positive, got %g", o.temperature)
	}
	detectOpts := index.Options{
		TopK:              o.topK,
		Temperature:       o.temperature,
		DisableHeuristics: !o.heuristics,
		MinDepth:          o.minDepth,
	}
	if err := detectOpts.Validate(); err != nil {
		return nil, fmt.Errorf("taxon: %w", err)
	}

	src, err := o.buildSource()
	if err != nil {
		return nil, err
	}

	return &Detector{
		eng:  engine.New(src),
		opts: detectOpts,
	}, nil
}

// Load fetches and indexes the taxonomy. It is a no-op after the first
// success, so it is cheap to call defensively; use Refresh to force a
// rebuild.
func (d *Detector) Load(ctx context.Context) error {
	return d.eng.Load(ctx)
}

// Refresh re-fetches the taxonomy and rebuilds the index atomically with
// respect to concurrent Detect calls.
func (d *Detector) Refresh(ctx context.Context) error {
	return d.eng.Refresh(ctx)
}

// Detect returns ranked category candidates for the title, using the
// detector's configured defaults.
func (d *Detector) Detect(title string) ([]Candidate, error) {
	candidates, err := d.eng.Detect(title, d.opts)
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, len(candidates))
	for i, c := range candidates {
		out[i] = candidateFromModel(c)
	}
	return out, nil
}

// DetectCategory returns the single best category for the title, or
// ErrNoMatch when nothing qualifies.
func (d *Detector) DetectCategory(title string) (Category, error) {
	match, err := d.eng.DetectCategory(title)
	if err != nil {
		return Category{}, err
	}
	return Category{ID: match.ID, Path: match.Path}, nil
}

// Stats reports the current index build.
func (d *Detector) Stats() Stats {
	st := d.eng.Stats()
	return Stats{Ready: st.Ready, Entries: st.Entries, VocabSize: st.VocabSize}
}

// Candidate is one ranked category.
// This is the stable public type; internal representations may evolve
// independently without breaking consumers.
type Candidate struct {
	ID          int      `json:"id"`
	Path        []string `json:"path"`
	Leaf        string   `json:"leaf"`
	Depth       int      `json:"depth"`
	Score       float64  `json:"score"`
	Probability float64  `json:"probability"`
}

// Category is the single best match returned by DetectCategory.
type Category struct {
	ID   int      `json:"id"`
	Path []string `json:"path"`
}

// Stats describes the current index build.
type Stats struct {
	Ready     bool `json:"ready"`
	Entries   int  `json:"entries"`
	VocabSize int  `json:"vocab_size"`
}

func candidateFromModel(c model.Candidate) Candidate {
	return Candidate{
		ID:          c.ID,
		Path:        c.Path,
		Leaf:        c.Leaf,
		Depth:       c.Depth,
		Score:       c.Score,
		Probability: c.Probability,
	}
}
