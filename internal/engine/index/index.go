// Package index builds TF-IDF term vectors over taxonomy entries and
// scores free-text queries against them with cosine similarity. One Index
// serves many concurrent Detect calls; Ingest swaps in a fully built
// snapshot so readers never observe partial state.
package index

import (
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/silver-fir/taxon/internal/engine/normalizer"
	"github.com/silver-fir/taxon/internal/model"
)

// ErrNotReady is returned by Detect before the first Ingest, so callers
// can tell "no index" from "no match".
var ErrNotReady = errors.New("index: detect called before ingest")

// snapshot is one immutable build of the index. Everything inside is
// read-only once the snapshot is published.
type snapshot struct {
	entries []model.Entry
	vectors []vector          // aligned with entries
	leaves  []string          // lowercased leaf names, aligned with entries
	idf     map[string]float64
}

// vector is a sparse L2-normalized term-weight mapping.
type vector map[string]float64

// Index scores item titles against an ingested taxonomy.
// Detect is safe for concurrent use; Ingest may run concurrently with
// Detect calls and appears atomic to them.
type Index struct {
	mu   sync.RWMutex
	snap *snapshot
}

// New returns an empty Index. Detect fails with ErrNotReady until the
// first Ingest.
func New() *Index {
	return &Index{}
}

// Ingest builds term vectors for the given entries and replaces any
// previous build. There is no merge: re-ingesting fully discards the
// prior state.
func (x *Index) Ingest(entries []model.Entry) {
	snap := build(entries)

	x.mu.Lock()
	x.snap = snap
	x.mu.Unlock()
}

// build constructs a snapshot entirely off to the side.
func build(entries []model.Entry) *snapshot {
	n := len(entries)

	// Tokenize every breadcrumb segment independently and concatenate
	// into one token multiset per entry.
	counts := make([]map[string]int, n)
	df := make(map[string]int)
	for i, e := range entries {
		tf := make(map[string]int)
		for _, seg := range e.Path {
			for _, tok := range normalizer.Tokens(seg) {
				tf[tok]++
			}
		}
		counts[i] = tf
		for tok := range tf {
			df[tok]++
		}
	}

	// Smoothed IDF: strictly positive for every seen token, bounded for
	// ubiquitous ones.
	idf := make(map[string]float64, len(df))
	for tok, d := range df {
		idf[tok] = math.Log(float64(n+1)/float64(d+1)) + 1
	}

	snap := &snapshot{
		entries: entries,
		vectors: make([]vector, n),
		leaves:  make([]string, n),
		idf:     idf,
	}
	for i, tf := range counts {
		snap.vectors[i] = vectorize(tf, idf)
		snap.leaves[i] = strings.ToLower(entries[i].Leaf())
	}
	return snap
}

// vectorize turns token counts into an L2-normalized log-TF × IDF sparse
// vector. Tokens absent from the IDF table contribute nothing. A zero-norm
// result is the empty vector.
func vectorize(tf map[string]int, idf map[string]float64) vector {
	v := make(vector, len(tf))
	var sumSq float64
	for tok, count := range tf {
		w, ok := idf[tok]
		if !ok {
			continue
		}
		weight := (1 + math.Log(float64(count))) * w
		v[tok] = weight
		sumSq += weight * weight
	}
	if sumSq == 0 {
		return vector{}
	}
	norm := math.Sqrt(sumSq)
	for tok := range v {
		v[tok] /= norm
	}
	return v
}

// dot computes cosine similarity between two L2-normalized sparse
// vectors, iterating the smaller one.
func dot(a, b vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for tok, w := range a {
		sum += w * b[tok]
	}
	return sum
}

// Detect ranks all ingested entries against the title and returns the top
// candidates with raw scores and softmax-calibrated probabilities.
func (x *Index) Detect(title string, opts Options) ([]model.Candidate, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	x.mu.RLock()
	snap := x.snap
	x.mu.RUnlock()
	if snap == nil {
		return nil, ErrNotReady
	}

	tf := make(map[string]int)
	for _, tok := range normalizer.Tokens(title) {
		tf[tok]++
	}
	query := vectorize(tf, snap.idf)
	titleLower := strings.ToLower(title)

	type scored struct {
		i     int
		score float64
	}
	ranked := make([]scored, 0, len(snap.entries))
	for i, e := range snap.entries {
		depth := e.Depth()
		if depth < opts.MinDepth {
			continue
		}
		score := dot(query, snap.vectors[i])
		if !opts.DisableHeuristics {
			score = adjust(score, depth, snap.leaves[i], titleLower)
		}
		ranked = append(ranked, scored{i: i, score: score})
	}

	// Score descending, ties by ascending id so output is deterministic
	// even when many entries share a zero score.
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].score != ranked[b].score {
			return ranked[a].score > ranked[b].score
		}
		return snap.entries[ranked[a].i].ID < snap.entries[ranked[b].i].ID
	})

	if len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}

	scores := make([]float64, len(ranked))
	for i, r := range ranked {
		scores[i] = r.score
	}
	probs := softmax(scores, opts.Temperature)

	out := make([]model.Candidate, len(ranked))
	for i, r := range ranked {
		e := snap.entries[r.i]
		out[i] = model.Candidate{
			ID:          e.ID,
			Path:        e.Path,
			Leaf:        e.Leaf(),
			Depth:       e.Depth(),
			Score:       r.score,
			Probability: probs[i],
		}
	}
	return out, nil
}

// Heuristic score adjustments, applied in order: prefer deeper (more
// specific) categories with a capped multiplier, reward an exact leaf
// phrase occurring in the title, and dampen very shallow entries.
const (
	depthBoostStep = 0.06
	depthBoostCap  = 1.35
	leafPhraseBump = 0.15
	shallowFactor  = 0.92
	shallowDepth   = 2
)

func adjust(score float64, depth int, leafLower, titleLower string) float64 {
	boost := 1 + float64(depth-1)*depthBoostStep
	if boost > depthBoostCap {
		boost = depthBoostCap
	}
	score *= boost

	if len(leafLower) > 3 && strings.Contains(titleLower, leafLower) {
		score += leafPhraseBump
	}

	if depth <= shallowDepth {
		score *= shallowFactor
	}
	return score
}

// softmax converts scores to probabilities with temperature scaling,
// shifting by the maximum for numerical stability. An all-zero
// exponential sum yields all-zero probabilities rather than NaN.
func softmax(scores []float64, temperature float64) []float64 {
	probs := make([]float64, len(scores))
	if len(scores) == 0 {
		return probs
	}

	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp((s - maxScore) / temperature)
		sum += probs[i]
	}
	if sum == 0 {
		for i := range probs {
			probs[i] = 0
		}
		return probs
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Stats describes the current build of the index.
type Stats struct {
	Ready     bool
	Entries   int
	VocabSize int
}

// Stats reports whether the index is ready and how big the current build is.
func (x *Index) Stats() Stats {
	x.mu.RLock()
	snap := x.snap
	x.mu.RUnlock()
	if snap == nil {
		return Stats{}
	}
	return Stats{Ready: true, Entries: len(snap.entries), VocabSize: len(snap.idf)}
}
