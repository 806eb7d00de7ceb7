package model

// Candidate is one ranked category returned by a detection query.
// Score is the raw (heuristic-adjusted) cosine similarity; Probability is
// the temperature-softmax calibration over the returned batch, so the
// probabilities of one batch sum to 1 unless every score is degenerate.
type Candidate struct {
	ID          int
	Path        []string
	Leaf        string
	Depth       int
	Score       float64
	Probability float64
}

// Match is the single best category picked by the detector facade.
type Match struct {
	ID   int
	Path []string
}
