// Package source provides the collaborators that fetch raw taxonomy text.
// The engine only ever sees a string; where it came from (HTTP resource,
// local file, embedded literal) and how often it refreshes live here.
package source

import "context"

// Source fetches the raw taxonomy listing as UTF-8 text.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// Static serves a fixed in-memory listing. Useful for tests and for
// embedding a taxonomy snapshot in a binary.
type Static string

// Fetch returns the wrapped text.
func (s Static) Fetch(context.Context) (string, error) {
	return string(s), nil
}
