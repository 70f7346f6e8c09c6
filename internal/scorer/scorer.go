// Package scorer produces a confidence score per candidate for a query
// description. The semantic model itself is an external capability; this
// package only knows how to reach one (remote mode) or how to approximate
// one (keyword mode), plus a Redis read-through cache usable around either.
package scorer

import (
	"context"

	"github.com/purabshah12/beacon/internal/candidate"
)

// Scorer scores every candidate against a single query description in one
// batched call. The result maps candidate identifier to a confidence in
// [0,1]; candidates the scorer could not read are simply absent from the
// map, never a hard error.
type Scorer interface {
	Score(ctx context.Context, description string, candidates []candidate.Candidate) (map[string]float64, error)
}
