// Package matcher selects the best found-item candidate for a lost-item
// query: similarity first, geographic proximity as the tiebreaker.
package matcher

import (
	"context"
	"sort"

	"github.com/purabshah12/beacon/internal/candidate"
	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/common/metrics"
	"github.com/purabshah12/beacon/internal/geo"
	"github.com/purabshah12/beacon/internal/scorer"
)

// DefaultTieBandRatio keeps a candidate inside the tie band when its
// confidence is at least this fraction of the best confidence.
const DefaultTieBandRatio = 0.9

// CandidateLister enumerates the current pool of found-item assets.
type CandidateLister interface {
	List(ctx context.Context) ([]candidate.Candidate, error)
}

// Ranker combines confidence and distance per candidate and applies the
// confidence-then-geo-tiebreak policy.
type Ranker struct {
	candidates   CandidateLister
	scorer       scorer.Scorer
	tieBandRatio float64
	logger       logger.Logger
}

func NewRanker(candidates CandidateLister, s scorer.Scorer, tieBandRatio float64, log logger.Logger) *Ranker {
	if tieBandRatio <= 0 || tieBandRatio > 1 {
		tieBandRatio = DefaultTieBandRatio
	}
	return &Ranker{
		candidates:   candidates,
		scorer:       s,
		tieBandRatio: tieBandRatio,
		logger:       log.WithFields(map[string]interface{}{"component": "ranker"}),
	}
}

// Match returns the single best candidate for the query, or a structured
// failure: EMPTY_DESCRIPTION before any candidate work, NO_CANDIDATES for an
// empty pool, NO_SCORED_CANDIDATES when the scorer produced nothing usable.
func (r *Ranker) Match(ctx context.Context, query Query) (*Result, error) {
	if query.Description == "" {
		return nil, errors.NewEmptyDescriptionError()
	}

	candidates, err := r.candidates.List(ctx)
	if err != nil {
		// A cancelled request is the caller's doing, not a storage fault.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewPersistenceFailureError(err)
	}
	metrics.CandidatesScanned.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return nil, errors.NewNoCandidatesError()
	}

	scores, err := r.scorer.Score(ctx, query.Description, candidates)
	if err != nil {
		return nil, errors.NewScorerFailedError(err)
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		confidence, ok := scores[c.Identifier]
		if !ok {
			continue
		}
		scored = append(scored, scoredCandidate{
			identifier:       c.Identifier,
			confidence:       confidence,
			distanceKm:       geo.DistanceKm(query.Coordinates, c.FoundCoordinates),
			foundCoordinates: c.FoundCoordinates,
			pickupLocation:   c.PickupLocation,
		})
	}
	if len(scored) == 0 {
		return nil, errors.NewNoScoredCandidatesError("scorer returned no usable scores")
	}

	winner := r.selectWinner(scored, query.Coordinates != nil)

	r.logger.Info("match selected", map[string]interface{}{
		"identifier": winner.identifier,
		"confidence": winner.confidence,
		"distanceKm": winner.distanceKm,
		"candidates": len(scored),
	})

	return &Result{
		Identifier:       winner.identifier,
		Confidence:       winner.confidence,
		FoundCoordinates: winner.foundCoordinates,
		PickupLocation:   winner.pickupLocation,
		DistanceKm:       winner.distanceKm,
	}, nil
}

// selectWinner sorts by confidence descending, then re-sorts the tie band by
// distance when the query carries coordinates. Both sorts are stable so
// exact ties keep their confidence order.
func (r *Ranker) selectWinner(scored []scoredCandidate, haveQueryCoords bool) scoredCandidate {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].confidence > scored[j].confidence
	})

	best := scored[0].confidence
	bandEnd := 1
	for bandEnd < len(scored) && scored[bandEnd].confidence >= r.tieBandRatio*best {
		bandEnd++
	}

	if bandEnd > 1 && haveQueryCoords {
		band := scored[:bandEnd]
		sort.SliceStable(band, func(i, j int) bool {
			return band[i].distanceKm < band[j].distanceKm
		})
	}

	return scored[0]
}
