package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/common/metrics"
	"github.com/purabshah12/beacon/internal/geo"
	"github.com/purabshah12/beacon/internal/matcher"
)

// Matcher is the decision core behind POST /match.
type Matcher interface {
	Match(ctx context.Context, query matcher.Query) (*matcher.Result, error)
}

// MatchHandler answers lost-item queries with the single best found-item
// asset.
type MatchHandler struct {
	Ranker Matcher
	Logger logger.Logger
}

type matchRequest struct {
	Description string `json:"description"`
	// LostLocation is accepted for client compatibility; ranking uses the
	// coordinate pair only.
	LostLocation  string   `json:"lostLocation"`
	LostLatitude  *float64 `json:"lostLatitude"`
	LostLongitude *float64 `json:"lostLongitude"`
}

type matchResponse struct {
	BestMatch      string           `json:"best_match"`
	Confidence     float64          `json:"confidence"`
	FoundLocation  *geo.Coordinates `json:"foundLocation"`
	PickupLocation string           `json:"pickupLocation"`
}

func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	metrics.MatchRequestsTotal.Inc()
	start := time.Now()
	defer func() {
		metrics.MatchDuration.Observe(time.Since(start).Seconds())
	}()

	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, errors.NewInvalidRequestError("malformed JSON body"))
		return
	}

	query := matcher.Query{
		Description: req.Description,
		Coordinates: pairFromPointers(req.LostLatitude, req.LostLongitude),
	}

	result, err := h.Ranker.Match(r.Context(), query)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, matchResponse{
		BestMatch:      "/uploads/" + result.Identifier,
		Confidence:     result.Confidence,
		FoundLocation:  result.FoundCoordinates,
		PickupLocation: result.PickupLocation,
	})
}

func (h *MatchHandler) fail(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	metrics.MatchFailuresTotal.WithLabelValues(string(code)).Inc()

	message := "Internal server error"
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		message = stdErr.Message
	}

	h.Logger.Warn("match failed", map[string]interface{}{
		"errorCode": string(code),
		"error":     err.Error(),
	})
	writeJSON(w, errors.HTTPStatus(err), map[string]interface{}{"error": message})
}

// pairFromPointers builds a coordinate pair only when both halves are set
// and in range.
func pairFromPointers(lat, lon *float64) *geo.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	coords := &geo.Coordinates{Latitude: *lat, Longitude: *lon}
	if !coords.Valid() {
		return nil
	}
	return coords
}
