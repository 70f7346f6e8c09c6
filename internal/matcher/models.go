package matcher

import "github.com/purabshah12/beacon/internal/geo"

// Query is one match request: a description of the lost item and, when the
// reporter shared it, the location where the item was lost.
type Query struct {
	Description string
	Coordinates *geo.Coordinates
}

// Result is the single winning candidate for a query.
type Result struct {
	Identifier       string
	Confidence       float64
	FoundCoordinates *geo.Coordinates
	PickupLocation   string
	// DistanceKm is +Inf when either side of the pair was unknown.
	DistanceKm float64
}

// scoredCandidate pairs a candidate with its per-query derived values.
type scoredCandidate struct {
	identifier       string
	confidence       float64
	distanceKm       float64
	foundCoordinates *geo.Coordinates
	pickupLocation   string
}
