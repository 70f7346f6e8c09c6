// Package metadata encodes capture metadata into stored asset identifiers
// and decodes it back. The identifier grammar is
//
//	<base>__<coordSegment>__<pickupSegment>.<ext>
//
// where coordSegment is either the literal NoGPS or <lat>_<lon>, and the
// pickup segment carries spaces as underscores. Decoding is total: malformed
// and legacy identifiers degrade to absent coordinates and pickup "Unknown"
// instead of failing.
package metadata

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/purabshah12/beacon/internal/geo"
)

const (
	delimiter     = "__"
	noGPSToken    = "NoGPS"
	unknownPickup = "Unknown"
)

// Encode builds a stored asset identifier from the original file name, the
// capture coordinates (nil when the capture had no GPS) and the pickup
// location.
func Encode(originalName string, coords *geo.Coordinates, pickup string) string {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(originalName, ext)

	coordSegment := noGPSToken
	if coords != nil {
		coordSegment = strconv.FormatFloat(coords.Latitude, 'f', -1, 64) +
			"_" + strconv.FormatFloat(coords.Longitude, 'f', -1, 64)
	}

	if pickup == "" {
		pickup = unknownPickup
	}
	pickupSegment := strings.ReplaceAll(pickup, " ", "_")

	return base + delimiter + coordSegment + delimiter + pickupSegment + ext
}

// Decode recovers the capture coordinates and pickup location from a stored
// asset identifier. It never fails: undecodable identifiers yield absent
// coordinates and pickup "Unknown".
func Decode(identifier string) (*geo.Coordinates, string) {
	name := filepath.Base(identifier)
	parts := strings.Split(name, delimiter)

	switch {
	case len(parts) >= 3:
		coords := parseCoordSegment(parts[1])
		return coords, restorePickup(parts[2])
	case len(parts) == 2:
		// Legacy format without a coordinate segment.
		return nil, restorePickup(parts[1])
	default:
		return nil, unknownPickup
	}
}

func parseCoordSegment(segment string) *geo.Coordinates {
	if segment == noGPSToken {
		return nil
	}

	halves := strings.Split(segment, "_")
	if len(halves) != 2 {
		return nil
	}

	lat, err := strconv.ParseFloat(halves[0], 64)
	if err != nil {
		return nil
	}
	lon, err := strconv.ParseFloat(halves[1], 64)
	if err != nil {
		return nil
	}

	coords := &geo.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil
	}
	return coords
}

func restorePickup(segment string) string {
	segment = strings.TrimSuffix(segment, filepath.Ext(segment))
	pickup := strings.ReplaceAll(segment, "_", " ")
	if pickup == "" {
		return unknownPickup
	}
	return pickup
}
