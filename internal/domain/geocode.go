package domain

import (
	"context"
	"log/slog"
)

// LookupPlace reverse-geocodes a sighting's coordinates. It reports false when
// the geocoder is nil, the coordinates are unusable, the lookup fails, or the
// provider had no answer; failures are logged, never returned.
func LookupPlace(ctx context.Context, rec SightingRecord, geocoder Geocoder, logger *slog.Logger) (Place, bool) {
	if geocoder == nil || !rec.HasValidCoordinates() {
		return Place{}, false
	}

	place, err := geocoder.ReverseGeocode(ctx, rec.Latitude, rec.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"sighting_id", rec.ID,
			"lat", rec.Latitude,
			"lon", rec.Longitude,
			"error", err,
		)
		return Place{}, false
	}
	if place.FormattedAddress == "" {
		return Place{}, false
	}
	return place, true
}
