package geolocation

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"context"
	"errors"
)

var ErrUnavailable = errors.New("location unavailable")

// Static reports coordinates the client already shared, or ErrUnavailable
// when it shared none.
func Static(coordinates *models.Coordinates) contracts.Geolocator {
	return contracts.GeolocatorFunc(func(ctx context.Context) (*models.Coordinates, error) {
		if coordinates == nil {
			return nil, ErrUnavailable
		}
		located := *coordinates
		return &located, nil
	})
}

// FromPair builds coordinates from optional latitude and longitude. Both must
// be present and inside their valid ranges.
func FromPair(lat, lng *float64) *models.Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 || *lng < -180 || *lng > 180 {
		return nil
	}
	return &models.Coordinates{Lat: *lat, Lng: *lng}
}
