package contracts

import (
	"carerouter-service/internal/app/models"
	"context"
	"time"
)

// Scheduler runs fn once after d. The returned func cancels it if it has not
// fired yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Geolocator resolves the user's position on a best-effort basis.
type Geolocator interface {
	Locate(ctx context.Context) (*models.Coordinates, error)
}

// Navigator receives the view a flow wants the client to move to.
type Navigator interface {
	Navigate(view string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(view string)

func (f NavigatorFunc) Navigate(view string) { f(view) }

// GeolocatorFunc adapts a function to Geolocator.
type GeolocatorFunc func(ctx context.Context) (*models.Coordinates, error)

func (f GeolocatorFunc) Locate(ctx context.Context) (*models.Coordinates, error) { return f(ctx) }
