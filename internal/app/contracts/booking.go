package contracts

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"context"
)

type BookingUsecase interface {
	Locations(ctx context.Context) []models.Location
	Nearby(ctx context.Context, clientID string, request *requests.NearbyResources) (*responses.NearbyResources, error)
	Availability(ctx context.Context, locationID string) (*responses.Availability, error)
	Finalize(ctx context.Context, clientID string, request *requests.FinalizeBooking) (receipt *models.BookingReceipt, redirect string, err error)
	Confirmation(ctx context.Context, clientID string) (confirmation *responses.BookingConfirmation, redirect string, err error)
	History(ctx context.Context, clientID string) (history *responses.BookingHistory, redirect string, err error)
}

// BookingNotifier announces confirmed bookings to downstream consumers.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, clientID string, receipt *models.BookingReceipt, slot models.Slot) error
}
