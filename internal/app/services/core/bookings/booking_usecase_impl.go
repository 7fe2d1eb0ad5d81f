package bookings

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

type BookingOptions struct {
	// SyncBookings mirrors finalized bookings to the backend when the client
	// is logged in.
	SyncBookings bool
	Locations    []models.Location
	Now          func() time.Time
}

type bookingUsecase struct {
	Log         *zap.Logger
	Client      contracts.CareRouterClient
	ClientState contracts.ClientStateRepository
	Notifier    contracts.BookingNotifier
	Options     BookingOptions
}

// NewBookingUsecase wires the booking screens. Notifier may be nil.
func NewBookingUsecase(
	logger *zap.Logger,
	client contracts.CareRouterClient,
	clientState contracts.ClientStateRepository,
	notifier contracts.BookingNotifier,
	options BookingOptions,
) contracts.BookingUsecase {
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Locations == nil {
		options.Locations = DefaultLocations()
	}
	return &bookingUsecase{
		Log:         logger,
		Client:      client,
		ClientState: clientState,
		Notifier:    notifier,
		Options:     options,
	}
}

func (uc *bookingUsecase) Locations(ctx context.Context) []models.Location {
	return append([]models.Location(nil), uc.Options.Locations...)
}

// Nearby searches backend resources. The token is sent when there is one; a
// rejected token clears the session and the search is repeated anonymously.
func (uc *bookingUsecase) Nearby(ctx context.Context, clientID string, request *requests.NearbyResources) (*responses.NearbyResources, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Nearby called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	query := contracts.ResourceQuery{Filters: request.Filters}
	var origin *models.Coordinates
	if request.Lat != nil && request.Lng != nil {
		origin = &models.Coordinates{Lat: *request.Lat, Lng: *request.Lng}
	} else if pathway, err := uc.ClientState.Pathway(ctx, clientID); err == nil && pathway.UserLocation != nil {
		origin = pathway.UserLocation
	}
	if origin != nil {
		query.Lat, query.Lon = &origin.Lat, &origin.Lng
	}

	token, err := uc.ClientState.Token(ctx, clientID)
	if err != nil {
		return nil, err
	}

	resources, err := uc.Client.ListResources(ctx, token, query)
	if err != nil && token != "" && exceptions.StatusCode(err) == constvars.StatusUnauthorized {
		uc.Log.Info("bookingUsecase.Nearby token rejected, searching anonymously",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		if errClear := uc.ClientState.ClearSession(ctx, clientID); errClear != nil {
			return nil, errors.Join(err, errClear)
		}
		resources, err = uc.Client.ListResources(ctx, "", query)
	}
	if err != nil {
		uc.Log.Error("bookingUsecase.Nearby error from CareRouterClient.ListResources",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if resources == nil {
		resources = []models.Resource{}
	}

	uc.Log.Info("bookingUsecase.Nearby succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(resources)),
	)
	return &responses.NearbyResources{Origin: origin, Resources: resources}, nil
}

func (uc *bookingUsecase) Availability(ctx context.Context, locationID string) (*responses.Availability, error) {
	location, err := uc.location(locationID)
	if err != nil {
		return nil, err
	}
	return &responses.Availability{
		Location: location,
		Slots:    NextAvailability(uc.Options.Now()),
	}, nil
}

func (uc *bookingUsecase) Finalize(ctx context.Context, clientID string, request *requests.FinalizeBooking) (*models.BookingReceipt, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Finalize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
		zap.String(constvars.LoggingLocationIDKey, request.LocationID),
	)

	location, err := uc.location(request.LocationID)
	if err != nil {
		return nil, "", err
	}
	slot, ok := findSlot(NextAvailability(uc.Options.Now()), request.Date, request.Time)
	if !ok {
		return nil, "", exceptions.ErrSlotNotAvailable(nil, request.LocationID, request.Date, request.Time)
	}

	receipt := &models.BookingReceipt{
		PlaceName: location.Name,
		Slot:      slot.Label,
		Location:  location,
	}
	if err := uc.ClientState.SaveReceipt(ctx, clientID, receipt); err != nil {
		uc.Log.Error("bookingUsecase.Finalize error saving receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", err
	}

	if uc.Options.SyncBookings {
		uc.syncBooking(ctx, clientID, receipt, slot, request.Notes)
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.BookingConfirmed(ctx, clientID, receipt, slot); err != nil {
			uc.Log.Warn("bookingUsecase.Finalize booking notification failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	uc.Log.Info("bookingUsecase.Finalize succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedirectKey, constvars.ViewBookingConfirmation),
	)
	return receipt, constvars.ViewBookingConfirmation, nil
}

// syncBooking is best effort. The receipt is already saved, so a failing
// backend never blocks the confirmation screen.
func (uc *bookingUsecase) syncBooking(ctx context.Context, clientID string, receipt *models.BookingReceipt, slot models.Slot, notes string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	token, err := uc.ClientState.Token(ctx, clientID)
	if err != nil || token == "" {
		uc.Log.Debug("bookingUsecase.syncBooking skipped, client not logged in",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}

	_, err = uc.Client.CreateBooking(ctx, token, models.Booking{
		ResourceID:   receipt.Location.ID,
		ResourceName: receipt.PlaceName,
		Date:         slot.Date,
		Time:         slot.Time,
		Notes:        notes,
	})
	if err != nil {
		uc.Log.Warn("bookingUsecase.syncBooking backend rejected booking",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
}

func (uc *bookingUsecase) Confirmation(ctx context.Context, clientID string) (*responses.BookingConfirmation, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	receipt, err := uc.ClientState.TakeReceipt(ctx, clientID)
	if err != nil {
		if exceptions.StatusCode(err) == constvars.StatusNotFound {
			uc.Log.Info("bookingUsecase.Confirmation no receipt, redirecting",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedirectKey, constvars.ViewMap),
			)
			return nil, constvars.ViewMap, nil
		}
		return nil, "", err
	}

	return &responses.BookingConfirmation{
		Receipt:       *receipt,
		DirectionsURL: DirectionsURL(receipt.Location.Lat, receipt.Location.Lng),
	}, "", nil
}

func (uc *bookingUsecase) History(ctx context.Context, clientID string) (*responses.BookingHistory, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	token, err := uc.ClientState.Token(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	if token == "" {
		return nil, constvars.ViewLogin, nil
	}

	bookings, err := uc.Client.ListBookings(ctx, token)
	if err != nil {
		if exceptions.StatusCode(err) == constvars.StatusUnauthorized {
			uc.Log.Info("bookingUsecase.History token rejected, clearing session",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			if errClear := uc.ClientState.ClearSession(ctx, clientID); errClear != nil {
				return nil, "", errors.Join(err, errClear)
			}
			return nil, constvars.ViewLogin, nil
		}
		return nil, "", err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return &responses.BookingHistory{Bookings: bookings}, "", nil
}

func (uc *bookingUsecase) location(locationID string) (models.Location, error) {
	for _, location := range uc.Options.Locations {
		if location.ID == locationID {
			return location, nil
		}
	}
	return models.Location{}, exceptions.ErrLocationNotFound(nil, locationID)
}
