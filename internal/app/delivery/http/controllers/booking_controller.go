package controllers

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
	}
}

func (ctrl *BookingController) Locations(w http.ResponseWriter, r *http.Request) {
	locations := ctrl.BookingUsecase.Locations(r.Context())
	ctrl.Log.Info("BookingController.Locations succeeded",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.Int(constvars.LoggingResponseCountKey, len(locations)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, locations)
}

func (ctrl *BookingController) Nearby(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	clientID := utils.GetClientID(r.Context())

	request := &requests.NearbyResources{Filters: r.URL.Query().Get("filters")}
	if lat, lng, ok := utils.ParseCoordinates(r); ok {
		request.Lat, request.Lng = &lat, &lng
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	nearby, err := ctrl.BookingUsecase.Nearby(ctx, clientID, request)
	if err != nil {
		ctrl.Log.Error("BookingController.Nearby error from BookingUsecase.Nearby",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, nearby)
}

func (ctrl *BookingController) Availability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	locationID := chi.URLParam(r, constvars.URLParamLocationID)

	availability, err := ctrl.BookingUsecase.Availability(r.Context(), locationID)
	if err != nil {
		ctrl.Log.Error("BookingController.Availability error from BookingUsecase.Availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingLocationIDKey, locationID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, availability)
}

func (ctrl *BookingController) Finalize(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	clientID := utils.GetClientID(r.Context())
	ctrl.Log.Info("BookingController.Finalize called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	request := new(requests.FinalizeBooking)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("BookingController.Finalize invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	receipt, redirect, err := ctrl.BookingUsecase.Finalize(ctx, clientID, request)
	if err != nil {
		ctrl.Log.Error("BookingController.Finalize error from BookingUsecase.Finalize",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}

	ctrl.Log.Info("BookingController.Finalize succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingLocationIDKey, receipt.Location.ID),
	)
	utils.BuildRedirectResponse(w, redirect, receipt)
}

func (ctrl *BookingController) Confirmation(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	confirmation, redirect, err := ctrl.BookingUsecase.Confirmation(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("BookingController.Confirmation error from BookingUsecase.Confirmation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseBookingConfirmed, confirmation)
}

func (ctrl *BookingController) History(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := requestContext(r)
	defer cancel()

	history, redirect, err := ctrl.BookingUsecase.History(ctx, utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("BookingController.History error from BookingUsecase.History",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseSuccess, history)
}
