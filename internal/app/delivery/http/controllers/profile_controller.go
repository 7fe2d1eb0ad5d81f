package controllers

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type ProfileController struct {
	Log            *zap.Logger
	ProfileUsecase contracts.ProfileUsecase
}

func NewProfileController(logger *zap.Logger, profileUsecase contracts.ProfileUsecase) *ProfileController {
	return &ProfileController{
		Log:            logger,
		ProfileUsecase: profileUsecase,
	}
}

func (ctrl *ProfileController) Profile(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, redirect, err := ctrl.ProfileUsecase.Profile(ctx, utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("ProfileController.Profile error from ProfileUsecase.Profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseSuccess, profile)
}

func (ctrl *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ProfileController.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpdateProfile)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("ProfileController.UpdateProfile invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	profile, redirect, err := ctrl.ProfileUsecase.UpdateProfile(ctx, utils.GetClientID(r.Context()), models.ProfileUpdate{
		Birthdate:   request.Birthdate,
		University:  request.University,
		PhoneNumber: request.PhoneNumber,
	})
	if err != nil {
		ctrl.Log.Error("ProfileController.UpdateProfile error from ProfileUsecase.UpdateProfile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseProfileUpdated, profile)
}

func (ctrl *ProfileController) History(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := requestContext(r)
	defer cancel()

	history, redirect, err := ctrl.ProfileUsecase.History(ctx, utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("ProfileController.History error from ProfileUsecase.History",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseSuccess, history)
}
