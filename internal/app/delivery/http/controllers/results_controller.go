package controllers

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type ResultsController struct {
	Log            *zap.Logger
	ResultsUsecase contracts.ResultsUsecase
}

func NewResultsController(logger *zap.Logger, resultsUsecase contracts.ResultsUsecase) *ResultsController {
	return &ResultsController{
		Log:            logger,
		ResultsUsecase: resultsUsecase,
	}
}

func (ctrl *ResultsController) Load(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ResultsController.Load called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	view, redirect, err := ctrl.ResultsUsecase.Load(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("ResultsController.Load error from ResultsUsecase.Load",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusOK, constvars.ResponseSuccess, view)
}

func (ctrl *ResultsController) Export(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ResultsController.Export called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := requestContext(r)
	defer cancel()

	export, redirect, err := ctrl.ResultsUsecase.Export(ctx, utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("ResultsController.Export error from ResultsUsecase.Export",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}
	writeResult(ctrl.Log, w, requestID, redirect, constvars.StatusCreated, constvars.ResponsePathwayExported, export)
}
