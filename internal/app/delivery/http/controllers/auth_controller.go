package controllers

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	ctrl.authenticate(w, r, "Login", ctrl.AuthUsecase.Login, constvars.ResponseLoggedIn)
}

func (ctrl *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	ctrl.authenticate(w, r, "Signup", ctrl.AuthUsecase.Signup, constvars.ResponseSignedUp)
}

type authenticateFunc func(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error)

func (ctrl *AuthController) authenticate(w http.ResponseWriter, r *http.Request, method string, call authenticateFunc, message string) {
	requestID := utils.GetRequestID(r.Context())
	clientID := utils.GetClientID(r.Context())
	ctrl.Log.Info("AuthController."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	request := new(requests.Credentials)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("AuthController."+method+" invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	status, err := call(ctx, clientID, models.Credentials{Email: request.Email, Password: request.Password})
	if err != nil {
		ctrl.Log.Error("AuthController."+method+" error from AuthUsecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, utils.MapContextError(err))
		return
	}

	ctrl.Log.Info("AuthController."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, status)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AuthController.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := ctrl.AuthUsecase.Logout(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("AuthController.Logout error from AuthUsecase.Logout",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseLoggedOut, nil)
}

func (ctrl *AuthController) Status(w http.ResponseWriter, r *http.Request) {
	status, err := ctrl.AuthUsecase.Status(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("AuthController.Status error from AuthUsecase.Status",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, status)
}
