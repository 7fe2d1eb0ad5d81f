package controllers

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/shared/geolocation"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
}

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase) *AssessmentController {
	return &AssessmentController{
		Log:               logger,
		AssessmentUsecase: assessmentUsecase,
	}
}

func (ctrl *AssessmentController) Questions(w http.ResponseWriter, r *http.Request) {
	questions := ctrl.AssessmentUsecase.Questions()
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, responses.Questions{Questions: questions})
}

// Start begins a new flow. The body is optional and may carry the position
// the browser reported; the coordinate headers are the fallback.
func (ctrl *AssessmentController) Start(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	clientID := utils.GetClientID(r.Context())
	ctrl.Log.Info("AssessmentController.Start called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	request := new(requests.StartAssessment)
	if r.ContentLength != 0 {
		if err := utils.DecodeAndValidate(r, request); err != nil {
			ctrl.Log.Error("AssessmentController.Start invalid request body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}
	}

	location := geolocation.FromPair(request.Latitude, request.Longitude)
	if location == nil {
		if lat, lng, ok := utils.ParseCoordinateHeaders(r); ok {
			location = geolocation.FromPair(&lat, &lng)
		}
	}

	snapshot, err := ctrl.AssessmentUsecase.Start(r.Context(), clientID, location)
	if err != nil {
		ctrl.Log.Error("AssessmentController.Start error from AssessmentUsecase.Start",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AssessmentController.Start succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFlowStateKey, string(snapshot.State)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ResponseAssessmentStarted, snapshot)
}

func (ctrl *AssessmentController) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := ctrl.AssessmentUsecase.Snapshot(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	if snapshot.RedirectTo != "" {
		utils.BuildRedirectResponse(w, snapshot.RedirectTo, snapshot)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, snapshot)
}

func (ctrl *AssessmentController) Answer(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	clientID := utils.GetClientID(r.Context())
	ctrl.Log.Info("AssessmentController.Answer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	request := new(requests.SubmitAnswer)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Error("AssessmentController.Answer invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	snapshot, accepted, err := ctrl.AssessmentUsecase.Answer(r.Context(), clientID, answerFromRequest(request))
	ctrl.respondToAnswer(w, requestID, "Answer", snapshot, accepted, err)
}

func (ctrl *AssessmentController) Skip(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	snapshot, accepted, err := ctrl.AssessmentUsecase.Skip(r.Context(), utils.GetClientID(r.Context()))
	ctrl.respondToAnswer(w, requestID, "Skip", snapshot, accepted, err)
}

// respondToAnswer answers 200 even for ignored input: a guard failure is
// not an error, the client just keeps showing the same question.
func (ctrl *AssessmentController) respondToAnswer(w http.ResponseWriter, requestID, method string, snapshot *models.FlowSnapshot, accepted bool, err error) {
	if err != nil {
		ctrl.Log.Error("AssessmentController."+method+" error from AssessmentUsecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.ResponseAnswerAccepted
	if !accepted {
		message = constvars.ResponseAnswerIgnored
	}
	ctrl.Log.Info("AssessmentController."+method+" handled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool("accepted", accepted),
		zap.String(constvars.LoggingFlowStateKey, string(snapshot.State)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, responses.AnswerResult{
		Accepted: accepted,
		Snapshot: *snapshot,
	})
}

func (ctrl *AssessmentController) Abandon(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	err := ctrl.AssessmentUsecase.Abandon(r.Context(), utils.GetClientID(r.Context()))
	if err != nil {
		ctrl.Log.Error("AssessmentController.Abandon error from AssessmentUsecase.Abandon",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseAssessmentAbandoned, nil)
}

func answerFromRequest(request *requests.SubmitAnswer) models.Answer {
	switch {
	case request.Text != nil:
		return models.TextAnswer(*request.Text)
	case request.Choice != nil:
		return models.ChoiceAnswer(*request.Choice)
	default:
		return models.MultiChoiceAnswer(request.Choices...)
	}
}
