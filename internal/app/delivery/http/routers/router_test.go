package routers

import (
	"bytes"
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/app/delivery/http/controllers"
	"carerouter-service/internal/app/delivery/http/middlewares"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/exceptions"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testClientID = "5b0c3c9e-7d1f-4a3c-9f57-2f4a1f0e8d21"

type testRouter struct {
	router     *chi.Mux
	auth       *MockAuthUsecase
	assessment *MockAssessmentUsecase
	results    *MockResultsUsecase
	booking    *MockBookingUsecase
	profile    *MockProfileUsecase
}

func newTestRouter(t *testing.T, answersPerMinute int) *testRouter {
	t.Helper()
	logger := zap.NewNop()
	internalConfig := &config.InternalConfig{
		App: config.App{
			Env:                        constvars.AppEnvDevelopment,
			Version:                    "v1",
			EndpointPrefix:             "/api",
			CorsAllowedOrigins:         []string{"http://localhost:3000"},
			MaxRequests:                1000,
			RequestBodyLimitInMegabyte: 1,
		},
	}

	tr := &testRouter{
		router:     chi.NewRouter(),
		auth:       new(MockAuthUsecase),
		assessment: new(MockAssessmentUsecase),
		results:    new(MockResultsUsecase),
		booking:    new(MockBookingUsecase),
		profile:    new(MockProfileUsecase),
	}
	middlewareInstance := middlewares.NewMiddlewares(logger, internalConfig)
	answerLimiter := middlewareInstance.NewRateLimiter(answersPerMinute, time.Minute, time.Minute)

	SetupRoutes(
		tr.router,
		internalConfig,
		middlewareInstance,
		answerLimiter,
		controllers.NewAuthController(logger, tr.auth),
		controllers.NewAssessmentController(logger, tr.assessment),
		controllers.NewResultsController(logger, tr.results),
		controllers.NewBookingController(logger, tr.booking),
		controllers.NewProfileController(logger, tr.profile),
	)
	return tr
}

func (tr *testRouter) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderXClientID, testClientID)
	rr := httptest.NewRecorder()
	tr.router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	return envelope
}

func TestRouter_AuthLogin(t *testing.T) {
	tr := newTestRouter(t, 10)

	t.Run("valid credentials", func(t *testing.T) {
		tr.auth.On("Login", mock.Anything, testClientID, models.Credentials{Email: "a@b.ca", Password: "pw"}).
			Return(&responses.AuthStatus{LoggedIn: true, Email: "a@b.ca"}, nil).Once()

		rr := tr.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "a@b.ca", "password": "pw"})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, testClientID, rr.Header().Get(constvars.HeaderXClientID))
		assert.NotEmpty(t, rr.Header().Get(constvars.HeaderXRequestID))
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, constvars.ResponseLoggedIn, envelope["message"])
	})

	t.Run("invalid email is rejected before the usecase", func(t *testing.T) {
		rr := tr.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "nope", "password": "pw"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	tr.auth.AssertExpectations(t)
}

func TestRouter_ClientCookieIssuedWhenMissing(t *testing.T) {
	tr := newTestRouter(t, 10)
	tr.auth.On("Status", mock.Anything, mock.AnythingOfType("string")).
		Return(&responses.AuthStatus{LoggedIn: false}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/status", nil)
	rr := httptest.NewRecorder()
	tr.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constvars.ClientIDCookieName, cookies[0].Name)
	assert.Equal(t, cookies[0].Value, rr.Header().Get(constvars.HeaderXClientID))
	assert.True(t, cookies[0].HttpOnly)
}

func TestRouter_AnswersAreRateLimitedPerClient(t *testing.T) {
	tr := newTestRouter(t, 1)
	snapshot := &models.FlowSnapshot{State: models.FlowStateAskingQuestion, Mounted: true}
	tr.assessment.On("Answer", mock.Anything, testClientID, models.TextAnswer("hello")).
		Return(snapshot, true, nil).Once()

	first := tr.do(http.MethodPost, "/api/v1/assessment/answers", map[string]string{"text": "hello"})
	second := tr.do(http.MethodPost, "/api/v1/assessment/answers", map[string]string{"text": "hello"})

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, constvars.ResponseAnswerAccepted, decodeEnvelope(t, first)["message"])
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get(constvars.HeaderRetryAfter))
	tr.assessment.AssertExpectations(t)
}

func TestRouter_IgnoredAnswerIsNotAnError(t *testing.T) {
	tr := newTestRouter(t, 10)
	snapshot := &models.FlowSnapshot{State: models.FlowStateSubmitting, Mounted: true}
	tr.assessment.On("Skip", mock.Anything, testClientID).Return(snapshot, false, nil).Once()

	rr := tr.do(http.MethodPost, "/api/v1/assessment/skip", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	assert.Equal(t, constvars.ResponseAnswerIgnored, envelope["message"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, false, data["accepted"])
}

func TestRouter_AbandonWithoutFlow(t *testing.T) {
	tr := newTestRouter(t, 10)
	tr.assessment.On("Abandon", mock.Anything, testClientID).Return(exceptions.ErrNoActiveFlow(nil)).Once()

	rr := tr.do(http.MethodDelete, "/api/v1/assessment", nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_ResultsRedirectWhenNothingStored(t *testing.T) {
	tr := newTestRouter(t, 10)
	tr.results.On("Load", mock.Anything, testClientID).Return(nil, constvars.ViewAssessment, nil).Once()

	rr := tr.do(http.MethodGet, "/api/v1/results", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	assert.Equal(t, constvars.ViewAssessment, envelope["redirect_to"])
	assert.Nil(t, envelope["data"])
}

func TestRouter_AvailabilityUsesLocationParam(t *testing.T) {
	tr := newTestRouter(t, 10)
	tr.booking.On("Availability", mock.Anything, "loc-2").
		Return(&responses.Availability{Location: models.Location{ID: "loc-2"}}, nil).Once()

	rr := tr.do(http.MethodGet, "/api/v1/locations/loc-2/availability", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	tr.booking.AssertExpectations(t)
}

func TestRouter_NearbyReadsQueryCoordinates(t *testing.T) {
	tr := newTestRouter(t, 10)
	lat, lng := 43.65, -79.38
	tr.booking.On("Nearby", mock.Anything, testClientID, &requests.NearbyResources{Lat: &lat, Lng: &lng, Filters: "free"}).
		Return(&responses.NearbyResources{Resources: []models.Resource{{Name: "Clinic"}}}, nil).Once()

	rr := tr.do(http.MethodGet, "/api/v1/resources?lat=43.65&lng=-79.38&filters=free", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	data := decodeEnvelope(t, rr)["data"].(map[string]interface{})
	assert.Len(t, data["resources"], 1)
	tr.booking.AssertExpectations(t)
}

func TestRouter_FinalizeBookingValidatesSlot(t *testing.T) {
	tr := newTestRouter(t, 10)

	rr := tr.do(http.MethodPost, "/api/v1/bookings", map[string]string{
		"location_id": "loc-1",
		"date":        "tomorrow",
		"time":        "09:00",
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	tr.booking.AssertNotCalled(t, "Finalize", mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_ProfileUpdateMapsBody(t *testing.T) {
	tr := newTestRouter(t, 10)
	update := models.ProfileUpdate{Birthdate: "1999-04-01", University: "UofT", PhoneNumber: "416-555-0100"}
	tr.profile.On("UpdateProfile", mock.Anything, testClientID, update).
		Return(&models.Profile{Email: "a@b.ca", University: "UofT"}, "", nil).Once()

	rr := tr.do(http.MethodPut, "/api/v1/me/profile", map[string]string{
		"birthdate":    "1999-04-01",
		"university":   "UofT",
		"phone_number": "416-555-0100",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.ResponseProfileUpdated, decodeEnvelope(t, rr)["message"])
	tr.profile.AssertExpectations(t)
}

func TestRouter_ProfileRedirectsToLogin(t *testing.T) {
	tr := newTestRouter(t, 10)
	tr.profile.On("History", mock.Anything, testClientID).Return(nil, constvars.ViewLogin, nil).Once()

	rr := tr.do(http.MethodGet, "/api/v1/me/assessments", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, constvars.ViewLogin, decodeEnvelope(t, rr)["redirect_to"])
}
