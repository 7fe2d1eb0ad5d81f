package assessments

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/core/catalog"
	"carerouter-service/internal/app/services/shared/clientstate"
	"carerouter-service/internal/app/services/shared/scheduler"
	"carerouter-service/internal/app/services/shared/sessionstore"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCareRouterClient struct {
	mock.Mock
}

func (m *MockCareRouterClient) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	args := m.Called(ctx, credentials)
	return args.String(0), args.Error(1)
}

func (m *MockCareRouterClient) Signup(ctx context.Context, credentials models.Credentials) (string, error) {
	args := m.Called(ctx, credentials)
	return args.String(0), args.Error(1)
}

func (m *MockCareRouterClient) GeneratePlan(ctx context.Context, token string, submission models.AssessmentSubmission) (*models.StoredPathway, error) {
	args := m.Called(ctx, token, submission)
	pathway, _ := args.Get(0).(*models.StoredPathway)
	return pathway, args.Error(1)
}

func (m *MockCareRouterClient) ListResources(ctx context.Context, token string, query contracts.ResourceQuery) ([]models.Resource, error) {
	args := m.Called(ctx, token, query)
	resources, _ := args.Get(0).([]models.Resource)
	return resources, args.Error(1)
}

func (m *MockCareRouterClient) CreateBooking(ctx context.Context, token string, booking models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, token, booking)
	created, _ := args.Get(0).(*models.Booking)
	return created, args.Error(1)
}

func (m *MockCareRouterClient) ListBookings(ctx context.Context, token string) ([]models.Booking, error) {
	args := m.Called(ctx, token)
	bookings, _ := args.Get(0).([]models.Booking)
	return bookings, args.Error(1)
}

func (m *MockCareRouterClient) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	args := m.Called(ctx, token)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *MockCareRouterClient) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.Profile, error) {
	args := m.Called(ctx, token, update)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.Error(1)
}

func (m *MockCareRouterClient) ListAssessmentHistory(ctx context.Context, token string) (*models.AssessmentHistory, error) {
	args := m.Called(ctx, token)
	history, _ := args.Get(0).(*models.AssessmentHistory)
	return history, args.Error(1)
}

const (
	testRevealDelay   = 600 * time.Millisecond
	testFailureDelay  = 2 * time.Second
	testLocateTimeout = time.Second
)

type flowHarness struct {
	flow        *FlowController
	client      *MockCareRouterClient
	clientState contracts.ClientStateRepository
	scheduler   *scheduler.Manual
	navigations []string
}

func newFlowHarness(t *testing.T, questions []models.Question, geolocator contracts.Geolocator) *flowHarness {
	t.Helper()
	h := &flowHarness{
		client:    new(MockCareRouterClient),
		scheduler: scheduler.NewManual(),
	}
	h.clientState = clientstate.NewClientStateRepository(zap.NewNop(), sessionstore.NewMemoryStore(), sessionstore.NewMemoryStore(), clientstate.Options{})
	h.flow = NewFlowController(context.Background(), FlowDependencies{
		Log:         zap.NewNop(),
		ClientID:    "client-1",
		Questions:   questions,
		Client:      h.client,
		ClientState: h.clientState,
		Scheduler:   h.scheduler,
		Geolocator:  geolocator,
		Navigator:   contracts.NavigatorFunc(func(view string) { h.navigations = append(h.navigations, view) }),
	}, FlowOptions{
		RevealDelay:          testRevealDelay,
		FailureRedirectDelay: testFailureDelay,
		LocationTimeout:      testLocateTimeout,
	})
	return h
}

func (h *flowHarness) answerAll(t *testing.T, answers ...string) {
	t.Helper()
	for _, answer := range answers {
		h.scheduler.Advance(testRevealDelay)
		require.True(t, h.flow.SubmitAnswer(models.TextAnswer(answer)), "answer %q rejected", answer)
	}
}

var sixAnswers = []string{"work stress", "very intense", "can't sleep", "this week", "I am safe", "cost"}

func TestFlowController_HappyPath(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	pathway := &models.StoredPathway{
		Scores:             models.Scores{IssueType: "stress", SeverityScore: 2},
		RecommendedPathway: []models.Resource{{Name: "Wellness Together Canada", Type: "Phone", Data: "1-866-585-0445"}},
	}
	h.client.On("GeneratePlan", mock.Anything, "", mock.Anything).Return(pathway, nil).Once()

	h.flow.Start()
	assert.Equal(t, models.FlowStateAskingQuestion, h.flow.Snapshot().State)

	h.answerAll(t, sixAnswers...)
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Equal(t, models.FlowStateComplete, snapshot.State)
	assert.Equal(t, constvars.ViewResults, snapshot.RedirectTo)
	assert.Equal(t, []string{constvars.ViewResults}, h.navigations)
	h.client.AssertNumberOfCalls(t, "GeneratePlan", 1)

	t.Run("Transcript alternates bot and user", func(t *testing.T) {
		require.Len(t, snapshot.Transcript, 2*len(sixAnswers))
		seen := map[string]bool{}
		for i, entry := range snapshot.Transcript {
			if i%2 == 0 {
				assert.Equal(t, models.ChatRoleBot, entry.Role)
			} else {
				assert.Equal(t, models.ChatRoleUser, entry.Role)
				assert.Equal(t, sixAnswers[i/2], entry.Message)
			}
			assert.False(t, seen[entry.ID], "duplicate entry id")
			seen[entry.ID] = true
		}
		assert.Contains(t, snapshot.Transcript[8].Message, "call 988")
	})

	t.Run("Submission maps answers in order with null location", func(t *testing.T) {
		submission := h.client.Calls[0].Arguments.Get(2).(models.AssessmentSubmission)
		assert.Equal(t, models.AssessmentSubmission{
			PrimaryConcern:    "work stress",
			AnswerDistress:    "very intense",
			AnswerFunctioning: "can't sleep",
			AnswerUrgency:     "this week",
			AnswerSafety:      "I am safe",
			AnswerConstraints: "cost",
		}, submission)
		assert.Nil(t, submission.Latitude)
		assert.Nil(t, submission.Longitude)
	})

	t.Run("Pathway is stored", func(t *testing.T) {
		stored, err := h.clientState.Pathway(context.Background(), "client-1")
		require.NoError(t, err)
		assert.Equal(t, pathway, stored)
	})
}

func TestFlowController_AnswerWhileAskingIsIgnored(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	h.flow.Start()

	assert.False(t, h.flow.SubmitAnswer(models.TextAnswer("too early")))
	snapshot := h.flow.Snapshot()
	assert.Empty(t, snapshot.Transcript)
	assert.Equal(t, models.FlowStateAskingQuestion, snapshot.State)

	h.scheduler.Advance(testRevealDelay)
	require.True(t, h.flow.SubmitAnswer(models.TextAnswer("first")))
	assert.False(t, h.flow.SubmitAnswer(models.TextAnswer("second before reveal")))

	snapshot = h.flow.Snapshot()
	assert.Len(t, snapshot.Transcript, 2)
	assert.Equal(t, 1, snapshot.QuestionIndex)
}

func TestFlowController_RejectsBlankAndMismatchedAnswers(t *testing.T) {
	questions := []models.Question{
		{ID: 0, Text: "Describe it", Type: models.QuestionTypeText},
		{ID: 1, Text: "Pick one", Type: models.QuestionTypeSingleChoice, Options: []models.QuestionOption{
			{Value: "now", Label: "Right now"}, {Value: "later", Label: "Later"},
		}},
	}
	h := newFlowHarness(t, questions, nil)
	h.client.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything).Return(&models.StoredPathway{}, nil)
	h.flow.Start()
	h.scheduler.Advance(testRevealDelay)

	assert.False(t, h.flow.SubmitAnswer(models.TextAnswer("   ")))
	assert.False(t, h.flow.SubmitAnswer(models.ChoiceAnswer("now")))
	require.True(t, h.flow.SubmitAnswer(models.TextAnswer("  padded  ")))

	h.scheduler.Advance(testRevealDelay)
	assert.False(t, h.flow.SubmitAnswer(models.TextAnswer("now")))
	assert.False(t, h.flow.SubmitAnswer(models.ChoiceAnswer("never")))
	require.True(t, h.flow.SubmitAnswer(models.ChoiceAnswer("now")))
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Equal(t, "padded", snapshot.Transcript[1].Message)
	assert.Equal(t, "Right now", snapshot.Transcript[3].Message)

	submission := h.client.Calls[0].Arguments.Get(2).(models.AssessmentSubmission)
	assert.Equal(t, "padded", submission.PrimaryConcern)
	assert.Equal(t, "now", submission.AnswerDistress)
	assert.Equal(t, "", submission.AnswerFunctioning)
}

func TestFlowController_Skip(t *testing.T) {
	h := newFlowHarness(t, catalog.Default()[:2], nil)
	h.client.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything).Return(&models.StoredPathway{}, nil)
	h.flow.Start()

	h.scheduler.Advance(testRevealDelay)
	require.True(t, h.flow.Skip())
	h.scheduler.Advance(testRevealDelay)
	require.True(t, h.flow.SubmitAnswer(models.TextAnswer("high")))
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Equal(t, constvars.ChatMessageSkipped, snapshot.Transcript[1].Message)
	submission := h.client.Calls[0].Arguments.Get(2).(models.AssessmentSubmission)
	assert.Equal(t, "", submission.PrimaryConcern)
	assert.Equal(t, "high", submission.AnswerDistress)
}

func TestFlowController_LocationAndToken(t *testing.T) {
	located := &models.Coordinates{Lat: 43.6532, Lng: -79.3832}
	geolocator := contracts.GeolocatorFunc(func(ctx context.Context) (*models.Coordinates, error) {
		return located, nil
	})
	h := newFlowHarness(t, catalog.Default(), geolocator)
	require.NoError(t, h.clientState.SetToken(context.Background(), "client-1", "opaque-token"))

	h.client.On("GeneratePlan", mock.Anything, "opaque-token", mock.MatchedBy(func(s models.AssessmentSubmission) bool {
		return s.Latitude != nil && *s.Latitude == 43.6532 && s.Longitude != nil && *s.Longitude == -79.3832
	})).Return(&models.StoredPathway{Scores: models.Scores{IssueType: "grief"}}, nil).Once()

	h.flow.Start()
	h.answerAll(t, sixAnswers...)
	h.scheduler.RunAll()

	stored, err := h.clientState.Pathway(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, located, stored.UserLocation)
	h.client.AssertExpectations(t)
}

func TestFlowController_GeolocationFailureDoesNotBlock(t *testing.T) {
	geolocator := contracts.GeolocatorFunc(func(ctx context.Context) (*models.Coordinates, error) {
		return nil, errors.New("permission denied")
	})
	h := newFlowHarness(t, catalog.Default()[:1], geolocator)
	h.client.On("GeneratePlan", mock.Anything, mock.Anything, mock.MatchedBy(func(s models.AssessmentSubmission) bool {
		return s.Latitude == nil && s.Longitude == nil
	})).Return(&models.StoredPathway{}, nil).Once()

	h.flow.Start()
	h.answerAll(t, "only answer")
	h.scheduler.RunAll()

	assert.Equal(t, models.FlowStateComplete, h.flow.Snapshot().State)
	h.client.AssertExpectations(t)
}

func TestFlowController_SubmissionFailure(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	h.client.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, exceptions.ErrBackendStatus(errors.New("boom"), 500)).Once()

	h.flow.Start()
	h.answerAll(t, sixAnswers...)
	h.scheduler.Advance(0)

	snapshot := h.flow.Snapshot()
	assert.Equal(t, models.FlowStateComplete, snapshot.State)
	require.Len(t, snapshot.Transcript, 13)
	last := snapshot.Transcript[12]
	assert.Equal(t, models.ChatRoleBot, last.Role)
	assert.Equal(t, constvars.ChatMessageConnectionFailed, last.Message)
	assert.Empty(t, snapshot.RedirectTo, "redirect waits for the failure delay")
	assert.Empty(t, h.navigations)

	h.scheduler.Advance(testFailureDelay)
	assert.Equal(t, []string{constvars.ViewResults}, h.navigations)
	assert.Equal(t, constvars.ViewResults, h.flow.Snapshot().RedirectTo)

	_, err := h.clientState.Pathway(context.Background(), "client-1")
	assert.Error(t, err, "no pathway stored after a failed submission")
	h.client.AssertNumberOfCalls(t, "GeneratePlan", 1)
}

func TestFlowController_UnmountDuringSubmission(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	h.client.On("GeneratePlan", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { h.flow.Unmount() }).
		Return(&models.StoredPathway{Scores: models.Scores{IssueType: "late"}}, nil).Once()

	h.flow.Start()
	h.answerAll(t, sixAnswers...)
	h.scheduler.RunAll()

	_, err := h.clientState.Pathway(context.Background(), "client-1")
	assert.Error(t, err, "nothing is written after unmount")
	assert.Empty(t, h.navigations)
	assert.Equal(t, models.FlowStateSubmitting, h.flow.Snapshot().State)
}

func TestFlowController_UnmountCancelsPendingReveal(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	h.flow.Start()
	h.flow.Unmount()
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Empty(t, snapshot.Transcript)
	assert.False(t, snapshot.Mounted)
	assert.Equal(t, 0, h.scheduler.Pending())
}

func TestFlowController_StartIsOneShot(t *testing.T) {
	h := newFlowHarness(t, catalog.Default(), nil)
	h.flow.Start()
	h.flow.Start()
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Len(t, snapshot.Transcript, 1)
	assert.Equal(t, models.FlowStateAwaitingAnswer, snapshot.State)
	require.NotNil(t, snapshot.CurrentQuestion)
	assert.Equal(t, 0, snapshot.CurrentQuestion.ID)
}

func TestFlowController_EmptyCatalogStaysIdle(t *testing.T) {
	h := newFlowHarness(t, nil, nil)
	h.flow.Start()
	h.scheduler.RunAll()

	snapshot := h.flow.Snapshot()
	assert.Equal(t, models.FlowStateIdle, snapshot.State)
	assert.Empty(t, snapshot.Transcript)
	assert.False(t, h.flow.SubmitAnswer(models.TextAnswer("anything")))
	h.client.AssertNotCalled(t, "GeneratePlan", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewAssessmentSubmission(t *testing.T) {
	t.Run("Missing answers become empty strings", func(t *testing.T) {
		submission := models.NewAssessmentSubmission(models.ResponseMap{
			0: models.TextAnswer("a"),
			3: models.TextAnswer("d"),
		}, nil)
		assert.Equal(t, "a", submission.PrimaryConcern)
		assert.Equal(t, "", submission.AnswerDistress)
		assert.Equal(t, "d", submission.AnswerUrgency)
		assert.Equal(t, "", submission.AnswerConstraints)
	})

	t.Run("Multi-choice answers are joined", func(t *testing.T) {
		submission := models.NewAssessmentSubmission(models.ResponseMap{
			5: models.MultiChoiceAnswer("cost", "transportation"),
		}, &models.Coordinates{Lat: 1, Lng: 2})
		assert.Equal(t, "cost, transportation", submission.AnswerConstraints)
		require.NotNil(t, submission.Latitude)
		assert.Equal(t, 1.0, *submission.Latitude)
	})
}
