package routers

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/dto/requests"
	"carerouter-service/internal/pkg/dto/responses"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Login(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error) {
	args := m.Called(ctx, clientID, credentials)
	status, _ := args.Get(0).(*responses.AuthStatus)
	return status, args.Error(1)
}

func (m *MockAuthUsecase) Signup(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error) {
	args := m.Called(ctx, clientID, credentials)
	status, _ := args.Get(0).(*responses.AuthStatus)
	return status, args.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockAuthUsecase) Status(ctx context.Context, clientID string) (*responses.AuthStatus, error) {
	args := m.Called(ctx, clientID)
	status, _ := args.Get(0).(*responses.AuthStatus)
	return status, args.Error(1)
}

type MockAssessmentUsecase struct {
	mock.Mock
}

func (m *MockAssessmentUsecase) Questions() []models.Question {
	args := m.Called()
	questions, _ := args.Get(0).([]models.Question)
	return questions
}

func (m *MockAssessmentUsecase) Start(ctx context.Context, clientID string, location *models.Coordinates) (*models.FlowSnapshot, error) {
	args := m.Called(ctx, clientID, location)
	snapshot, _ := args.Get(0).(*models.FlowSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockAssessmentUsecase) Snapshot(ctx context.Context, clientID string) (*models.FlowSnapshot, error) {
	args := m.Called(ctx, clientID)
	snapshot, _ := args.Get(0).(*models.FlowSnapshot)
	return snapshot, args.Error(1)
}

func (m *MockAssessmentUsecase) Answer(ctx context.Context, clientID string, answer models.Answer) (*models.FlowSnapshot, bool, error) {
	args := m.Called(ctx, clientID, answer)
	snapshot, _ := args.Get(0).(*models.FlowSnapshot)
	return snapshot, args.Bool(1), args.Error(2)
}

func (m *MockAssessmentUsecase) Skip(ctx context.Context, clientID string) (*models.FlowSnapshot, bool, error) {
	args := m.Called(ctx, clientID)
	snapshot, _ := args.Get(0).(*models.FlowSnapshot)
	return snapshot, args.Bool(1), args.Error(2)
}

func (m *MockAssessmentUsecase) Abandon(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

func (m *MockAssessmentUsecase) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	args := m.Called(ctx, maxIdle)
	return args.Int(0)
}

type MockResultsUsecase struct {
	mock.Mock
}

func (m *MockResultsUsecase) Load(ctx context.Context, clientID string) (*responses.PathwayView, string, error) {
	args := m.Called(ctx, clientID)
	view, _ := args.Get(0).(*responses.PathwayView)
	return view, args.String(1), args.Error(2)
}

func (m *MockResultsUsecase) Export(ctx context.Context, clientID string) (*responses.PathwayExport, string, error) {
	args := m.Called(ctx, clientID)
	export, _ := args.Get(0).(*responses.PathwayExport)
	return export, args.String(1), args.Error(2)
}

type MockBookingUsecase struct {
	mock.Mock
}

func (m *MockBookingUsecase) Locations(ctx context.Context) []models.Location {
	args := m.Called(ctx)
	locations, _ := args.Get(0).([]models.Location)
	return locations
}

func (m *MockBookingUsecase) Nearby(ctx context.Context, clientID string, request *requests.NearbyResources) (*responses.NearbyResources, error) {
	args := m.Called(ctx, clientID, request)
	nearby, _ := args.Get(0).(*responses.NearbyResources)
	return nearby, args.Error(1)
}

func (m *MockBookingUsecase) Availability(ctx context.Context, locationID string) (*responses.Availability, error) {
	args := m.Called(ctx, locationID)
	availability, _ := args.Get(0).(*responses.Availability)
	return availability, args.Error(1)
}

func (m *MockBookingUsecase) Finalize(ctx context.Context, clientID string, request *requests.FinalizeBooking) (*models.BookingReceipt, string, error) {
	args := m.Called(ctx, clientID, request)
	receipt, _ := args.Get(0).(*models.BookingReceipt)
	return receipt, args.String(1), args.Error(2)
}

func (m *MockBookingUsecase) Confirmation(ctx context.Context, clientID string) (*responses.BookingConfirmation, string, error) {
	args := m.Called(ctx, clientID)
	confirmation, _ := args.Get(0).(*responses.BookingConfirmation)
	return confirmation, args.String(1), args.Error(2)
}

func (m *MockBookingUsecase) History(ctx context.Context, clientID string) (*responses.BookingHistory, string, error) {
	args := m.Called(ctx, clientID)
	history, _ := args.Get(0).(*responses.BookingHistory)
	return history, args.String(1), args.Error(2)
}

type MockProfileUsecase struct {
	mock.Mock
}

func (m *MockProfileUsecase) Profile(ctx context.Context, clientID string) (*models.Profile, string, error) {
	args := m.Called(ctx, clientID)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.String(1), args.Error(2)
}

func (m *MockProfileUsecase) UpdateProfile(ctx context.Context, clientID string, update models.ProfileUpdate) (*models.Profile, string, error) {
	args := m.Called(ctx, clientID, update)
	profile, _ := args.Get(0).(*models.Profile)
	return profile, args.String(1), args.Error(2)
}

func (m *MockProfileUsecase) History(ctx context.Context, clientID string) (*models.AssessmentHistory, string, error) {
	args := m.Called(ctx, clientID)
	history, _ := args.Get(0).(*models.AssessmentHistory)
	return history, args.String(1), args.Error(2)
}
