package bookings

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"context"

	"github.com/stretchr/testify/mock"
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
