package contracts

import (
	"carerouter-service/internal/app/models"
	"context"
)

type ResourceQuery struct {
	Lat     *float64
	Lon     *float64
	Filters string
}

type CareRouterClient interface {
	Login(ctx context.Context, credentials models.Credentials) (string, error)
	Signup(ctx context.Context, credentials models.Credentials) (string, error)
	GeneratePlan(ctx context.Context, token string, submission models.AssessmentSubmission) (*models.StoredPathway, error)
	ListResources(ctx context.Context, token string, query ResourceQuery) ([]models.Resource, error)
	CreateBooking(ctx context.Context, token string, booking models.Booking) (*models.Booking, error)
	ListBookings(ctx context.Context, token string) ([]models.Booking, error)
	GetProfile(ctx context.Context, token string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) (*models.Profile, error)
	ListAssessmentHistory(ctx context.Context, token string) (*models.AssessmentHistory, error)
}
