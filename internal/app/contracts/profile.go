package contracts

import (
	"carerouter-service/internal/app/models"
	"context"
)

// ProfileUsecase needs a logged-in client. When the token is missing or
// rejected the session is cleared and redirect is the login view.
type ProfileUsecase interface {
	Profile(ctx context.Context, clientID string) (profile *models.Profile, redirect string, err error)
	UpdateProfile(ctx context.Context, clientID string, update models.ProfileUpdate) (profile *models.Profile, redirect string, err error)
	History(ctx context.Context, clientID string) (history *models.AssessmentHistory, redirect string, err error)
}
