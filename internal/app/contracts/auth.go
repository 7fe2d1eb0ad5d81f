package contracts

import (
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/dto/responses"
	"context"
)

type AuthUsecase interface {
	Login(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error)
	Signup(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error)
	Logout(ctx context.Context, clientID string) error
	Status(ctx context.Context, clientID string) (*responses.AuthStatus, error)
}
