package contracts

import (
	"carerouter-service/internal/app/models"
	"context"
)

// ClientStateRepository holds what a browser would keep in local and session
// storage, partitioned by client id. Missing or unparsable values read as
// absent.
type ClientStateRepository interface {
	Token(ctx context.Context, clientID string) (string, error)
	SetToken(ctx context.Context, clientID, token string) error
	ClearSession(ctx context.Context, clientID string) error
	Pathway(ctx context.Context, clientID string) (*models.StoredPathway, error)
	SavePathway(ctx context.Context, clientID string, pathway *models.StoredPathway) error
	SaveReceipt(ctx context.Context, clientID string, receipt *models.BookingReceipt) error
	TakeReceipt(ctx context.Context, clientID string) (*models.BookingReceipt, error)
}
