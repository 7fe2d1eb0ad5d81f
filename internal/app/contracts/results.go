package contracts

import (
	"carerouter-service/internal/pkg/dto/responses"
	"context"
)

// ResultsUsecase renders the stored pathway. A non-empty redirect means the
// client has nothing to show and should move to that view instead.
type ResultsUsecase interface {
	Load(ctx context.Context, clientID string) (view *responses.PathwayView, redirect string, err error)
	Export(ctx context.Context, clientID string) (export *responses.PathwayExport, redirect string, err error)
}
