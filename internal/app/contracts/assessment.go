package contracts

import (
	"carerouter-service/internal/app/models"
	"context"
	"time"
)

type AssessmentUsecase interface {
	Questions() []models.Question
	Start(ctx context.Context, clientID string, location *models.Coordinates) (*models.FlowSnapshot, error)
	Snapshot(ctx context.Context, clientID string) (*models.FlowSnapshot, error)
	Answer(ctx context.Context, clientID string, answer models.Answer) (*models.FlowSnapshot, bool, error)
	Skip(ctx context.Context, clientID string) (*models.FlowSnapshot, bool, error)
	Abandon(ctx context.Context, clientID string) error
	SweepIdle(ctx context.Context, maxIdle time.Duration) int
}
