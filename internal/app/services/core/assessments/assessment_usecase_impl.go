package assessments

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/shared/geolocation"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type assessmentUsecase struct {
	Log         *zap.Logger
	Questionset []models.Question
	Client      contracts.CareRouterClient
	ClientState contracts.ClientStateRepository
	Scheduler   contracts.Scheduler
	Options     FlowOptions

	mu    sync.Mutex
	flows map[string]*FlowController
}

// NewAssessmentUsecase keeps one flow per client. Starting a new flow
// unmounts the previous one, like navigating back to the assessment page.
func NewAssessmentUsecase(
	logger *zap.Logger,
	questions []models.Question,
	client contracts.CareRouterClient,
	clientState contracts.ClientStateRepository,
	scheduler contracts.Scheduler,
	options FlowOptions,
) contracts.AssessmentUsecase {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &assessmentUsecase{
		Log:         logger,
		Questionset: questions,
		Client:      client,
		ClientState: clientState,
		Scheduler:   scheduler,
		Options:     options,
		flows:       make(map[string]*FlowController),
	}
}

func (uc *assessmentUsecase) Questions() []models.Question {
	return append([]models.Question(nil), uc.Questionset...)
}

func (uc *assessmentUsecase) Start(ctx context.Context, clientID string, location *models.Coordinates) (*models.FlowSnapshot, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("assessmentUsecase.Start called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
		zap.Bool("has_location", location != nil),
	)

	flow := NewFlowController(ctx, FlowDependencies{
		Log:         uc.Log,
		ClientID:    clientID,
		Questions:   uc.Questionset,
		Client:      uc.Client,
		ClientState: uc.ClientState,
		Scheduler:   uc.Scheduler,
		Geolocator:  geolocation.Static(location),
	}, uc.Options)

	uc.mu.Lock()
	previous := uc.flows[clientID]
	uc.flows[clientID] = flow
	uc.mu.Unlock()

	if previous != nil {
		previous.Unmount()
		uc.Log.Info("assessmentUsecase.Start replaced previous flow",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClientIDKey, clientID),
		)
	}

	flow.Start()
	snapshot := flow.Snapshot()
	return &snapshot, nil
}

func (uc *assessmentUsecase) Snapshot(ctx context.Context, clientID string) (*models.FlowSnapshot, error) {
	flow, err := uc.flow(clientID)
	if err != nil {
		return nil, err
	}
	snapshot := flow.Snapshot()
	return &snapshot, nil
}

func (uc *assessmentUsecase) Answer(ctx context.Context, clientID string, answer models.Answer) (*models.FlowSnapshot, bool, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	flow, err := uc.flow(clientID)
	if err != nil {
		return nil, false, err
	}

	accepted := flow.SubmitAnswer(answer)
	snapshot := flow.Snapshot()
	uc.Log.Info("assessmentUsecase.Answer handled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
		zap.Bool("accepted", accepted),
		zap.String(constvars.LoggingFlowStateKey, string(snapshot.State)),
	)
	return &snapshot, accepted, nil
}

func (uc *assessmentUsecase) Skip(ctx context.Context, clientID string) (*models.FlowSnapshot, bool, error) {
	flow, err := uc.flow(clientID)
	if err != nil {
		return nil, false, err
	}
	accepted := flow.Skip()
	snapshot := flow.Snapshot()
	return &snapshot, accepted, nil
}

func (uc *assessmentUsecase) Abandon(ctx context.Context, clientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	uc.mu.Lock()
	flow, ok := uc.flows[clientID]
	delete(uc.flows, clientID)
	uc.mu.Unlock()

	if !ok {
		return exceptions.ErrNoActiveFlow(nil)
	}
	flow.Unmount()

	uc.Log.Info("assessmentUsecase.Abandon succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)
	return nil
}

// SweepIdle unmounts and forgets flows without a transition for maxIdle.
func (uc *assessmentUsecase) SweepIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := uc.Options.Now().Add(-maxIdle)

	uc.mu.Lock()
	var stale []*FlowController
	for clientID, flow := range uc.flows {
		if flow.IdleSince().Before(cutoff) {
			stale = append(stale, flow)
			delete(uc.flows, clientID)
		}
	}
	uc.mu.Unlock()

	for _, flow := range stale {
		flow.Unmount()
	}
	if len(stale) > 0 {
		uc.Log.Info("assessmentUsecase.SweepIdle removed idle flows", zap.Int("count", len(stale)))
	}
	return len(stale)
}

func (uc *assessmentUsecase) flow(clientID string) (*FlowController, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	flow, ok := uc.flows[clientID]
	if !ok {
		return nil, exceptions.ErrNoActiveFlow(nil)
	}
	return flow, nil
}
