package profiles

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
)

type profileUsecase struct {
	Client      contracts.CareRouterClient
	ClientState contracts.ClientStateRepository
	Log         *zap.Logger
}

func NewProfileUsecase(
	client contracts.CareRouterClient,
	clientState contracts.ClientStateRepository,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	return &profileUsecase{
		Client:      client,
		ClientState: clientState,
		Log:         logger,
	}
}

func (uc *profileUsecase) Profile(ctx context.Context, clientID string) (*models.Profile, string, error) {
	var profile *models.Profile
	redirect, err := uc.withToken(ctx, "Profile", clientID, func(token string) (err error) {
		profile, err = uc.Client.GetProfile(ctx, token)
		return err
	})
	return profile, redirect, err
}

func (uc *profileUsecase) UpdateProfile(ctx context.Context, clientID string, update models.ProfileUpdate) (*models.Profile, string, error) {
	var profile *models.Profile
	redirect, err := uc.withToken(ctx, "UpdateProfile", clientID, func(token string) (err error) {
		profile, err = uc.Client.UpdateProfile(ctx, token, update)
		return err
	})
	return profile, redirect, err
}

// History lists past assessments, newest first.
func (uc *profileUsecase) History(ctx context.Context, clientID string) (*models.AssessmentHistory, string, error) {
	var history *models.AssessmentHistory
	redirect, err := uc.withToken(ctx, "History", clientID, func(token string) (err error) {
		history, err = uc.Client.ListAssessmentHistory(ctx, token)
		return err
	})
	if history != nil {
		sort.SliceStable(history.History, func(i, j int) bool {
			a, b := history.History[i], history.History[j]
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt > b.CreatedAt
			}
			return a.ID > b.ID
		})
	}
	return history, redirect, err
}

// withToken runs call with the stored token. A missing or rejected token
// logs the client out and redirects to the login view.
func (uc *profileUsecase) withToken(ctx context.Context, method, clientID string, call func(token string) error) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase."+method+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	token, err := uc.ClientState.Token(ctx, clientID)
	if err != nil {
		return "", err
	}
	if token == "" {
		return uc.logout(ctx, requestID, method, clientID, exceptions.ErrNotLoggedIn(nil))
	}

	err = call(token)
	if err != nil {
		if exceptions.StatusCode(err) == constvars.StatusUnauthorized {
			return uc.logout(ctx, requestID, method, clientID, err)
		}
		uc.Log.Error("profileUsecase."+method+" error from backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", err
	}

	uc.Log.Info("profileUsecase."+method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return "", nil
}

func (uc *profileUsecase) logout(ctx context.Context, requestID, method, clientID string, cause error) (string, error) {
	uc.Log.Info("profileUsecase."+method+" not authorized, redirecting to login",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRedirectKey, constvars.ViewLogin),
		zap.NamedError("cause", cause),
	)
	if err := uc.ClientState.ClearSession(ctx, clientID); err != nil {
		return "", errors.Join(cause, err)
	}
	return constvars.ViewLogin, nil
}
