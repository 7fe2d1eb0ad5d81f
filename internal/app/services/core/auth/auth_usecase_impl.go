package auth

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/shared/jwtmanager"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/responses"
	"context"
	"strings"

	"go.uber.org/zap"
)

type authUsecase struct {
	Client      contracts.CareRouterClient
	ClientState contracts.ClientStateRepository
	Log         *zap.Logger
}

func NewAuthUsecase(
	client contracts.CareRouterClient,
	clientState contracts.ClientStateRepository,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		Client:      client,
		ClientState: clientState,
		Log:         logger,
	}
}

func (uc *authUsecase) Login(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	credentials.Email = strings.TrimSpace(credentials.Email)
	token, err := uc.Client.Login(ctx, credentials)
	if err != nil {
		uc.Log.Error("authUsecase.Login error from backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.storeToken(ctx, requestID, clientID, token, credentials.Email)
}

func (uc *authUsecase) Signup(ctx context.Context, clientID string, credentials models.Credentials) (*responses.AuthStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Signup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	credentials.Email = strings.TrimSpace(credentials.Email)
	token, err := uc.Client.Signup(ctx, credentials)
	if err != nil {
		uc.Log.Error("authUsecase.Signup error from backend",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.storeToken(ctx, requestID, clientID, token, credentials.Email)
}

func (uc *authUsecase) storeToken(ctx context.Context, requestID, clientID, token, email string) (*responses.AuthStatus, error) {
	if err := uc.ClientState.SetToken(ctx, clientID, token); err != nil {
		uc.Log.Error("authUsecase.storeToken error saving token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	status := &responses.AuthStatus{LoggedIn: true, Email: email}
	if subject := tokenSubject(token); subject != "" {
		status.Email = subject
	}
	uc.Log.Info("authUsecase.storeToken succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)
	return status, nil
}

// Logout drops the token and the stored pathway.
func (uc *authUsecase) Logout(ctx context.Context, clientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)
	return uc.ClientState.ClearSession(ctx, clientID)
}

func (uc *authUsecase) Status(ctx context.Context, clientID string) (*responses.AuthStatus, error) {
	token, err := uc.ClientState.Token(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return &responses.AuthStatus{}, nil
	}
	return &responses.AuthStatus{LoggedIn: true, Email: tokenSubject(token)}, nil
}

// tokenSubject is empty for opaque tokens.
func tokenSubject(token string) string {
	claims, err := jwtmanager.Inspect(token)
	if err != nil {
		return ""
	}
	return claims.Subject
}
