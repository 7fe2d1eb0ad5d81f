package utils

import (
	"carerouter-service/internal/pkg/constvars"
	"context"

	"github.com/google/uuid"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetClientID(ctx context.Context) string {
	if clientID, ok := ctx.Value(constvars.CONTEXT_CLIENT_ID_KEY).(string); ok {
		return clientID
	}
	return ""
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}
