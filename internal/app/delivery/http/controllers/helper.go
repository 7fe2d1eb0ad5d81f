package controllers

import (
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/utils"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// writeResult sends either the redirect envelope or the success payload.
func writeResult(log *zap.Logger, w http.ResponseWriter, requestID, redirect string, code int, message string, data interface{}) {
	if redirect != "" {
		log.Info("redirecting client",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedirectKey, redirect),
		)
		utils.BuildRedirectResponse(w, redirect, nil)
		return
	}
	utils.BuildSuccessResponse(w, code, message, data)
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
