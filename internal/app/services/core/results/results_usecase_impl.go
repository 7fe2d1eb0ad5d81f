package results

import (
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/pkg/constvars"
	"carerouter-service/internal/pkg/dto/responses"
	"carerouter-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

const exportContentType = "text/plain; charset=utf-8"

type ExportOptions struct {
	BucketName string
	Expiry     time.Duration
}

type resultsUsecase struct {
	Log           *zap.Logger
	ClientState   contracts.ClientStateRepository
	Storage       contracts.Storage
	ExportOptions ExportOptions
}

// NewResultsUsecase reads pathways from client state. Storage may be nil, in
// which case exports are returned inline.
func NewResultsUsecase(
	logger *zap.Logger,
	clientState contracts.ClientStateRepository,
	storage contracts.Storage,
	export ExportOptions,
) contracts.ResultsUsecase {
	return &resultsUsecase{
		Log:           logger,
		ClientState:   clientState,
		Storage:       storage,
		ExportOptions: export,
	}
}

func (uc *resultsUsecase) Load(ctx context.Context, clientID string) (*responses.PathwayView, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("resultsUsecase.Load called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	pathway, redirect, err := uc.pathway(ctx, clientID)
	if err != nil || redirect != "" {
		return nil, redirect, err
	}

	view := BuildView(pathway)
	uc.Log.Info("resultsUsecase.Load succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int("resource_count", len(view.Resources)),
		zap.Bool("needs_immediate_resources", view.Crisis != nil),
	)
	return view, "", nil
}

func (uc *resultsUsecase) Export(ctx context.Context, clientID string) (*responses.PathwayExport, string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("resultsUsecase.Export called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClientIDKey, clientID),
	)

	pathway, redirect, err := uc.pathway(ctx, clientID)
	if err != nil || redirect != "" {
		return nil, redirect, err
	}

	text := RenderText(BuildView(pathway))
	if uc.Storage == nil {
		return &responses.PathwayExport{Text: text}, "", nil
	}

	objectName := fmt.Sprintf("pathways/%s/%s.txt", clientID, ulid.Make().String())
	err = uc.Storage.PutObject(ctx, uc.ExportOptions.BucketName, objectName, exportContentType, []byte(text))
	if err != nil {
		uc.Log.Error("resultsUsecase.Export error uploading pathway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", err
	}

	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.ExportOptions.BucketName, objectName, uc.ExportOptions.Expiry)
	if err != nil {
		uc.Log.Error("resultsUsecase.Export error presigning pathway",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, "", err
	}

	uc.Log.Info("resultsUsecase.Export succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("object_name", objectName),
	)
	return &responses.PathwayExport{ObjectName: objectName, URL: url}, "", nil
}

// pathway never asks the backend. Nothing stored means the client has to
// take the assessment first.
func (uc *resultsUsecase) pathway(ctx context.Context, clientID string) (*models.StoredPathway, string, error) {
	pathway, err := uc.ClientState.Pathway(ctx, clientID)
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusNotFound {
			uc.Log.Info("resultsUsecase no stored pathway, redirecting",
				zap.String(constvars.LoggingClientIDKey, clientID),
				zap.String(constvars.LoggingRedirectKey, constvars.ViewAssessment),
			)
			return nil, constvars.ViewAssessment, nil
		}
		return nil, "", err
	}
	return pathway, "", nil
}

// RenderText is the printable version of the results screen.
func RenderText(view *responses.PathwayView) string {
	var b strings.Builder
	b.WriteString("Your Personalized Support Pathway\n\n")

	if view.PersonalizedNote != "" {
		b.WriteString("Message for You\n")
		b.WriteString(view.PersonalizedNote + "\n\n")
	}

	b.WriteString("Assessment Summary\n")
	fmt.Fprintf(&b, "  Issue type: %s\n", view.IssueType)
	fmt.Fprintf(&b, "  Urgency:    %s\n", view.Urgency.Label)
	fmt.Fprintf(&b, "  Severity:   %s\n", view.Severity.Display)
	if view.Crisis != nil {
		fmt.Fprintf(&b, "\n!! %s\n   %s\n", view.Crisis.Title, view.Crisis.Message)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Recommended Resources (%d)\n", len(view.Resources))
	if len(view.Resources) == 0 {
		b.WriteString("  No specific resources were recommended at this time.\n")
	}
	for i, resource := range view.Resources {
		fmt.Fprintf(&b, "\n%d. %s", i+1, resource.Name)
		if resource.Type != "" {
			fmt.Fprintf(&b, " [%s]", resource.Type)
		}
		b.WriteString("\n")
		if resource.Description != "" {
			fmt.Fprintf(&b, "   %s\n", resource.Description)
		}
		if resource.Contact != "" {
			fmt.Fprintf(&b, "   %s: %s\n", resource.ContactKind, resource.Contact)
		}
	}

	if len(view.Exercises) > 0 {
		b.WriteString("\nExercises\n")
		for _, exercise := range view.Exercises {
			fmt.Fprintf(&b, "\n- %s\n", exercise.Title)
			for n, step := range exercise.Steps {
				fmt.Fprintf(&b, "   %d) %s\n", n+1, step)
			}
			if exercise.Benefit != "" {
				fmt.Fprintf(&b, "   Why it helps: %s\n", exercise.Benefit)
			}
		}
	}

	if view.Reasoning != "" {
		b.WriteString("\nWhy these recommendations?\n")
		b.WriteString(view.Reasoning + "\n")
	}
	return b.String()
}
