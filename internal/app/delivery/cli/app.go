package cli

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/drivers/database"
	"carerouter-service/internal/app/drivers/logger"
	"carerouter-service/internal/app/models"
	"carerouter-service/internal/app/services/core/auth"
	"carerouter-service/internal/app/services/core/bookings"
	"carerouter-service/internal/app/services/core/catalog"
	"carerouter-service/internal/app/services/core/results"
	"carerouter-service/internal/app/services/shared/carerouter"
	"carerouter-service/internal/app/services/shared/clientstate"
	"carerouter-service/internal/app/services/shared/sessionstore"
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const clientIDKey = "cli:client_id"

// app is everything a command needs, built from the environment and flags.
type app struct {
	log            *logrus.Logger
	serviceLog     *zap.Logger
	internalConfig *config.InternalConfig
	db             *sql.DB
	clientID       string
	questions      []models.Question
	client         contracts.CareRouterClient
	clientState    contracts.ClientStateRepository
	auth           contracts.AuthUsecase
	results        contracts.ResultsUsecase
	bookings       contracts.BookingUsecase
}

func openApp(ctx context.Context) (*app, error) {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	driverConfig.SQLite.Path = getStatePath()
	if apiBaseUrl != "" {
		internalConfig.CareRouter.BaseUrl = apiBaseUrl
	}

	log := logger.NewLogrusLogger(driverConfig, internalConfig, os.Stderr)
	serviceLog := zap.NewNop()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		serviceLog, _ = zap.NewDevelopment()
	}

	db, err := database.NewSQLite(driverConfig)
	if err != nil {
		return nil, err
	}
	store, err := sessionstore.NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	clientID, err := localClientID(ctx, store)
	if err != nil {
		db.Close()
		return nil, err
	}

	questions := catalog.Default()
	if path := internalConfig.App.QuestionCatalogFilePath; path != "" {
		if questions, err = catalog.Load(path); err != nil {
			db.Close()
			return nil, err
		}
	}

	client := carerouter.NewCareRouterClient(
		internalConfig.CareRouter.BaseUrl,
		time.Duration(internalConfig.CareRouter.HTTPTimeoutInSeconds)*time.Second,
		serviceLog,
	)
	// One file plays both local storage and session storage.
	clientState := clientstate.NewClientStateRepository(serviceLog, store, store, clientstate.Options{
		TokenTTL:   time.Duration(internalConfig.App.TokenTTLInHours) * time.Hour,
		ReceiptTTL: time.Duration(internalConfig.App.ReceiptTTLInMinutes) * time.Minute,
	})

	log.WithFields(logrus.Fields{
		"state":     driverConfig.SQLite.Path,
		"api":       internalConfig.CareRouter.BaseUrl,
		"client_id": clientID,
	}).Debug("cli state opened")

	return &app{
		log:            log,
		serviceLog:     serviceLog,
		internalConfig: internalConfig,
		db:             db,
		clientID:       clientID,
		questions:      questions,
		client:         client,
		clientState:    clientState,
		auth:           auth.NewAuthUsecase(client, clientState, serviceLog),
		results:        results.NewResultsUsecase(serviceLog, clientState, nil, results.ExportOptions{}),
		bookings: bookings.NewBookingUsecase(serviceLog, client, clientState, nil, bookings.BookingOptions{
			SyncBookings: internalConfig.CareRouter.SyncBookings,
		}),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.WithError(err).Warn("closing state file failed")
	}
	_ = a.serviceLog.Sync()
}

// localClientID gives this state file a stable identity, the way a browser
// keeps one local storage.
func localClientID(ctx context.Context, store contracts.SessionStore) (string, error) {
	clientID, err := store.Get(ctx, clientIDKey)
	if err != nil {
		return "", err
	}
	if clientID != "" {
		return clientID, nil
	}
	clientID = uuid.NewString()
	if err := store.Set(ctx, clientIDKey, clientID, 0); err != nil {
		return "", fmt.Errorf("save client id: %w", err)
	}
	return clientID, nil
}

// withApp opens the state for the duration of one command.
func withApp(run func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, args, a)
	}
}
