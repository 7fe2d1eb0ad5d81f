package main

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/app/contracts"
	"carerouter-service/internal/app/delivery/http/controllers"
	"carerouter-service/internal/app/delivery/http/middlewares"
	"carerouter-service/internal/app/delivery/http/routers"
	"carerouter-service/internal/app/drivers/database"
	"carerouter-service/internal/app/drivers/logger"
	"carerouter-service/internal/app/drivers/messaging"
	"carerouter-service/internal/app/drivers/storage"
	"carerouter-service/internal/app/services/core/assessments"
	"carerouter-service/internal/app/services/core/auth"
	"carerouter-service/internal/app/services/core/bookings"
	"carerouter-service/internal/app/services/core/catalog"
	"carerouter-service/internal/app/services/core/janitor"
	"carerouter-service/internal/app/services/core/profiles"
	"carerouter-service/internal/app/services/core/results"
	"carerouter-service/internal/app/services/shared/carerouter"
	"carerouter-service/internal/app/services/shared/clientstate"
	"carerouter-service/internal/app/services/shared/locker"
	"carerouter-service/internal/app/services/shared/notifier"
	"carerouter-service/internal/app/services/shared/scheduler"
	"carerouter-service/internal/app/services/shared/sessionstore"
	minioStorage "carerouter-service/internal/app/services/shared/storage"
	"carerouter-service/internal/pkg/constvars"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	connectBackends(bootstrap)

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Error bootstrapping the app: %v", err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// connectBackends opens only the connections the configuration asks for.
func connectBackends(bootstrap *config.Bootstrap) {
	app := bootstrap.InternalConfig.App
	uses := func(backend string) bool {
		return app.DurableStore == backend || app.SessionStore == backend
	}

	if uses(constvars.StoreBackendRedis) {
		bootstrap.Redis = database.NewRedisClient(bootstrap.DriverConfig)
	}
	if uses(constvars.StoreBackendMongo) {
		bootstrap.MongoDB = database.NewMongoDB(bootstrap.DriverConfig)
	}
	if bootstrap.DriverConfig.RabbitMQ.Host != "" {
		conn, err := messaging.NewRabbitMQ(bootstrap.DriverConfig)
		if err != nil {
			log.Printf("Booking notifications disabled: %v", err)
		} else {
			log.Println("Successfully connected to rabbitMQ")
			bootstrap.RabbitMQ = conn
		}
	}
	if bootstrap.DriverConfig.Minio.Host != "" {
		bootstrap.Minio = storage.NewMinio(bootstrap.DriverConfig, bootstrap.InternalConfig)
	}
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	ctx := context.Background()
	internalConfig := bootstrap.InternalConfig

	// Client state
	backends := sessionstore.Backends{Redis: bootstrap.Redis}
	if bootstrap.MongoDB != nil {
		backends.Mongo = bootstrap.MongoDB.Database(bootstrap.DriverConfig.MongoDB.DbName)
		backends.MongoCollection = bootstrap.DriverConfig.MongoDB.Collection
	}
	if internalConfig.App.DurableStore == constvars.StoreBackendSQLite || internalConfig.App.SessionStore == constvars.StoreBackendSQLite {
		db, err := database.NewSQLite(bootstrap.DriverConfig)
		if err != nil {
			return err
		}
		backends.SQLite = db
		bootstrap.StoreClose = db.Close
	}

	durableStore, err := sessionstore.New(ctx, internalConfig.App.DurableStore, backends)
	if err != nil {
		return err
	}
	sessionStore, err := sessionstore.New(ctx, internalConfig.App.SessionStore, backends)
	if err != nil {
		return err
	}
	clientState := clientstate.NewClientStateRepository(bootstrap.Logger, durableStore, sessionStore, clientstate.Options{
		TokenTTL:   time.Duration(internalConfig.App.TokenTTLInHours) * time.Hour,
		ReceiptTTL: time.Duration(internalConfig.App.ReceiptTTLInMinutes) * time.Minute,
	})

	// Backend
	careRouterClient := carerouter.NewCareRouterClient(
		internalConfig.CareRouter.BaseUrl,
		time.Duration(internalConfig.CareRouter.HTTPTimeoutInSeconds)*time.Second,
		bootstrap.Logger,
	)

	// Question catalog
	questions := catalog.Default()
	if path := internalConfig.App.QuestionCatalogFilePath; path != "" {
		questions, err = catalog.Load(path)
		if err != nil {
			return err
		}
	}

	// Optional infrastructure
	var bookingNotifier contracts.BookingNotifier
	if bootstrap.RabbitMQ != nil {
		bookingNotifier, err = notifier.NewBookingNotifier(bootstrap.Logger, bootstrap.RabbitMQ, internalConfig.RabbitMQ.BookingQueue)
		if err != nil {
			return err
		}
	}
	var exportStorage contracts.Storage
	if bootstrap.Minio != nil {
		exportStorage = minioStorage.NewMinioStorage(bootstrap.Minio)
	}

	// Usecases
	assessmentUsecase := assessments.NewAssessmentUsecase(
		bootstrap.Logger,
		questions,
		careRouterClient,
		clientState,
		scheduler.NewTimerScheduler(),
		assessments.FlowOptions{
			RevealDelay:          internalConfig.Flow.RevealDelay,
			FailureRedirectDelay: internalConfig.Flow.FailureRedirectDelay,
			LocationTimeout:      internalConfig.Flow.LocationTimeout,
			SubmitTimeout:        internalConfig.Flow.SubmitTimeout,
		},
	)
	resultsUsecase := results.NewResultsUsecase(bootstrap.Logger, clientState, exportStorage, results.ExportOptions{
		BucketName: internalConfig.Minio.BucketName,
		Expiry:     time.Duration(internalConfig.Minio.PreSignedUrlExpiryTimeInHours) * time.Hour,
	})
	bookingUsecase := bookings.NewBookingUsecase(bootstrap.Logger, careRouterClient, clientState, bookingNotifier, bookings.BookingOptions{
		SyncBookings: internalConfig.CareRouter.SyncBookings,
	})
	authUsecase := auth.NewAuthUsecase(careRouterClient, clientState, bootstrap.Logger)
	profileUsecase := profiles.NewProfileUsecase(careRouterClient, clientState, bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig)
	answerLimiter := middlewares.NewRateLimiter(
		internalConfig.App.AnswerRateLimitPerMinute,
		time.Minute,
		time.Duration(internalConfig.App.AnswerBlockTimeInSeconds)*time.Second,
	)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		answerLimiter,
		controllers.NewAuthController(bootstrap.Logger, authUsecase),
		controllers.NewAssessmentController(bootstrap.Logger, assessmentUsecase),
		controllers.NewResultsController(bootstrap.Logger, resultsUsecase),
		controllers.NewBookingController(bootstrap.Logger, bookingUsecase),
		controllers.NewProfileController(bootstrap.Logger, profileUsecase),
	)

	// Janitor
	var leaderLocker contracts.Locker = locker.NewMemoryLocker()
	if bootstrap.Redis != nil {
		leaderLocker = locker.NewRedisLocker(bootstrap.Redis, bootstrap.Logger)
	}
	sweepers := []contracts.Sweeper{answerLimiter}
	for _, store := range []contracts.SessionStore{durableStore, sessionStore} {
		if sweeper, ok := store.(contracts.Sweeper); ok {
			sweepers = append(sweepers, sweeper)
		}
	}
	worker := janitor.NewWorker(bootstrap.Logger, internalConfig, leaderLocker, assessmentUsecase, sweepers...)
	worker.Start(ctx)
	bootstrap.WorkerStop = worker.Stop

	return nil
}
