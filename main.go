// File: govconnect/main.go
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"govconnect/config"
	"govconnect/cron"
	"govconnect/database"
	authorityRepo "govconnect/database/repository/authority"
	recordsRepo "govconnect/database/repository/records"
	schedulerRepo "govconnect/database/repository/scheduler"
	timeslotRepo "govconnect/database/repository/timeslot"
	"govconnect/handlers"
	"govconnect/routes"
	"govconnect/services/booking"
	"govconnect/services/credential"
	"govconnect/services/notification"
	"govconnect/services/records"
	"govconnect/services/timeslot"
	"govconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.AppConfig.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database.InitDB()
	utils.InitCache()
	cache := utils.GetCacheClient()
	utils.StartHealthMonitor(rootCtx, cache, database.MongoClient, 15*time.Second)

	// repositories.
	db := database.DB()
	slotRepo := timeslotRepo.NewMongoTimeSlotRepo(db)
	recordRepo := recordsRepo.NewMongoRecordRepo(db)
	authRepo := authorityRepo.NewMongoAuthorityRepo(db)
	schedRepo := schedulerRepo.NewMongoSchedulerRepo(
		database.MongoClient,
		config.AppConfig.MongoTransactions,
		slotRepo,
		recordRepo,
		logger,
	)

	indexCtx, cancelIdx := context.WithTimeout(rootCtx, 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"free_times":  slotRepo.EnsureIndexes,
		"records":     recordRepo.EnsureIndexes,
		"authorities": authRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Fatal("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIdx()

	// notifications.
	queue := asynq.NewClient(cron.RedisClientOpt())
	defer queue.Close()

	loc := config.Location()
	notifier, err := notification.NewQueueNotifier(queue, logger, loc, config.AppConfig.ReminderLead)
	if err != nil {
		logger.Fatal("Failed to create notifier", zap.Error(err))
	}

	var sender notification.Sender = &notification.LogSender{Logger: logger}
	if path := config.AppConfig.FirebaseCredentials; path != "" {
		fcm, err := utils.NewFCMClient(rootCtx, path)
		if err != nil {
			logger.Error("Push delivery disabled", zap.Error(err))
		} else {
			sender = notification.NewFCMSender(fcm, logger)
		}
	}
	worker := cron.InitNotificationWorker(rootCtx, sender, recordRepo, logger)

	// services.
	ledgerService, err := timeslot.NewDefaultLedgerService(slotRepo, schedRepo, cache, config.AppConfig.SlotCacheTTL, logger)
	if err != nil {
		logger.Fatal("Failed to create ledger service", zap.Error(err))
	}
	allocationService, err := booking.NewDefaultAllocationService(slotRepo, recordRepo, schedRepo, authRepo, ledgerService, notifier, logger)
	if err != nil {
		logger.Fatal("Failed to create allocation service", zap.Error(err))
	}
	recordService, err := records.NewDefaultRecordService(recordRepo, notifier, logger)
	if err != nil {
		logger.Fatal("Failed to create record service", zap.Error(err))
	}
	credentialService, err := credential.NewService(config.AppConfig.QRSecret, config.AppConfig.CredentialGrace, loc, recordRepo, authRepo, logger)
	if err != nil {
		logger.Fatal("Failed to create credential service", zap.Error(err))
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		JWTSecret:         []byte(config.AppConfig.JWTSecret),
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
		Authorities:       &handlers.AuthorityHandler{Repo: authRepo},
		Timeslots:         &handlers.TimeslotHandler{Service: ledgerService},
		Appointments:      &handlers.AppointmentHandler{Allocation: allocationService, Records: recordService},
		Records:           &handlers.RecordHandler{Service: recordService},
		Credentials:       &handlers.CredentialHandler{Issuer: credentialService, Verifier: credentialService},
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(handlers.RequestLogger())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-rootCtx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect failed: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
