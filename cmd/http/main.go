package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/delivery/http/controllers"
	"rehab-service/internal/app/delivery/http/middlewares"
	"rehab-service/internal/app/delivery/http/routers"
	"rehab-service/internal/app/drivers/database"
	"rehab-service/internal/app/drivers/logger"
	"rehab-service/internal/app/drivers/mailer"
	"rehab-service/internal/app/drivers/messaging"
	"rehab-service/internal/app/drivers/storage"
	"rehab-service/internal/app/services/core/admins"
	"rehab-service/internal/app/services/core/bookings"
	"rehab-service/internal/app/services/core/notifications"
	"rehab-service/internal/app/services/core/session"
	"rehab-service/internal/app/services/core/slots"
	"rehab-service/internal/app/services/shared/locker"
	mailerService "rehab-service/internal/app/services/shared/mailer"
	paymentGateway "rehab-service/internal/app/services/shared/payment_gateway"
	"rehab-service/internal/app/services/shared/ratelimiter"
	"rehab-service/internal/app/services/shared/redis"
	"rehab-service/internal/app/services/shared/smtp"
	minioStorage "rehab-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.String("timezone", internalConfig.App.Timezone), zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig, log),
		Redis:          database.NewRedisClient(driverConfig, log),
		RabbitMQ:       messaging.NewRabbitMQ(driverConfig, log),
		Minio:          storage.NewMinio(driverConfig, log),
		Logger:         log,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err = bootstrapingTheApp(ctx, bootstrap)
	if err != nil {
		log.Fatal("Failed to bootstrap the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer shutdownCancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	cancel()
	bootstrap.Shutdown(shutdownCtx)

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)
	sessionService := session.NewSessionService(redisRepository)
	paymentGatewayService := paymentGateway.NewRazorpayService(internalConfig, log)
	storageService := minioStorage.NewMinioStorage(bootstrap.Minio)
	smtpService := smtp.NewSmtpService(mailer.NewSMTPClient(bootstrap.DriverConfig, log))

	mailerSvc, err := mailerService.NewMailerService(bootstrap.RabbitMQ, internalConfig.Mailer.QueueName, log)
	if err != nil {
		return err
	}

	if !internalConfig.Minio.ReceiptArchiveOff {
		if err := storageService.EnsureBucket(ctx, internalConfig.Minio.ReceiptBucket); err != nil {
			return err
		}
	}

	// Repositories
	bookingRepository := bookings.NewBookingMongoRepository(bootstrap.MongoDB)
	if err := bookingRepository.EnsureIndexes(ctx); err != nil {
		return err
	}
	adminRepository := admins.NewAdminMongoRepository(bootstrap.MongoDB)

	// Slots
	schedule, err := slots.NewSchedule(internalConfig.Clinic.SlotLabels, internalConfig.Clinic.ClosedWeekdays, time.Local)
	if err != nil {
		return err
	}
	slotUsecase := slots.NewSlotUsecase(bookingRepository, redisRepository, schedule, internalConfig, log)

	// Bookings
	bookingUsecase := bookings.NewBookingUsecase(
		bookingRepository,
		slotUsecase,
		paymentGatewayService,
		lockerService,
		mailerSvc,
		storageService,
		resourceLimiter,
		internalConfig,
		log,
	)

	// Admins
	adminUsecase := admins.NewAdminUsecase(adminRepository, sessionService, internalConfig, log)
	if err := adminUsecase.SeedAdmin(ctx, internalConfig.Admin.Username, internalConfig.Admin.Password); err != nil {
		return err
	}

	// Workers
	emailWorker := notifications.NewEmailWorker(log, bootstrap.RabbitMQ, internalConfig.Mailer.QueueName, smtpService)
	stopEmailWorker, err := emailWorker.Start(ctx)
	if err != nil {
		return err
	}
	bootstrap.OnShutdown(stopEmailWorker)

	reconcileWorker := bookings.NewReconcileWorker(log, internalConfig, lockerService, bookingUsecase)
	reconcileWorker.Start(ctx)
	bootstrap.OnShutdown(reconcileWorker.Stop)

	// Delivery
	middleware := middlewares.NewMiddlewares(log, adminUsecase, internalConfig)
	loginLimiter := middlewares.NewRateLimiter(log, internalConfig.App.LoginMaxAttemptsPerMinute, time.Minute, internalConfig.App.LoginBlockDuration)

	slotController := controllers.NewSlotController(log, slotUsecase, internalConfig.App.RequestTimeout)
	bookingController := controllers.NewBookingController(log, bookingUsecase, internalConfig.App.RequestTimeout)
	adminController := controllers.NewAdminController(log, adminUsecase, bookingUsecase, internalConfig.App.RequestTimeout)
	rabbitMQCheck := func(ctx context.Context) error {
		if bootstrap.RabbitMQ.IsClosed() {
			return fmt.Errorf("connection closed")
		}
		return nil
	}
	healthController := controllers.NewHealthController(log, map[string]controllers.HealthCheck{
		"mongodb":  func(ctx context.Context) error { return bootstrap.MongoDB.Client().Ping(ctx, nil) },
		"redis":    func(ctx context.Context) error { return bootstrap.Redis.Ping(ctx).Err() },
		"rabbitmq": rabbitMQCheck,
	})

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middleware,
		loginLimiter,
		slotController,
		bookingController,
		adminController,
		healthController,
	)
	return nil
}
