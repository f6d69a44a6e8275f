package main

import (
	"context"
	"flag"
	"os"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/drivers/database"
	"rehab-service/internal/app/drivers/logger"
	"rehab-service/internal/app/services/core/admins"
	"rehab-service/internal/app/services/core/bookings"
	"rehab-service/internal/app/services/core/session"
	"rehab-service/internal/app/services/shared/redis"
	"time"
)

// Migration prepares a fresh environment: booking indexes (including the
// one-confirmed-booking-per-slot constraint) and the admin account.
func main() {
	skipIndexes := flag.Bool("skip-indexes", false, "do not create booking indexes")
	skipAdmin := flag.Bool("skip-admin", false, "do not seed the admin account")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(driverConfig, internalConfig)
	zapLog := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	mongoDB := database.NewMongoDB(driverConfig, zapLog)
	defer mongoDB.Client().Disconnect(context.Background())

	if !*skipIndexes {
		log.Info("Creating booking indexes")
		bookingRepository := bookings.NewBookingMongoRepository(mongoDB)
		if err := bookingRepository.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Error("Failed to create booking indexes")
			os.Exit(1)
		}
		log.Info("Booking indexes ready")
	}

	if !*skipAdmin {
		log.WithField("username", internalConfig.Admin.Username).Info("Seeding admin account")
		redisClient := database.NewRedisClient(driverConfig, zapLog)
		defer redisClient.Close()

		adminUsecase := admins.NewAdminUsecase(
			admins.NewAdminMongoRepository(mongoDB),
			session.NewSessionService(redis.NewRedisRepository(redisClient)),
			internalConfig,
			zapLog,
		)
		if err := adminUsecase.SeedAdmin(ctx, internalConfig.Admin.Username, internalConfig.Admin.Password); err != nil {
			log.WithError(err).Error("Failed to seed admin account")
			os.Exit(1)
		}
		log.Info("Admin account ready")
	}

	log.Info("Migration finished")
}
