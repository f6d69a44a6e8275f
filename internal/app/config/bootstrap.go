package config

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	MongoDB        *mongo.Database
	Redis          *redis.Client
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	Logger         *zap.Logger
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// Stops run in reverse registration order on Shutdown.
	Stops []func()
}

func (b *Bootstrap) OnShutdown(stop func()) {
	b.Stops = append(b.Stops, stop)
}

// Shutdown stops background workers, then closes driver connections.
func (b *Bootstrap) Shutdown(ctx context.Context) {
	for i := len(b.Stops) - 1; i >= 0; i-- {
		b.Stops[i]()
	}
	if b.RabbitMQ != nil {
		if err := b.RabbitMQ.Close(); err != nil {
			b.Logger.Warn("Failed to close rabbitMQ connection", zap.Error(err))
		}
	}
	if b.Redis != nil {
		if err := b.Redis.Close(); err != nil {
			b.Logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if b.MongoDB != nil {
		if err := b.MongoDB.Client().Disconnect(ctx); err != nil {
			b.Logger.Warn("Failed to disconnect mongo client", zap.Error(err))
		}
	}
}
