package middlewares

import (
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	AdminUsecase   contracts.AdminUsecase
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, adminUsecase contracts.AdminUsecase, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		AdminUsecase:   adminUsecase,
		InternalConfig: internalConfig,
	}
}
