package controllers

import (
	"context"
	"net/http"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

type HealthCheck func(ctx context.Context) error

type HealthController struct {
	Log    *zap.Logger
	Checks map[string]HealthCheck
}

func NewHealthController(logger *zap.Logger, checks map[string]HealthCheck) *HealthController {
	return &HealthController{
		Log:    logger,
		Checks: checks,
	}
}

// Healthz reports each dependency as "ok" or its error, and answers 503 when
// any check fails.
func (ctrl *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := make(map[string]string, len(ctrl.Checks))
	code := constvars.StatusOK
	for name, check := range ctrl.Checks {
		if err := check(ctx); err != nil {
			ctrl.Log.Warn("HealthController.Healthz dependency unhealthy",
				zap.String("dependency", name),
				zap.Error(err),
			)
			status[name] = err.Error()
			code = constvars.StatusServiceUnavailable
			continue
		}
		status[name] = "ok"
	}

	message := constvars.HealthyMessage
	if code != constvars.StatusOK {
		message = "unhealthy"
	}
	response := map[string]interface{}{
		"success": code == constvars.StatusOK,
		"message": message,
		"checks":  status,
	}
	utils.BuildRawResponse(w, code, response)
}
