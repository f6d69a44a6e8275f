package controllers

import (
	"context"
	"errors"
	"net/http"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// writeUsecaseError maps a deadline hit inside a usecase to 504 and passes
// everything else through to the error envelope.
func writeUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		var customErr *exceptions.CustomError
		if !errors.As(err, &customErr) || customErr.StatusCode >= http.StatusInternalServerError {
			// a fresh error so the 504 is not overridden by the wrapped status
			utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(errors.New(err.Error())))
			return
		}
	}
	utils.BuildErrorResponse(log, w, err)
}
