package controllers

import (
	"context"
	"net/http"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type SlotController struct {
	Log            *zap.Logger
	SlotUsecase    contracts.SlotUsecase
	RequestTimeout time.Duration
}

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase, requestTimeout time.Duration) *SlotController {
	return &SlotController{
		Log:            logger,
		SlotUsecase:    slotUsecase,
		RequestTimeout: requestTimeout,
	}
}

func (ctrl *SlotController) GetSlots(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	date := r.URL.Query().Get("date")

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.SlotUsecase.GetSlots(ctx, date)
	if err != nil {
		ctrl.Log.Error("SlotController.GetSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotDateKey, date),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildRawResponse(w, constvars.StatusOK, result)
}

func (ctrl *SlotController) GetNextAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.SlotUsecase.GetNextAvailability(ctx)
	if err != nil {
		ctrl.Log.Error("SlotController.GetNextAvailability error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildRawResponse(w, constvars.StatusOK, result)
}
