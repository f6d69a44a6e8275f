package controllers

import (
	"context"
	"net/http"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
	RequestTimeout time.Duration
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, requestTimeout time.Duration) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
		RequestTimeout: requestTimeout,
	}
}

func (ctrl *BookingController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.CreateOrder)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("BookingController.CreateOrder failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BookingUsecase.CreateOrder(ctx, request)
	if err != nil {
		ctrl.Log.Error("BookingController.CreateOrder usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, response.ID),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildRawResponse(w, constvars.StatusOK, response)
}

func (ctrl *BookingController) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.VerifyPayment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("BookingController.VerifyPayment failed to parse request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingErrorTypeKey, "JSON parsing"),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.BookingUsecase.VerifyPayment(ctx, request)
	if err != nil {
		ctrl.Log.Error("BookingController.VerifyPayment usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, request.RazorpayOrderID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildRawResponse(w, constvars.StatusOK, response)
}
