package controllers

import (
	"context"
	"net/http"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/delivery/http/middlewares"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AdminController struct {
	Log            *zap.Logger
	AdminUsecase   contracts.AdminUsecase
	BookingUsecase contracts.BookingUsecase
	RequestTimeout time.Duration
}

func NewAdminController(logger *zap.Logger, adminUsecase contracts.AdminUsecase, bookingUsecase contracts.BookingUsecase, requestTimeout time.Duration) *AdminController {
	return &AdminController{
		Log:            logger,
		AdminUsecase:   adminUsecase,
		BookingUsecase: bookingUsecase,
		RequestTimeout: requestTimeout,
	}
}

// Login takes form fields username and password.
func (ctrl *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	if err := r.ParseForm(); err != nil {
		ctrl.Log.Error("AdminController.Login failed to parse form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseForm(err))
		return
	}

	request := &requests.AdminLogin{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AdminUsecase.Login(ctx, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildRawResponse(w, constvars.StatusOK, response)
}

func (ctrl *AdminController) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middlewares.AdminSessionFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInvalidSession(nil))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := ctrl.AdminUsecase.Logout(ctx, session.SessionID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}

func (ctrl *AdminController) ListBookings(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	request := &requests.ListBookings{Date: r.URL.Query().Get("date")}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	result, err := ctrl.BookingUsecase.ListBookings(ctx, request)
	if err != nil {
		ctrl.Log.Error("AdminController.ListBookings usecase error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildRawResponse(w, constvars.StatusOK, result)
}

func (ctrl *AdminController) ResendEmail(w http.ResponseWriter, r *http.Request) {
	bookingID, err := parseBookingID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	if err := ctrl.BookingUsecase.ResendConfirmation(ctx, bookingID); err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResendEmailSuccessMessage, nil)
}

func (ctrl *AdminController) GetReceipt(w http.ResponseWriter, r *http.Request) {
	bookingID, err := parseBookingID(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, "id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	receipt, err := ctrl.BookingUsecase.GetReceiptURL(ctx, bookingID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccess, receipt)
}

func parseBookingID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
