package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	ordersPath         = "/v1/orders"
	orderPathFormat    = "/v1/orders/%s"
	orderPaymentsPath  = "/v1/orders/%s/payments"
	refundPathFormat   = "/v1/payments/%s/refund"
	maxErrorBodyLength = 512
)

type razorpayService struct {
	BaseUrl    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewRazorpayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	return &razorpayService{
		BaseUrl:   strings.TrimRight(internalConfig.PaymentGateway.BaseUrl, "/"),
		KeyID:     internalConfig.PaymentGateway.KeyID,
		KeySecret: internalConfig.PaymentGateway.KeySecret,
		HTTPClient: &http.Client{
			Timeout: internalConfig.PaymentGateway.RequestTimeout,
		},
		Log: logger,
	}
}

func (s *razorpayService) CreateOrder(ctx context.Context, request *requests.GatewayCreateOrder) (*responses.GatewayOrder, error) {
	order := new(responses.GatewayOrder)
	err := s.do(ctx, constvars.MethodPost, ordersPath, request, order)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *razorpayService) FetchOrder(ctx context.Context, orderID string) (*responses.GatewayOrder, error) {
	order := new(responses.GatewayOrder)
	err := s.do(ctx, constvars.MethodGet, fmt.Sprintf(orderPathFormat, orderID), nil, order)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *razorpayService) FetchOrderPayments(ctx context.Context, orderID string) ([]responses.GatewayPayment, error) {
	var collection responses.GatewayPaymentCollection
	err := s.do(ctx, constvars.MethodGet, fmt.Sprintf(orderPaymentsPath, orderID), nil, &collection)
	if err != nil {
		return nil, err
	}
	return collection.Items, nil
}

func (s *razorpayService) RefundPayment(ctx context.Context, paymentID string, request *requests.GatewayRefund) (*responses.GatewayRefund, error) {
	refund := new(responses.GatewayRefund)
	err := s.do(ctx, constvars.MethodPost, fmt.Sprintf(refundPathFormat, paymentID), request, refund)
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func (s *razorpayService) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	return utils.VerifyHMACSHA256(s.KeySecret, orderID+"|"+paymentID, signature)
}

func (s *razorpayService) do(ctx context.Context, method, path string, payload, out interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	url := s.BaseUrl + path

	var body io.Reader
	if payload != nil {
		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(payloadJSON)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.SetBasicAuth(s.KeyID, s.KeySecret)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	if requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		s.Log.Error("razorpayService request failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingGatewayURLKey, url),
			zap.Error(err),
		)
		if ctx.Err() == context.DeadlineExceeded {
			return exceptions.ErrServerDeadlineExceeded(err)
		}
		return exceptions.ErrPaymentGatewayRequest(err, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		message := string(bodyBytes)

		var gatewayErr responses.GatewayError
		if json.Unmarshal(bodyBytes, &gatewayErr) == nil && gatewayErr.Error.Description != "" {
			message = fmt.Sprintf("%s: %s", gatewayErr.Error.Code, gatewayErr.Error.Description)
		}

		s.Log.Error("razorpayService unexpected status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingMethodKey, method),
			zap.String(constvars.LoggingGatewayURLKey, url),
			zap.Int(constvars.LoggingGatewayCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingErrorMessageKey, message),
		)
		return exceptions.ErrPaymentGatewayResponse(nil, path, resp.StatusCode, message)
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return exceptions.ErrDecodeHTTPResponse(err, path)
	}

	s.Log.Debug("razorpayService request succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, method),
		zap.String(constvars.LoggingGatewayURLKey, url),
		zap.Int(constvars.LoggingGatewayCodeKey, resp.StatusCode),
	)
	return nil
}
