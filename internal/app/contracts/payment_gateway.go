package contracts

import (
	"context"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
)

type PaymentGatewayService interface {
	CreateOrder(ctx context.Context, request *requests.GatewayCreateOrder) (*responses.GatewayOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*responses.GatewayOrder, error)
	FetchOrderPayments(ctx context.Context, orderID string) ([]responses.GatewayPayment, error)
	RefundPayment(ctx context.Context, paymentID string, request *requests.GatewayRefund) (*responses.GatewayRefund, error)
	// VerifyPaymentSignature checks the checkout callback signature over
	// orderID + "|" + paymentID.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}
