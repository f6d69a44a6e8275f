package utils

import (
	"fmt"
	"rehab-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateSessionID() string {
	return uuid.New().String()
}

func GenerateReceipt(now time.Time) string {
	return fmt.Sprintf("receipt_%d", now.UnixMilli())
}

func GenerateReceiptObjectName(date string, bookingID int64) string {
	return fmt.Sprintf(constvars.ReceiptObjectKeyFormat, date, bookingID)
}
