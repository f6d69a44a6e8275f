package bookings

import (
	"fmt"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/utils"
	"strings"
	"time"
)

func renderReceipt(clinicName string, booking *models.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", clinicName)
	fmt.Fprintf(&sb, "Payment receipt\n\n")
	fmt.Fprintf(&sb, "Booking ID:  %d\n", booking.ID)
	fmt.Fprintf(&sb, "Patient:     %s\n", booking.Name)
	fmt.Fprintf(&sb, "Email:       %s\n", booking.Email)
	fmt.Fprintf(&sb, "Phone:       %s\n", booking.Phone)
	fmt.Fprintf(&sb, "Appointment: %s %s\n", booking.Date, booking.Time)
	fmt.Fprintf(&sb, "Order:       %s\n", booking.OrderID)
	fmt.Fprintf(&sb, "Payment:     %s\n", booking.PaymentID)
	fmt.Fprintf(&sb, "Receipt:     %s\n", booking.Receipt)
	fmt.Fprintf(&sb, "Amount:      %s %s\n", utils.FormatMinorUnits(booking.Amount), strings.ToUpper(booking.Currency))
	if booking.ConfirmedAt != nil {
		fmt.Fprintf(&sb, "Paid at:     %s\n", booking.ConfirmedAt.UTC().Format(time.RFC3339))
	}
	return sb.String()
}
