package bookingclient

import (
	"net/http"
	"net/http/httptest"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// fakeService is a minimal booking service: one date, a fixed token and a
// configurable verify outcome.
type fakeService struct {
	mu          sync.Mutex
	slots       map[string][]responses.Slot
	orders      []requests.CreateOrder
	verified    []requests.VerifyPayment
	verifyError int
	hits        atomic.Int32
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	svc := &fakeService{
		slots: map[string][]responses.Slot{
			"2025-06-01": {{Time: "09:00 AM", Passed: true}, {Time: "10:00 AM"}, {Time: "11:00 AM"}},
		},
	}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			svc.hits.Add(1)
			next.ServeHTTP(w, r)
		})
	})
	router.Get("/slots", func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		svc.mu.Lock()
		slots := svc.slots[date]
		svc.mu.Unlock()
		if slots == nil {
			slots = []responses.Slot{}
		}
		writeJSON(w, http.StatusOK, []responses.DaySlots{{Date: date, Slots: slots}})
	})
	router.Post("/create-order", func(w http.ResponseWriter, r *http.Request) {
		var request requests.CreateOrder
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "bad json"})
			return
		}
		svc.mu.Lock()
		svc.orders = append(svc.orders, request)
		svc.mu.Unlock()
		writeJSON(w, http.StatusOK, responses.CreateOrder{ID: "order_1", Amount: request.Amount, Currency: request.Currency})
	})
	router.Post("/verify-payment", func(w http.ResponseWriter, r *http.Request) {
		var request requests.VerifyPayment
		_ = json.NewDecoder(r.Body).Decode(&request)
		svc.mu.Lock()
		svc.verified = append(svc.verified, request)
		status := svc.verifyError
		if status == 0 {
			for i, slot := range svc.slots[request.Date] {
				if slot.Time == request.Slot {
					svc.slots[request.Date][i].Booked = true
				}
			}
		}
		svc.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, map[string]interface{}{
				"status_code": status,
				"success":     false,
				"message":     "slot already taken, your payment will be refunded. Please contact support with payment reference " + request.RazorpayPaymentID,
			})
			return
		}
		writeJSON(w, http.StatusOK, responses.VerifyPayment{Status: "success", BookingID: 1, Message: "payment verified, booking confirmed"})
	})
	router.Post("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		if r.PostFormValue("username") != "admin" || r.PostFormValue("password") != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "invalid username or password"})
			return
		}
		writeJSON(w, http.StatusOK, responses.AdminLogin{AccessToken: "token-1", TokenType: "bearer"})
	})
	router.Get("/admin/bookings", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"success": false, "message": "not logged in"})
			return
		}
		writeJSON(w, http.StatusOK, []responses.Booking{{ID: 1, Name: "Jane Doe", Status: "Confirmed", Amount: 500}})
	})
	router.Post("/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return svc, server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
