package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAdminUsecase struct {
	mock.Mock
}

func (m *MockAdminUsecase) Login(ctx context.Context, request *requests.AdminLogin) (*responses.AdminLogin, error) {
	args := m.Called(ctx, request)
	if result, ok := args.Get(0).(*responses.AdminLogin); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminUsecase) Logout(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockAdminUsecase) Authenticate(ctx context.Context, accessToken string) (*models.Session, error) {
	args := m.Called(ctx, accessToken)
	if session, ok := args.Get(0).(*models.Session); ok {
		return session, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAdminUsecase) SeedAdmin(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func newTestMiddlewares(adminUsecase *MockAdminUsecase) *Middlewares {
	cfg := &config.InternalConfig{}
	cfg.App.RequestBodyLimitInMegabyte = 1
	return NewMiddlewares(zap.NewNop(), adminUsecase, cfg)
}

func TestAuthenticate(t *testing.T) {
	session := &models.Session{SessionID: "sess-1", Username: "admin"}

	var seen *models.Session
	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = AdminSessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		header     string
		token      string
		session    *models.Session
		err        error
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer good-token", token: "good-token", session: session, wantStatus: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good-token", token: "good-token", session: session, wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", token: "", err: exceptions.ErrTokenMissing(nil), wantStatus: http.StatusUnauthorized},
		{name: "revoked session", header: "Bearer old-token", token: "old-token", err: exceptions.ErrInvalidSession(nil), wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			adminUsecase := new(MockAdminUsecase)
			adminUsecase.On("Authenticate", mock.Anything, tc.token).Return(tc.session, tc.err)
			handler := newTestMiddlewares(adminUsecase).Authenticate(protected)

			req := httptest.NewRequest(http.MethodGet, "/admin/bookings", nil)
			if tc.header != "" {
				req.Header.Set(constvars.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.session != nil {
				require.NotNil(t, seen)
				assert.Equal(t, "admin", seen.Username)
			} else {
				assert.Nil(t, seen)
			}
			adminUsecase.AssertExpectations(t)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(zap.NewNop(), 2, time.Minute, 5*time.Minute)
	limiter.now = func() time.Time { return now }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	hit := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1235").Code)

	blocked := hit("10.0.0.1:1236")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get(constvars.HeaderRetryAfter))

	t.Run("other addresses are unaffected", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, hit("10.0.0.2:1234").Code)
	})

	t.Run("block holds even after tokens refill", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1234").Code)
	})

	t.Run("block expires", func(t *testing.T) {
		now = now.Add(5 * time.Minute)
		assert.Equal(t, http.StatusOK, hit("10.0.0.1:1234").Code)
	})
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares(new(MockAdminUsecase))
	handler := m.RequestIDMiddleware(m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	req := httptest.NewRequest(http.MethodGet, "/slots", nil)
	req.Header.Set(constvars.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(constvars.HeaderXRequestID))
	assert.True(t, strings.Contains(rec.Body.String(), `"success":false`))
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(new(MockAdminUsecase))

	var requestID string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rec.Header().Get(constvars.HeaderXRequestID))
}

func TestBodyLimit(t *testing.T) {
	m := newTestMiddlewares(new(MockAdminUsecase))

	var readErr error
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 4096)
		for readErr == nil {
			_, readErr = r.Body.Read(buf)
		}
	}))

	body := strings.NewReader(strings.Repeat("x", 2<<20))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/create-order", body))

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxBytesErr)
}
