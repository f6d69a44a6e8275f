package middlewares

import (
	"context"
	"net/http"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/utils"
	"strings"

	"go.uber.org/zap"
)

// Authenticate requires a bearer token backed by a live admin session and
// stores the session in the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		token := ""
		if len(authHeader) > len(constvars.AuthorizationBearerPrefix) &&
			strings.EqualFold(authHeader[:len(constvars.AuthorizationBearerPrefix)], constvars.AuthorizationBearerPrefix) {
			token = strings.TrimSpace(authHeader[len(constvars.AuthorizationBearerPrefix):])
		}

		session, err := m.AdminUsecase.Authenticate(r.Context(), token)
		if err != nil {
			utils.LogSecurityEvent(m.Log, "admin_auth_rejected", requestID, "medium",
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_SESSION_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminSessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(constvars.CONTEXT_ADMIN_SESSION_KEY).(*models.Session)
	return session, ok && session != nil
}
