package admins

import (
	"context"
	"rehab-service/internal/app/config"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"strings"
	"time"

	"go.uber.org/zap"
)

// dummyPasswordHash is compared against when the username is unknown so both
// failure paths cost one bcrypt comparison.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOa8L8kS5fQpZ0q7k3Cw6lYQmRZC1KZ7a"

type adminUsecase struct {
	AdminRepository contracts.AdminRepository
	SessionService  contracts.SessionService
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
	now             func() time.Time
}

func NewAdminUsecase(
	adminRepository contracts.AdminRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AdminUsecase {
	return &adminUsecase{
		AdminRepository: adminRepository,
		SessionService:  sessionService,
		InternalConfig:  internalConfig,
		Log:             logger,
		now:             time.Now,
	}
}

func (uc *adminUsecase) Login(ctx context.Context, request *requests.AdminLogin) (*responses.AdminLogin, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAdminUsername, request.Username),
	)

	request.Username = strings.TrimSpace(request.Username)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	admin, err := uc.AdminRepository.FindByUsername(ctx, request.Username)
	if err != nil {
		uc.Log.Error("adminUsecase.Login error calling AdminRepository.FindByUsername",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	passwordHash := dummyPasswordHash
	if admin != nil {
		passwordHash = admin.PasswordHash
	}
	if !utils.CheckPasswordHash(request.Password, passwordHash) || admin == nil {
		utils.LogSecurityEvent(uc.Log, "admin_login_failed", requestID, "medium",
			zap.String(constvars.LoggingAdminUsername, request.Username),
		)
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	ttl := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	session := &models.Session{
		SessionID: utils.GenerateSessionID(),
		Username:  admin.Username,
		ExpiresAt: uc.now().Add(ttl),
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, ttl)
	if err != nil {
		uc.Log.Error("adminUsecase.Login error generating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	err = uc.SessionService.CreateSession(ctx, session, ttl)
	if err != nil {
		uc.Log.Error("adminUsecase.Login error calling SessionService.CreateSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogSecurityEvent(uc.Log, "admin_login_succeeded", requestID, "low",
		zap.String(constvars.LoggingAdminUsername, admin.Username),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	return &responses.AdminLogin{
		AccessToken: token,
		TokenType:   constvars.TokenTypeBearer,
	}, nil
}

func (uc *adminUsecase) Logout(ctx context.Context, sessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("adminUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, sessionID),
	)

	err := uc.SessionService.DeleteSession(ctx, sessionID)
	if err != nil {
		uc.Log.Error("adminUsecase.Logout error calling SessionService.DeleteSession",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Authenticate accepts a token only while its server-side session exists, so
// Logout revokes tokens that have not yet expired.
func (uc *adminUsecase) Authenticate(ctx context.Context, accessToken string) (*models.Session, error) {
	if accessToken == "" {
		return nil, exceptions.ErrTokenMissing(nil)
	}

	sessionID, err := utils.ParseSessionJWT(accessToken, uc.InternalConfig.JWT.Secret)
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	return uc.SessionService.GetSession(ctx, sessionID)
}

func (uc *adminUsecase) SeedAdmin(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		uc.Log.Warn("adminUsecase.SeedAdmin skipped, credentials not configured")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}

	now := uc.now()
	err = uc.AdminRepository.Upsert(ctx, &models.Admin{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	uc.Log.Info("adminUsecase.SeedAdmin succeeded",
		zap.String(constvars.LoggingAdminUsername, username),
	)
	return nil
}
