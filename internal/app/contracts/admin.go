package contracts

import (
	"context"
	"rehab-service/internal/app/models"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/dto/responses"
)

type AdminUsecase interface {
	Login(ctx context.Context, request *requests.AdminLogin) (*responses.AdminLogin, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, accessToken string) (*models.Session, error)
	SeedAdmin(ctx context.Context, username, password string) error
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	Upsert(ctx context.Context, admin *models.Admin) error
}
