package contracts

import (
	"context"
	"rehab-service/internal/pkg/dto/requests"
	"time"
)

type Storage interface {
	EnsureBucket(ctx context.Context, bucketName string) error
	UploadObject(ctx context.Context, request *requests.UploadObject) (string, error)
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
