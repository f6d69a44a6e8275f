package storage

import (
	"bytes"
	"context"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
}

func NewMinioStorage(minioClient *minio.Client) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
	}
}

func (m *minioStorage) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.MinioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	if exists {
		return nil
	}

	err = m.MinioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, bucketName)
	}
	return nil
}

func (m *minioStorage) UploadObject(ctx context.Context, request *requests.UploadObject) (string, error) {
	_, err := m.MinioClient.PutObject(
		ctx,
		request.BucketName,
		request.ObjectName,
		bytes.NewReader(request.Data),
		int64(len(request.Data)),
		minio.PutObjectOptions{
			ContentType: request.ContentType,
		},
	)
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, request.BucketName)
	}

	return request.ObjectName, nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	presignedURL, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignedURL(err, bucketName)
	}
	return presignedURL.String(), nil
}
