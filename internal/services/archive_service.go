package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ArchiveService keeps copies of uploaded import files in object storage so an
// import can be audited after the fact.
type ArchiveService interface {
	Store(ctx context.Context, filename string, data []byte) (string, error)
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	EnsureBucketExists(ctx context.Context) error
}

type minioArchiveService struct {
	client *minio.Client
	bucket string
}

func NewMinioArchiveService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (ArchiveService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioArchiveService{client: client, bucket: bucket}, nil
}

func (m *minioArchiveService) Store(ctx context.Context, filename string, data []byte) (string, error) {
	objectName := fmt.Sprintf("imports/%s/%s_%s", time.Now().UTC().Format("2006-01-02"), uuid.NewString(), filename)
	_, err := m.client.PutObject(ctx, m.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: xlsxContentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *minioArchiveService) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioArchiveService) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
