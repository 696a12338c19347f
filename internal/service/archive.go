package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/menuqr/backend/config"
)

// Archiver stores the original bytes of an uploaded menu file and returns
// the object key.
type Archiver interface {
	Archive(ctx context.Context, restaurantID uint, filename, contentType string, data []byte) (string, error)
}

// objectPutter is the part of the S3 client the archive needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// FileArchive keeps uploaded menu files in an S3 compatible bucket.
type FileArchive struct {
	client objectPutter
	bucket string
}

// NewFileArchive returns nil when S3 is not configured.
func NewFileArchive(cfg *config.S3Config) *FileArchive {
	if cfg == nil || cfg.Client == nil {
		return nil
	}
	return &FileArchive{client: cfg.Client, bucket: cfg.BucketName}
}

func (a *FileArchive) Archive(ctx context.Context, restaurantID uint, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("uploads/%d/%s%s", restaurantID, uuid.New().String(), strings.ToLower(path.Ext(filename)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}
