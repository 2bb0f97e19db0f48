package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Uploader stores food images and avatars in S3.
type Uploader struct {
	client *s3.Client
	mgr    *manager.Uploader
	bucket string
}

func NewUploader(ctx context.Context) (*Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is not set")
	}

	client := s3.NewFromConfig(cfg)
	return &Uploader{
		client: client,
		mgr:    manager.NewUploader(client),
		bucket: bucket,
	}, nil
}

// Upload pushes a multipart file under the given key prefix and returns the
// public object URL.
func (u *Uploader) Upload(ctx context.Context, prefix string, file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file %s: %w", file.Filename, err)
	}
	defer f.Close()

	// Timestamped key to prevent overwrites
	key := fmt.Sprintf("%s/%s-%s", prefix, time.Now().Format("20060102150405"), file.Filename)

	result, err := u.mgr.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ACL:         "public-read",
		ContentType: aws.String(file.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file %s: %w", file.Filename, err)
	}
	return result.Location, nil
}

// Delete removes an object by key. Image deletion is best-effort: failures
// are logged, never propagated.
func (u *Uploader) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete image from S3")
	}
}
