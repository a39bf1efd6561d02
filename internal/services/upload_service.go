package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxUploadSize = 5 << 20 // 5 MiB

type UploadServiceInterface interface {
	UploadRewardImage(ctx context.Context, userId string, filename string, contentType string, body io.Reader, size int64) (string, error)
}

type S3UploadConfig struct {
	Region    string
	Bucket    string
	PublicURL string // base URL objects are served from; defaults to the bucket endpoint
}

type s3UploadService struct {
	client *s3.Client
	cfg    S3UploadConfig
}

func NewS3UploadService(cfg S3UploadConfig) (UploadServiceInterface, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &s3UploadService{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

// UploadRewardImage stores the blob under <userId>/<nanos>.<ext> and
// returns the public URL. The URL is treated as an opaque string by the
// rest of the system.
func (s *s3UploadService) UploadRewardImage(ctx context.Context, userId string, filename string, contentType string, body io.Reader, size int64) (string, error) {
	if size <= 0 || size > maxUploadSize {
		return "", fmt.Errorf("invalid upload size %d", size)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}

	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("%s/%d.%s", userId, time.Now().UnixNano(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		CacheControl:  aws.String("max-age=3600"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	base := s.cfg.PublicURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.cfg.Bucket, s.cfg.Region)
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), key), nil
}
