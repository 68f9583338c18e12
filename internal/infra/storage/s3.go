package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barberpro/internal/config"
)

// PhotoStorage guarda arquivos públicos e devolve a URL de acesso.
type PhotoStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type S3Storage struct {
	client *s3.Client
	cfg    config.S3Config
}

// NewS3Storage aceita AWS ou qualquer endpoint compatível (MinIO, R2),
// sempre com path-style quando há endpoint próprio.
func NewS3Storage(cfg config.S3Config) *S3Storage {
	awsCfg := aws.Config{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, cfg: cfg}
}

func (s *S3Storage) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return PublicURL(s.cfg, key), nil
}

// PublicURL monta a URL pública do objeto.
func PublicURL(cfg config.S3Config, key string) string {
	switch {
	case cfg.PublicURL != "":
		return strings.TrimRight(cfg.PublicURL, "/") + "/" + key
	case cfg.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
	}
}
