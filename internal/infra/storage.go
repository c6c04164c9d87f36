package infra

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	appconfig "tunik/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DocumentStore archives generated documents and returns where they ended up.
type DocumentStore interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// NewDocumentStore picks S3 when S3_BUCKET is set, the local directory otherwise.
func NewDocumentStore(ctx context.Context, cfg *appconfig.Config) (DocumentStore, error) {
	if cfg.S3Bucket == "" {
		return &LocalStore{dir: cfg.PDFStoragePath}, nil
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(awsCfg), bucket: cfg.S3Bucket, prefix: "cotizaciones/"}, nil
}

// LocalStore writes documents under a directory on the server's disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore { return &LocalStore{dir: dir} }

func (s *LocalStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create dir: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: write %s: %w", name, err)
	}
	return path, nil
}

// s3API is the subset of the S3 client the store needs.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads documents to a bucket and returns s3://bucket/key.
type S3Store struct {
	client s3API
	bucket string
	prefix string
}

func (s *S3Store) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := s.prefix + filepath.Base(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload to S3: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
