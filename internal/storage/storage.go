// Package storage uploads blobs (business logo, order attachments) and
// resolves their public URLs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

var ErrObjectExists = errors.New("storage: object already exists")

type UploadOptions struct {
	Upsert      bool
	ContentType string
}

type Storage interface {
	// Upload stores blob under name and returns the stored path.
	Upload(ctx context.Context, bucket, name string, blob []byte, opts UploadOptions) (string, error)
	PublicURL(bucket, objectPath string) string
}

// ==================================================
// S3
// ==================================================

type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// PublicURL prefixes object paths in PublicURL; defaults to Endpoint.
	PublicURL string
}

type S3Storage struct {
	api       objectAPI
	publicURL string
	logger    *zap.Logger
}

// NewS3Storage talks to any S3-compatible endpoint with static credentials
// and path-style addressing.
func NewS3Storage(cfg S3Config, logger *zap.Logger) *S3Storage {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	public := cfg.PublicURL
	if public == "" {
		public = cfg.Endpoint
	}
	return &S3Storage{api: s3.New(opts), publicURL: public, logger: logger}
}

func (s *S3Storage) Upload(ctx context.Context, bucket, name string, blob []byte, opts UploadOptions) (string, error) {
	key := cleanKey(name)
	if key == "" {
		return "", fmt.Errorf("storage: empty object name")
	}

	if !opts.Upsert {
		_, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err == nil {
			return "", fmt.Errorf("%s/%s: %w", bucket, key, ErrObjectExists)
		}
		var nf *types.NotFound
		if !errors.As(err, &nf) {
			return "", fmt.Errorf("storage: head %s/%s: %w", bucket, key, err)
		}
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(blob),
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	if _, err := s.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("storage: put %s/%s: %w", bucket, key, err)
	}

	s.logger.Info("object stored",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.Int("bytes", len(blob)),
	)
	return key, nil
}

func (s *S3Storage) PublicURL(bucket, objectPath string) string {
	return joinURL(s.publicURL, bucket, cleanKey(objectPath))
}

// ==================================================
// Memory
// ==================================================

// MemoryStorage keeps objects in process; used when no S3 endpoint is set.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte), baseURL: baseURL}
}

func (m *MemoryStorage) Upload(_ context.Context, bucket, name string, blob []byte, opts UploadOptions) (string, error) {
	key := cleanKey(name)
	if key == "" {
		return "", fmt.Errorf("storage: empty object name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	id := bucket + "/" + key
	if _, ok := m.objects[id]; ok && !opts.Upsert {
		return "", fmt.Errorf("%s: %w", id, ErrObjectExists)
	}
	m.objects[id] = append([]byte(nil), blob...)
	return key, nil
}

func (m *MemoryStorage) Object(bucket, objectPath string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[bucket+"/"+cleanKey(objectPath)]
	return b, ok
}

func (m *MemoryStorage) PublicURL(bucket, objectPath string) string {
	return joinURL(m.baseURL, bucket, cleanKey(objectPath))
}

func cleanKey(name string) string {
	key := strings.TrimPrefix(path.Clean("/"+name), "/")
	if key == "." {
		return ""
	}
	return key
}

func joinURL(base, bucket, key string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return "/" + path.Join(bucket, key)
	}
	u.Path = path.Join("/", u.Path, bucket, key)
	return u.String()
}
