package services

import (
	"context"
	"fmt"
	"io"
	"time"
)

// CrestService locates school crest images.
type CrestService interface {
	// CrestURL always returns a usable URL. On a storage error the
	// placeholder is returned together with the error.
	CrestURL(ctx context.Context, tenantKey string) (string, error)
	UploadCrest(ctx context.Context, tenantKey string, reader io.Reader, size int64) error
}

type CrestConfig struct {
	Bucket      string
	Expiry      time.Duration
	Placeholder string
}

type crestService struct {
	store MinioService
	cfg   CrestConfig
}

// NewCrestService returns a service backed by store. A nil store serves the
// placeholder for every tenant.
func NewCrestService(store MinioService, cfg CrestConfig) CrestService {
	if cfg.Expiry <= 0 {
		cfg.Expiry = time.Hour
	}
	return &crestService{store: store, cfg: cfg}
}

// CrestObjectName is the object key holding tenantKey's crest.
func CrestObjectName(tenantKey string) string {
	return tenantKey + ".png"
}

func (s *crestService) CrestURL(ctx context.Context, tenantKey string) (string, error) {
	if s.store == nil {
		return s.cfg.Placeholder, nil
	}

	object := CrestObjectName(tenantKey)
	exists, err := s.store.ObjectExists(ctx, s.cfg.Bucket, object)
	if err != nil {
		return s.cfg.Placeholder, fmt.Errorf("stat crest %s: %w", object, err)
	}
	if !exists {
		return s.cfg.Placeholder, nil
	}

	url, err := s.store.GetPresignedURL(ctx, s.cfg.Bucket, object, s.cfg.Expiry)
	if err != nil {
		return s.cfg.Placeholder, fmt.Errorf("presign crest %s: %w", object, err)
	}
	return url, nil
}

func (s *crestService) UploadCrest(ctx context.Context, tenantKey string, reader io.Reader, size int64) error {
	if s.store == nil {
		return fmt.Errorf("object storage is not configured")
	}
	if err := s.store.EnsureBucketExists(ctx, s.cfg.Bucket); err != nil {
		return fmt.Errorf("ensure bucket %s: %w", s.cfg.Bucket, err)
	}
	return s.store.UploadObject(ctx, s.cfg.Bucket, CrestObjectName(tenantKey), "image/png", reader, size)
}
