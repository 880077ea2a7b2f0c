package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"hiretop/internal/config"

	"github.com/sony/gobreaker"
	storage_go "github.com/supabase-community/storage-go"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"
)

var (
	ErrUnavailable   = errors.New("object storage unavailable")
	ErrNotConfigured = errors.New("object storage not configured")
)

// Object is a file to be stored under Path inside the bucket.
type Object struct {
	Path        string
	ContentType string
	Body        io.Reader
}

// Uploader is the part of the storage SDK the service needs.
type Uploader interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	GetPublicUrl(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

// Store puts objects into one bucket and hands back their download URL.
// Uploads go through a circuit breaker so a failing storage backend is
// short-circuited instead of tying up request goroutines.
type Store struct {
	uploader Uploader
	bucket   string
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewSupabase connects to Supabase Storage. It returns ErrNotConfigured when
// the URL or key is missing so callers can run without uploads.
func NewSupabase(cfg config.StorageConfig, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(cfg.SupabaseURL) == "" || strings.TrimSpace(cfg.SupabaseKey) == "" {
		return nil, ErrNotConfigured
	}
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseKey, nil)
	if err != nil {
		return nil, err
	}
	return New(client.Storage, cfg.Bucket, logger), nil
}

func New(uploader Uploader, bucket string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		uploader: uploader,
		bucket:   bucket,
		breaker:  newBreaker("object-storage", logger),
		logger:   logger,
	}
}

func newBreaker(name string, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Put uploads obj and returns its public download URL.
func (s *Store) Put(ctx context.Context, obj Object) (string, error) {
	if s == nil || s.uploader == nil {
		return "", ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := true
	contentType := obj.ContentType
	opts := storage_go.FileOptions{ContentType: &contentType, Upsert: &upsert}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return s.uploader.UploadFile(s.bucket, obj.Path, obj.Body, opts)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrUnavailable
		}
		s.logger.Error("object upload failed", zap.String("path", obj.Path), zap.Error(err))
		return "", err
	}

	res := s.uploader.GetPublicUrl(s.bucket, obj.Path)
	return res.SignedURL, nil
}
