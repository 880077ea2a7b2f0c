package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"hiretop/internal/domain/candidate"
	"hiretop/internal/domain/enterprise"
	"hiretop/internal/infrastructure/metrics"
	"hiretop/internal/infrastructure/storage"
	"hiretop/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadKind string

const (
	UploadCandidatePhoto UploadKind = "candidate_photo"
	UploadCandidateCV    UploadKind = "candidate_cv"
	UploadEnterpriseLogo UploadKind = "enterprise_logo"
)

func (k UploadKind) Valid() bool {
	_, ok := allowedUploadTypes[k]
	return ok
}

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var allowedUploadTypes = map[UploadKind]map[string]string{
	UploadCandidatePhoto: imageTypes,
	UploadEnterpriseLogo: imageTypes,
	UploadCandidateCV:    {"application/pdf": ".pdf"},
}

// ObjectStore saves a file and returns its public download URL.
type ObjectStore interface {
	Put(ctx context.Context, obj storage.Object) (string, error)
}

type UploadInput struct {
	Kind        UploadKind
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	Kind UploadKind `json:"kind"`
	URL  string     `json:"url"`
}

type UploadUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (UploadResult, error)
}

type Upload struct {
	store       ObjectStore
	candidates  repository.CandidateProfileRepository
	enterprises repository.EnterpriseProfileRepository
	maxBytes    int64
	events      EventRecorder
	logger      *zap.Logger
}

func NewUploadUsecase(
	store ObjectStore,
	candidates repository.CandidateProfileRepository,
	enterprises repository.EnterpriseProfileRepository,
	maxBytes int64,
	events EventRecorder,
	logger *zap.Logger,
) *Upload {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Upload{
		store:       store,
		candidates:  candidates,
		enterprises: enterprises,
		maxBytes:    maxBytes,
		events:      recorderOrNoop(events),
		logger:      logger,
	}
}

// Upload stores the file under <kind>/<userID>/<uuid><ext> and records the
// resulting URL on the caller's profile.
func (u *Upload) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (UploadResult, error) {
	if !in.Kind.Valid() || in.Body == nil || in.Size <= 0 {
		return UploadResult{}, ErrInvalidInput
	}
	if in.Size > u.maxBytes {
		return UploadResult{}, ErrFileTooLarge
	}

	// The stored type comes from the file's leading bytes. A specific
	// declared type must agree with it; a generic one is ignored.
	head := make([]byte, 512)
	n, err := io.ReadFull(in.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return UploadResult{}, ErrInvalidInput
	}
	head = head[:n]
	sniffed := baseMediaType(http.DetectContentType(head))
	ext, ok := allowedUploadTypes[in.Kind][sniffed]
	if !ok {
		return UploadResult{}, ErrUnsupportedFileType
	}
	if declared := baseMediaType(in.ContentType); !genericMediaType(declared) && declared != sniffed {
		return UploadResult{}, ErrUnsupportedFileType
	}
	body := io.MultiReader(bytes.NewReader(head), in.Body)

	switch in.Kind {
	case UploadCandidatePhoto, UploadCandidateCV:
		_, err = u.candidates.GetByUserID(ctx, userID)
		err = profileRequired(err, candidate.ErrNotFound)
	case UploadEnterpriseLogo:
		_, err = u.enterprises.GetByUserID(ctx, userID)
		err = profileRequired(err, enterprise.ErrNotFound)
	}
	if err != nil {
		return UploadResult{}, err
	}

	objectPath := path.Join(string(in.Kind), userID.String(), uuid.NewString()+ext)
	url, err := u.store.Put(ctx, storage.Object{Path: objectPath, ContentType: sniffed, Body: body})
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) || errors.Is(err, storage.ErrNotConfigured) {
			return UploadResult{}, ErrStorageUnavailable
		}
		u.logger.Error("upload failed", zap.String("path", objectPath), zap.String("filename", in.Filename), zap.Error(err))
		return UploadResult{}, ErrInternal
	}

	// Only the URL column is written, so profile edits made while the
	// upload ran are kept.
	switch in.Kind {
	case UploadCandidatePhoto:
		err = u.candidates.SetPhotoURL(ctx, userID, url)
	case UploadCandidateCV:
		err = u.candidates.SetCVURL(ctx, userID, url)
	case UploadEnterpriseLogo:
		err = u.enterprises.SetLogoURL(ctx, userID, url)
	}
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) || errors.Is(err, enterprise.ErrNotFound) {
			return UploadResult{}, ErrProfileRequired
		}
		u.logger.Error("profile url update failed", zap.String("kind", string(in.Kind)), zap.Error(err))
		return UploadResult{}, ErrInternal
	}

	u.events.Event(metrics.EventFileUploaded)
	return UploadResult{Kind: in.Kind, URL: url}, nil
}

func baseMediaType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

func genericMediaType(mt string) bool {
	switch mt {
	case "", "application/octet-stream", "binary/octet-stream":
		return true
	}
	return false
}

func profileRequired(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, notFound) {
		return ErrProfileRequired
	}
	return ErrInternal
}
