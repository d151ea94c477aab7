package services

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"fileshare-api/internal/application/ports"
	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/infrastructure/mq"
	fileDTO "fileshare-api/internal/interface/api/rest/dto/file"
)

// 10 MiB
const MaxUploadBytes = int64(10 << 20)

const maxBaseNameLen = 100

var (
	ErrFileTooLarge = errors.New("File size too large. Maximum size is 10MB")
	ErrFileEmpty    = errors.New("uploaded file is empty")
)

var fileSafeRe = regexp.MustCompile(`[^a-z0-9\-\_]+`)

type UploadService struct {
	blobs          ports.BlobStore
	fileRepository domain.Repository
	lifecycle      *Lifecycle
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUploadService(
	blobs ports.BlobStore,
	fileRepository domain.Repository,
	lifecycle *Lifecycle,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UploadService {
	return &UploadService{
		blobs:          blobs,
		fileRepository: fileRepository,
		lifecycle:      lifecycle,
		mq:             mq,
		mCounter:       mCounter,
		logger:         logger,
	}
}

// Ingest validates and persists one upload. Blob write and metadata
// insert are one logical unit: if the insert fails the blob is removed
// again, so no metadata row exists without its blob and no blob
// outlives a failed insert.
func (us *UploadService) Ingest(
	ctx context.Context,
	owner *ports.Identity,
	data io.Reader,
	sizeBytes int64,
	originalName string,
	mimeType string,
	expireDays int,
	isPublic bool,
) (*domain.File, error) {
	if owner == nil {
		return nil, ErrAuthRequired
	}
	if sizeBytes <= 0 {
		return nil, ErrFileEmpty
	}
	if sizeBytes > MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	expiresAt, err := us.lifecycle.ExpiresAt(expireDays)
	if err != nil {
		return nil, err
	}

	storageName := GenerateStorageName(originalName)

	written, err := us.blobs.Write(storageName, io.LimitReader(data, MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	rec := &domain.File{
		StorageName:  storageName,
		OriginalName: originalName,
		SizeBytes:    uint64(written),
		MimeType:     mimeType,
		OwnerID:      owner.UserID,
		ExpiresAt:    expiresAt,
		IsPublic:     isPublic,
	}

	out, err := us.fileRepository.CreateFile(ctx, rec)
	if err != nil {
		// compensating cleanup, the blob must not outlive the failed insert
		if delErr := us.blobs.Delete(storageName); delErr != nil {
			us.logger.Error("failed to remove orphaned blob",
				zap.String("storage_name", storageName),
				zap.Error(delErr),
			)
		}
		return nil, err
	}

	us.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      out.CreatedAt,
		Action:  mq.ActionUploaded,
		OwnerID: uint64(out.OwnerID),
		Payload: fileDTO.ToResponseFile(*out),
	}
	us.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

// GenerateStorageName derives a unique on-disk name from the untrusted
// original: sanitized base, 128-bit random suffix, lowercased original
// extension. The suffix alone guarantees uniqueness, the base is kept
// for operator convenience.
func GenerateStorageName(originalName string) string {
	s := strings.TrimSpace(originalName)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	ext := strings.ToLower(filepath.Ext(s))
	base := strings.TrimSuffix(s, ext)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	base, _, _ = transform.String(t, base)

	base = strings.ToLower(base)
	base = fileSafeRe.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}
	if base == "" || base == "." || base == ".." {
		base = "file"
	}

	return base + "_" + uuid.New().String() + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
