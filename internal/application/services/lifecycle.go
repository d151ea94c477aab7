package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/infrastructure/mq"
	fileDTO "fileshare-api/internal/interface/api/rest/dto/file"
)

const maxExpireDays = 3650

var ErrInvalidExpireDays = errors.New("expireDays must be between 0 and 3650")

// Lifecycle enforces expiration. Expired records are purged lazily, on
// the first request that touches them: no background sweeper, stale
// blobs simply wait for their next visitor.
type Lifecycle struct {
	fileRepository file.Repository
	blobs          ports.BlobStore
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
	now            func() time.Time
}

func NewLifecycle(
	fileRepository file.Repository,
	blobs ports.BlobStore,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) *Lifecycle {
	return &Lifecycle{
		fileRepository: fileRepository,
		blobs:          blobs,
		mq:             mq,
		mCounter:       mCounter,
		logger:         logger,
		now:            time.Now,
	}
}

// CheckAndReap reports whether the record is still live. An expired
// record is purged as a side effect: blob first, metadata row second,
// both best-effort. A blob that is already gone counts as deleted:
// two concurrent requests may race on the same lapsed record and both
// must come out clean.
func (l *Lifecycle) CheckAndReap(ctx context.Context, f *file.File) bool {
	if !f.Expired(l.now()) {
		return true
	}

	if err := l.blobs.Delete(f.StorageName); err != nil {
		l.logger.Error("failed to delete expired blob",
			zap.Uint64("file_id", uint64(f.ID)),
			zap.Error(err),
		)
	}
	if err := l.fileRepository.DeleteFile(ctx, f.ID); err != nil {
		l.logger.Error("failed to delete expired file record",
			zap.Uint64("file_id", uint64(f.ID)),
			zap.Error(err),
		)
	}

	l.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      l.now(),
		Action:  mq.ActionExpired,
		OwnerID: uint64(f.OwnerID),
		Payload: fileDTO.ToResponseFile(*f),
	}
	l.mCounter.WithLabelValues("files_purged_total").Inc()

	return false
}

// FilterLive drops expired records without purging them. List paths
// filter only; the purge happens when a record is touched directly.
func (l *Lifecycle) FilterLive(fs file.Files) file.Files {
	now := l.now()
	live := make(file.Files, 0, len(fs))
	for _, f := range fs {
		if !f.Expired(now) {
			live = append(live, f)
		}
	}

	return live
}

// ExpiresAt computes the expiration timestamp for an upload. Zero days
// is the never-expire sentinel; out-of-range day counts are rejected,
// not clamped.
func (l *Lifecycle) ExpiresAt(days int) (*time.Time, error) {
	if days < 0 || days > maxExpireDays {
		return nil, ErrInvalidExpireDays
	}
	if days == 0 {
		return nil, nil
	}

	t := l.now().Add(time.Duration(days) * 24 * time.Hour)
	return &t, nil
}
