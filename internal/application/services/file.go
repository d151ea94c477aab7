package services

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"fileshare-api/internal/application/ports"
	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/infrastructure/mq"
	fileDTO "fileshare-api/internal/interface/api/rest/dto/file"
)

var (
	ErrFileNotFound = errors.New("File not found")
	ErrBlobMissing  = errors.New("File not found on disk")
	ErrFileGone     = errors.New("File has expired")
)

type FileService struct {
	fileRepository domain.Repository
	blobs          ports.BlobStore
	lifecycle      *Lifecycle
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewFileService(
	fileRepository domain.Repository,
	blobs ports.BlobStore,
	lifecycle *Lifecycle,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		fileRepository: fileRepository,
		blobs:          blobs,
		lifecycle:      lifecycle,
		mq:             mq,
		mCounter:       mCounter,
	}
}

// FetchFile resolves a record for view/download and returns the blob
// bytes. Expiration runs before authorization: a lapsed record answers
// Gone to everyone, including its owner.
func (fs *FileService) FetchFile(ctx context.Context, id domain.ID, caller *ports.Identity, op ports.Operation) (*domain.File, []byte, error) {
	f, err := fs.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, ErrFileNotFound
	}

	if !fs.lifecycle.CheckAndReap(ctx, f) {
		return nil, nil, ErrFileGone
	}

	if !fs.blobs.Exists(f.StorageName) {
		return nil, nil, ErrBlobMissing
	}

	if d := Authorize(f, caller, op); !d.Allowed {
		fs.mCounter.WithLabelValues("access_denied_total").Inc()
		return nil, nil, d.Err()
	}

	b, err := fs.blobs.Read(f.StorageName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// lost a race with a concurrent reap
			return nil, nil, ErrBlobMissing
		}
		return nil, nil, err
	}

	fs.mCounter.WithLabelValues("files_served_total").Inc()

	return f, b, nil
}

// FileInfo runs the same expiration and authorization gauntlet as
// FetchFile but never touches the blob bytes.
func (fs *FileService) FileInfo(ctx context.Context, id domain.ID, caller *ports.Identity) (*domain.File, error) {
	f, err := fs.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}

	if !fs.lifecycle.CheckAndReap(ctx, f) {
		return nil, ErrFileGone
	}

	if d := Authorize(f, caller, ports.OpView); !d.Allowed {
		fs.mCounter.WithLabelValues("access_denied_total").Inc()
		return nil, d.Err()
	}

	return f, nil
}

// DeleteFile removes a record on the owner's request: blob first, then
// the metadata row.
func (fs *FileService) DeleteFile(ctx context.Context, id domain.ID, caller *ports.Identity) error {
	f, err := fs.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return err
	}
	if f == nil {
		return ErrFileNotFound
	}

	if !fs.lifecycle.CheckAndReap(ctx, f) {
		return ErrFileGone
	}

	if d := Authorize(f, caller, ports.OpDelete); !d.Allowed {
		fs.mCounter.WithLabelValues("access_denied_total").Inc()
		return d.Err()
	}

	if err = fs.blobs.Delete(f.StorageName); err != nil {
		return err
	}
	if err = fs.fileRepository.DeleteFile(ctx, f.ID); err != nil {
		return err
	}

	fs.mq.GetInputChan() <- mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  mq.ActionDeleted,
		OwnerID: uint64(f.OwnerID),
		Payload: fileDTO.ToResponseFile(*f),
	}
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

func (fs *FileService) ListOwnFiles(ctx context.Context, caller *ports.Identity) (domain.Files, error) {
	if caller == nil {
		return nil, ErrAuthRequired
	}

	files, err := fs.fileRepository.FetchFilesByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	return fs.lifecycle.FilterLive(files), nil
}

func (fs *FileService) ListPublicFiles(ctx context.Context) (domain.Files, error) {
	files, err := fs.fileRepository.FetchPublicFiles(ctx)
	if err != nil {
		return nil, err
	}

	live := fs.lifecycle.FilterLive(files)
	open := make(domain.Files, 0, len(live))
	for _, f := range live {
		if !f.Restricted() {
			open = append(open, f)
		}
	}

	return open, nil
}
