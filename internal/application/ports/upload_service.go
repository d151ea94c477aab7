package ports

import (
	"context"
	"io"

	"fileshare-api/internal/domain/file"
)

type UploadService interface {
	Ingest(
		ctx context.Context,
		owner *Identity,
		data io.Reader,
		sizeBytes int64,
		originalName string,
		mimeType string,
		expireDays int,
		isPublic bool,
	) (*file.File, error)
}
