package ports

import (
	"context"

	"fileshare-api/internal/domain/file"
)

type FileService interface {
	FetchFile(ctx context.Context, id file.ID, caller *Identity, op Operation) (*file.File, []byte, error)
	FileInfo(ctx context.Context, id file.ID, caller *Identity) (*file.File, error)
	DeleteFile(ctx context.Context, id file.ID, caller *Identity) error
	ListOwnFiles(ctx context.Context, caller *Identity) (file.Files, error)
	ListPublicFiles(ctx context.Context) (file.Files, error)
}
