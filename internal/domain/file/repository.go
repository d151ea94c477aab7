package file

import (
	"context"

	"fileshare-api/internal/domain/user"
)

type Repository interface {
	CreateFile(ctx context.Context, req *File) (*File, error)
	FetchFileByID(ctx context.Context, id ID) (*File, error)
	FetchFilesByOwner(ctx context.Context, ownerID user.ID) (Files, error)
	FetchPublicFiles(ctx context.Context) (Files, error)
	DeleteFile(ctx context.Context, id ID) error
}
