package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/db/postgres"
)

var ErrStorageNameTaken = errors.New("storage name already taken")

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.StorageName, req.OriginalName, req.SizeBytes, req.MimeType,
		uint64(req.OwnerID), req.ExpiresAt, req.IsPublic,
	).Scan(
		&f.ID,
		&f.StorageName,
		&f.OriginalName,
		&f.SizeBytes,
		&f.MimeType,
		&f.OwnerID,
		&f.ExpiresAt,
		&f.IsPublic,
		&f.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrStorageNameTaken
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchFileByID(ctx context.Context, id file.ID) (*file.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByID, uint64(id)).Scan(
		&f.ID,
		&f.StorageName,
		&f.OriginalName,
		&f.SizeBytes,
		&f.MimeType,
		&f.OwnerID,
		&f.ExpiresAt,
		&f.IsPublic,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), err
}

func (r *Repository) FetchFilesByOwner(ctx context.Context, ownerID user.ID) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByOwner, uint64(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFiles(rows)
}

func (r *Repository) FetchPublicFiles(ctx context.Context) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectPublicFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFiles(rows)
}

func (r *Repository) DeleteFile(ctx context.Context, id file.ID) error {
	_, err := r.db.Exec(ctx, DeleteFileByID, uint64(id))
	return err
}

func scanFiles(rows pgx.Rows) (file.Files, error) {
	var fs Files
	for rows.Next() {
		f := new(File)

		if err := rows.Scan(
			&f.ID,
			&f.StorageName,
			&f.OriginalName,
			&f.SizeBytes,
			&f.MimeType,
			&f.OwnerID,
			&f.ExpiresAt,
			&f.IsPublic,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}
