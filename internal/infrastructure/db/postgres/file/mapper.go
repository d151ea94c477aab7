package file

import (
	domain "fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	return &domain.File{
		ID:           domain.ID(model.ID),
		StorageName:  model.StorageName,
		OriginalName: model.OriginalName,
		SizeBytes:    model.SizeBytes,
		MimeType:     model.MimeType,
		OwnerID:      user.ID(model.OwnerID),
		ExpiresAt:    model.ExpiresAt,
		IsPublic:     model.IsPublic,

		CreatedAt: model.CreatedAt,
	}
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
