package file

import (
	"time"
)

type (
	File struct {
		ID           uint64
		StorageName  string
		OriginalName string
		SizeBytes    uint64
		MimeType     string
		OwnerID      uint64
		ExpiresAt    *time.Time
		IsPublic     bool

		CreatedAt time.Time
	}
	Files []*File
)
