package file

import (
	"path/filepath"
	"strings"
	"time"

	"fileshare-api/internal/domain/user"
)

type (
	ID   uint64
	File struct {
		ID           ID
		StorageName  string
		OriginalName string
		SizeBytes    uint64
		MimeType     string
		OwnerID      user.ID
		ExpiresAt    *time.Time
		IsPublic     bool

		CreatedAt time.Time
	}
	Files []*File
)

// restrictedExtensions are file types served to authenticated callers only,
// whatever the visibility flag says. Matched on the user-supplied original
// name, never on the client-declared MIME type.
var restrictedExtensions = map[string]struct{}{
	".exe": {},
	".zip": {},
	".rar": {},
	".7z":  {},
	".tar": {},
	".gz":  {},
	".bz2": {},
}

func RestrictedExtension(originalName string) bool {
	ext := strings.ToLower(filepath.Ext(originalName))
	_, ok := restrictedExtensions[ext]
	return ok
}

// Expired reports whether the record lapsed strictly before now.
// A nil ExpiresAt means the record never expires.
func (f *File) Expired(now time.Time) bool {
	return f.ExpiresAt != nil && f.ExpiresAt.Before(now)
}

func (f *File) Restricted() bool {
	return RestrictedExtension(f.OriginalName)
}
