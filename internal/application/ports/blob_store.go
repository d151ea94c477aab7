package ports

import (
	"io"
)

// BlobStore keeps raw file bytes under a generated storage name.
// Delete of an absent blob is a no-op success: disk and metadata may
// have drifted and callers must not rely on check-then-act.
type BlobStore interface {
	Write(name string, data io.Reader) (int64, error)
	Read(name string) ([]byte, error)
	Delete(name string) error
	Exists(name string) bool
}
