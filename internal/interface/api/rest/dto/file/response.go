package file

import (
	"time"
)

type (
	File struct {
		ID           uint64     `json:"id"`
		Filename     string     `json:"filename"`
		OriginalName string     `json:"original_name"`
		FileSize     uint64     `json:"file_size"`
		MimeType     string     `json:"mime_type"`
		ExpiresAt    *time.Time `json:"expires_at"`
		IsPublic     bool       `json:"is_public"`
		CreatedAt    time.Time  `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Files Files `json:"files"`
	}

	URLs struct {
		View     string `json:"view"`
		Download string `json:"download"`
	}
	Embed struct {
		Image  *string `json:"image"`
		Iframe *string `json:"iframe"`
		Link   string  `json:"link"`
	}
	Info struct {
		ID        uint64     `json:"id"`
		Filename  string     `json:"filename"`
		MimeType  string     `json:"mime_type"`
		FileSize  uint64     `json:"file_size"`
		IsPublic  bool       `json:"is_public"`
		ExpiresAt *time.Time `json:"expires_at"`
		CreatedAt time.Time  `json:"created_at"`
		URLs      URLs       `json:"urls"`
		Embed     Embed      `json:"embed"`
	}
)
