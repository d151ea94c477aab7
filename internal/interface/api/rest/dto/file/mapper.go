package file

import (
	"fmt"
	"html"
	"strings"

	domain "fileshare-api/internal/domain/file"
)

// mime classes that render inside an iframe
var iframeMimePrefixes = []string{"image/", "text/", "application/pdf", "video/", "audio/"}

func ToResponseFile(fDomain domain.File) File {
	return File{
		ID:           uint64(fDomain.ID),
		Filename:     fDomain.StorageName,
		OriginalName: fDomain.OriginalName,
		FileSize:     fDomain.SizeBytes,
		MimeType:     fDomain.MimeType,
		ExpiresAt:    fDomain.ExpiresAt,
		IsPublic:     fDomain.IsPublic,
		CreatedAt:    fDomain.CreatedAt,
	}
}

func ToResponseFiles(fDomain domain.Files) Files {
	fs := make(Files, len(fDomain))
	for idx, f := range fDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

// ToResponseInfo builds the metadata view of a record: public fields,
// ready-to-use view/download URLs and embed snippets per mime class.
// Never carries raw bytes.
func ToResponseInfo(fDomain domain.File, baseURL string) Info {
	viewURL := fmt.Sprintf("%s/files/%d?action=view", baseURL, fDomain.ID)
	downloadURL := fmt.Sprintf("%s/files/%d?action=download", baseURL, fDomain.ID)
	escapedName := html.EscapeString(fDomain.OriginalName)

	var image *string
	if strings.HasPrefix(fDomain.MimeType, "image/") {
		s := fmt.Sprintf(
			`<img src="%s" alt="%s" style="max-width: 100%%; height: auto;" />`,
			viewURL, escapedName,
		)
		image = &s
	}

	var iframe *string
	for _, prefix := range iframeMimePrefixes {
		if strings.HasPrefix(fDomain.MimeType, prefix) {
			s := fmt.Sprintf(
				`<iframe src="%s" width="100%%" height="400" frameborder="0"></iframe>`,
				viewURL,
			)
			iframe = &s
			break
		}
	}

	link := fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`, downloadURL, escapedName)

	return Info{
		ID:        uint64(fDomain.ID),
		Filename:  fDomain.OriginalName,
		MimeType:  fDomain.MimeType,
		FileSize:  fDomain.SizeBytes,
		IsPublic:  fDomain.IsPublic,
		ExpiresAt: fDomain.ExpiresAt,
		CreatedAt: fDomain.CreatedAt,
		URLs: URLs{
			View:     viewURL,
			Download: downloadURL,
		},
		Embed: Embed{
			Image:  image,
			Iframe: iframe,
			Link:   link,
		},
	}
}
