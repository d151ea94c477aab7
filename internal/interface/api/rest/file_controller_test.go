package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fileshare-api/config"
	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/application/services"
	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/jwt"
)

type fakeFileService struct {
	FetchFileFunc       func(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error)
	FileInfoFunc        func(ctx context.Context, id file.ID, caller *ports.Identity) (*file.File, error)
	DeleteFileFunc      func(ctx context.Context, id file.ID, caller *ports.Identity) error
	ListOwnFilesFunc    func(ctx context.Context, caller *ports.Identity) (file.Files, error)
	ListPublicFilesFunc func(ctx context.Context) (file.Files, error)
}

func (f *fakeFileService) FetchFile(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error) {
	return f.FetchFileFunc(ctx, id, caller, op)
}

func (f *fakeFileService) FileInfo(ctx context.Context, id file.ID, caller *ports.Identity) (*file.File, error) {
	return f.FileInfoFunc(ctx, id, caller)
}

func (f *fakeFileService) DeleteFile(ctx context.Context, id file.ID, caller *ports.Identity) error {
	return f.DeleteFileFunc(ctx, id, caller)
}

func (f *fakeFileService) ListOwnFiles(ctx context.Context, caller *ports.Identity) (file.Files, error) {
	return f.ListOwnFilesFunc(ctx, caller)
}

func (f *fakeFileService) ListPublicFiles(ctx context.Context) (file.Files, error) {
	return f.ListPublicFilesFunc(ctx)
}

type fakeUploadService struct {
	IngestFunc func(ctx context.Context, owner *ports.Identity, data io.Reader, sizeBytes int64, originalName, mimeType string, expireDays int, isPublic bool) (*file.File, error)
}

func (f *fakeUploadService) Ingest(ctx context.Context, owner *ports.Identity, data io.Reader, sizeBytes int64, originalName, mimeType string, expireDays int, isPublic bool) (*file.File, error) {
	return f.IngestFunc(ctx, owner, data, sizeBytes, originalName, mimeType, expireDays, isPublic)
}

const testSecret = "controller-test-secret"

func newFileRouter(t *testing.T, fs ports.FileService, us ports.UploadService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	NewFileController(r, fs, us, zap.NewNop(), jwt.New(testSecret), config.APP{BaseURL: "https://share.example.com"})
	return r
}

func bearerFor(t *testing.T, id user.ID, username string) string {
	t.Helper()

	tok, err := jwt.New(testSecret).GenerateJWT(id, username, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestFileController_UploadHandler(t *testing.T) {
	t.Run("no token -> 401", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		body, ct := multipartBody(t, "a.txt", "x", nil)
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)

		rr := serve(r, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Authentication required", decodeJSON(t, rr)["error"])
	})

	t.Run("garbage token -> 401", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		body, ct := multipartBody(t, "a.txt", "x", nil)
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", "Bearer nope")

		rr := serve(r, req)
		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid token", decodeJSON(t, rr)["error"])
	})

	t.Run("no file part -> 400", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		body, ct := multipartBody(t, "", "", map[string]string{"isPublic": "true"})
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No file provided", decodeJSON(t, rr)["error"])
	})

	t.Run("bad expireDays -> 400", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		body, ct := multipartBody(t, "a.txt", "x", map[string]string{"expireDays": "soon"})
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("service rejects oversize -> 400 with exact message", func(t *testing.T) {
		us := &fakeUploadService{
			IngestFunc: func(ctx context.Context, owner *ports.Identity, data io.Reader, sizeBytes int64, originalName, mimeType string, expireDays int, isPublic bool) (*file.File, error) {
				return nil, services.ErrFileTooLarge
			},
		}
		r := newFileRouter(t, &fakeFileService{}, us)

		body, ct := multipartBody(t, "big.bin", "x", nil)
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "File size too large. Maximum size is 10MB", decodeJSON(t, rr)["error"])
	})

	t.Run("success -> 201 with file payload", func(t *testing.T) {
		expires := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)
		us := &fakeUploadService{
			IngestFunc: func(ctx context.Context, owner *ports.Identity, data io.Reader, sizeBytes int64, originalName, mimeType string, expireDays int, isPublic bool) (*file.File, error) {
				require.NotNil(t, owner)
				assert.Equal(t, user.ID(1), owner.UserID)
				assert.Equal(t, "notes.txt", originalName)
				assert.Equal(t, 7, expireDays)
				assert.True(t, isPublic)

				got, err := io.ReadAll(data)
				require.NoError(t, err)
				assert.Equal(t, "file content", string(got))

				return &file.File{
					ID:           11,
					StorageName:  "notes_uuid.txt",
					OriginalName: originalName,
					SizeBytes:    uint64(len(got)),
					MimeType:     "text/plain",
					OwnerID:      owner.UserID,
					ExpiresAt:    &expires,
					IsPublic:     isPublic,
				}, nil
			},
		}
		r := newFileRouter(t, &fakeFileService{}, us)

		body, ct := multipartBody(t, "notes.txt", "file content", map[string]string{"isPublic": "true"})
		req := httptest.NewRequest(http.MethodPost, RouteUpload, body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusCreated, rr.Code)

		got := decodeJSON(t, rr)
		assert.Equal(t, "File uploaded successfully", got["message"])
		payload, ok := got["file"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(11), payload["id"])
		assert.Equal(t, "notes.txt", payload["original_name"])
		assert.Equal(t, true, payload["is_public"])
	})
}

func TestFileController_GetFileHandler(t *testing.T) {
	record := &file.File{
		ID:           5,
		StorageName:  "pic_uuid.png",
		OriginalName: "pic.png",
		MimeType:     "image/png",
		OwnerID:      1,
		IsPublic:     true,
	}

	t.Run("view serves inline bytes", func(t *testing.T) {
		fs := &fakeFileService{
			FetchFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error) {
				assert.Equal(t, file.ID(5), id)
				assert.Nil(t, caller)
				assert.Equal(t, ports.OpView, op)
				return record, []byte("png-bytes"), nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		rr := serve(r, httptest.NewRequest(http.MethodGet, "/files/5", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "png-bytes", rr.Body.String())
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, "inline", rr.Header().Get("Content-Disposition"))
	})

	t.Run("download sets attachment disposition", func(t *testing.T) {
		fs := &fakeFileService{
			FetchFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error) {
				assert.Equal(t, ports.OpDownload, op)
				return record, []byte("png-bytes"), nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		rr := serve(r, httptest.NewRequest(http.MethodGet, "/files/5?action=download", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, `attachment; filename="pic.png"`, rr.Header().Get("Content-Disposition"))
	})

	t.Run("bearer token resolves the caller", func(t *testing.T) {
		fs := &fakeFileService{
			FetchFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error) {
				require.NotNil(t, caller)
				assert.Equal(t, user.ID(1), caller.UserID)
				return record, []byte("png-bytes"), nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		req := httptest.NewRequest(http.MethodGet, "/files/5", nil)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))
		require.Equal(t, http.StatusOK, serve(r, req).Code)
	})

	t.Run("non-numeric id -> 400", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		rr := serve(r, httptest.NewRequest(http.MethodGet, "/files/abc", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			name string
			err  error
			code int
			msg  string
		}{
			{"record missing", services.ErrFileNotFound, http.StatusNotFound, "File not found"},
			{"blob missing", services.ErrBlobMissing, http.StatusNotFound, "File not found on disk"},
			{"expired", services.ErrFileGone, http.StatusGone, "File has expired"},
			{"auth required", services.ErrAuthRequired, http.StatusUnauthorized, "Authentication required"},
			{"restricted type", services.ErrRestrictedType, http.StatusForbidden, "Access denied. This file type requires authentication."},
			{"private", services.ErrAccessDenied, http.StatusForbidden, "Access denied"},
			{"unexpected", context.DeadlineExceeded, http.StatusInternalServerError, "internal server error"},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				fs := &fakeFileService{
					FetchFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity, op ports.Operation) (*file.File, []byte, error) {
						return nil, nil, tt.err
					},
				}
				r := newFileRouter(t, fs, &fakeUploadService{})

				rr := serve(r, httptest.NewRequest(http.MethodGet, "/files/5", nil))
				require.Equal(t, tt.code, rr.Code)
				assert.Equal(t, tt.msg, decodeJSON(t, rr)["error"])
			})
		}
	})
}

func TestFileController_GetFileInfoHandler(t *testing.T) {
	expires := time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)
	record := &file.File{
		ID:           5,
		StorageName:  "pic_uuid.png",
		OriginalName: "pic.png",
		SizeBytes:    1234,
		MimeType:     "image/png",
		OwnerID:      1,
		ExpiresAt:    &expires,
		IsPublic:     true,
	}

	fs := &fakeFileService{
		FileInfoFunc: func(ctx context.Context, id file.ID, caller *ports.Identity) (*file.File, error) {
			return record, nil
		},
	}
	r := newFileRouter(t, fs, &fakeUploadService{})

	rr := serve(r, httptest.NewRequest(http.MethodGet, "/files/5/info", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got struct {
		ID       uint64 `json:"id"`
		Filename string `json:"filename"`
		MimeType string `json:"mime_type"`
		FileSize uint64 `json:"file_size"`
		URLs     struct {
			View     string `json:"view"`
			Download string `json:"download"`
		} `json:"urls"`
		Embed struct {
			Image  *string `json:"image"`
			Iframe *string `json:"iframe"`
			Link   string  `json:"link"`
		} `json:"embed"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Equal(t, uint64(5), got.ID)
	assert.Equal(t, "pic.png", got.Filename)
	assert.Equal(t, uint64(1234), got.FileSize)
	assert.Equal(t, "https://share.example.com/files/5?action=view", got.URLs.View)
	assert.Equal(t, "https://share.example.com/files/5?action=download", got.URLs.Download)

	require.NotNil(t, got.Embed.Image, "image mime gets an img snippet")
	assert.Contains(t, *got.Embed.Image, `<img src="https://share.example.com/files/5?action=view"`)
	require.NotNil(t, got.Embed.Iframe)
	assert.Contains(t, *got.Embed.Iframe, "<iframe")
	assert.Contains(t, got.Embed.Link, `action=download`)
}

func TestFileController_DeleteFileHandler(t *testing.T) {
	t.Run("no token -> 401", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})

		rr := serve(r, httptest.NewRequest(http.MethodDelete, "/files/5", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("owner -> 200", func(t *testing.T) {
		fs := &fakeFileService{
			DeleteFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity) error {
				assert.Equal(t, file.ID(5), id)
				require.NotNil(t, caller)
				assert.Equal(t, user.ID(1), caller.UserID)
				return nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		req := httptest.NewRequest(http.MethodDelete, "/files/5", nil)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "File deleted successfully", decodeJSON(t, rr)["message"])
	})

	t.Run("non-owner -> 403", func(t *testing.T) {
		fs := &fakeFileService{
			DeleteFileFunc: func(ctx context.Context, id file.ID, caller *ports.Identity) error {
				return services.ErrAccessDenied
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		req := httptest.NewRequest(http.MethodDelete, "/files/5", nil)
		req.Header.Set("Authorization", bearerFor(t, 2, "bob"))

		assert.Equal(t, http.StatusForbidden, serve(r, req).Code)
	})
}

func TestFileController_Lists(t *testing.T) {
	files := file.Files{
		{ID: 2, OriginalName: "b.txt", OwnerID: 1, IsPublic: true},
		{ID: 1, OriginalName: "a.txt", OwnerID: 1},
	}

	t.Run("own list requires auth", func(t *testing.T) {
		r := newFileRouter(t, &fakeFileService{}, &fakeUploadService{})
		assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, RouteFiles, nil)).Code)
	})

	t.Run("own list", func(t *testing.T) {
		fs := &fakeFileService{
			ListOwnFilesFunc: func(ctx context.Context, caller *ports.Identity) (file.Files, error) {
				require.NotNil(t, caller)
				return files, nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		req := httptest.NewRequest(http.MethodGet, RouteFiles, nil)
		req.Header.Set("Authorization", bearerFor(t, 1, "alice"))

		rr := serve(r, req)
		require.Equal(t, http.StatusOK, rr.Code)

		var got struct {
			Files []struct {
				ID           uint64 `json:"id"`
				OriginalName string `json:"original_name"`
			} `json:"files"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Files, 2)
		assert.Equal(t, uint64(2), got.Files[0].ID)
	})

	t.Run("public list is open and may be empty", func(t *testing.T) {
		fs := &fakeFileService{
			ListPublicFilesFunc: func(ctx context.Context) (file.Files, error) {
				return nil, nil
			},
		}
		r := newFileRouter(t, fs, &fakeUploadService{})

		rr := serve(r, httptest.NewRequest(http.MethodGet, RoutePublicFiles, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"files":[]}`, rr.Body.String())
	})
}
