package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fileshare-api/config"
	"fileshare-api/internal/application/ports"
	"fileshare-api/internal/application/services"
	fileDTO "fileshare-api/internal/interface/api/rest/dto/file"
	"fileshare-api/internal/interface/api/rest/middleware"
	"fileshare-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService   ports.FileService
	uploadService ports.UploadService
	logger        *zap.Logger
	cfg           config.APP
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	uploadService ports.UploadService,
	logger *zap.Logger,
	verifier ports.IdentityVerifier,
	cfg config.APP,
) *FileController {
	fc := &FileController{
		fileService:   fileService,
		uploadService: uploadService,
		logger:        logger,
		cfg:           cfg,
	}

	r.POST(RouteUpload, middleware.RequireAuth(verifier), fc.UploadHandler)
	r.GET(RouteFiles, middleware.RequireAuth(verifier), fc.ListOwnFilesHandler)
	r.GET(RouteFile, middleware.ResolveIdentity(verifier), fc.GetFileHandler)
	r.GET(RouteFileInfo, middleware.ResolveIdentity(verifier), fc.GetFileInfoHandler)
	r.DELETE(RouteFile, middleware.RequireAuth(verifier), fc.DeleteFileHandler)
	r.GET(RoutePublicFiles, fc.ListPublicFilesHandler)

	return fc
}

func (fc *FileController) UploadHandler(c *gin.Context) {
	caller := middleware.IdentityFrom(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	expireDays, err := validator.ParseExpireDays(c.PostForm("expireDays"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isPublic := validator.ParseIsPublic(c.PostForm("isPublic"))

	src, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer src.Close()

	f, err := fc.uploadService.Ingest(
		c.Request.Context(),
		caller,
		src,
		fh.Size,
		fh.Filename,
		fh.Header.Get("Content-Type"),
		expireDays,
		isPublic,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFileTooLarge),
			errors.Is(err, services.ErrFileEmpty),
			errors.Is(err, services.ErrInvalidExpireDays):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAuthRequired):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(
				http.StatusInternalServerError,
				gin.H{"error": "failed to upload a file"},
			)
			fc.logger.Error("Ingest() error", zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "File uploaded successfully",
		"file":    fileDTO.ToResponseFile(*f),
	})
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	id, err := validator.ParseFileID(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	op := ports.OpView
	if c.Query("action") == "download" {
		op = ports.OpDownload
	}

	f, data, err := fc.fileService.FetchFile(c.Request.Context(), id, middleware.IdentityFrom(c), op)
	if err != nil {
		fc.respondFileError(c, err, "FetchFile")
		return
	}

	if op == ports.OpDownload {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.OriginalName))
	} else {
		c.Header("Content-Disposition", "inline")
	}

	c.Data(http.StatusOK, f.MimeType, data)
}

func (fc *FileController) GetFileInfoHandler(c *gin.Context) {
	id, err := validator.ParseFileID(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := fc.fileService.FileInfo(c.Request.Context(), id, middleware.IdentityFrom(c))
	if err != nil {
		fc.respondFileError(c, err, "FileInfo")
		return
	}

	c.JSON(http.StatusOK, fileDTO.ToResponseInfo(*f, fc.baseURL(c)))
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	id, err := validator.ParseFileID(c.Param("file_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err = fc.fileService.DeleteFile(c.Request.Context(), id, middleware.IdentityFrom(c)); err != nil {
		fc.respondFileError(c, err, "DeleteFile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func (fc *FileController) ListOwnFilesHandler(c *gin.Context) {
	files, err := fc.fileService.ListOwnFiles(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		fc.respondFileError(c, err, "ListOwnFiles")
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Files: fileDTO.ToResponseFiles(files),
	})
}

func (fc *FileController) ListPublicFilesHandler(c *gin.Context) {
	files, err := fc.fileService.ListPublicFiles(c.Request.Context())
	if err != nil {
		fc.respondFileError(c, err, "ListPublicFiles")
		return
	}

	c.JSON(http.StatusOK, fileDTO.ResponseData{
		Files: fileDTO.ToResponseFiles(files),
	})
}

// respondFileError maps service errors to the wire: 404 for missing
// record or blob, 410 for a lapsed record, 401/403 for the
// authorization branches, 500 (logged, detail withheld) otherwise.
func (fc *FileController) respondFileError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrFileNotFound),
		errors.Is(err, services.ErrBlobMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFileGone):
		c.JSON(http.StatusGone, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRestrictedType),
		errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "internal server error"},
		)
		fc.logger.Error(op+"() error", zap.Error(err))
	}
}

func (fc *FileController) baseURL(c *gin.Context) string {
	if fc.cfg.BaseURL != "" {
		return fc.cfg.BaseURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
