package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/server"
	"github.com/kbukum/vibeapi/internal/storage"
)

// StorageHandler serves per-user file storage endpoints.
type StorageHandler struct {
	svc *storage.Service
}

// NewStorageHandler creates a StorageHandler.
func NewStorageHandler(svc *storage.Service) *StorageHandler {
	return &StorageHandler{svc: svc}
}

// RegisterRoutes mounts the storage endpoints. The group must already carry
// the authentication middleware.
func (h *StorageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/storage")
	grp.GET("", h.list)
	grp.POST("", h.upload)
	grp.GET("/*name", h.download)
	grp.DELETE("/*name", h.delete)
}

// objectName pulls the wildcard path parameter and strips the leading slash
// Gin leaves on it.
func objectName(c *gin.Context) (string, error) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" || strings.Contains(name, "..") {
		return "", apperrors.Validation("invalid file name")
	}
	return name, nil
}

func (h *StorageHandler) list(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	files, err := h.svc.List(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, apperrors.ExternalServiceError("storage", err))
		return
	}
	server.RespondOK(c, files)
}

func (h *StorageHandler) upload(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("multipart field 'file' is required"))
		return
	}
	if file.Size > h.svc.MaxUploadBytes() {
		server.RespondWithError(c, apperrors.Validation("file exceeds upload size limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if err := h.svc.Upload(c.Request.Context(), id, file.Filename, contentType, src); err != nil {
		server.RespondWithError(c, apperrors.ExternalServiceError("storage", err))
		return
	}
	server.RespondCreated(c, gin.H{"name": file.Filename, "size": file.Size})
}

func (h *StorageHandler) download(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	name, err := objectName(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	body, contentType, err := h.svc.Download(c.Request.Context(), id, name)
	if err != nil {
		server.RespondWithError(c, apperrors.NotFound("file"))
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *StorageHandler) delete(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	name, err := objectName(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, name); err != nil {
		server.RespondWithError(c, apperrors.ExternalServiceError("storage", err))
		return
	}
	server.RespondNoContent(c)
}
