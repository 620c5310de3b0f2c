package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/service"
	"github.com/strandshq/strands-api/internal/utils"
)

// maxUploadBytes bounds a single image upload.
const maxUploadBytes = 16 << 20

// MediaHandler proxies image uploads to the external chunked endpoint.
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler constructs a MediaHandler.
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Upload handles POST /v1/media/upload (multipart: file, folder, isSecret).
func (h *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.Error(c, 400, "MISSING_FIELD", "file is required")
		return
	}
	if file.Size > maxUploadBytes {
		utils.Error(c, 413, "FILE_TOO_LARGE", "File exceeds the upload size limit")
		return
	}

	src, err := file.Open()
	if err != nil {
		handleError(c, err)
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		handleError(c, err)
		return
	}

	folder := c.DefaultPostForm("folder", "images")
	isSecret := c.PostForm("isSecret") == "true"

	url, err := h.mediaService.Upload(c.Request.Context(), folder, isSecret, data)
	if err != nil {
		handleError(c, err)
		return
	}
	utils.Success(c, 200, "Upload complete", gin.H{"url": url})
}
