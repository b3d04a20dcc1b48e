package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pinboard/internal/app"
	"pinboard/internal/transport/http/response"
)

const maxUploadBytes = 10 << 20

// UploadHandler pushes image files straight to the image store, independent
// of pin creation.
type UploadHandler struct {
	images app.ImageUploader
}

func NewUploadHandler(images app.ImageUploader) *UploadHandler {
	return &UploadHandler{images: images}
}

// Upload accepts one or more multipart files under the "files" field and
// returns the stored URLs in submission order.
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.images == nil {
		serviceError(c, app.ErrImageUpload)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "no files provided")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		response.Error(c, http.StatusBadRequest, "no files provided")
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if file.Size > maxUploadBytes {
			response.Error(c, http.StatusBadRequest, "file too large")
			return
		}

		src, err := file.Open()
		if err != nil {
			serviceError(c, app.ErrImageUpload)
			return
		}
		data, err := io.ReadAll(src)
		_ = src.Close()
		if err != nil {
			serviceError(c, app.ErrImageUpload)
			return
		}

		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		url, err := h.images.Upload(c.Request.Context(), data, contentType)
		if err != nil {
			serviceError(c, app.ErrImageUpload)
			return
		}
		urls = append(urls, url)
	}

	response.Created(c, "Files uploaded successfully", gin.H{"urls": urls})
}
