package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/app"
)

type stubUploader struct {
	uploads int
	fail    bool
}

func (s *stubUploader) Upload(context.Context, []byte, string) (string, error) {
	if s.fail {
		return "", errors.New("s3 unavailable")
	}
	s.uploads++
	return fmt.Sprintf("https://cdn.example.com/pins/%d", s.uploads), nil
}

func newUploadRouter(uploader *stubUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	var images app.ImageUploader
	if uploader != nil {
		images = uploader
	}
	router.POST("/upload", NewUploadHandler(images).Upload)
	return router
}

func multipartBody(t *testing.T, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadStoresEachFile(t *testing.T) {
	uploader := &stubUploader{}
	router := newUploadRouter(uploader)

	body, contentType := multipartBody(t, "a.jpg", "b.jpg")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, uploader.uploads)
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/pins/1")
	assert.Contains(t, rec.Body.String(), "https://cdn.example.com/pins/2")
}

func TestUploadWithoutFiles(t *testing.T) {
	router := newUploadRouter(&stubUploader{})

	body, contentType := multipartBody(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadWithoutStore(t *testing.T) {
	router := newUploadRouter(nil)

	body, contentType := multipartBody(t, "a.jpg")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadStoreFailure(t *testing.T) {
	router := newUploadRouter(&stubUploader{fail: true})

	body, contentType := multipartBody(t, "a.jpg")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
