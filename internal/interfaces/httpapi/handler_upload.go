package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/usecase"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 64 * 1024

func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadImage")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, media.ErrTooLarge))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: file is required", usecase.ErrInvalidInput))
		return
	}
	defer file.Close()

	stored, err := h.uploadService.Upload(ctx, usecase.UploadInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "image upload failed", "file_name", header.Filename, "size", header.Size, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, uploadDTO{Key: stored.Key, URL: stored.URL})
}
