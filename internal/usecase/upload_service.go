package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/jonboulle/clockwork"
)

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService struct {
	uploader media.Uploader
	clock    clockwork.Clock
}

// NewUploadService accepts a nil uploader when storage is not configured.
func NewUploadService(uploader media.Uploader, clock clockwork.Clock) *UploadService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UploadService{uploader: uploader, clock: clock}
}

func (s *UploadService) Upload(ctx context.Context, in UploadInput) (media.Stored, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UploadService.Upload")
	defer span.End()

	if s.uploader == nil {
		return media.Stored{}, fmt.Errorf("%w: object storage is not configured", ErrDependencyUnavailable)
	}
	name := strings.TrimSpace(in.FileName)
	if name == "" || in.Body == nil {
		return media.Stored{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if err := media.CheckUpload(in.Size, in.ContentType); err != nil {
		return media.Stored{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.uploader.Upload(ctx, media.Object{
		Key:          media.ObjectKey(name, s.clock.Now()),
		ContentType:  in.ContentType,
		Size:         in.Size,
		CacheControl: media.CacheControl,
		Body:         in.Body,
	})
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) {
			return media.Stored{}, fmt.Errorf("%w: %v", ErrInvalidInput, media.ErrTooLarge)
		}
		return media.Stored{}, fmt.Errorf("%w: upload image: %v", ErrDependencyUnavailable, err)
	}
	return stored, nil
}
