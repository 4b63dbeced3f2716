package media

import (
	"context"
	"errors"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxUploadBytes is the largest accepted image.
	MaxUploadBytes = 5 * 1024 * 1024
	// CacheControl is applied to every stored object.
	CacheControl = "max-age=3600"
)

// AllowedContentTypes lists the image types accepted for posters and logos.
var AllowedContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrTooLarge        = errors.New("file is too large, upload an image under 5MB")
	ErrUnsupportedType = errors.New("invalid file type, upload a JPG, PNG, or WEBP image")
)

// Object is a file ready to be written to object storage.
type Object struct {
	Key          string
	ContentType  string
	Size         int64
	CacheControl string
	Body         io.Reader
}

// Stored describes an object after upload.
type Stored struct {
	Key string
	URL string
}

// Uploader writes objects to a public bucket, overwriting existing keys.
type Uploader interface {
	Upload(ctx context.Context, obj Object) (Stored, error)
}

// CheckUpload enforces the size and content type rules.
func CheckUpload(size int64, contentType string) error {
	if size > MaxUploadBytes {
		return ErrTooLarge
	}
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	for _, allowed := range AllowedContentTypes {
		if ct == allowed {
			return nil
		}
	}
	return ErrUnsupportedType
}

var whitespace = regexp.MustCompile(`\s`)

// ObjectKey is "{unix millis}-{file name with each whitespace rune as '-'}".
func ObjectKey(fileName string, now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-" + whitespace.ReplaceAllString(fileName, "-")
}

// SanitizeURL returns raw when it is a base64 image data URI or an http(s)
// URL, and "" otherwise.
func SanitizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "data:image/") {
		parts := strings.Split(raw, ";")
		if len(parts) >= 2 && strings.HasPrefix(parts[1], "base64,") {
			return raw
		}
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	switch parsed.Scheme {
	case "http", "https":
		return raw
	default:
		return ""
	}
}

// IsImageURL is SanitizeURL as a predicate.
func IsImageURL(raw string) bool {
	return SanitizeURL(raw) != ""
}
