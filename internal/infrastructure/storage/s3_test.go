package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUploader(t *testing.T, endpoint string) *S3Uploader {
	t.Helper()
	client := s3.New(s3.Options{
		Region:       "auto",
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("key", "secret", ""),
	})
	return newS3Uploader(client, Config{
		Bucket:        "tournament-posters",
		PublicBaseURL: "https://cdn.ffmaxarena.test/",
	}, logging.NewNop())
}

func TestS3Uploader_UploadPutsObject(t *testing.T) {
	var (
		gotMethod, gotPath, gotCache, gotType string
		gotBody                               []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotCache = r.Header.Get("Cache-Control")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	uploader := testUploader(t, server.URL)
	stored, err := uploader.Upload(context.Background(), media.Object{
		Key:         "1773140400000-my-poster.png",
		ContentType: "image/png",
		Body:        bytes.NewReader([]byte("png-bytes")),
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/tournament-posters/1773140400000-my-poster.png", gotPath)
	assert.Equal(t, media.CacheControl, gotCache)
	assert.Equal(t, "image/png", gotType)
	assert.Contains(t, string(gotBody), "png-bytes")
	assert.Equal(t, "https://cdn.ffmaxarena.test/1773140400000-my-poster.png", stored.URL)
}

func TestS3Uploader_RejectsOversizedBody(t *testing.T) {
	uploader := testUploader(t, "http://127.0.0.1:1")
	_, err := uploader.Upload(context.Background(), media.Object{
		Key:         "big.png",
		ContentType: "image/png",
		Body:        strings.NewReader(strings.Repeat("x", media.MaxUploadBytes+1)),
	})
	assert.ErrorIs(t, err, media.ErrTooLarge)
}

func TestS3Uploader_PublicURLEscapesKey(t *testing.T) {
	uploader := testUploader(t, "http://127.0.0.1:1")
	assert.Equal(t, "https://cdn.ffmaxarena.test/a%3Fb.png", uploader.PublicURL("a?b.png"))
	assert.Equal(t, "", uploader.PublicURL(""))
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		Endpoint:        "https://account.r2.cloudflarestorage.test",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "tournament-posters",
		PublicBaseURL:   "https://cdn.ffmaxarena.test",
	}
	require.NoError(t, valid.validate())

	missing := valid
	missing.Bucket = ""
	assert.Error(t, missing.validate())

	missing = valid
	missing.SecretAccessKey = ""
	assert.Error(t, missing.validate())
}
