package storage

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	crerr "github.com/cockroachdb/errors"
	"github.com/ffmaxarena/arena-api/internal/domain/media"
	"github.com/ffmaxarena/arena-api/internal/platform/logging"
)

type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UsePathStyle    bool
}

func (c Config) validate() error {
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		return crerr.New("storage endpoint is required")
	case strings.TrimSpace(c.AccessKeyID) == "", strings.TrimSpace(c.SecretAccessKey) == "":
		return crerr.New("storage credentials are required")
	case strings.TrimSpace(c.Bucket) == "":
		return crerr.New("storage bucket is required")
	case strings.TrimSpace(c.PublicBaseURL) == "":
		return crerr.New("storage public base url is required")
	}
	if _, err := url.Parse(c.PublicBaseURL); err != nil {
		return crerr.Wrap(err, "parse storage public base url")
	}
	return nil
}

// S3Uploader writes objects to an S3 compatible bucket such as Cloudflare R2.
// PutObject overwrites existing keys.
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
	logger        *logging.Logger
}

func NewS3Uploader(ctx context.Context, cfg Config, logger *logging.Logger) (*S3Uploader, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "load storage sdk config")
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(strings.TrimRight(cfg.Endpoint, "/"))
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Uploader(client, cfg, logger), nil
}

func newS3Uploader(client *s3.Client, cfg Config, logger *logging.Logger) *S3Uploader {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}
}

func (u *S3Uploader) Upload(ctx context.Context, obj media.Object) (media.Stored, error) {
	if obj.Key == "" {
		return media.Stored{}, crerr.New("object key is required")
	}

	// The body is buffered so the SDK can sign and checksum a seekable stream.
	body, err := io.ReadAll(io.LimitReader(obj.Body, media.MaxUploadBytes+1))
	if err != nil {
		return media.Stored{}, crerr.Wrapf(err, "read upload body key=%s", obj.Key)
	}
	if len(body) > media.MaxUploadBytes {
		return media.Stored{}, media.ErrTooLarge
	}

	cacheControl := obj.CacheControl
	if cacheControl == "" {
		cacheControl = media.CacheControl
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(obj.Key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String(cacheControl),
	})
	if err != nil {
		return media.Stored{}, crerr.Wrapf(err, "put object bucket=%s key=%s", u.bucket, obj.Key)
	}

	u.logger.InfoContext(ctx, "object uploaded", "bucket", u.bucket, "key", obj.Key, "bytes", len(body))
	return media.Stored{Key: obj.Key, URL: u.PublicURL(obj.Key)}, nil
}

// PublicURL joins the public base URL and the escaped object key.
func (u *S3Uploader) PublicURL(key string) string {
	if u.publicBaseURL == "" || key == "" {
		return ""
	}
	return u.publicBaseURL + "/" + url.PathEscape(key)
}
