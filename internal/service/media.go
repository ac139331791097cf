package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/rs/zerolog/log"

	"github.com/componentry/backend/internal/app/appconfig"
	"github.com/componentry/backend/internal/pkg/cerr"
	"github.com/componentry/backend/internal/pkg/observability"
)

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Media offloads image payloads to the media host and hands back a publicly
// resolvable URL.
type Media struct {
	client s3API

	bucket        string
	region        string
	publicBaseURL string
	timeout       time.Duration
}

func NewMedia(conf *appconfig.Config, client *s3.Client) *Media {
	return &Media{
		client:        client,
		bucket:        conf.MediaBucket,
		region:        conf.MediaRegion,
		publicBaseURL: conf.MediaPublicBaseURL,
		timeout:       conf.MediaUploadTimeout,
	}
}

// Upload stores the payload on the media host under a fresh key and returns
// its public URL. A nil or empty payload is a normal no-media request and
// yields (nil, nil). Host failures surface as UPLOAD_FAILED; no placeholder
// URL is ever substituted.
func (s *Media) Upload(ctx context.Context, file *multipart.FileHeader) (*string, error) {
	if file == nil || file.Size == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	f, err := file.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer f.Close()

	key := mediaKey(file.Filename, time.Now().UTC(), xid.New())

	start := time.Now()
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType(file)),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		observability.MediaUploadDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, cerr.ErrUploadFailed.WithExtras(cerr.Extras{"cause": err.Error()})
	}
	observability.MediaUploadDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	url := s.publicURL(key)
	log.Info().Str("key", key).Str("url", url).Msg("uploaded media payload")
	return &url, nil
}

func (s *Media) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return strings.TrimRight(s.publicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// mediaKey buckets objects by month so the media host stays browsable, and
// prefixes the original extension with a unique id to avoid collisions.
func mediaKey(filename string, now time.Time, id xid.ID) string {
	return "components/" + now.Format("2006-01") + "/" + id.String() + strings.ToLower(path.Ext(filename))
}

func contentType(file *multipart.FileHeader) string {
	if ct := file.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
