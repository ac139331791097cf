package appconfig

import (
	"time"

	"github.com/componentry/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address would listen on for serving requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:5000"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program would spin up utilities for debugging and
	// provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// infrastructure components connection instructions

	// MongoURI is the connection string of the MongoDB deployment holding component records. See
	// https://www.mongodb.com/docs/manual/reference/connection-string/ for how to construct one.
	MongoURI string `required:"true" split_words:"true"`

	// MongoDatabase is the database name component records are stored in.
	MongoDatabase string `split_words:"true" default:"componentry"`

	// MongoConnectTimeout bounds the initial connection attempt. Failing to reach
	// the database within this window aborts startup with a non-zero exit.
	MongoConnectTimeout time.Duration `split_words:"true" default:"5s"`

	// MediaBucket is the bucket name on the media host uploaded images are stored in.
	MediaBucket string `split_words:"true"`

	// MediaRegion is the region of the media host bucket.
	MediaRegion string `split_words:"true" default:"us-east-1"`

	// MediaAccessKey is the access key id of the media host account.
	MediaAccessKey string `split_words:"true"`

	// MediaSecretKey is the secret access key of the media host account.
	MediaSecretKey string `split_words:"true"`

	// MediaPublicBaseURL overrides the public URL prefix uploaded objects are served from.
	// Leaving this empty derives the URL from the bucket and region.
	MediaPublicBaseURL string `split_words:"true"`

	// MediaUploadTimeout bounds a single media host upload. Requests carrying a
	// payload fail rather than hang when the media host does not answer in time.
	MediaUploadTimeout time.Duration `split_words:"true" default:"30s"`

	// RecentGroups is the ordered list of group numbers the recent-components
	// endpoint reports on.
	RecentGroups []int `split_words:"true" default:"1,2"`

	// SentryDSN is the DSN of the Sentry server. See https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	// ConfigSpec is the configuration specification injected to the config.
	ConfigSpec

	// AppContext is the application context
	AppContext appcontext.Ctx
}
