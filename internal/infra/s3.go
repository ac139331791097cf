package infra

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/componentry/backend/internal/app/appconfig"
)

// S3 creates the media host client from the statically configured credentials.
func S3(conf *appconfig.Config) (*s3.Client, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(conf.MediaRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.MediaAccessKey, conf.MediaSecretKey, ""),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load media host configuration")
	}

	return s3.NewFromConfig(awsConf), nil
}
