package infra

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/fx"

	"github.com/componentry/backend/internal/app/appconfig"
)

// Mongo connects to the MongoDB deployment holding component records.
// An unreachable database at startup is fatal: the returned error propagates
// through fx and the process exits non-zero.
func Mongo(conf *appconfig.Config, lc fx.Lifecycle) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), conf.MongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create mongo client")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "failed to reach mongo deployment")
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client.Database(conf.MongoDatabase), nil
}
