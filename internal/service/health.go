package service

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var ErrDatabaseNotReachable = errors.New("database not reachable")

type Health struct {
	db *mongo.Database
}

func NewHealth(db *mongo.Database) *Health {
	return &Health{db: db}
}

func (s *Health) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return errors.Wrap(ErrDatabaseNotReachable, err.Error())
	}
	return nil
}
