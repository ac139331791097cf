package repo

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/componentry/backend/internal/constant"
	"github.com/componentry/backend/internal/model"
	"github.com/componentry/backend/internal/pkg/cerr"
)

type Component struct {
	coll *mongo.Collection
}

func NewComponent(db *mongo.Database) *Component {
	return &Component{coll: db.Collection(constant.ComponentCollection)}
}

// UpdateFields carries the mutable fields of a component record. Image is only
// written when non-nil: an update without a fresh upload keeps the stored URL.
type UpdateFields struct {
	Component []int
	Text      string
	Image     *string
	UpdatedAt time.Time
}

func (r *Component) Create(ctx context.Context, rec *model.Component) (*model.Component, error) {
	var res *mongo.InsertOneResult
	err := withRetry(ctx, func() error {
		var err error
		res, err = r.coll.InsertOne(ctx, rec)
		return err
	})
	if err != nil {
		return nil, classify(err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	rec.ID = oid
	return rec, nil
}

func (r *Component) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Component, error) {
	var rec model.Component
	err := withRetry(ctx, func() error {
		return r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	})
	if err != nil {
		return nil, classify(err)
	}
	return &rec, nil
}

func (r *Component) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (*model.Component, error) {
	set := bson.M{
		"component": fields.Component,
		"text":      fields.Text,
		"updatedAt": fields.UpdatedAt,
	}
	if fields.Image != nil {
		set["image"] = *fields.Image
	}

	var res *mongo.UpdateResult
	err := withRetry(ctx, func() error {
		var err error
		res, err = r.coll.UpdateByID(ctx, id, bson.M{"$set": set})
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	if res.MatchedCount == 0 {
		return nil, cerr.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// ListMostRecentPerGroup returns, for every group in groups that has at least
// one record tagged with it, the record with the latest createdAt. Output is
// ordered by group number ascending; groups without records are absent. A
// record tagged with several requested groups can win each of them.
func (r *Component) ListMostRecentPerGroup(ctx context.Context, groups []int) ([]*model.Component, error) {
	var out []*model.Component
	err := withRetry(ctx, func() error {
		cur, err := r.coll.Aggregate(ctx, recentPipeline(groups))
		if err != nil {
			return err
		}
		out = out[:0]
		return cur.All(ctx, &out)
	})
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// recentPipeline builds the grouped-latest aggregation. The component array is
// copied into a scalar groupTag before unwinding so the winning document keeps
// its full tag list. Ties on createdAt fall back to _id descending, which keeps
// selection deterministic across calls.
func recentPipeline(groups []int) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "component", Value: bson.D{{Key: "$in", Value: groups}}}}}},
		bson.D{{Key: "$addFields", Value: bson.D{{Key: "groupTag", Value: "$component"}}}},
		bson.D{{Key: "$unwind", Value: "$groupTag"}},
		bson.D{{Key: "$match", Value: bson.D{{Key: "groupTag", Value: bson.D{{Key: "$in", Value: groups}}}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$groupTag"},
			{Key: "doc", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$doc"}}}},
		bson.D{{Key: "$unset", Value: "groupTag"}},
	}
}

func withRetry(ctx context.Context, op func() error) error {
	return retry.Do(op,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

func isTransient(err error) bool {
	return mongo.IsNetworkError(err) || mongo.IsTimeout(err)
}

func classify(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return cerr.ErrNotFound
	case isTransient(err):
		return cerr.ErrStoreUnavailable.WithExtras(cerr.Extras{"cause": err.Error()})
	default:
		return errors.Wrap(err, "record store operation failed")
	}
}
