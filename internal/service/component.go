package service

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/componentry/backend/internal/app/appconfig"
	"github.com/componentry/backend/internal/model"
	"github.com/componentry/backend/internal/model/types"
	"github.com/componentry/backend/internal/pkg/cerr"
	"github.com/componentry/backend/internal/pkg/observability"
	"github.com/componentry/backend/internal/pkg/rekuest"
	"github.com/componentry/backend/internal/repo"
)

// ComponentStore is the persistence contract the component service relies on.
// Implemented by repo.Component.
type ComponentStore interface {
	Create(ctx context.Context, rec *model.Component) (*model.Component, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Component, error)
	Update(ctx context.Context, id primitive.ObjectID, fields repo.UpdateFields) (*model.Component, error)
	ListMostRecentPerGroup(ctx context.Context, groups []int) ([]*model.Component, error)
}

// MediaUploader turns a multipart payload into a public URL. A nil payload
// yields a nil URL without touching the media host.
type MediaUploader interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*string, error)
}

type Component struct {
	store    ComponentStore
	uploader MediaUploader

	// recentGroups is the configured, normalized set of groups the
	// recent-components listing reports on.
	recentGroups []int
}

func NewComponent(conf *appconfig.Config, store *repo.Component, uploader *Media) *Component {
	return NewComponentWith(store, uploader, conf.RecentGroups)
}

// NewComponentWith wires explicit collaborators. Kept separate from the fx
// constructor so tests can substitute the store and uploader.
func NewComponentWith(store ComponentStore, uploader MediaUploader, recentGroups []int) *Component {
	return &Component{
		store:        store,
		uploader:     uploader,
		recentGroups: normalizeGroups(recentGroups),
	}
}

// Create validates the submission, uploads the optional payload and persists a
// fresh record. An upload failure aborts the whole request: no record is
// written with a silently missing image.
func (s *Component) Create(ctx context.Context, req *types.CreateComponentRequest) (*model.Component, error) {
	if err := rekuest.ValidStruct(req); err != nil {
		observability.ComponentMutations.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, req.Image)
	if err != nil {
		observability.ComponentMutations.WithLabelValues("create", "upload_failed").Inc()
		return nil, err
	}

	rec := &model.Component{
		Component: normalizeGroups(req.Component),
		Text:      req.Text,
		Image:     imageURL,
		CreatedAt: time.Now().UTC(),
	}

	stored, err := s.store.Create(ctx, rec)
	if err != nil {
		observability.ComponentMutations.WithLabelValues("create", "store_failed").Inc()
		return nil, err
	}

	observability.ComponentMutations.WithLabelValues("create", "ok").Inc()
	return stored, nil
}

// Update overwrites component, text and updatedAt of an existing record. The
// stored image URL is replaced only when the request carried a new payload;
// otherwise the previous one is kept untouched.
func (s *Component) Update(ctx context.Context, req *types.UpdateComponentRequest) (*model.Component, error) {
	if err := rekuest.ValidStruct(req); err != nil {
		observability.ComponentMutations.WithLabelValues("update", "invalid").Inc()
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		// a malformed id cannot address any record
		observability.ComponentMutations.WithLabelValues("update", "not_found").Inc()
		return nil, cerr.ErrNotFound
	}

	if _, err := s.store.GetByID(ctx, id); err != nil {
		observability.ComponentMutations.WithLabelValues("update", "not_found").Inc()
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, req.Image)
	if err != nil {
		observability.ComponentMutations.WithLabelValues("update", "upload_failed").Inc()
		return nil, err
	}

	updated, err := s.store.Update(ctx, id, repo.UpdateFields{
		Component: normalizeGroups(req.Component),
		Text:      req.Text,
		Image:     imageURL,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		observability.ComponentMutations.WithLabelValues("update", "store_failed").Inc()
		return nil, err
	}

	observability.ComponentMutations.WithLabelValues("update", "ok").Inc()
	return updated, nil
}

// ListRecent returns the most recent record of every configured group, ordered
// by group number ascending.
func (s *Component) ListRecent(ctx context.Context) ([]*model.Component, error) {
	recs, err := s.store.ListMostRecentPerGroup(ctx, s.recentGroups)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []*model.Component{}
	}
	return recs, nil
}

func normalizeGroups(groups []int) []int {
	out := lo.Uniq(groups)
	sort.Ints(out)
	return out
}
