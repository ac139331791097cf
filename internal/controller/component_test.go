package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/componentry/backend/internal/app/appconfig"
	"github.com/componentry/backend/internal/model"
	"github.com/componentry/backend/internal/pkg/cerr"
	"github.com/componentry/backend/internal/repo"
	"github.com/componentry/backend/internal/server/httpserver"
	"github.com/componentry/backend/internal/server/svr"
	"github.com/componentry/backend/internal/service"
)

type memStore struct {
	mu    sync.Mutex
	recs  map[primitive.ObjectID]*model.Component
	order []primitive.ObjectID
}

func newMemStore() *memStore {
	return &memStore{recs: map[primitive.ObjectID]*model.Component{}}
}

func (s *memStore) Create(_ context.Context, rec *model.Component) (*model.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = primitive.NewObjectID()
	cp := *rec
	s.recs[rec.ID] = &cp
	s.order = append(s.order, rec.ID)
	return rec, nil
}

func (s *memStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, cerr.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, id primitive.ObjectID, fields repo.UpdateFields) (*model.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, cerr.ErrNotFound
	}
	rec.Component = fields.Component
	rec.Text = fields.Text
	if fields.Image != nil {
		img := *fields.Image
		rec.Image = &img
	}
	at := fields.UpdatedAt
	rec.UpdatedAt = &at
	cp := *rec
	return &cp, nil
}

func (s *memStore) ListMostRecentPerGroup(_ context.Context, groups []int) ([]*model.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.Component
	for _, group := range groups {
		var best *model.Component
		for _, id := range s.order {
			rec := s.recs[id]
			for _, g := range rec.Component {
				if g != group {
					continue
				}
				if best == nil || !rec.CreatedAt.Before(best.CreatedAt) {
					best = rec
				}
			}
		}
		if best != nil {
			cp := *best
			out = append(out, &cp)
		}
	}
	return out, nil
}

type stubUploader struct {
	url *string
	err error
}

func (u *stubUploader) Upload(_ context.Context, file *multipart.FileHeader) (*string, error) {
	if file == nil {
		return nil, nil
	}
	return u.url, u.err
}

func newTestApp(t *testing.T, store service.ComponentStore, uploader service.MediaUploader) *fiber.App {
	t.Helper()

	conf := &appconfig.Config{
		ConfigSpec: appconfig.ConfigSpec{
			HTTPServerShutdownTimeout: time.Minute,
		},
	}
	app := httpserver.Create(conf)
	api, _ := svr.CreateEndpointGroups(app)

	RegisterComponent(api, Component{
		ComponentService: service.NewComponentWith(store, uploader, []int{1, 2}),
		Counter:          service.NewCounter(),
	})

	return app
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, image []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		fw, err := w.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response, into interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, into))
}

type recordEnvelope struct {
	Success bool             `json:"success"`
	Data    *model.Component `json:"data"`
	Error   string           `json:"error"`
}

type listEnvelope struct {
	Success bool               `json:"success"`
	Data    []*model.Component `json:"data"`
}

func TestCreateEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		app := newTestApp(t, newMemStore(), &stubUploader{})

		resp, err := app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{
			"component": "1,2",
			"text":      "hello",
		}, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var body recordEnvelope
		decodeBody(t, resp, &body)
		assert.True(t, body.Success)
		require.NotNil(t, body.Data)
		assert.False(t, body.Data.ID.IsZero())
		assert.Equal(t, []int{1, 2}, body.Data.Component)
		assert.Equal(t, "hello", body.Data.Text)
		assert.False(t, body.Data.CreatedAt.IsZero())
		assert.Nil(t, body.Data.UpdatedAt)
	})

	t.Run("missing component is a client error", func(t *testing.T) {
		app := newTestApp(t, newMemStore(), &stubUploader{})

		resp, err := app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{"text": "no groups"}, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body recordEnvelope
		decodeBody(t, resp, &body)
		assert.False(t, body.Success)
		assert.NotEmpty(t, body.Error)
	})

	t.Run("non-numeric component is a client error", func(t *testing.T) {
		app := newTestApp(t, newMemStore(), &stubUploader{})

		resp, err := app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{"component": "one"}, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("upload failure surfaces instead of masking", func(t *testing.T) {
		store := newMemStore()
		app := newTestApp(t, store, &stubUploader{err: cerr.ErrUploadFailed})

		resp, err := app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{"component": "1"}, []byte("img")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Empty(t, store.recs)
	})
}

func TestUpdateEndpoint(t *testing.T) {
	url := "https://cdn.example/old.png"

	seed := func(t *testing.T, store *memStore) *model.Component {
		t.Helper()
		rec, err := store.Create(context.Background(), &model.Component{
			Component: []int{1},
			Text:      "original",
			Image:     &url,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		return rec
	}

	t.Run("unknown id is 404", func(t *testing.T) {
		app := newTestApp(t, newMemStore(), &stubUploader{})

		resp, err := app.Test(multipartRequest(t, http.MethodPut,
			"/update/"+primitive.NewObjectID().Hex(),
			map[string]string{"component": "1"}, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("keeps previous image without a new payload", func(t *testing.T) {
		store := newMemStore()
		rec := seed(t, store)
		app := newTestApp(t, store, &stubUploader{})

		resp, err := app.Test(multipartRequest(t, http.MethodPut,
			"/update/"+rec.ID.Hex(),
			map[string]string{"component": "2", "text": "changed"}, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body recordEnvelope
		decodeBody(t, resp, &body)
		require.NotNil(t, body.Data)
		require.NotNil(t, body.Data.Image)
		assert.Equal(t, url, *body.Data.Image)
		assert.Equal(t, "changed", body.Data.Text)
		assert.NotNil(t, body.Data.UpdatedAt)
	})

	t.Run("replaces image with a new payload", func(t *testing.T) {
		store := newMemStore()
		rec := seed(t, store)
		newURL := "https://cdn.example/new.png"
		app := newTestApp(t, store, &stubUploader{url: &newURL})

		resp, err := app.Test(multipartRequest(t, http.MethodPut,
			"/update/"+rec.ID.Hex(),
			map[string]string{"component": "1"}, []byte("img")))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body recordEnvelope
		decodeBody(t, resp, &body)
		require.NotNil(t, body.Data)
		require.NotNil(t, body.Data.Image)
		assert.Equal(t, newURL, *body.Data.Image)
	})
}

func TestRecentComponentsEndpoint(t *testing.T) {
	store := newMemStore()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mustCreate := func(groups []int, at time.Time) *model.Component {
		rec, err := store.Create(context.Background(), &model.Component{Component: groups, CreatedAt: at})
		require.NoError(t, err)
		return rec
	}
	mustCreate([]int{1}, base.Add(10*time.Second))
	r2 := mustCreate([]int{1}, base.Add(20*time.Second))
	r3 := mustCreate([]int{2}, base.Add(5*time.Second))

	app := newTestApp(t, store, &stubUploader{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/recentComponents", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body listEnvelope
	decodeBody(t, resp, &body)
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, r2.ID, body.Data[0].ID)
	assert.Equal(t, r3.ID, body.Data[1].ID)
}

func TestCountsEndpoint(t *testing.T) {
	app := newTestApp(t, newMemStore(), &stubUploader{})

	counts := func() map[string]int {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/counts", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]int
		decodeBody(t, resp, &body)
		return body
	}

	assert.Equal(t, map[string]int{"createCount": 0, "updateCount": 0}, counts())

	// a failing create still counts as an arrival
	resp, err := app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{"text": "invalid"}, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(multipartRequest(t, http.MethodPost, "/upload", map[string]string{"component": "1"}, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(multipartRequest(t, http.MethodPut,
		"/update/"+primitive.NewObjectID().Hex(),
		map[string]string{"component": "1"}, nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, map[string]int{"createCount": 2, "updateCount": 1}, counts())
}
