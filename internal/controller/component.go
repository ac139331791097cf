package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/componentry/backend/internal/model/types"
	"github.com/componentry/backend/internal/pkg/cerr"
	"github.com/componentry/backend/internal/pkg/flog"
	"github.com/componentry/backend/internal/server/svr"
	"github.com/componentry/backend/internal/service"
)

type Component struct {
	fx.In

	ComponentService *service.Component
	Counter          *service.Counter
}

func RegisterComponent(api *svr.API, c Component) {
	api.Post("/upload", countArrival(c.Counter.IncCreate), c.Create)
	api.Put("/update/:id", countArrival(c.Counter.IncUpdate), c.Update)
	api.Get("/recentComponents", c.RecentComponents)
	api.Get("/counts", c.Counts)
}

// countArrival bumps the matching call counter as soon as the request reaches
// the route, before the outcome is known.
func countArrival(inc func()) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		inc()
		return ctx.Next()
	}
}

// Create accepts a multipart submission with `component` group numbers,
// optional `text` and an optional `image` file, uploads the image to the media
// host and persists the record. Responds 201 with the stored record.
func (c *Component) Create(ctx *fiber.Ctx) error {
	groups, err := formGroups(ctx)
	if err != nil {
		return err
	}

	file, _ := ctx.FormFile("image")

	rec, err := c.ComponentService.Create(ctx.UserContext(), &types.CreateComponentRequest{
		Component: groups,
		Text:      ctx.FormValue("text"),
		Image:     file,
	})
	if err != nil {
		return err
	}

	flog.InfoFrom(ctx).
		Str("id", rec.ID.Hex()).
		Ints("component", rec.Component).
		Msg("created component")

	return ctx.Status(fiber.StatusCreated).JSON(types.ComponentResponse{Success: true, Data: rec})
}

// Update overwrites an existing record addressed by its id. The stored image
// is only replaced when the request carries a new `image` file.
func (c *Component) Update(ctx *fiber.Ctx) error {
	groups, err := formGroups(ctx)
	if err != nil {
		return err
	}

	file, _ := ctx.FormFile("image")

	rec, err := c.ComponentService.Update(ctx.UserContext(), &types.UpdateComponentRequest{
		ID:        ctx.Params("id"),
		Component: groups,
		Text:      ctx.FormValue("text"),
		Image:     file,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(types.ComponentResponse{Success: true, Data: rec})
}

// RecentComponents reports the most recent record of every configured group,
// ordered by group number ascending.
func (c *Component) RecentComponents(ctx *fiber.Ctx) error {
	recs, err := c.ComponentService.ListRecent(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(types.ComponentListResponse{Success: true, Data: recs})
}

// Counts reports how many requests hit the create and update routes since the
// process started.
func (c *Component) Counts(ctx *fiber.Ctx) error {
	return ctx.JSON(c.Counter.Snapshot())
}

// formGroups reads the `component` form field. Both repeated fields and
// comma-separated values are accepted.
func formGroups(ctx *fiber.Ctx) ([]int, error) {
	var raw []string
	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		raw = form.Value["component"]
	} else if v := ctx.FormValue("component"); v != "" {
		raw = []string{v}
	}

	var groups []int
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, cerr.ErrInvalidReq.Msg("invalid component group %q", part)
			}
			groups = append(groups, n)
		}
	}
	return groups, nil
}
