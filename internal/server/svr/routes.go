package svr

import (
	"github.com/gofiber/fiber/v2"
)

// API is the public surface the reference clients talk to. Routes live at the
// root so existing consumers keep their paths.
type API struct {
	fiber.Router
}

// Meta hosts operational endpoints not intended for public exposure.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*API, *Meta) {
	api := app.Group("/")
	meta := app.Group("/api/_")

	return &API{Router: api}, &Meta{Router: meta}
}
