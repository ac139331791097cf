package server

import (
	"go.uber.org/fx"

	"github.com/componentry/backend/internal/server/httpserver"
	"github.com/componentry/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server", fx.Provide(
		httpserver.Create,
		svr.CreateEndpointGroups,
	))
}
