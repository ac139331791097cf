package controller

import (
	"go.uber.org/fx"

	controllermeta "github.com/componentry/backend/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		fx.Invoke(
			RegisterComponent,
		),
		controllermeta.Module(),
	)
}
