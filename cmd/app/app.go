package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/componentry/backend/cmd/app/server"
	"github.com/componentry/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "componentry",
		Description: "The Componentry Backend. Stores component records in MongoDB, offloads image payloads to the media host. Built with Go, fiber and go.uber.org/fx.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
