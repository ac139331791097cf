package main

import (
	"github.com/componentry/backend/cmd/app"
)

func main() {
	app.Run()
}
