// The rosterd server: loads configuration, wires the storage backend and
// services, and serves the roster HTTP API until interrupted.
package main

import (
	"context"
	"log"

	"github.com/mzaikin/rosterd/internal/server"
	"github.com/mzaikin/rosterd/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("startup failed: %v", err)
		return
	}

	app.Run(context.Background())
}
