// Package main is the entry point for the federation registry API server.
package main

import (
	"os"

	"github.com/cartesiandb/federation-registry-server/cmd/fedreg-api/app"
	"github.com/cartesiandb/federation-registry-server/pkg/logger"
)

func main() {
	defer logger.Sync()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
