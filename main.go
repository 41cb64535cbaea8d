package main

import (
	"github.com/hitalent/qanda/config"
	"github.com/hitalent/qanda/routes"
	"github.com/hitalent/qanda/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Schema is created by cmd/migrate; the server only verifies it is there
	db := config.InitDatabase("questions", "answers")

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
