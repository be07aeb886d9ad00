package main

import (
	"sheen/config"
	"sheen/di"
	"sheen/shared/logger"
)

// @title			Sheen API
// @version		1.0
// @description	Booking backend for recurring cleaning services.
// @BasePath		/v1
//
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
