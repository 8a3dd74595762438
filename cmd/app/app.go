package main

import (
	"os"

	"github.com/shopsphere/catalog-service/internal/app"
	config "github.com/shopsphere/catalog-service/internal/cfg"
	"github.com/shopsphere/catalog-service/pkg/logger"
)

//	@title			Catalog Service API
//	@version		1.0
//	@description	REST API каталога товаров: CRUD, фильтрация, поиск и массовая загрузка.

//	@host		localhost:3300
//	@BasePath	/
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
