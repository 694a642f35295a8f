package app

import (
	"yatube/internal/config"
	"yatube/internal/database"
	handlers "yatube/internal/handler"
	"yatube/internal/logging"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/templates"
)

// App connects to the database and builds the repositories, services and
// handlers on top of it. Failures here are fatal.
func App(cfg *config.Config) (*database.DB, *service.Service, *handlers.Handlers) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}

	renderer, err := templates.New()
	if err != nil {
		logging.Fatal().Err(err).Msg("не удалось загрузить шаблоны")
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg)
	handler := handlers.NewHandlers(services, renderer, db, cfg)

	return db, services, handler
}

// Store is the database layer without HTTP, for administrative tools.
func Store(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("не удалось подключиться к БД")
	}

	repo := repository.NewRepository(db.DB)
	return db, repo, service.NewService(repo, cfg)
}
