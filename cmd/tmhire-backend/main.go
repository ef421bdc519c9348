package main

import (
	"fmt"
	"os"

	"tmhire-backend/internal/auth"
	"tmhire-backend/internal/config"
	"tmhire-backend/internal/db"
	"tmhire-backend/internal/engine"
	httphandler "tmhire-backend/internal/http"
	"tmhire-backend/internal/http/middleware"
	"tmhire-backend/internal/logger"
	"tmhire-backend/internal/repository"
	"tmhire-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	plantRepo := repository.NewPlantRepository(database)
	tmRepo := repository.NewTMRepository(database)
	pumpRepo := repository.NewPumpRepository(database)
	scheduleRepo := repository.NewScheduleRepository(database)

	projector := engine.Projector{
		StartHour:   cfg.Calendar.StartHour,
		EndHour:     cfg.Calendar.EndHour,
		SlotMinutes: cfg.Calendar.SlotMinutes,
	}

	fleetService := service.NewFleetService(plantRepo, tmRepo, pumpRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, tmRepo, pumpRepo, projector)
	calendarService := service.NewCalendarService(scheduleRepo, tmRepo, pumpRepo, plantRepo, projector, log)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(fleetService, scheduleService, calendarService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting dispatch service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
