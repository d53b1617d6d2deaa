package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ngmaloney/citybuddy/internal/assistant"
	"github.com/ngmaloney/citybuddy/internal/config"
	"github.com/ngmaloney/citybuddy/internal/database"
	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/guide"
	"github.com/ngmaloney/citybuddy/internal/logging"
	"github.com/ngmaloney/citybuddy/internal/places"
	"github.com/ngmaloney/citybuddy/internal/profile"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// app holds the wired components shared by every command
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *sql.DB
	profiles *profile.Store
	guide    *guide.Service
}

// newApp loads configuration and wires storage, the Maps and Gemini clients and the guide.
// Missing API keys are not an error; those sources are skipped.
func newApp(ctx context.Context, configPath, dbPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}

	logger, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return nil, err
	}

	db, err := database.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := profile.NewStore(db, cfg.City.DefaultPostalCode, logger.Named("profile"))

	var mapsClient *maps.Client
	if cfg.MapsEnabled() {
		mapsClient, err = geocoding.NewMapsClient(cfg.Maps.APIKey, cfg.Maps.BaseURL, cfg.Maps.Timeout)
		if err != nil {
			logger.Warn("maps disabled", zap.Error(err))
			mapsClient = nil
		}
	}

	geocoder := geocoding.NewGeocoder(mapsClient, geocoding.Options{
		Region:            cfg.City.Region,
		DefaultPostalCode: cfg.City.DefaultPostalCode,
		Fallback: geocoding.Location{
			Latitude:  cfg.City.DefaultLatitude,
			Longitude: cfg.City.DefaultLongitude,
			Name:      cfg.City.DefaultLocation,
		},
	}, logger.Named("geocoding"))
	placesClient := places.NewClient(mapsClient, geocoder, logger.Named("places"))

	var gen assistant.Generator
	if cfg.AssistantEnabled() {
		gemini, err := assistant.NewGeminiGenerator(ctx, assistant.GeminiConfig{
			APIKey:  cfg.Assistant.APIKey,
			Model:   cfg.Assistant.Model,
			BaseURL: cfg.Assistant.BaseURL,
			Timeout: cfg.Assistant.Timeout,
		})
		if err != nil {
			logger.Warn("assistant disabled", zap.Error(err))
		} else {
			gen = gemini
		}
	}
	advisor := assistant.New(gen, logger.Named("assistant"))

	svc := guide.NewService(store, placesClient, advisor, geocoder, guide.Options{
		DefaultPostalCode: cfg.City.DefaultPostalCode,
		DefaultLocation:   cfg.City.DefaultLocation,
		RadiusMeters:      cfg.Maps.RadiusMeters,
	}, logger.Named("guide"))

	logger.Info("citybuddy started",
		zap.String("db", cfg.Storage.DBPath),
		zap.Bool("maps", placesClient.Enabled()),
		zap.Bool("assistant", advisor.Enabled()))

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		profiles: store,
		guide:    svc,
	}, nil
}

// Close releases the database and flushes the log
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}
