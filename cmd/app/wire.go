//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-buddy/internal/bootstrap"
	"github.com/yanqian/weather-buddy/internal/domain/weather"
	"github.com/yanqian/weather-buddy/internal/infra/config"
	"github.com/yanqian/weather-buddy/internal/infra/openmeteo"
	"github.com/yanqian/weather-buddy/internal/interface/cli"
	httpiface "github.com/yanqian/weather-buddy/internal/interface/http"
	"github.com/yanqian/weather-buddy/pkg/logger"
)

var weatherSet = wire.NewSet(
	provideWeatherConfig,
	provideGenerator,
	provideTextGenerator,
	provideRecognizer,
	provideDateParser,
	provideExtractor,
	provideOpenMeteoClient,
	wire.Bind(new(weather.Geocoder), new(*openmeteo.Client)),
	wire.Bind(new(weather.ForecastClient), new(*openmeteo.Client)),
	weather.NewWindowResolver,
	weather.NewIntentAssembler,
	provideReasoningAssembler,
	weather.NewFetcher,
	weather.NewService,
)

var directorySet = wire.NewSet(
	provideDirectoryConfig,
	providePlacesSearcher,
	provideDirectoryService,
)

func initializeServer() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		weatherSet,
		directorySet,
		provideLimiter,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}

func initializeChat() (*cli.Chat, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		weatherSet,
		directorySet,
		cli.NewChat,
	)
	return nil, nil, nil
}

func initializeEvaluation() (*evalJob, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		weatherSet,
		provideRunner,
		providePublishers,
		newEvalJob,
	)
	return nil, nil, nil
}
