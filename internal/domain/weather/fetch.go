package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/weather-buddy/pkg/errors"
)

// Fetcher geocodes a place and averages its hourly forecast over a window.
type Fetcher struct {
	geocoder Geocoder
	forecast ForecastClient
	logger   *slog.Logger
	now      func() time.Time
}

// NewFetcher wires the forecast fetcher.
func NewFetcher(geocoder Geocoder, forecast ForecastClient, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		geocoder: geocoder,
		forecast: forecast,
		logger:   logger.With("component", "weather.fetcher"),
		now:      time.Now,
	}
}

type samples struct {
	temps []float64
	precs []float64
	codes []int
}

// Fetch returns an OK block or a not-OK block paired with a coded error:
// location_not_found, forecast_unavailable or transport_failure.
func (f *Fetcher) Fetch(ctx context.Context, location string, window TimeWindow) (ForecastBlock, error) {
	place, ok, err := f.geocoder.Geocode(ctx, location)
	if err != nil {
		return failedBlock("Could not fetch forecast data."),
			apperrors.Wrap(apperrors.CodeTransportFailure, "geocoding request failed", err)
	}
	if !ok {
		return failedBlock(fmt.Sprintf("Could not find location: %s", location)),
			apperrors.Wrap(apperrors.CodeLocationNotFound, "no geocoding result for "+location, nil)
	}

	from := f.now().UTC().Truncate(time.Hour).Add(time.Duration(window.StartHour) * time.Hour)
	to := from.Add(time.Duration(window.EndHour-window.StartHour) * time.Hour)

	series, err := f.forecast.Hourly(ctx, place.Latitude, place.Longitude, from, to)
	if err != nil {
		return failedBlock("Could not fetch forecast data."),
			apperrors.Wrap(apperrors.CodeTransportFailure, "forecast request failed", err)
	}
	if len(series.TemperatureC) == 0 || len(series.PrecipitationMM) == 0 {
		return failedBlock("Could not fetch forecast data."),
			apperrors.Wrap(apperrors.CodeForecastUnavailable, "forecast has no hourly data", nil)
	}

	picked := alignSamples(series, from, to)
	if len(picked.temps) == 0 {
		return failedBlock("Forecast data incomplete."),
			apperrors.Wrap(apperrors.CodeForecastUnavailable, "forecast has no samples in window", nil)
	}

	avgTemp, _ := mean(picked.temps)
	avgPrec, _ := mean(picked.precs)
	block := ForecastBlock{
		OK:           true,
		AvgTempC:     avgTemp,
		AvgPrecMM:    avgPrec,
		ResolvedName: firstNonEmpty(place.Name, location),
		Samples:      len(picked.temps),

		TemperaturesC:   picked.temps,
		PrecipitationMM: picked.precs,
	}
	if code, ok := dominantCode(picked.codes); ok {
		block.Condition = DescribeCondition(code)
	}
	f.logger.Info("forecast fetched", "location", location, "resolved", block.ResolvedName, "samples", block.Samples)
	return block, nil
}

// alignSamples keeps hours inside [from, to) where both temperature and
// precipitation are present. Series without timestamps are taken as-is.
func alignSamples(series HourlySeries, from, to time.Time) samples {
	n := min(len(series.TemperatureC), len(series.PrecipitationMM))
	var out samples
	for i := 0; i < n; i++ {
		if i < len(series.Times) {
			ts := series.Times[i]
			if ts.Before(from) || !ts.Before(to) {
				continue
			}
		}
		temp, prec := series.TemperatureC[i], series.PrecipitationMM[i]
		if temp == nil || prec == nil {
			continue
		}
		out.temps = append(out.temps, *temp)
		out.precs = append(out.precs, *prec)
		if i < len(series.WeatherCodes) && series.WeatherCodes[i] != nil {
			out.codes = append(out.codes, *series.WeatherCodes[i])
		}
	}
	return out
}

func failedBlock(message string) ForecastBlock {
	return ForecastBlock{OK: false, Error: message}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
