package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weather-buddy/internal/domain/weather"
	"github.com/yanqian/weather-buddy/internal/infra/resilience"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	hourLayout          = "2006-01-02T15:04"
	candidateCount      = 10
)

// Client talks to the Open-Meteo geocoding and forecast APIs.
type Client struct {
	geocodingURL string
	forecastURL  string
	doer         *resilience.Doer
}

// NewClient builds an API client. Empty URLs fall back to the public endpoints.
func NewClient(geocodingURL, forecastURL string, doer *resilience.Doer) *Client {
	return &Client{
		geocodingURL: orDefault(geocodingURL, defaultGeocodingURL),
		forecastURL:  orDefault(forecastURL, defaultForecastURL),
		doer:         doer,
	}
}

// Geocode resolves a place name. A trailing ", XX" qualifier narrows the
// candidates by region or country.
func (c *Client) Geocode(ctx context.Context, name string) (weather.Place, bool, error) {
	query, qualifier := splitQualifier(name)
	if query == "" {
		return weather.Place{}, false, nil
	}
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(candidateCount))
	params.Set("language", "en")
	params.Set("format", "json")

	var raw geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"?"+params.Encode(), &raw); err != nil {
		return weather.Place{}, false, fmt.Errorf("geocode %q: %w", name, err)
	}
	result, ok := pickCandidate(raw.Results, qualifier)
	if !ok {
		return weather.Place{}, false, nil
	}
	return weather.Place{
		Name:      result.Name,
		Latitude:  result.Latitude,
		Longitude: result.Longitude,
		Country:   result.Country,
		Admin1:    result.Admin1,
	}, true, nil
}

// Hourly fetches temperature, precipitation and weather codes for [from, to).
func (c *Client) Hourly(ctx context.Context, lat, lon float64, from, to time.Time) (weather.HourlySeries, error) {
	from, to = from.UTC(), to.UTC()
	last := to.Add(-time.Hour)
	if last.Before(from) {
		last = from
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	params.Set("hourly", "temperature_2m,precipitation,weathercode")
	params.Set("timezone", "GMT")
	params.Set("start_hour", from.Format(hourLayout))
	params.Set("end_hour", last.Format(hourLayout))

	var raw forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &raw); err != nil {
		return weather.HourlySeries{}, fmt.Errorf("forecast: %w", err)
	}
	return normalizeHourly(raw.Hourly), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.doer.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resilience.StatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	Admin1      string  `json:"admin1"`
}

type forecastResponse struct {
	Hourly *hourlyBlock `json:"hourly"`
}

type hourlyBlock struct {
	Time          []string   `json:"time"`
	Temperature2m []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
	WeatherCode   []*int     `json:"weathercode"`
}

func normalizeHourly(block *hourlyBlock) weather.HourlySeries {
	if block == nil {
		return weather.HourlySeries{}
	}
	times := make([]time.Time, 0, len(block.Time))
	for _, raw := range block.Time {
		ts, err := time.ParseInLocation(hourLayout, raw, time.UTC)
		if err != nil {
			// an unparseable stamp would misalign every later sample
			return weather.HourlySeries{
				TemperatureC:    block.Temperature2m,
				PrecipitationMM: block.Precipitation,
				WeatherCodes:    block.WeatherCode,
			}
		}
		times = append(times, ts)
	}
	return weather.HourlySeries{
		Times:           times,
		TemperatureC:    block.Temperature2m,
		PrecipitationMM: block.Precipitation,
		WeatherCodes:    block.WeatherCode,
	}
}

func splitQualifier(name string) (string, string) {
	name = strings.TrimSpace(name)
	head, tail, found := strings.Cut(name, ",")
	if !found {
		return name, ""
	}
	return strings.TrimSpace(head), strings.TrimSpace(tail)
}

// pickCandidate returns the first result matching the qualifier, or the
// first result when nothing matches or there is no qualifier.
func pickCandidate(results []geocodingResult, qualifier string) (geocodingResult, bool) {
	if len(results) == 0 {
		return geocodingResult{}, false
	}
	if qualifier == "" {
		return results[0], true
	}
	region := qualifier
	if full, ok := usStates[strings.ToUpper(qualifier)]; ok {
		region = full
	}
	matchers := []func(geocodingResult) bool{
		func(r geocodingResult) bool { return strings.EqualFold(r.Admin1, region) },
		func(r geocodingResult) bool { return strings.EqualFold(r.Country, qualifier) },
		func(r geocodingResult) bool { return strings.EqualFold(r.CountryCode, qualifier) },
	}
	for _, match := range matchers {
		for _, r := range results {
			if match(r) {
				return r, true
			}
		}
	}
	return results[0], true
}

func orDefault(value, fallback string) string {
	if v := strings.TrimRight(strings.TrimSpace(value), "/"); v != "" {
		return v
	}
	return fallback
}
