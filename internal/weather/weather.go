package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vedur/internal/config"
	"vedur/internal/providers/openmeteo"
	"vedur/internal/timezone"
	"vedur/internal/types"
)

var (
	// ErrFetchFailed wraps every failure to obtain a forecast
	ErrFetchFailed = errors.New("could not fetch forecast")

	// ErrUnexpectedResponse marks provider data that cannot be mapped
	ErrUnexpectedResponse = errors.New("unexpected forecast response")
)

type ForecastProvider interface {
	// GetForecast fetches the weather forecast for the given latitude, longitude and timezone
	GetForecast(ctx context.Context, latitude, longitude float64, forecastDays int, timezone string) (*openmeteo.ForecastAPIResponse, error)
}

// Service returns the forecast for the current day at a coordinate
type Service interface {
	GetForecast(ctx context.Context, coords types.Coords) ([]types.ForecastPoint, error)
}

type weatherService struct {
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	cfg              *config.Config
	logger           *slog.Logger
}

func NewWeatherService(cfg *config.Config, logger *slog.Logger) (Service, error) {
	tzSvc, err := timezone.NewService()
	if err != nil {
		return nil, fmt.Errorf("failed to create timezone service: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.Forecast.Timeout}
	client := openmeteo.NewForecastClient(httpClient, cfg.Forecast.BaseURL, logger)

	return NewWeatherServiceWithProvider(client, tzSvc, cfg, logger), nil
}

func NewWeatherServiceWithProvider(
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	cfg *config.Config,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		cfg:              cfg,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) GetForecast(ctx context.Context, coords types.Coords) ([]types.ForecastPoint, error) {
	forecastDays := s.cfg.App.ForecastDays
	if forecastDays <= 0 {
		forecastDays = 1
	}

	// "Today" is the location's local day
	tz, _ := timezone.Resolve(s.timezoneService, coords.Latitude, coords.Longitude)

	s.logger.Debug("determined timezone for location",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"timezone", tz,
	)

	apiResponse, err := s.forecastProvider.GetForecast(ctx, coords.Latitude, coords.Longitude, forecastDays, tz)
	if err != nil {
		s.logger.Error("failed to get forecast from provider", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	points, err := mapForecastAPIResponseToPoints(apiResponse)
	if err != nil {
		s.logger.Error("failed to map forecast response", "timezone", tz, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return points, nil
}

// mapForecastAPIResponseToPoints converts the hourly arrays into forecast
// points, keeping the provider's order.
func mapForecastAPIResponseToPoints(apiResponse *openmeteo.ForecastAPIResponse) ([]types.ForecastPoint, error) {
	if apiResponse == nil {
		return nil, fmt.Errorf("%w: empty response", ErrUnexpectedResponse)
	}

	hourly := apiResponse.Hourly
	if len(hourly.Temperature2M) != len(hourly.Time) || len(hourly.Precipitation) != len(hourly.Time) {
		return nil, fmt.Errorf("%w: %d times, %d temperatures, %d precipitation values",
			ErrUnexpectedResponse, len(hourly.Time), len(hourly.Temperature2M), len(hourly.Precipitation))
	}

	location := time.UTC
	if apiResponse.Timezone != "" {
		loc, err := time.LoadLocation(apiResponse.Timezone)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrUnexpectedResponse, apiResponse.Timezone)
		}
		location = loc
	}

	points := make([]types.ForecastPoint, 0, len(hourly.Time))
	for i, ts := range hourly.Time {
		t, err := time.ParseInLocation(openmeteo.TimeLayout, ts, location)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid time %q", ErrUnexpectedResponse, ts)
		}

		temperature, precipitation := hourly.Temperature2M[i], hourly.Precipitation[i]
		if temperature == nil || precipitation == nil {
			return nil, fmt.Errorf("%w: missing value at %s", ErrUnexpectedResponse, ts)
		}

		points = append(points, types.ForecastPoint{
			Time:          t,
			Temperature:   types.NewTemperatureFromCelsius(*temperature),
			Precipitation: types.NewPrecipitationFromMm(*precipitation),
		})
	}

	return points, nil
}
