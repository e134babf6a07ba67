package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// API Docs: https://open-meteo.com/en/docs
// Sample request: https://api.open-meteo.com/v1/forecast?latitude=64.1355&longitude=-21.8954&hourly=temperature_2m,precipitation&timezone=Atlantic%2FReykjavik&forecast_days=1&timeformat=iso8601&temperature_unit=celsius&precipitation_unit=mm
const (
	BaseForecastURL = "https://api.open-meteo.com/v1/forecast"

	// TimeLayout is the layout of hourly timestamps with timeformat=iso8601
	TimeLayout = "2006-01-02T15:04"
)

type ForecastClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewForecastClient creates a client for the Open-Meteo forecast API.
// An empty baseURL selects the public endpoint.
func NewForecastClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *ForecastClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if baseURL == "" {
		baseURL = BaseForecastURL
	}
	return &ForecastClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger.With("component", "openmeteo-client"),
		tracer:     otel.Tracer("vedur/openmeteo"),
	}
}

// GetForecast fetches the hourly temperature and precipitation forecast for
// the given coordinates. Hourly times are local to timezone.
func (c *ForecastClient) GetForecast(ctx context.Context, latitude, longitude float64, forecastDays int, timezone string) (_ *ForecastAPIResponse, err error) {
	ctx, span := c.tracer.Start(ctx, "openmeteo.GetForecast", trace.WithAttributes(
		attribute.Float64("latitude", latitude),
		attribute.Float64("longitude", longitude),
		attribute.Int("forecast_days", forecastDays),
		attribute.String("timezone", timezone),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "forecast request failed")
		}
		span.End()
	}()

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	hourlyVars := []string{
		"temperature_2m",
		"precipitation",
	}

	q := u.Query()
	q.Set("latitude", fmt.Sprintf("%f", latitude))
	q.Set("longitude", fmt.Sprintf("%f", longitude))
	q.Set("hourly", strings.Join(hourlyVars, ","))
	q.Set("timezone", timezone)
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	q.Set("timeformat", "iso8601")
	q.Set("temperature_unit", "celsius")
	q.Set("precipitation_unit", "mm")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("requesting forecast", "url", u.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiErr ErrorAPIResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, apiErr.Reason)
		}
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp ForecastAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &apiResp, nil
}
