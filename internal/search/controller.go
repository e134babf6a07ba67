// Package search drives one forecast search through its states: loading,
// then either results or an error, rendered into an output region.
package search

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/html"

	"vedur/internal/geolocation"
	"vedur/internal/locations"
	"vedur/internal/types"
	"vedur/internal/view"
)

// Forecaster returns the forecast points for a coordinate
type Forecaster interface {
	GetForecast(ctx context.Context, coords types.Coords) ([]types.ForecastPoint, error)
}

// Renderer produces the fragments for each search state
type Renderer interface {
	Loading() *html.Node
	Results(location types.Location, points []types.ForecastPoint) *html.Node
	Error(err error) *html.Node
}

type Controller struct {
	forecaster Forecaster
	renderer   Renderer
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewController(forecaster Forecaster, renderer Renderer, logger *slog.Logger) *Controller {
	return &Controller{
		forecaster: forecaster,
		renderer:   renderer,
		logger:     logger.With("component", "search-controller"),
		tracer:     otel.Tracer("vedur/search"),
	}
}

// Search renders loading into region, fetches the forecast for location and
// renders the results or the failure. The returned error has already been
// rendered.
func (c *Controller) Search(ctx context.Context, region view.Region, location types.Location) error {
	ctx, span := c.tracer.Start(ctx, "search.Search", trace.WithAttributes(
		attribute.String("location", location.Title),
	))
	defer span.End()

	region.Replace(c.renderer.Loading())

	return c.fetch(ctx, span, region, location)
}

// SearchCurrentLocation searches for the position resolved by locator. When
// the capability is missing the error is rendered at once, without loading.
func (c *Controller) SearchCurrentLocation(ctx context.Context, region view.Region, locator geolocation.Locator) error {
	ctx, span := c.tracer.Start(ctx, "search.SearchCurrentLocation")
	defer span.End()

	if locator == nil || !locator.Supported() {
		return c.fail(span, region, geolocation.ErrUnsupported)
	}

	region.Replace(c.renderer.Loading())

	coords, err := locator.CurrentPosition(ctx)
	if err != nil {
		return c.fail(span, region, err)
	}

	return c.fetch(ctx, span, region, locations.Current(coords))
}

func (c *Controller) fetch(ctx context.Context, span trace.Span, region view.Region, location types.Location) error {
	points, err := c.forecaster.GetForecast(ctx, location.Coords())
	if err != nil {
		return c.fail(span, region, err)
	}

	span.SetAttributes(attribute.Int("points", len(points)))
	c.logger.Debug("search succeeded", "location", location.Title, "points", len(points))

	region.Replace(c.renderer.Results(location, points))
	return nil
}

func (c *Controller) fail(span trace.Span, region view.Region, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, "search failed")

	region.Replace(c.renderer.Error(err))
	return err
}
