package main

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"vedur/internal/locations"
	"vedur/internal/types"
)

// LocationsOutput lists the catalog
type LocationsOutput struct {
	Body []locations.Entry
}

func (app *App) handleListLocations(ctx context.Context, input *struct{}) (*LocationsOutput, error) {
	return &LocationsOutput{Body: app.catalog.All()}, nil
}

// ForecastInput defines the query parameters for the forecast endpoint
type ForecastInput struct {
	Latitude  float64 `query:"latitude" required:"true" doc:"Latitude in decimal degrees, -90 to 90" example:"64.1355"`
	Longitude float64 `query:"longitude" required:"true" doc:"Longitude in decimal degrees, -180 to 180" example:"-21.8954"`
}

// ForecastOutput is the forecast for the current day at a coordinate
type ForecastOutput struct {
	Body struct {
		Latitude  float64               `json:"latitude"`
		Longitude float64               `json:"longitude"`
		Points    []types.ForecastPoint `json:"points" doc:"Hourly points in chronological order"`
	}
}

func (app *App) handleGetForecast(ctx context.Context, input *ForecastInput) (*ForecastOutput, error) {
	coords := types.NewCoords(input.Latitude, input.Longitude)
	if err := locations.ValidateCoords(coords); err != nil {
		return nil, huma.Error400BadRequest("invalid coordinates", err)
	}

	points, err := app.weatherService.GetForecast(ctx, coords)
	if err != nil {
		app.logger.Error("failed to get forecast",
			"latitude", input.Latitude,
			"longitude", input.Longitude,
			"error", err,
		)
		return nil, huma.Error502BadGateway("failed to fetch forecast", err)
	}

	resp := &ForecastOutput{}
	resp.Body.Latitude = coords.Latitude
	resp.Body.Longitude = coords.Longitude
	resp.Body.Points = points
	if resp.Body.Points == nil {
		resp.Body.Points = []types.ForecastPoint{}
	}
	return resp, nil
}
