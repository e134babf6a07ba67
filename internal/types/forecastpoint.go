package types

import "time"

// ForecastPoint is one forecast value for a location at a point in time
type ForecastPoint struct {
	Time          time.Time     `json:"time"`
	Temperature   Temperature   `json:"temperature"`
	Precipitation Precipitation `json:"precipitation"`
}
