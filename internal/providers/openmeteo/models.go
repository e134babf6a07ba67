package openmeteo

type ForecastAPIResponse struct {
	Latitude             float64     `json:"latitude"`
	Longitude            float64     `json:"longitude"`
	GenerationtimeMs     float64     `json:"generationtime_ms"`
	UtcOffsetSeconds     int         `json:"utc_offset_seconds"`
	Timezone             string      `json:"timezone"`
	TimezoneAbbreviation string      `json:"timezone_abbreviation"`
	Elevation            float64     `json:"elevation"`
	HourlyUnits          HourlyUnits `json:"hourly_units"`
	Hourly               Hourly      `json:"hourly"`
}

type HourlyUnits struct {
	Time          string `json:"time"`
	Temperature2M string `json:"temperature_2m"`
	Precipitation string `json:"precipitation"`
}

// Hourly holds the hourly series; Open-Meteo sends null for missing values
type Hourly struct {
	Time          []string   `json:"time"`
	Temperature2M []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
}

// ErrorAPIResponse is the body Open-Meteo returns with 4xx responses
type ErrorAPIResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
