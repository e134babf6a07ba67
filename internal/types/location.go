package types

// Location is a named place a forecast can be requested for
type Location struct {
	Title     string  `json:"title" mapstructure:"title" validate:"required"`
	Latitude  float64 `json:"latitude" mapstructure:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" mapstructure:"longitude" validate:"gte=-180,lte=180"`
}

func NewLocation(title string, coords Coords) Location {
	return Location{
		Title:     title,
		Latitude:  coords.Latitude,
		Longitude: coords.Longitude,
	}
}

// Coords returns the coordinates of the location
func (l Location) Coords() Coords {
	return NewCoords(l.Latitude, l.Longitude)
}
