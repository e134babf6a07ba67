package types

import "strconv"

type Temperature struct {
	Celsius    float64 `json:"celsius"`
	Fahrenheit float64 `json:"fahrenheit"`
}

func NewTemperatureFromCelsius(celsius float64) Temperature {
	return Temperature{
		Celsius:    celsius,
		Fahrenheit: celsius*9/5 + 32,
	}
}

// String formats the temperature in Celsius, e.g. "-1.5°C"
func (t Temperature) String() string {
	return strconv.FormatFloat(t.Celsius, 'f', -1, 64) + "°C"
}
