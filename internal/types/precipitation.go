package types

import "strconv"

const InchesToMm = 25.4

type Precipitation struct {
	Mm     float64 `json:"mm"`
	Inches float64 `json:"inches"`
}

func NewPrecipitationFromMm(amountInMm float64) Precipitation {
	return Precipitation{
		Mm:     amountInMm,
		Inches: amountInMm / InchesToMm,
	}
}

func (p Precipitation) String() string {
	return strconv.FormatFloat(p.Mm, 'f', -1, 64)
}
