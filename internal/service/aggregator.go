package service

import "github.com/weatherapp/backend/internal/domain"

// Aggregate merges the geocoded location and the three weather payloads
// into the response shape returned to clients
func Aggregate(
	geo domain.GeoResult,
	current domain.CurrentConditions,
	forecast []domain.ForecastPoint,
	air domain.AirQuality,
) domain.WeatherData {
	if forecast == nil {
		forecast = []domain.ForecastPoint{}
	}

	components := air.Components
	if components == nil {
		components = map[string]float64{}
	}

	return domain.WeatherData{
		Location: geo,
		Current:  current,
		Forecast: forecast,
		AirQuality: domain.AirQuality{
			AQI:        air.AQI,
			Label:      domain.AQILabel(air.AQI),
			Components: components,
		},
	}
}
