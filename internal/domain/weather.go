package domain

// GeoResult is the first match returned by the geocoding endpoint
type GeoResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	State     string  `json:"state,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// CurrentConditions represents the weather right now at a location
type CurrentConditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// ForecastPoint is a single 3-hour forecast interval
type ForecastPoint struct {
	Timestamp   int64   `json:"dt"`
	Temperature float64 `json:"temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// AirQuality holds the air pollution index and pollutant concentrations
type AirQuality struct {
	AQI        int                `json:"aqi"`
	Label      string             `json:"label"`
	Components map[string]float64 `json:"components"`
}

// WeatherData is the merged response for one location lookup.
// It is built per request and never persisted.
type WeatherData struct {
	Location   GeoResult         `json:"location"`
	Current    CurrentConditions `json:"current"`
	Forecast   []ForecastPoint   `json:"forecast"`
	AirQuality AirQuality        `json:"airQuality"`
}

var aqiLabels = map[int]string{
	1: "Good",
	2: "Fair",
	3: "Moderate",
	4: "Poor",
	5: "Very Poor",
}

// AQILabel maps the 1-5 air quality index to a human readable label
func AQILabel(aqi int) string {
	if label, ok := aqiLabels[aqi]; ok {
		return label
	}
	return "Unknown"
}
