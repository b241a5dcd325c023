package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/weatherapp/backend/internal/domain"
)

const (
	geocodePath      = "/geo/1.0/direct"
	currentPath      = "/data/2.5/weather"
	forecastPath     = "/data/2.5/forecast"
	airPollutionPath = "/data/2.5/air_pollution"

	// maxErrorBody caps how much of an upstream error body ends up in an error message
	maxErrorBody = 256
)

// OpenWeatherClient talks to the OpenWeatherMap HTTP APIs
type OpenWeatherClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherClient creates a new OpenWeatherMap client
func NewOpenWeatherClient(apiKey, baseURL string, timeout time.Duration) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *OpenWeatherClient) WithHTTPClient(httpClient *http.Client) *OpenWeatherClient {
	c.httpClient = httpClient
	return c
}

// geocodeResponse represents the /geo/1.0/direct response
type geocodeResponse []struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type conditionDTO struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// currentResponse represents the /data/2.5/weather response
type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []conditionDTO `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// forecastResponse represents the /data/2.5/forecast response
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []conditionDTO `json:"weather"`
	} `json:"list"`
}

// airPollutionResponse represents the /data/2.5/air_pollution response
type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

// Geocode resolves free text to at most one location match
func (c *OpenWeatherClient) Geocode(ctx context.Context, query string) ([]domain.GeoResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var resp geocodeResponse
	if err := c.get(ctx, domain.SourceGeocoding, geocodePath, params, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.GeoResult, 0, len(resp))
	for _, r := range resp {
		results = append(results, domain.GeoResult{
			Name:      r.Name,
			Country:   r.Country,
			State:     r.State,
			Latitude:  r.Lat,
			Longitude: r.Lon,
		})
	}
	return results, nil
}

// CurrentWeather fetches current conditions in metric units
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, lat, lon float64) (domain.CurrentConditions, error) {
	var resp currentResponse
	if err := c.get(ctx, domain.SourceCurrent, currentPath, coordParams(lat, lon), &resp); err != nil {
		return domain.CurrentConditions{}, err
	}

	if len(resp.Weather) == 0 {
		return domain.CurrentConditions{}, &domain.UpstreamError{
			Source: domain.SourceCurrent,
			Err:    errors.New("no weather conditions in response"),
		}
	}

	return domain.CurrentConditions{
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Description: resp.Weather[0].Description,
		Icon:        resp.Weather[0].Icon,
		Humidity:    resp.Main.Humidity,
		WindSpeed:   resp.Wind.Speed,
	}, nil
}

// Forecast fetches the 3-hour interval forecast in metric units, preserving upstream order
func (c *OpenWeatherClient) Forecast(ctx context.Context, lat, lon float64) ([]domain.ForecastPoint, error) {
	var resp forecastResponse
	if err := c.get(ctx, domain.SourceForecast, forecastPath, coordParams(lat, lon), &resp); err != nil {
		return nil, err
	}

	points := make([]domain.ForecastPoint, 0, len(resp.List))
	for i, item := range resp.List {
		if len(item.Weather) == 0 {
			return nil, &domain.UpstreamError{
				Source: domain.SourceForecast,
				Err:    fmt.Errorf("forecast entry %d has no weather conditions", i),
			}
		}
		points = append(points, domain.ForecastPoint{
			Timestamp:   item.Dt,
			Temperature: item.Main.Temp,
			Description: item.Weather[0].Description,
			Icon:        item.Weather[0].Icon,
		})
	}
	return points, nil
}

// AirPollution fetches the current air quality reading. The label is left empty.
func (c *OpenWeatherClient) AirPollution(ctx context.Context, lat, lon float64) (domain.AirQuality, error) {
	var resp airPollutionResponse
	if err := c.get(ctx, domain.SourceAirQuality, airPollutionPath, coordParams(lat, lon), &resp); err != nil {
		return domain.AirQuality{}, err
	}

	if len(resp.List) == 0 {
		return domain.AirQuality{}, &domain.UpstreamError{
			Source: domain.SourceAirQuality,
			Err:    errors.New("no air quality readings in response"),
		}
	}

	components := resp.List[0].Components
	if components == nil {
		components = map[string]float64{}
	}

	return domain.AirQuality{
		AQI:        resp.List[0].Main.AQI,
		Components: components,
	}, nil
}

func coordParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("units", "metric")
	return params
}

// get performs a GET against the provider and decodes the JSON body into out.
// Every failure is reported as *domain.UpstreamError tagged with source.
func (c *OpenWeatherClient) get(ctx context.Context, source, path string, params url.Values, out interface{}) error {
	params.Set("appid", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return &domain.UpstreamError{Source: source, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Source: source, Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{Source: source, Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &domain.UpstreamError{Source: source, Status: resp.StatusCode, Err: fmt.Errorf("API error: %s", string(body))}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{Source: source, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}
