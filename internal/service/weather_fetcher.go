package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/weatherapp/backend/internal/domain"
)

// WeatherClient fetches the three weather payloads for a coordinate pair
type WeatherClient interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (domain.CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64) ([]domain.ForecastPoint, error)
	AirPollution(ctx context.Context, lat, lon float64) (domain.AirQuality, error)
}

// WeatherBundle holds the three upstream results of one fetch
type WeatherBundle struct {
	Current    domain.CurrentConditions
	Forecast   []domain.ForecastPoint
	AirQuality domain.AirQuality
}

// WeatherFetcher issues the current, forecast and air quality requests concurrently
type WeatherFetcher struct {
	client WeatherClient
}

// NewWeatherFetcher creates a new weather fetcher
func NewWeatherFetcher(client WeatherClient) *WeatherFetcher {
	return &WeatherFetcher{client: client}
}

// FetchAll runs all three upstream calls and waits for them. The first failure
// cancels the others and is returned; no partial bundle is ever returned.
func (f *WeatherFetcher) FetchAll(ctx context.Context, lat, lon float64) (WeatherBundle, error) {
	var (
		current  domain.CurrentConditions
		forecast []domain.ForecastPoint
		air      domain.AirQuality
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := f.client.CurrentWeather(gctx, lat, lon)
		if err != nil {
			return tagUpstream(domain.SourceCurrent, err)
		}
		current = c
		return nil
	})

	g.Go(func() error {
		fc, err := f.client.Forecast(gctx, lat, lon)
		if err != nil {
			return tagUpstream(domain.SourceForecast, err)
		}
		forecast = fc
		return nil
	})

	g.Go(func() error {
		a, err := f.client.AirPollution(gctx, lat, lon)
		if err != nil {
			return tagUpstream(domain.SourceAirQuality, err)
		}
		air = a
		return nil
	})

	if err := g.Wait(); err != nil {
		return WeatherBundle{}, err
	}

	return WeatherBundle{
		Current:    current,
		Forecast:   forecast,
		AirQuality: air,
	}, nil
}

// tagUpstream makes sure err carries the source that produced it
func tagUpstream(source string, err error) error {
	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		return err
	}
	return &domain.UpstreamError{Source: source, Err: err}
}
