package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/weatherapp/backend/internal/domain"
)

// recordTimeout bounds the recent-search write, which outlives request cancellation
const recordTimeout = 5 * time.Second

// WeatherService runs one weather lookup: validate, geocode, fetch, aggregate,
// and record the search for the user
type WeatherService struct {
	geocoder *Geocoder
	fetcher  *WeatherFetcher
	searches *RecentSearchStore
}

// NewWeatherService creates a new weather service
func NewWeatherService(geocoder *Geocoder, fetcher *WeatherFetcher, searches *RecentSearchStore) *WeatherService {
	return &WeatherService{
		geocoder: geocoder,
		fetcher:  fetcher,
		searches: searches,
	}
}

// Lookup returns aggregated weather for location on behalf of userID.
// Errors are domain.ErrMissingParameter, domain.ErrLocationNotFound or a
// wrapped *domain.UpstreamError. Failing to record the search is logged only.
func (s *WeatherService) Lookup(ctx context.Context, userID, location string) (domain.WeatherData, error) {
	if strings.TrimSpace(location) == "" {
		return domain.WeatherData{}, domain.ErrMissingParameter
	}

	geo, err := s.geocoder.Resolve(ctx, location)
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather: failed to geocode %q: %w", location, err)
	}
	log.Printf("Location found: %s, %s, %s (%f, %f)", geo.Name, geo.State, geo.Country, geo.Latitude, geo.Longitude)

	// The search is recorded alongside the fetch; its outcome never affects the response
	var wg sync.WaitGroup
	if userID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
			defer cancel()
			if _, err := s.searches.RecordSearch(recCtx, userID, location); err != nil {
				log.Printf("Failed to record search for user %s: %v", userID, err)
			}
		}()
	}

	bundle, err := s.fetcher.FetchAll(ctx, geo.Latitude, geo.Longitude)
	wg.Wait()
	if err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather: failed to fetch weather: %w", err)
	}

	return Aggregate(geo, bundle.Current, bundle.Forecast, bundle.AirQuality), nil
}
