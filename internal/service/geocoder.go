package service

import (
	"context"

	"github.com/weatherapp/backend/internal/domain"
)

// GeocodingClient looks up coordinates for free text
type GeocodingClient interface {
	Geocode(ctx context.Context, query string) ([]domain.GeoResult, error)
}

// Geocoder resolves a location string to its first geocoding match
type Geocoder struct {
	client GeocodingClient
}

// NewGeocoder creates a new geocoder
func NewGeocoder(client GeocodingClient) *Geocoder {
	return &Geocoder{client: client}
}

// Resolve returns the first match for text, domain.ErrLocationNotFound when
// there is none, or the upstream error unchanged
func (g *Geocoder) Resolve(ctx context.Context, text string) (domain.GeoResult, error) {
	matches, err := g.client.Geocode(ctx, text)
	if err != nil {
		return domain.GeoResult{}, err
	}
	if len(matches) == 0 {
		return domain.GeoResult{}, domain.ErrLocationNotFound
	}
	return matches[0], nil
}
