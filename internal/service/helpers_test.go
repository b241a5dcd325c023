package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/weatherapp/backend/internal/domain"
	"github.com/weatherapp/backend/internal/repository/postgres"
)

const testBaseURL = "https://api.test"

const (
	geocodeRoute  = "GET " + testBaseURL + geocodePath
	currentRoute  = "GET " + testBaseURL + currentPath
	forecastRoute = "GET " + testBaseURL + forecastPath
	airRoute      = "GET " + testBaseURL + airPollutionPath
)

// newMockClient returns a client whose requests go through a fresh mock transport
func newMockClient(t *testing.T) (*OpenWeatherClient, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	client := NewOpenWeatherClient("test-api-key", testBaseURL, 5*time.Second).
		WithHTTPClient(&http.Client{Transport: transport})
	return client, transport
}

// registerJSON registers a fixed JSON responder on route ("METHOD URL")
func registerJSON(transport *httpmock.MockTransport, route string, status int, body string) {
	method, url, _ := strings.Cut(route, " ")
	transport.RegisterResponder(method, url, httpmock.NewStringResponder(status, body))
}

// registerAllSuccess wires the four endpoints with the Nairobi fixtures
func registerAllSuccess(transport *httpmock.MockTransport) {
	registerJSON(transport, geocodeRoute, http.StatusOK, nairobiGeocodeResponse)
	registerJSON(transport, currentRoute, http.StatusOK, currentWeatherResponse)
	registerJSON(transport, forecastRoute, http.StatusOK, forecastResponseJSON)
	registerJSON(transport, airRoute, http.StatusOK, airPollutionResponseJSON)
}

// newTestStack wires a WeatherService over a mock transport and a memory repository
func newTestStack(t *testing.T, repo UserRepository) (*WeatherService, *httpmock.MockTransport) {
	t.Helper()
	client, transport := newMockClient(t)
	svc := NewWeatherService(
		NewGeocoder(client),
		NewWeatherFetcher(client),
		NewRecentSearchStore(repo),
	)
	return svc, transport
}

func createTestUser(t *testing.T, repo *postgres.MemoryRepository) domain.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), domain.User{
		Username:     "amina",
		Email:        "amina@example.com",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// failingSearchRepo is a memory repository whose recent-search writes always fail
type failingSearchRepo struct {
	*postgres.MemoryRepository
}

func (r failingSearchRepo) UpdateRecentSearches(ctx context.Context, userID string, fn func([]string) []string) ([]string, error) {
	return nil, errors.New("database is down")
}

const nairobiGeocodeResponse = `[
  {"name": "Nairobi", "lat": -1.28, "lon": 36.82, "country": "KE", "state": "Nairobi County"}
]`

const currentWeatherResponse = `{
  "coord": {"lon": 36.82, "lat": -1.28},
  "weather": [{"id": 802, "main": "Clouds", "description": "scattered clouds", "icon": "03d"}],
  "main": {"temp": 21.4, "feels_like": 21.1, "temp_min": 20.0, "temp_max": 22.0, "pressure": 1018, "humidity": 60},
  "wind": {"speed": 4.1, "deg": 90},
  "name": "Nairobi",
  "sys": {"country": "KE"}
}`

const forecastResponseJSON = `{
  "cod": "200",
  "cnt": 3,
  "list": [
    {"dt": 1700000000, "main": {"temp": 20.1}, "weather": [{"description": "light rain", "icon": "10d"}]},
    {"dt": 1700010800, "main": {"temp": 18.7}, "weather": [{"description": "overcast clouds", "icon": "04n"}]},
    {"dt": 1700021600, "main": {"temp": 16.2}, "weather": [{"description": "clear sky", "icon": "01n"}]}
  ]
}`

const airPollutionResponseJSON = `{
  "coord": {"lon": 36.82, "lat": -1.28},
  "list": [
    {
      "main": {"aqi": 2},
      "components": {"co": 201.94, "no2": 0.77, "o3": 68.66, "pm2_5": 3.2, "pm10": 5.1},
      "dt": 1700000000
    }
  ]
}`
