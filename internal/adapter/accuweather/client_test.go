package accuweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"travel-risk-orchestrator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DailyForecast(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(dailyFixture))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5, srv.Client(), nil)

	days, err := client.DailyForecast(context.Background(), "323091", 5)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-10", days[0].Date)

	assert.Equal(t, "/forecasts/v1/daily/5day/323091", gotPath)
	assert.Contains(t, gotQuery, "apikey=test-key")
	assert.Contains(t, gotQuery, "metric=true")
	assert.Contains(t, gotQuery, "details=true")
}

func TestClient_DailyForecast_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("quota exceeded"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5, srv.Client(), nil)

	_, err := client.DailyForecast(context.Background(), "323091", 5)
	var netErr *domain.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, "accuweather", netErr.Service)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
	assert.Equal(t, "quota exceeded", netErr.Body)
}

func TestClient_HourlyForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecasts/v1/hourly/12hour/323091", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"DateTime": "2024-01-10T14:00:00+04:00", "Temperature": {"Value": 20, "Unit": "C"}}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", 5, srv.Client(), nil)

	hours, err := client.HourlyForecast(context.Background(), "323091")
	require.NoError(t, err)
	require.Len(t, hours, 1)
	require.NotNil(t, hours[0].TempC)
	assert.Equal(t, 20.0, *hours[0].TempC)
}

func TestClient_HorizonDays(t *testing.T) {
	client := NewClient("http://example.invalid", "k", 10, nil, nil)
	assert.Equal(t, 10, client.HorizonDays())
}
