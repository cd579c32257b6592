package accuweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-risk-orchestrator/internal/domain"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const serviceName = "accuweather"

// Client fetches and normalizes AccuWeather forecasts. Free-tier API keys
// have a small daily quota, so outbound calls go through a client-side rate
// limiter, and a circuit breaker sheds load when the upstream misbehaves.
type Client struct {
	baseURL     string
	apiKey      string
	horizonDays int
	httpClient  *http.Client
	limiter     *rate.Limiter
	circuit     *gobreaker.CircuitBreaker
	logger      *slog.Logger
}

// NewClient constructs a forecast client for the given endpoint and key.
func NewClient(baseURL, apiKey string, horizonDays int, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		horizonDays: horizonDays,
		httpClient:  httpClient,
		limiter:     rate.NewLimiter(rate.Every(time.Second), 2),
		circuit: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        serviceName,
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger: logger,
	}
}

// HorizonDays is the number of future days the configured plan covers.
func (c *Client) HorizonDays() int { return c.horizonDays }

// DailyForecast fetches up to days daily forecasts for a location key and
// returns them normalized.
func (c *Client) DailyForecast(ctx context.Context, locationKey string, days int) ([]domain.DayForecast, error) {
	endpoint := fmt.Sprintf("%s/forecasts/v1/daily/%dday/%s", c.baseURL, days, url.PathEscape(locationKey))

	var payload DailyResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	normalized := NormalizeDaily(payload)
	c.logger.Debug("daily_forecast_fetched",
		slog.String("location_key", locationKey),
		slog.Int("days", len(normalized)))
	return normalized, nil
}

// HourlyForecast fetches the next 12 hourly forecasts for a location key.
func (c *Client) HourlyForecast(ctx context.Context, locationKey string) ([]domain.HourForecast, error) {
	endpoint := fmt.Sprintf("%s/forecasts/v1/hourly/12hour/%s", c.baseURL, url.PathEscape(locationKey))

	var payload []HourlyForecast
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	return NormalizeHourly(payload), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	values := url.Values{}
	values.Set("apikey", c.apiKey)
	values.Set("metric", "true")
	values.Set("details", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create forecast request: %w", err)
	}

	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &domain.NetworkError{
				Service:    serviceName,
				StatusCode: resp.StatusCode,
				Body:       strings.TrimSpace(string(body)),
			}
		}
		return body, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(result.([]byte), out); err != nil {
		return fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return nil
}

var _ domain.ForecastSource = (*Client)(nil)
