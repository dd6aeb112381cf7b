package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Entry is one national holiday as published by the calendar provider.
type Entry struct {
	Date              string `json:"date"` // "2006-01-02"
	Name              string `json:"name"`
	IsNationalHoliday bool   `json:"is_national_holiday"`
}

// Provider fetches the holiday calendar for one year.
type Provider interface {
	FetchHolidays(ctx context.Context, year int) ([]Entry, error)
}

// Client talks to the libur.deno.dev national holiday API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type apiHoliday struct {
	Date              string `json:"date"`
	Name              string `json:"name"`
	HolidayName       string `json:"holiday_name"`
	IsNationalHoliday *bool  `json:"is_national_holiday"`
}

// FetchHolidays implements Provider.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]Entry, error) {
	url := fmt.Sprintf("%s/api?year=%d", c.baseURL, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d for year %d", resp.StatusCode, year)
	}

	var raw []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		name := item.Name
		if name == "" {
			name = item.HolidayName
		}
		if name == "" {
			name = "Hari Libur"
		}
		national := true
		if item.IsNationalHoliday != nil {
			national = *item.IsNationalHoliday
		}
		entries = append(entries, Entry{
			Date:              item.Date,
			Name:              name,
			IsNationalHoliday: national,
		})
	}

	return entries, nil
}
