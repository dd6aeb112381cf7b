package holiday

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchHolidays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		fmt.Fprint(w, `[
			{"date":"2024-01-01","name":"Tahun Baru 2024 Masehi","is_national_holiday":true},
			{"date":"2024-02-08","holiday_name":"Isra Mikraj Nabi Muhammad SAW"},
			{"date":"2024-02-10","name":""}
		]`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	entries, err := client.FetchHolidays(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "2024-01-01", entries[0].Date)
	assert.Equal(t, "Tahun Baru 2024 Masehi", entries[0].Name)
	assert.True(t, entries[0].IsNationalHoliday)

	// Falls back to holiday_name, then to a generic label
	assert.Equal(t, "Isra Mikraj Nabi Muhammad SAW", entries[1].Name)
	assert.Equal(t, "Hari Libur", entries[2].Name)
}

func TestClient_FetchHolidays_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.FetchHolidays(context.Background(), 2024)
	assert.Error(t, err)
}

type fakeProvider struct {
	calls   int
	entries []Entry
	err     error
}

func (f *fakeProvider) FetchHolidays(ctx context.Context, year int) ([]Entry, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func TestCache_ForYear_Memoizes(t *testing.T) {
	provider := &fakeProvider{entries: []Entry{{Date: "2024-01-01", Name: "Tahun Baru"}}}
	cache := NewCache(provider, time.Hour)

	first := cache.ForYear(context.Background(), 2024)
	second := cache.ForYear(context.Background(), 2024)

	assert.Equal(t, 1, provider.calls)
	assert.Equal(t, first, second)
	require.Len(t, first, 1)
	assert.Equal(t, "Tahun Baru", first[0].Name)
}

func TestCache_ForYear_DegradesOnFailure(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	cache := NewCache(provider, time.Hour)

	entries := cache.ForYear(context.Background(), 2024)
	assert.Empty(t, entries)
}

func TestCache_ForYear_ServesStaleOnFailure(t *testing.T) {
	provider := &fakeProvider{entries: []Entry{{Date: "2024-01-01", Name: "Tahun Baru"}}}
	cache := NewCache(provider, time.Nanosecond)

	cache.ForYear(context.Background(), 2024)
	time.Sleep(time.Millisecond)

	provider.err = errors.New("connection refused")
	entries := cache.ForYear(context.Background(), 2024)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tahun Baru", entries[0].Name)
}

func TestCache_ForRange_SpansYears(t *testing.T) {
	provider := &fakeProvider{entries: []Entry{{Date: "2024-12-25", Name: "Natal"}}}
	cache := NewCache(provider, time.Hour)

	start := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)
	entries := cache.ForRange(context.Background(), start, end)

	assert.Equal(t, 2, provider.calls)
	assert.Len(t, entries, 2)
}

func TestCache_Refresh(t *testing.T) {
	provider := &fakeProvider{entries: []Entry{{Date: "2024-01-01", Name: "Tahun Baru"}}}
	cache := NewCache(provider, time.Hour)

	require.NoError(t, cache.Refresh(context.Background(), 2024))
	assert.Equal(t, 1, provider.calls)

	// Refresh bypasses the TTL
	require.NoError(t, cache.Refresh(context.Background(), 2024))
	assert.Equal(t, 2, provider.calls)

	provider.err = errors.New("boom")
	assert.Error(t, cache.Refresh(context.Background(), 2024))
}
