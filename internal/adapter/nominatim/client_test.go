package nominatim

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserAgent     = "sun-chart-tests/0.1"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, testUserAgent, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Tokyo", r.URL.Query().Get("q"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "1", r.URL.Query().Get("namedetails"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		resp := []place{
			{
				Lat:         "35.6768601",
				Lon:         "139.7638947",
				DisplayName: "Tokyo, Japan",
				Address:     address{City: "Tokyo", State: "Tokyo", Country: "Japan"},
				NameDetails: map[string]string{
					"name":    "東京都",
					"name:en": "Tokyo",
					"name:ja": "東京都",
					"name:ar": "طوكيو",
				},
			},
			{
				Lat:         "35.0000",
				Lon:         "139.0000",
				DisplayName: "Tokyo, Some Prefecture, Japan",
				Address:     address{Municipality: "Nishitama", Country: "Japan"},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	locations, err := c.Search(context.Background(), "Tokyo")
	require.NoError(t, err)
	require.Len(t, locations, 2)

	first := locations[0]
	assert.Equal(t, "Tokyo", first.Name, "city wins the name preference chain")
	assert.Equal(t, 35.6768601, first.Lat)
	assert.Equal(t, 139.7638947, first.Lon)
	assert.Equal(t, "Japan", first.Country)
	assert.Equal(t, "東京都", first.LocalNames["default"])
	assert.Equal(t, "東京都", first.LocalNames["ja"])
	assert.Equal(t, "طوكيو", first.LocalNames["ar"])
	assert.Empty(t, first.Zone, "zone resolution is not the geocoder's job")

	assert.Equal(t, "Nishitama", locations[1].Name, "municipality is the last address fallback")
}

func TestClient_Search_NameFallsBackToDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := []place{
			{
				Lat:         "48.8588897",
				Lon:         "2.3200410",
				DisplayName: "Île-de-France, Metropolitan France, France",
				Address:     address{State: "Île-de-France", Country: "France"},
			},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	locations, err := c.Search(context.Background(), "ile de france")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "Île-de-France", locations[0].Name)
}

func TestClient_Search_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	locations, err := c.Search(context.Background(), "xyznonexistent99")
	require.NoError(t, err)
	assert.Empty(t, locations)
}

func TestClient_Search_SkipsMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := []place{
			{Lat: "not-a-number", Lon: "2.0", DisplayName: "Broken, Nowhere"},
			{Lat: "51.5073219", Lon: "-0.1276474", DisplayName: "London, England, United Kingdom", Address: address{City: "London"}},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	locations, err := c.Search(context.Background(), "london")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "London", locations[0].Name)
}

func TestClient_Search_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("Access blocked"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Search(context.Background(), "tokyo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestClient_Search_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testUserAgent, 50*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.Search(context.Background(), "tokyo")
	require.Error(t, err)
}

func TestClient_Reverse_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "51.507400", r.URL.Query().Get("lat"))
		assert.Equal(t, "-0.127800", r.URL.Query().Get("lon"))
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		resp := place{
			Lat:         "51.5073219",
			Lon:         "-0.1276474",
			DisplayName: "London, Greater London, England, United Kingdom",
			Address:     address{City: "London", State: "England", Country: "United Kingdom"},
			NameDetails: map[string]string{"name": "London", "name:ja": "ロンドン"},
		}
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	loc, err := c.Reverse(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)

	assert.Equal(t, "London", loc.Name)
	assert.Equal(t, 51.5073219, loc.Lat)
	assert.Equal(t, "United Kingdom", loc.Country)
	assert.Equal(t, "ロンドン", loc.LocalNames["ja"])
}

func TestClient_Reverse_NothingThere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	loc, err := c.Reverse(context.Background(), 0, -30)
	require.NoError(t, err, "open ocean is not a transport failure")
	assert.Empty(t, loc.Name)
}
