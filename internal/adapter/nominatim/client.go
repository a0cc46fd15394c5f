// Package nominatim implements the domain.Geocoder capability against the
// OpenStreetMap Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/sun-chart/internal/domain"
)

// searchLimit caps the number of candidates a forward search returns.
const searchLimit = 10

// Client calls the Nominatim HTTP API. Nominatim's usage policy requires a
// descriptive User-Agent identifying the application.
type Client struct {
	userAgent  string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a Nominatim client. baseURL should point at the public
// instance or a self-hosted one, without a trailing slash.
func NewClient(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		logger:     logger,
	}
}

// Search resolves a free-form place query to candidate locations, most
// relevant first. An empty slice means Nominatim knows no such place.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Location, error) {
	params := url.Values{
		"q":              {query},
		"format":         {"jsonv2"},
		"limit":          {strconv.Itoa(searchLimit)},
		"addressdetails": {"1"},
		"namedetails":    {"1"},
	}

	var places []place
	if err := c.doRequest(ctx, c.baseURL+"/search?"+params.Encode(), "search", &places); err != nil {
		return nil, err
	}

	locations := make([]domain.Location, 0, len(places))
	for _, p := range places {
		loc, ok := p.toLocation()
		if !ok {
			c.logger.Warn("skipping candidate with malformed coordinates",
				"display_name", p.DisplayName)
			continue
		}
		locations = append(locations, loc)
	}
	return locations, nil
}

// Reverse names the place at the given coordinates. A zero Location with a
// nil error means the coordinates resolve to no known place, such as open
// ocean.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (domain.Location, error) {
	params := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', 6, 64)},
		"lon":            {strconv.FormatFloat(lon, 'f', 6, 64)},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
		"namedetails":    {"1"},
	}

	var p place
	if err := c.doRequest(ctx, c.baseURL+"/reverse?"+params.Encode(), "reverse", &p); err != nil {
		return domain.Location{}, err
	}

	// Nominatim reports unresolvable coordinates in-band with HTTP 200.
	if p.Error != "" {
		c.logger.Debug("reverse geocode found nothing", "lat", lat, "lon", lon, "reason", p.Error)
		return domain.Location{}, nil
	}

	loc, ok := p.toLocation()
	if !ok {
		return domain.Location{}, nil
	}
	return loc, nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, operation string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("nominatim API error: status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

// place is the wire shape of a Nominatim jsonv2 result. Coordinates arrive
// as strings.
type place struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     address           `json:"address"`
	NameDetails map[string]string `json:"namedetails"`

	// Error is set on reverse lookups that resolve to nothing.
	Error string `json:"error"`
}

type address struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

func (p place) toLocation() (domain.Location, bool) {
	lat, latErr := strconv.ParseFloat(p.Lat, 64)
	lon, lonErr := strconv.ParseFloat(p.Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Location{}, false
	}
	return domain.Location{
		Name:       p.placeName(),
		Lat:        lat,
		Lon:        lon,
		Country:    p.Address.Country,
		State:      p.Address.State,
		LocalNames: localNames(p.NameDetails),
	}, true
}

// placeName picks the most specific settlement name present, falling back to
// the first segment of the display name.
func (p place) placeName() string {
	for _, name := range []string{p.Address.City, p.Address.Town, p.Address.Village, p.Address.Municipality} {
		if name != "" {
			return name
		}
	}
	if i := strings.IndexByte(p.DisplayName, ','); i > 0 {
		return p.DisplayName[:i]
	}
	return p.DisplayName
}

// localNames lowers a namedetails payload into ISO-language-keyed names. The
// bare "name" key becomes the "default" entry.
func localNames(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	names := make(map[string]string, len(details))
	for key, value := range details {
		if value == "" {
			continue
		}
		if key == "name" {
			names["default"] = value
			continue
		}
		if lang, ok := strings.CutPrefix(key, "name:"); ok && lang != "" {
			names[strings.ToLower(lang)] = value
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}
