package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Nominatim implements the Geocoder interface against a Nominatim search
// endpoint (the public OpenStreetMap instance by default).
type Nominatim struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewNominatim creates a new Nominatim Geocoder instance
func NewNominatim(baseURL string) *Nominatim {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}

	return &Nominatim{
		baseURL:   baseURL,
		userAgent: "gigscout/1.0",
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up a place label such as "Oakland, CA"
func (n *Nominatim) Resolve(place string) (Coordinate, bool, error) {
	if place == "" {
		return Coordinate{}, false, nil
	}

	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", n.baseURL, query.Encode())
	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("calling nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinate{}, false, fmt.Errorf("nominatim error (status %d)", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Coordinate{}, false, fmt.Errorf("decoding response: %w", err)
	}

	if len(results) == 0 {
		return Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinate{}, false, fmt.Errorf("parsing longitude: %w", err)
	}

	return Coordinate{Lat: lat, Lon: lon}, true, nil
}

// Close closes the geocoder (no-op for HTTP client)
func (n *Nominatim) Close() error {
	return nil
}
