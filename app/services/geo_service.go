package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// GeoLocation holds the geographical classification of an IP address
type GeoLocation struct {
	Continent   string `json:"continent"`
	CountryCode string `json:"country_code"`
}

// GeoService resolves an IP address to a coarse location.
// Lookups are best-effort: callers treat failures as missing data.
type GeoService interface {
	Lookup(ctx context.Context, ip string) (*GeoLocation, error)
}

// IPInfoGeoService implements GeoService against the ipinfo.io API
type IPInfoGeoService struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewIPInfoGeoService creates a new ipinfo.io-backed geo service
func NewIPInfoGeoService(baseURL, token string, timeout time.Duration) GeoService {
	if baseURL == "" {
		baseURL = "https://api.ipinfo.io/lite"
	}
	return &IPInfoGeoService{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ipinfoResponse struct {
	IP            string `json:"ip"`
	CountryCode   string `json:"country_code"`
	Country       string `json:"country"`
	ContinentCode string `json:"continent_code"`
	Continent     string `json:"continent"`
}

// Lookup queries ipinfo.io for the given address
func (s *IPInfoGeoService) Lookup(ctx context.Context, ip string) (*GeoLocation, error) {
	if ip == "" {
		return nil, fmt.Errorf("empty IP address")
	}

	endpoint := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(ip))
	if s.token != "" {
		endpoint += "?token=" + url.QueryEscape(s.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geo lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("geo lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode geo lookup response: %w", err)
	}

	return &GeoLocation{
		Continent:   parsed.Continent,
		CountryCode: parsed.CountryCode,
	}, nil
}

// MockGeoService implements GeoService for testing and development
type MockGeoService struct {
	mu        sync.Mutex
	Locations map[string]*GeoLocation
	Err       error
	Lookups   []string
}

// NewMockGeoService creates a mock geo service
func NewMockGeoService() *MockGeoService {
	return &MockGeoService{
		Locations: make(map[string]*GeoLocation),
	}
}

// Lookup returns the configured location for the IP, or the configured error
func (m *MockGeoService) Lookup(ctx context.Context, ip string) (*GeoLocation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Lookups = append(m.Lookups, ip)
	if m.Err != nil {
		return nil, m.Err
	}
	if loc, ok := m.Locations[ip]; ok {
		return loc, nil
	}
	return nil, fmt.Errorf("no location for IP %s", ip)
}
