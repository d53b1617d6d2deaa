// Package geocoding resolves postal codes to coordinates through the Google Geocoding API
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// ErrNotConfigured is returned when no Maps API key is available
var ErrNotConfigured = errors.New("google maps api key not configured")

// Location represents a geocoded location
type Location struct {
	Latitude  float64
	Longitude float64
	Name      string
}

// Options controls the region suffix and the fallback used by ResolveCoordinates
type Options struct {
	Region            string
	DefaultPostalCode string
	Fallback          Location
}

// DefaultOptions returns downtown Toronto settings
func DefaultOptions() Options {
	return Options{
		Region:            "Toronto, ON, Canada",
		DefaultPostalCode: "M5H 2N2",
		Fallback: Location{
			Latitude:  43.6532,
			Longitude: -79.3832,
			Name:      "Downtown Toronto, ON",
		},
	}
}

// NewMapsClient builds a Maps web service client.
// baseURL may be empty to use the public endpoint.
func NewMapsClient(apiKey, baseURL string, timeout time.Duration) (*maps.Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}
	return client, nil
}

// Geocoder converts postal codes to coordinates
type Geocoder struct {
	client *maps.Client
	opts   Options
	memo   *cache.Cache
	logger *zap.Logger
}

// NewGeocoder creates a new geocoder. A nil client means no key is configured,
// in which case Geocode fails and ResolveCoordinates returns the fallback.
func NewGeocoder(client *maps.Client, opts Options, logger *zap.Logger) *Geocoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Geocoder{
		client: client,
		opts:   opts,
		memo:   cache.New(24*time.Hour, time.Hour),
		logger: logger,
	}
}

// Enabled reports whether a Maps client is configured
func (g *Geocoder) Enabled() bool {
	return g.client != nil
}

// Options returns the region and fallback settings
func (g *Geocoder) Options() Options {
	return g.opts
}

// Geocode looks up a postal code within the configured region.
// Transport errors, non-OK statuses and empty result sets are all errors.
func (g *Geocoder) Geocode(ctx context.Context, postalCode string) (*Location, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, fmt.Errorf("postal code cannot be empty")
	}
	if g.client == nil {
		return nil, ErrNotConfigured
	}

	query := g.query(postalCode)
	key := strings.ToUpper(query)
	if cached, found := g.memo.Get(key); found {
		loc := cached.(Location)
		return &loc, nil
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", query, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no results found for %q", query)
	}

	result := results[0]
	loc := Location{
		Latitude:  result.Geometry.Location.Lat,
		Longitude: result.Geometry.Location.Lng,
		Name:      result.FormattedAddress,
	}
	g.memo.Set(key, loc, cache.DefaultExpiration)

	return &loc, nil
}

// ResolveCoordinates is the best-effort form of Geocode.
// An empty postal code uses the default one; any failure returns the fallback location.
func (g *Geocoder) ResolveCoordinates(ctx context.Context, postalCode string) Location {
	if strings.TrimSpace(postalCode) == "" {
		postalCode = g.opts.DefaultPostalCode
	}

	loc, err := g.Geocode(ctx, postalCode)
	if err != nil {
		if !errors.Is(err, ErrNotConfigured) {
			g.logger.Warn("geocode failed, using default coordinates",
				zap.String("postal_code", postalCode),
				zap.Error(err))
		}
		return g.opts.Fallback
	}
	return *loc
}

func (g *Geocoder) query(postalCode string) string {
	if IsCanadianPostalCode(postalCode) {
		postalCode = NormalizePostalCode(postalCode)
	}
	if g.opts.Region == "" {
		return postalCode
	}
	return postalCode + ", " + g.opts.Region
}
