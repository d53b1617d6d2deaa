// Package places searches for nearby points of interest with the Google Places text search API
package places

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/ngmaloney/citybuddy/internal/models"
	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

const (
	// DefaultRadiusMeters is used when a search radius is not positive
	DefaultRadiusMeters = 2000
	// MaxResults is the number of candidates kept from a search, in API order
	MaxResults = 7
	// GeneralCategory labels results from a search without a category
	GeneralCategory = "general"
)

// Locator resolves a postal code to coordinates
type Locator interface {
	Geocode(ctx context.Context, postalCode string) (*geocoding.Location, error)
}

// Client performs nearby text searches
type Client struct {
	maps    *maps.Client
	locator Locator
	logger  *zap.Logger
}

// NewClient creates a place search client. A nil maps client disables searching.
func NewClient(mapsClient *maps.Client, locator Locator, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		maps:    mapsClient,
		locator: locator,
		logger:  logger,
	}
}

// Enabled reports whether searches can reach the API
func (c *Client) Enabled() bool {
	return c.maps != nil && c.locator != nil
}

// SearchNearby finds up to MaxResults places matching query around postalCode.
// It never fails: a missing key, a failed geocode or any API error yields an empty list.
func (c *Client) SearchNearby(ctx context.Context, query, postalCode, category string, radiusMeters int) []models.Recommendation {
	if !c.Enabled() {
		return []models.Recommendation{}
	}
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}

	origin, err := c.locator.Geocode(ctx, postalCode)
	if err != nil {
		c.logger.Warn("place search skipped, geocoding failed",
			zap.String("postal_code", postalCode),
			zap.Error(err))
		return []models.Recommendation{}
	}

	searchQuery := buildQuery(query, postalCode, category)
	resp, err := c.maps.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    searchQuery,
		Location: &maps.LatLng{Lat: origin.Latitude, Lng: origin.Longitude},
		Radius:   uint(radiusMeters),
	})
	if err != nil {
		c.logger.Warn("place search failed",
			zap.String("query", searchQuery),
			zap.Error(err))
		return []models.Recommendation{}
	}
	if len(resp.Results) == 0 {
		c.logger.Info("no places found", zap.String("query", searchQuery))
		return []models.Recommendation{}
	}

	if category == "" {
		category = GeneralCategory
	}

	results := resp.Results
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	recs := make([]models.Recommendation, 0, len(results))
	for _, place := range results {
		km := geocoding.HaversineKm(
			origin.Latitude, origin.Longitude,
			place.Geometry.Location.Lat, place.Geometry.Location.Lng,
		)

		address := place.FormattedAddress
		if address == "" {
			address = place.Vicinity
		}

		recs = append(recs, models.Recommendation{
			Name:        place.Name,
			Category:    category,
			Distance:    FormatDistance(km),
			Address:     address,
			Description: strings.Join(place.Types, ", "),
		})
	}

	c.logger.Debug("place search complete",
		zap.String("query", searchQuery),
		zap.Int("results", len(recs)))

	return recs
}

// FormatDistance renders kilometres as "350 m" below 1 km and "1.2 km" otherwise
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1f km", km)
}

func buildQuery(query, postalCode, category string) string {
	if category != "" {
		return fmt.Sprintf("%s %s near %s", query, category, postalCode)
	}
	return fmt.Sprintf("%s near %s", query, postalCode)
}
