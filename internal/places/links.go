package places

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	googleMapsBase    = "https://www.google.com/maps"
	openStreetMapBase = "https://www.openstreetmap.org"
	defaultZoom       = 13
)

// SearchURL opens a Google Maps search for query near postalCode. No key is needed.
func SearchURL(query, postalCode string) string {
	return googleMapsBase + "/search/?api=1&query=" + encode(query+" near "+postalCode)
}

// DirectionsURL opens Google Maps directions between two free-form locations
func DirectionsURL(from, to string) string {
	return fmt.Sprintf("%s/dir/?api=1&origin=%s&destination=%s", googleMapsBase, encode(from), encode(to))
}

// OpenStreetMapURL opens an OpenStreetMap search for postalCode
func OpenStreetMapURL(postalCode string) string {
	return openStreetMapBase + "/search?query=" + encode(postalCode)
}

// OpenStreetMapEmbedURL returns an embeddable map with a marker at lat,lng
func OpenStreetMapEmbedURL(lat, lng float64) string {
	return fmt.Sprintf("%s/export/embed.html?bbox=%s,%s,%s,%s&layer=mapnik&marker=%s,%s",
		openStreetMapBase,
		coord(lng-0.01), coord(lat-0.01), coord(lng+0.01), coord(lat+0.01),
		coord(lat), coord(lng))
}

// EmbedURL returns a Google Maps embed for postalCode, or the OpenStreetMap
// search page when apiKey is empty. A zoom of zero uses 13.
func EmbedURL(apiKey, postalCode string, zoom int) string {
	if apiKey == "" {
		return OpenStreetMapURL(postalCode)
	}
	if zoom <= 0 {
		zoom = defaultZoom
	}
	return fmt.Sprintf("%s/embed/v1/place?key=%s&q=%s&zoom=%d", googleMapsBase, apiKey, encode(postalCode), zoom)
}

// encode percent-encodes s for a query value, with %20 for spaces
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func coord(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e6)/1e6, 'f', -1, 64)
}
