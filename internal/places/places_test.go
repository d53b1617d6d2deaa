package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ngmaloney/citybuddy/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const geocodeOK = `{"status":"OK","results":[{"geometry":{"location":{"lat":43.6532,"lng":-79.3832}}}]}`

type mapsStub struct {
	geocodeBody  string
	searchBody   string
	searchCalls  int32
	searchParams chan map[string]string
}

func (s *mapsStub) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/maps/api/geocode/json":
			fmt.Fprint(w, s.geocodeBody)
		case "/maps/api/place/textsearch/json":
			atomic.AddInt32(&s.searchCalls, 1)
			if s.searchParams != nil {
				q := r.URL.Query()
				s.searchParams <- map[string]string{
					"query":    q.Get("query"),
					"location": q.Get("location"),
					"radius":   q.Get("radius"),
				}
			}
			fmt.Fprint(w, s.searchBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newTestSearch(t *testing.T, stub *mapsStub) *Client {
	t.Helper()
	server := httptest.NewServer(stub.handler(t))
	t.Cleanup(server.Close)

	mapsClient, err := geocoding.NewMapsClient("test-key", server.URL, 5*time.Second)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	geocoder := geocoding.NewGeocoder(mapsClient, geocoding.DefaultOptions(), logger)
	return NewClient(mapsClient, geocoder, logger)
}

func TestSearchNearby(t *testing.T) {
	stub := &mapsStub{
		geocodeBody: geocodeOK,
		searchBody: `{"status":"OK","results":[
			{"name":"Close Cafe","formatted_address":"1 King St W, Toronto","types":["cafe","food"],"geometry":{"location":{"lat":43.6540,"lng":-79.3832}}},
			{"name":"Far Diner","vicinity":"Queen St E","types":["restaurant"],"geometry":{"location":{"lat":43.6712,"lng":-79.3832}}}
		]}`,
		searchParams: make(chan map[string]string, 1),
	}
	c := newTestSearch(t, stub)

	recs := c.SearchNearby(context.Background(), "best", "M5H 2N2", "food", 0)
	require.Len(t, recs, 2)

	params := <-stub.searchParams
	assert.Equal(t, "best food near M5H 2N2", params["query"])
	assert.Equal(t, "2000", params["radius"])
	assert.True(t, strings.HasPrefix(params["location"], "43.6532,"), "location = %s", params["location"])

	assert.Equal(t, "Close Cafe", recs[0].Name)
	assert.Equal(t, "food", recs[0].Category)
	assert.Equal(t, "89 m", recs[0].Distance)
	assert.Equal(t, "1 King St W, Toronto", recs[0].Address)
	assert.Equal(t, "cafe, food", recs[0].Description)

	assert.Equal(t, "2.0 km", recs[1].Distance)
	assert.Equal(t, "Queen St E", recs[1].Address)
}

func TestSearchNearby_CapsResultsAndDefaultsCategory(t *testing.T) {
	var results []string
	for i := 0; i < 10; i++ {
		results = append(results, fmt.Sprintf(`{"name":"Place %d","geometry":{"location":{"lat":43.66,"lng":-79.38}}}`, i))
	}
	stub := &mapsStub{
		geocodeBody:  geocodeOK,
		searchBody:   `{"status":"OK","results":[` + strings.Join(results, ",") + `]}`,
		searchParams: make(chan map[string]string, 1),
	}
	c := newTestSearch(t, stub)

	recs := c.SearchNearby(context.Background(), "coffee", "M5H 2N2", "", 500)
	require.Len(t, recs, MaxResults)

	params := <-stub.searchParams
	assert.Equal(t, "coffee near M5H 2N2", params["query"])
	assert.Equal(t, "500", params["radius"])

	for i, r := range recs {
		assert.Equal(t, fmt.Sprintf("Place %d", i), r.Name, "API order must be kept")
		assert.Equal(t, GeneralCategory, r.Category)
	}
}

func TestSearchNearby_GeocodeFailureSkipsSearch(t *testing.T) {
	stub := &mapsStub{
		geocodeBody: `{"status":"ZERO_RESULTS","results":[]}`,
		searchBody:  `{"status":"OK","results":[]}`,
	}
	c := newTestSearch(t, stub)

	recs := c.SearchNearby(context.Background(), "parks", "XXX", "parks", 0)

	assert.NotNil(t, recs)
	assert.Empty(t, recs)
	assert.Equal(t, int32(0), atomic.LoadInt32(&stub.searchCalls), "place search must not run")
}

func TestSearchNearby_APIErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"denied", `{"status":"REQUEST_DENIED","error_message":"API not enabled"}`},
		{"zero results", `{"status":"ZERO_RESULTS","results":[]}`},
		{"malformed", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestSearch(t, &mapsStub{geocodeBody: geocodeOK, searchBody: tt.body})
			recs := c.SearchNearby(context.Background(), "bars", "M5H 2N2", "nightlife", 0)
			assert.NotNil(t, recs)
			assert.Empty(t, recs)
		})
	}
}

func TestSearchNearby_NotConfigured(t *testing.T) {
	c := NewClient(nil, nil, nil)

	assert.False(t, c.Enabled())
	recs := c.SearchNearby(context.Background(), "museums", "M5H 2N2", "culture", 0)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "0 m"},
		{0.0894, "89 m"},
		{0.35, "350 m"},
		{0.9994, "999 m"},
		{1, "1.0 km"},
		{1.26, "1.3 km"},
		{12.04, "12.0 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.km); got != tt.want {
			t.Errorf("FormatDistance(%v) = %s, want %s", tt.km, got, tt.want)
		}
	}
}
