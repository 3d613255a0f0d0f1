package gmaps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapgrid/gmapsmcp/pkg/testutil"
)

const testKey = "test-api-key"

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(testKey,
		WithBaseURLs(srv.URL, srv.URL),
		WithLogger(testutil.DiscardLogger()),
	)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestGeocode(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		resultCount int
		wantLen     int
		wantFail    bool
		wantMessage string
	}{
		{name: "single result", status: "OK", resultCount: 1, wantLen: 1},
		{name: "caps at three results", status: "OK", resultCount: 7, wantLen: 3},
		{name: "zero results is empty success", status: "ZERO_RESULTS", wantLen: 0},
		{name: "denied status is a failure", status: "REQUEST_DENIED", wantFail: true, wantMessage: "upstream status REQUEST_DENIED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
				assert.Equal(t, "Alexanderplatz, Berlin", r.URL.Query().Get("address"))
				assert.Equal(t, testKey, r.URL.Query().Get("key"))

				results := make([]map[string]any, 0, tt.resultCount)
				for i := 0; i < tt.resultCount; i++ {
					results = append(results, map[string]any{
						"place_id":          "place-" + string(rune('a'+i)),
						"formatted_address": "Alexanderplatz, 10178 Berlin, Germany",
						"geometry": map[string]any{
							"location": map[string]any{"lat": 52.5219184, "lng": 13.4132147},
						},
					})
				}
				writeJSON(t, w, map[string]any{"status": tt.status, "results": results})
			}))

			out := client.Geocode(context.Background(), "Alexanderplatz, Berlin")
			if tt.wantFail {
				require.False(t, out.OK())
				assert.Contains(t, out.Message(), tt.wantMessage)
				return
			}
			require.True(t, out.OK(), "unexpected failure: %s", out.Message())
			results := out.Value()
			require.Len(t, results, tt.wantLen)
			if tt.wantLen > 0 {
				assert.Equal(t, "place-a", results[0].PlaceID, "upstream order must be preserved")
				assert.InDelta(t, 52.5219184, results[0].Location.Latitude, 1e-9)
				assert.InDelta(t, 13.4132147, results[0].Location.Longitude, 1e-9)
			}
		})
	}
}

func TestGeocodeHTTPStatusTaxonomy(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{http.StatusForbidden, "Geocoding API"},
		{http.StatusTooManyRequests, "rate limited"},
		{http.StatusBadRequest, "malformed request"},
		{http.StatusBadGateway, "Geocoding API error (HTTP 502)"},
	}

	for _, tt := range tests {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.code)
		}))
		out := client.Geocode(context.Background(), "Berlin")
		require.False(t, out.OK())
		assert.Contains(t, out.Message(), tt.want)
	}
}

func TestGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(testKey,
		WithBaseURLs(srv.URL, srv.URL),
		WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}),
		WithLogger(testutil.DiscardLogger()),
	)

	out := client.Geocode(context.Background(), "Berlin")
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "timed out")
}

func TestGeocodeConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(testKey,
		WithBaseURLs(srv.URL, srv.URL),
		WithLogger(testutil.DiscardLogger()),
	)

	out := client.Geocode(context.Background(), "Berlin")
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "failed to reach the Geocoding API")
}

func placeResource() map[string]any {
	return map[string]any{
		"id":               "ChIJiQnyVcZRqEcRY0xnhE77uyY",
		"displayName":      map[string]any{"text": "Brandenburg Gate"},
		"formattedAddress": "Pariser Platz, 10117 Berlin, Germany",
		"location":         map[string]any{"latitude": 52.5162746, "longitude": 13.3777041},
		"types":            []string{"tourist_attraction", "landmark"},
		"googleMapsLinks": map[string]any{
			"placeUri":      "https://maps.google.com/?cid=7393246625520860771",
			"directionsUri": "https://www.google.com/maps/dir//Brandenburg+Gate",
		},
	}
}

func TestPlaceByID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/places/ChIJiQnyVcZRqEcRY0xnhE77uyY", r.URL.Path)
		assert.Equal(t, testKey, r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, placeFieldMask, r.Header.Get("X-Goog-FieldMask"))
		writeJSON(t, w, placeResource())
	}))

	out := client.PlaceByID(context.Background(), "ChIJiQnyVcZRqEcRY0xnhE77uyY")
	require.True(t, out.OK(), "unexpected failure: %s", out.Message())
	place := out.Value()
	assert.Equal(t, "ChIJiQnyVcZRqEcRY0xnhE77uyY", place.ID)
	assert.Equal(t, "Brandenburg Gate", place.DisplayName)
	assert.Equal(t, "Pariser Platz, 10117 Berlin, Germany", place.FormattedAddress)
	assert.Equal(t, []string{"tourist_attraction", "landmark"}, place.Types)
	assert.Equal(t, "https://maps.google.com/?cid=7393246625520860771", place.MapsLink)
	assert.Equal(t, "https://www.google.com/maps/dir//Brandenburg+Gate", place.DirectionsLink)
}

func TestPlaceByIDAbsentOptionalFields(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"id":               "ChIJplain",
			"formattedAddress": "Somewhere 1, Berlin",
			"location":         map[string]any{"latitude": 52.5, "longitude": 13.4},
		})
	}))

	out := client.PlaceByID(context.Background(), "ChIJplain")
	require.True(t, out.OK())
	place := out.Value()
	assert.Empty(t, place.DisplayName)
	assert.Empty(t, place.Types)
	assert.Empty(t, place.MapsLink)
	assert.Empty(t, place.DirectionsLink)
}

func TestPlaceLookup404Distinction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	byID := client.PlaceByID(context.Background(), "ChIJnope")
	require.False(t, byID.OK())
	assert.Contains(t, byID.Message(), "place not found")
	assert.Contains(t, byID.Message(), "ChIJnope")

	byText := client.PlaceByText(context.Background(), "somewhere")
	require.False(t, byText.OK())
	assert.Contains(t, byText.Message(), "text search endpoint not found")
	assert.NotEqual(t, byID.Message(), byText.Message(), "the two 404 cases must not be conflated")
}

func TestPlaceByText(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/places:searchText", r.URL.Path)
		assert.Equal(t, testKey, r.Header.Get("X-Goog-Api-Key"))

		var body struct {
			TextQuery      string `json:"textQuery"`
			MaxResultCount int    `json:"maxResultCount"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Brandenburg Gate Berlin", body.TextQuery)
		assert.Equal(t, 1, body.MaxResultCount)

		writeJSON(t, w, map[string]any{"places": []any{placeResource()}})
	}))

	out := client.PlaceByText(context.Background(), "Brandenburg Gate Berlin")
	require.True(t, out.OK(), "unexpected failure: %s", out.Message())
	assert.Equal(t, "Brandenburg Gate", out.Value().DisplayName)
}

func TestPlaceByTextNoMatches(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{})
	}))

	out := client.PlaceByText(context.Background(), "zzzzzznonexistentplace123")
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "no places found")
	assert.Contains(t, out.Message(), "zzzzzznonexistentplace123")
}

func TestPlacesForbiddenNamesService(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	out := client.PlaceByID(context.Background(), "ChIJx")
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "Places API (New)")
}

func TestDistanceMatrix(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/distancematrix/json", r.URL.Path)
		assert.Equal(t, "Berlin|Hamburg", r.URL.Query().Get("origins"))
		assert.Equal(t, "Munich", r.URL.Query().Get("destinations"))
		assert.Equal(t, "walking", r.URL.Query().Get("mode"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		writeJSON(t, w, map[string]any{
			"status":                "OK",
			"origin_addresses":      []string{"Berlin, Germany", "Hamburg, Germany"},
			"destination_addresses": []string{"Munich, Germany"},
			"rows": []any{
				map[string]any{"elements": []any{map[string]any{
					"status":   "OK",
					"distance": map[string]any{"text": "584 km", "value": 584060},
					"duration": map[string]any{"text": "5 hours 42 mins", "value": 20520},
				}}},
				map[string]any{"elements": []any{map[string]any{
					"status": "NOT_FOUND",
				}}},
			},
		})
	}))

	out := client.DistanceMatrix(context.Background(), []string{"Berlin", "Hamburg"}, []string{"Munich"}, TravelModeWalking)
	require.True(t, out.OK(), "unexpected failure: %s", out.Message())
	matrix := out.Value()

	require.Len(t, matrix.Rows, 2, "one row per origin")
	require.Len(t, matrix.Rows[0].Elements, 1, "one element per destination")
	require.Len(t, matrix.Rows[1].Elements, 1)

	el := matrix.Rows[0].Elements[0]
	assert.Equal(t, "OK", el.Status)
	require.NotNil(t, el.Distance)
	assert.Equal(t, int64(584060), el.Distance.Meters)
	require.NotNil(t, el.Duration)
	assert.Equal(t, int64(20520), el.Duration.Seconds)

	missing := matrix.Rows[1].Elements[0]
	assert.Equal(t, "NOT_FOUND", missing.Status)
	assert.Nil(t, missing.Distance)
	assert.Nil(t, missing.Duration)
}

func TestDistanceMatrixUpstreamStatusFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"status": "MAX_ELEMENTS_EXCEEDED"})
	}))

	out := client.DistanceMatrix(context.Background(), []string{"a"}, []string{"b"}, TravelModeDriving)
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "upstream status MAX_ELEMENTS_EXCEEDED")
}

func TestDistanceMatrixForbiddenNamesService(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	out := client.DistanceMatrix(context.Background(), []string{"a"}, []string{"b"}, TravelModeDriving)
	require.False(t, out.OK())
	assert.Contains(t, out.Message(), "Distance Matrix API")
}

func TestOutcome(t *testing.T) {
	ok := OK(42)
	assert.True(t, ok.OK())
	assert.Equal(t, 42, ok.Value())
	assert.Empty(t, ok.Message())

	fail := Failf[int]("bad %s", "input")
	assert.False(t, fail.OK())
	assert.Equal(t, "bad input", fail.Message())
	assert.Zero(t, fail.Value())
}
