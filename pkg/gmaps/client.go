package gmaps

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// API endpoints
	mapsBaseURL   = "https://maps.googleapis.com"
	placesBaseURL = "https://places.googleapis.com"

	// RequestTimeout bounds every upstream call. There is no retry; a
	// timeout surfaces once as a failure outcome.
	RequestTimeout = 10 * time.Second

	// MaxGeocodeResults caps how many geocoding candidates are returned
	// regardless of how many the upstream sends back. Fixed policy, not an
	// upstream limit.
	MaxGeocodeResults = 3

	// placeFieldMask names the place fields every detail lookup requests.
	placeFieldMask = "id,displayName,formattedAddress,location,types,googleMapsLinks"
)

// newHTTPClient returns an HTTP client configured for Google Maps Platform
// requests with connection pooling and the fixed per-call timeout.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// Client calls the Google Maps Platform web services. It holds only the
// immutable credential, endpoint bases and a pooled HTTP client, so a single
// instance is safe for concurrent use.
type Client struct {
	apiKey     string
	mapsBase   string
	placesBase string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURLs overrides the upstream endpoints. Used by tests to point the
// client at a local server.
func WithBaseURLs(mapsBase, placesBase string) Option {
	return func(c *Client) {
		c.mapsBase = strings.TrimSuffix(mapsBase, "/")
		c.placesBase = strings.TrimSuffix(placesBase, "/")
	}
}

// NewClient creates a Google Maps Platform client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		mapsBase:   mapsBaseURL,
		placesBase: placesBaseURL,
		httpClient: newHTTPClient(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// geocodeResponse is the wire shape of the geocoding endpoint.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID          string `json:"place_id"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves an address to geographic coordinates. It returns at most
// MaxGeocodeResults candidates in upstream relevance order. An upstream
// ZERO_RESULTS status is a success with an empty slice, not a failure.
func (c *Client) Geocode(ctx context.Context, address string) Outcome[[]GeocodeResult] {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)
	reqURL := c.mapsBase + "/maps/api/geocode/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failf[[]GeocodeResult]("failed to build geocoding request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("geocoding request failed", "error", err)
		return Fail[[]GeocodeResult](transportFailure(ServiceGeocoding, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("geocoding service returned error", "status", resp.StatusCode)
		return Fail[[]GeocodeResult](statusFailure(ServiceGeocoding, resp.StatusCode))
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fail[[]GeocodeResult](decodeFailure(ServiceGeocoding, err))
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return OK([]GeocodeResult{})
	default:
		return Failf[[]GeocodeResult]("geocoding request failed: upstream status %s", body.Status)
	}

	n := len(body.Results)
	if n > MaxGeocodeResults {
		n = MaxGeocodeResults
	}
	results := make([]GeocodeResult, 0, n)
	for _, r := range body.Results[:n] {
		results = append(results, GeocodeResult{
			PlaceID:          r.PlaceID,
			FormattedAddress: r.FormattedAddress,
			Location: Location{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
			},
		})
	}
	return OK(results)
}

// placePayload is the wire shape of a Places API (New) place resource,
// restricted to the requested field mask.
type placePayload struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string   `json:"formattedAddress"`
	Location         Location `json:"location"`
	Types            []string `json:"types"`
	GoogleMapsLinks  struct {
		PlaceURI      string `json:"placeUri"`
		DirectionsURI string `json:"directionsUri"`
	} `json:"googleMapsLinks"`
}

func (p placePayload) toDetails() PlaceDetails {
	return PlaceDetails{
		ID:               p.ID,
		DisplayName:      p.DisplayName.Text,
		FormattedAddress: p.FormattedAddress,
		Location:         p.Location,
		Types:            p.Types,
		MapsLink:         p.GoogleMapsLinks.PlaceURI,
		DirectionsLink:   p.GoogleMapsLinks.DirectionsURI,
	}
}

func (c *Client) placesHeaders(req *http.Request) {
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", placeFieldMask)
}

// PlaceByID fetches the details of a single place by its place ID. A 200
// response always succeeds; optional fields the upstream omits stay at their
// zero values.
func (c *Client) PlaceByID(ctx context.Context, placeID string) Outcome[PlaceDetails] {
	reqURL := c.placesBase + "/v1/places/" + url.PathEscape(placeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failf[PlaceDetails]("failed to build place details request: %v", err)
	}
	c.placesHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("place details request failed", "error", err)
		return Fail[PlaceDetails](transportFailure(ServicePlaces, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("places service returned error", "status", resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			return Failf[PlaceDetails]("place not found: no place matches ID %q. Verify the place ID or look the place up by text query instead", placeID)
		}
		return Fail[PlaceDetails](statusFailure(ServicePlaces, resp.StatusCode))
	}

	var body placePayload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fail[PlaceDetails](decodeFailure(ServicePlaces, err))
	}
	return OK(body.toDetails())
}

// PlaceByText resolves a free-text query to the single most relevant place.
// A search that matches no places is a distinct failure from an unknown
// place ID; the two must not be conflated.
func (c *Client) PlaceByText(ctx context.Context, query string) Outcome[PlaceDetails] {
	payload, err := json.Marshal(map[string]any{
		"textQuery":      query,
		"maxResultCount": 1,
	})
	if err != nil {
		return Failf[PlaceDetails]("failed to encode text search request: %v", err)
	}

	reqURL := c.placesBase + "/v1/places:searchText"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return Failf[PlaceDetails]("failed to build text search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.placesHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("place text search request failed", "error", err)
		return Fail[PlaceDetails](transportFailure(ServicePlaces, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("places text search returned error", "status", resp.StatusCode)
		if resp.StatusCode == http.StatusNotFound {
			return Fail[PlaceDetails]("place text search endpoint not found (HTTP 404): the Places API (New) may not be enabled for this key. Enable it in the Google Cloud console and retry")
		}
		return Fail[PlaceDetails](statusFailure(ServicePlaces, resp.StatusCode))
	}

	var body struct {
		Places []placePayload `json:"places"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fail[PlaceDetails](decodeFailure(ServicePlaces, err))
	}
	if len(body.Places) == 0 {
		return Failf[PlaceDetails]("no places found matching %q. Try a broader or more specific query", query)
	}
	return OK(body.Places[0].toDetails())
}

// distanceMatrixResponse is the wire shape of the distance matrix endpoint.
type distanceMatrixResponse struct {
	Status               string   `json:"status"`
	OriginAddresses      []string `json:"origin_addresses"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance *struct {
				Text  string `json:"text"`
				Value int64  `json:"value"`
			} `json:"distance"`
			Duration *struct {
				Text  string `json:"text"`
				Value int64  `json:"value"`
			} `json:"duration"`
		} `json:"elements"`
	} `json:"rows"`
}

// DistanceMatrix computes travel distance and time from every origin to
// every destination. The upstream's dense grid is passed through
// untransformed: one row per origin, one element per destination.
func (c *Client) DistanceMatrix(ctx context.Context, origins, destinations []string, mode TravelMode) Outcome[DistanceMatrix] {
	q := url.Values{}
	q.Set("origins", strings.Join(origins, "|"))
	q.Set("destinations", strings.Join(destinations, "|"))
	q.Set("mode", string(mode))
	q.Set("key", c.apiKey)
	reqURL := c.mapsBase + "/maps/api/distancematrix/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Failf[DistanceMatrix]("failed to build distance matrix request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("distance matrix request failed", "error", err)
		return Fail[DistanceMatrix](transportFailure(ServiceDistanceMatrix, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("distance matrix service returned error", "status", resp.StatusCode)
		return Fail[DistanceMatrix](statusFailure(ServiceDistanceMatrix, resp.StatusCode))
	}

	var body distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Fail[DistanceMatrix](decodeFailure(ServiceDistanceMatrix, err))
	}
	if body.Status != "OK" {
		return Failf[DistanceMatrix]("distance matrix request failed: upstream status %s", body.Status)
	}

	matrix := DistanceMatrix{
		OriginAddresses:      body.OriginAddresses,
		DestinationAddresses: body.DestinationAddresses,
		Rows:                 make([]MatrixRow, 0, len(body.Rows)),
	}
	for _, row := range body.Rows {
		elements := make([]MatrixElement, 0, len(row.Elements))
		for _, el := range row.Elements {
			element := MatrixElement{Status: el.Status}
			if el.Distance != nil {
				element.Distance = &Distance{Text: el.Distance.Text, Meters: el.Distance.Value}
			}
			if el.Duration != nil {
				element.Duration = &Duration{Text: el.Duration.Text, Seconds: el.Duration.Value}
			}
			elements = append(elements, element)
		}
		matrix.Rows = append(matrix.Rows, MatrixRow{Elements: elements})
	}
	return OK(matrix)
}
