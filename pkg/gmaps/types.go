package gmaps

// Location represents a geographic coordinate (latitude and longitude)
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeResult is one geocoding candidate for an address, in upstream
// relevance order.
type GeocodeResult struct {
	PlaceID          string   `json:"place_id"`
	FormattedAddress string   `json:"formatted_address"`
	Location         Location `json:"location"`
}

// PlaceDetails is the normalized detail record for a single place.
// DisplayName, Types and the links may be absent depending on the place.
type PlaceDetails struct {
	ID               string   `json:"id"`
	DisplayName      string   `json:"display_name,omitempty"`
	FormattedAddress string   `json:"formatted_address"`
	Location         Location `json:"location"`
	Types            []string `json:"types,omitempty"`
	MapsLink         string   `json:"maps_link,omitempty"`
	DirectionsLink   string   `json:"directions_link,omitempty"`
}

// Distance is a travel distance in both human-readable and metric form.
type Distance struct {
	Text   string `json:"text"`
	Meters int64  `json:"meters"`
}

// Duration is a travel time in both human-readable and metric form.
type Duration struct {
	Text    string `json:"text"`
	Seconds int64  `json:"seconds"`
}

// MatrixElement is one origin-destination pairing. Distance and Duration
// are only present when Status is "OK".
type MatrixElement struct {
	Status   string    `json:"status"`
	Distance *Distance `json:"distance,omitempty"`
	Duration *Duration `json:"duration,omitempty"`
}

// MatrixRow holds the elements for a single origin, indexed by destination.
type MatrixRow struct {
	Elements []MatrixElement `json:"elements"`
}

// DistanceMatrix is the dense origins x destinations travel grid.
// len(Rows) == len(OriginAddresses) and every row has one element per
// destination address.
type DistanceMatrix struct {
	OriginAddresses      []string    `json:"origin_addresses"`
	DestinationAddresses []string    `json:"destination_addresses"`
	Rows                 []MatrixRow `json:"rows"`
}

// TravelMode selects the distance matrix transportation method.
type TravelMode string

const (
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
	TravelModeTransit   TravelMode = "transit"
)
