package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mapgrid/gmapsmcp/pkg/gmaps"
)

const (
	// ToolGeocode converts an address into geographic coordinates.
	ToolGeocode = "maps_geocode"

	maxAddressLen = 500

	geocodeTruncationHint = `request format "json" for a more compact rendering`
)

// GeocodeTool returns the tool definition for address geocoding.
func GeocodeTool() mcp.Tool {
	return mcp.NewTool(ToolGeocode,
		mcp.WithDescription(fmt.Sprintf("Convert a street address or place name to geographic coordinates. Returns up to %d candidates ranked by relevance.", gmaps.MaxGeocodeResults)),
		mcp.WithString("address",
			mcp.Required(),
			mcp.Description("The address or place name to geocode"),
			mcp.MaxLength(maxAddressLen),
		),
		mcp.WithString("format",
			mcp.Description("Output encoding: human-readable markdown or structured json"),
			mcp.Enum(formatMarkdown, formatJSON),
			mcp.DefaultString(formatMarkdown),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

func geocodeSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: "address", Kind: FieldString, Required: true, MaxLen: maxAddressLen},
			{Name: "format", Kind: FieldString, Enum: []string{formatMarkdown, formatJSON}, Default: formatMarkdown},
		},
	}
}

// geocodeDocument is the json encoding of a geocode result sequence.
type geocodeDocument struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []gmaps.GeocodeResult `json:"results"`
}

func (r *Registry) handleGeocode(ctx context.Context, args Args) *mcp.CallToolResult {
	address := args.String("address")
	format := args.String("format")

	out := r.api.Geocode(ctx, address)
	if !out.OK() {
		return errorResult(out.Message())
	}
	results := out.Value()

	var body string
	if format == formatJSON {
		doc := geocodeDocument{Query: address, Count: len(results), Results: results}
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to encode geocoding result: %v", err))
		}
		body = string(encoded)
	} else {
		body = renderGeocodeMarkdown(address, results)
	}

	return textResult(body, geocodeTruncationHint, map[string]any{
		"query":        address,
		"result_count": len(results),
	})
}

func renderGeocodeMarkdown(address string, results []gmaps.GeocodeResult) string {
	if len(results) == 0 {
		return fmt.Sprintf("No locations found for %q.", address)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Geocoding results for %q\n\n", address)
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.FormattedAddress)
		fmt.Fprintf(&b, "   - Coordinates: %.7f, %.7f\n", r.Location.Latitude, r.Location.Longitude)
		fmt.Fprintf(&b, "   - Place ID: %s\n", r.PlaceID)
	}
	return strings.TrimRight(b.String(), "\n")
}
