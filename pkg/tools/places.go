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
	// ToolPlaceDetails retrieves the detail record for a single place.
	ToolPlaceDetails = "maps_place_details"

	placeTruncationHint = `request format "json" for a more compact rendering`
)

// PlaceDetailsTool returns the tool definition for place detail lookup.
// Exactly one of place_id and text_query must be provided.
func PlaceDetailsTool() mcp.Tool {
	return mcp.NewTool(ToolPlaceDetails,
		mcp.WithDescription("Look up details for a place, either by its place ID or by a free-text query resolved to the single best match. Provide exactly one of place_id and text_query."),
		mcp.WithString("place_id",
			mcp.Description("The place ID to look up. Mutually exclusive with text_query."),
		),
		mcp.WithString("text_query",
			mcp.Description("A free-text place query, e.g. a business name and city. Mutually exclusive with place_id."),
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

func placeDetailsSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: "place_id", Kind: FieldString},
			{Name: "text_query", Kind: FieldString},
			{Name: "format", Kind: FieldString, Enum: []string{formatMarkdown, formatJSON}, Default: formatMarkdown},
		},
		Refine: func(args Args) error {
			placeID := args.String("place_id")
			textQuery := args.String("text_query")
			switch {
			case placeID == "" && textQuery == "":
				return &ValidationError{Message: "exactly one of place_id and text_query is required, got neither"}
			case placeID != "" && textQuery != "":
				return &ValidationError{Message: "place_id and text_query are mutually exclusive, provide only one"}
			}
			return nil
		},
	}
}

func (r *Registry) handlePlaceDetails(ctx context.Context, args Args) *mcp.CallToolResult {
	format := args.String("format")

	var (
		out    gmaps.Outcome[gmaps.PlaceDetails]
		lookup string
		query  string
	)
	if placeID := args.String("place_id"); placeID != "" {
		lookup, query = "place_id", placeID
		out = r.api.PlaceByID(ctx, placeID)
	} else {
		lookup, query = "text_query", args.String("text_query")
		out = r.api.PlaceByText(ctx, query)
	}
	if !out.OK() {
		return errorResult(out.Message())
	}
	place := out.Value()

	var body string
	if format == formatJSON {
		encoded, err := json.MarshalIndent(place, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to encode place details: %v", err))
		}
		body = string(encoded)
	} else {
		body = renderPlaceMarkdown(place)
	}

	return textResult(body, placeTruncationHint, map[string]any{
		"lookup": lookup,
		"query":  query,
	})
}

func renderPlaceMarkdown(place gmaps.PlaceDetails) string {
	var b strings.Builder
	title := place.DisplayName
	if title == "" {
		title = place.FormattedAddress
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- Place ID: %s\n", place.ID)
	fmt.Fprintf(&b, "- Address: %s\n", place.FormattedAddress)
	fmt.Fprintf(&b, "- Location: %.7f, %.7f\n", place.Location.Latitude, place.Location.Longitude)
	if len(place.Types) > 0 {
		fmt.Fprintf(&b, "- Types: %s\n", strings.Join(place.Types, ", "))
	}
	if place.MapsLink != "" {
		fmt.Fprintf(&b, "- Map: %s\n", place.MapsLink)
	}
	if place.DirectionsLink != "" {
		fmt.Fprintf(&b, "- Directions: %s\n", place.DirectionsLink)
	}
	return strings.TrimRight(b.String(), "\n")
}
