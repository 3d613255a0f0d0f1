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
	// ToolDistanceMatrix computes travel distances for origin/destination pairs.
	ToolDistanceMatrix = "maps_distance_matrix"

	// MaxMatrixLocations bounds origins and destinations independently.
	// Fixed policy constant.
	MaxMatrixLocations = 10

	matrixTruncationHint = "reduce the number of origins or destinations"

	// matrixBillingNote is a fixed annotation embedded in the json encoding;
	// the upstream bills this endpoint per element.
	matrixBillingNote = "billed per element (origins x destinations), standard tier"
)

var travelModes = []string{
	string(gmaps.TravelModeDriving),
	string(gmaps.TravelModeWalking),
	string(gmaps.TravelModeBicycling),
	string(gmaps.TravelModeTransit),
}

// DistanceMatrixTool returns the tool definition for travel distance
// computation between every origin and every destination.
func DistanceMatrixTool() mcp.Tool {
	return mcp.NewTool(ToolDistanceMatrix,
		mcp.WithDescription(fmt.Sprintf("Compute travel distance and time from each origin to each destination (up to %d of each) for a given travel mode.", MaxMatrixLocations)),
		mcp.WithArray("origins",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Origin addresses or place names (1-%d)", MaxMatrixLocations)),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.MinItems(1),
			mcp.MaxItems(MaxMatrixLocations),
		),
		mcp.WithArray("destinations",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("Destination addresses or place names (1-%d)", MaxMatrixLocations)),
			mcp.Items(map[string]any{"type": "string"}),
			mcp.MinItems(1),
			mcp.MaxItems(MaxMatrixLocations),
		),
		mcp.WithString("mode",
			mcp.Description("Travel mode"),
			mcp.Enum(travelModes...),
			mcp.DefaultString(string(gmaps.TravelModeDriving)),
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

func distanceMatrixSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: "origins", Kind: FieldStringList, Required: true, MinItems: 1, MaxItems: MaxMatrixLocations},
			{Name: "destinations", Kind: FieldStringList, Required: true, MinItems: 1, MaxItems: MaxMatrixLocations},
			{Name: "mode", Kind: FieldString, Enum: travelModes, Default: string(gmaps.TravelModeDriving)},
			{Name: "format", Kind: FieldString, Enum: []string{formatMarkdown, formatJSON}, Default: formatMarkdown},
		},
	}
}

// matrixSummary is advisory metadata embedded in the json encoding.
type matrixSummary struct {
	TotalElements int    `json:"total_elements"`
	Mode          string `json:"mode"`
	Billing       string `json:"billing"`
}

// matrixDocument is the json encoding of a distance matrix result.
type matrixDocument struct {
	gmaps.DistanceMatrix
	Summary matrixSummary `json:"summary"`
}

func (r *Registry) handleDistanceMatrix(ctx context.Context, args Args) *mcp.CallToolResult {
	origins := args.StringList("origins")
	destinations := args.StringList("destinations")
	mode := args.String("mode")
	format := args.String("format")

	out := r.api.DistanceMatrix(ctx, origins, destinations, gmaps.TravelMode(mode))
	if !out.OK() {
		return errorResult(out.Message())
	}
	matrix := out.Value()
	totalElements := len(origins) * len(destinations)

	var body string
	if format == formatJSON {
		doc := matrixDocument{
			DistanceMatrix: matrix,
			Summary: matrixSummary{
				TotalElements: totalElements,
				Mode:          mode,
				Billing:       matrixBillingNote,
			},
		}
		encoded, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return errorResult(fmt.Sprintf("failed to encode distance matrix: %v", err))
		}
		body = string(encoded)
	} else {
		body = renderMatrixMarkdown(matrix, mode)
	}

	return textResult(body, matrixTruncationHint, map[string]any{
		"mode":              mode,
		"origin_count":      len(origins),
		"destination_count": len(destinations),
		"total_elements":    totalElements,
	})
}

func renderMatrixMarkdown(matrix gmaps.DistanceMatrix, mode string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Distance matrix (%s)\n", mode)
	for i, origin := range matrix.OriginAddresses {
		fmt.Fprintf(&b, "\n## From: %s\n", origin)
		if i >= len(matrix.Rows) {
			continue
		}
		for j, dest := range matrix.DestinationAddresses {
			if j >= len(matrix.Rows[i].Elements) {
				continue
			}
			el := matrix.Rows[i].Elements[j]
			if el.Status == "OK" && el.Distance != nil && el.Duration != nil {
				fmt.Fprintf(&b, "- To %s: %s, %s\n", dest, el.Distance.Text, el.Duration.Text)
			} else {
				fmt.Fprintf(&b, "- To %s: %s\n", dest, el.Status)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
