package server

import "github.com/ironsheep/image-editor-mcp/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// noArgsSchema is the input schema of tools that take no arguments
func noArgsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func formatNames() []string {
	names := make([]string, 0, len(imaging.Formats))
	for _, f := range imaging.Formats {
		names = append(names, string(f))
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session
		{
			Name:        "editor_load",
			Description: "Load an image file into the editor. The original is kept for reset and the adjustment pipeline runs with the current configuration.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file (PNG, JPEG, GIF, WebP, BMP, TIFF)",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "editor_state",
			Description: "Get the current configuration, image sizes and whether a pipeline run is pending.",
			InputSchema: noArgsSchema(),
		},
		{
			Name:        "editor_reset",
			Description: "Restore the original image and the default configuration.",
			InputSchema: noArgsSchema(),
		},

		// Adjustments
		{
			Name:        "editor_update_config",
			Description: "Change one or more adjustment settings. Omitted fields keep their value. Sliders are 0-100 with 50 neutral. The image is reprocessed from the original after a short quiet period.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"brightness": map[string]interface{}{
						"type":        "integer",
						"description": "Brightness 0-100 (50 = unchanged, 0 = black, 100 = double)",
						"minimum":     0,
						"maximum":     100,
					},
					"contrast": map[string]interface{}{
						"type":        "integer",
						"description": "Contrast 0-100 (50 = unchanged)",
						"minimum":     0,
						"maximum":     100,
					},
					"saturation": map[string]interface{}{
						"type":        "integer",
						"description": "Saturation 0-100 (50 = unchanged, 0 = grayscale)",
						"minimum":     0,
						"maximum":     100,
					},
					"blur": map[string]interface{}{
						"type":        "number",
						"description": "Gaussian blur standard deviation in pixels (0 = none)",
						"minimum":     0,
					},
					"resolution": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.ResolutionKeys,
						"description": "Output size: SD (640x480), HD (1280x720), FULL HD (1920x1080)",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        formatNames(),
						"description": "Export format",
					},
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "Export quality in (0,1] for JPEG and WEBP",
					},
				},
			},
		},

		// On-demand operations
		{
			Name:        "editor_apply_filter",
			Description: "Convolve the current image with a kernel. Edge pixels within the kernel radius are left unchanged. Repeated application compounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"kernel": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.KernelNames(),
						"description": "Built-in kernel name (default sharpen). Ignored when matrix is given.",
						"default":     "sharpen",
					},
					"matrix": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "number"},
						},
						"description": "Custom odd-sized square kernel, rows top to bottom",
					},
				},
			},
		},
		{
			Name:        "editor_equalize",
			Description: "Equalize the luminance histogram of the current image. The result is grayscale.",
			InputSchema: noArgsSchema(),
		},

		// Output and inspection
		{
			Name:        "editor_export",
			Description: "Encode the current image. Writes to path when given, otherwise returns base64 data.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Optional output file path. If it is a directory the default file name is used.",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        formatNames(),
						"description": "Override the configured format",
					},
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "Override the configured quality (0,1]",
					},
				},
			},
		},
		{
			Name:        "editor_sample_color",
			Description: "Get the color of a pixel in the current image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"x", "y"},
			},
		},
		{
			Name:        "editor_histogram",
			Description: "Get the 256-level luminance histogram of the current image with min, max and mean.",
			InputSchema: noArgsSchema(),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
