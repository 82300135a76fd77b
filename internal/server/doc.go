// Package server implements the MCP (Model Context Protocol) server for the image editor.
//
// This package provides a JSON-RPC 2.0 server that exposes one editing session
// through the MCP protocol. A client loads an image, adjusts it, applies
// filters and exports the result.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Session:
//   - editor_load: Load an image file as the new original
//   - editor_state: Report configuration and sizes
//   - editor_reset: Restore the original and default configuration
//
// Adjustments:
//   - editor_update_config: Brightness, contrast, saturation, blur,
//     resolution, format, quality
//
// On-demand operations:
//   - editor_apply_filter: Convolve with a named or custom kernel
//   - editor_equalize: Luminance histogram equalization
//
// Output and inspection:
//   - editor_export: Encode to PNG, JPEG or WEBP
//   - editor_sample_color: Color at a pixel
//   - editor_histogram: Luminance histogram
//
// # Processing Model
//
// Configuration changes are debounced by the session: the pipeline reruns from
// the original once the client has been quiet for the debounce window. Tools
// that read the current image flush a waiting run first.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
