package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_equalize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.debugf("tool %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Tools that read the current image (filter, equalize, export, sampling)
// first run any pipeline pass that is still waiting out its debounce window,
// so they see the configuration the client set last.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "editor_load":
		return s.handleEditorLoad(args)
	case "editor_state":
		return s.handleEditorState()
	case "editor_reset":
		return s.handleEditorReset()

	// Adjustments
	case "editor_update_config":
		return s.handleEditorUpdateConfig(args)

	// On-demand operations
	case "editor_apply_filter":
		s.session.Flush()
		return s.handleEditorApplyFilter(args)
	case "editor_equalize":
		s.session.Flush()
		return s.handleEditorEqualize()

	// Output and inspection
	case "editor_export":
		s.session.Flush()
		return s.handleEditorExport(args)
	case "editor_sample_color":
		s.session.Flush()
		return s.handleEditorSampleColor(args)
	case "editor_histogram":
		s.session.Flush()
		return s.handleEditorHistogram()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, treating missing arguments as an
// empty object.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// stateResult is returned by tools that change or report session state.
type stateResult struct {
	Loaded  bool          `json:"loaded"`
	Pending bool          `json:"pending"`
	Config  editor.Config `json:"config"`
	Info    editor.Info   `json:"info"`
}

func (s *Server) state() *stateResult {
	return &stateResult{
		Loaded:  s.session.Loaded(),
		Pending: s.session.Pending(),
		Config:  s.session.Config(),
		Info:    s.session.Info(),
	}
}

// === Session Handlers ===

type editorLoadArgs struct {
	Path string `json:"path"`
}

type editorLoadResult struct {
	Image *imaging.ImageInfo `json:"image"`
	State *stateResult       `json:"state"`
}

func (s *Server) handleEditorLoad(args json.RawMessage) (interface{}, error) {
	var a editorLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	buf, info, err := imaging.LoadImage(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.session.Load(buf, info.FileType); err != nil {
		return nil, err
	}
	s.debugf("loaded %s (%s)", a.Path, buf.Size())

	return &editorLoadResult{Image: info, State: s.state()}, nil
}

func (s *Server) handleEditorState() (interface{}, error) {
	return s.state(), nil
}

func (s *Server) handleEditorReset() (interface{}, error) {
	if err := s.session.Reset(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Adjustment Handlers ===

func (s *Server) handleEditorUpdateConfig(args json.RawMessage) (interface{}, error) {
	var patch editor.ConfigPatch
	if err := decodeArgs(args, &patch); err != nil {
		return nil, err
	}
	if _, err := s.session.UpdateConfig(patch); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === On-demand Operation Handlers ===

type editorApplyFilterArgs struct {
	Kernel string      `json:"kernel"`
	Matrix [][]float64 `json:"matrix"`
}

func (s *Server) handleEditorApplyFilter(args json.RawMessage) (interface{}, error) {
	var a editorApplyFilterArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	var kernel imaging.Kernel
	if len(a.Matrix) > 0 {
		kernel = imaging.Kernel(a.Matrix)
	} else {
		if a.Kernel == "" {
			a.Kernel = "sharpen"
		}
		k, err := imaging.KernelByName(a.Kernel)
		if err != nil {
			return nil, err
		}
		kernel = k
	}

	if err := s.session.ApplyFilter(kernel); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleEditorEqualize() (interface{}, error) {
	if err := s.session.Equalize(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Output and Inspection Handlers ===

type editorExportArgs struct {
	Path    string  `json:"path"`
	Format  string  `json:"format"`
	Quality float64 `json:"quality"`
}

// ExportResult describes an encoded image. Exactly one of Path and
// ImageBase64 is set.
type ExportResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Format      string  `json:"format"`
	Quality     float64 `json:"quality,omitempty"`
	MimeType    string  `json:"mime_type"`
	FileName    string  `json:"file_name"`
	Bytes       int     `json:"bytes"`
	Path        string  `json:"path,omitempty"`
	ImageBase64 string  `json:"image_base64,omitempty"`
}

func (s *Server) handleEditorExport(args json.RawMessage) (interface{}, error) {
	var a editorExportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	exp, err := s.session.Export(imaging.Format(a.Format), a.Quality)
	if err != nil {
		return nil, err
	}
	data, err := exp.Bytes()
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		Width:    exp.Buffer.Width,
		Height:   exp.Buffer.Height,
		Format:   string(exp.Format),
		MimeType: exp.Format.MimeType(),
		FileName: exp.FileName,
		Bytes:    len(data),
	}
	if exp.Format.Lossy() {
		result.Quality = exp.Quality
	}

	if a.Path == "" {
		result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
		return result, nil
	}

	path := a.Path
	if st, err := os.Stat(path); err == nil && st.IsDir() {
		path = filepath.Join(path, exp.FileName)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}
	result.Path = path
	s.debugf("exported %s (%d bytes)", path, len(data))
	return result, nil
}

type editorSampleColorArgs struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleEditorSampleColor(args json.RawMessage) (interface{}, error) {
	var a editorSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	buf := s.session.Current()
	if buf == nil {
		return nil, editor.ErrNoImage
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

func (s *Server) handleEditorHistogram() (interface{}, error) {
	buf := s.session.Current()
	if buf == nil {
		return nil, editor.ErrNoImage
	}
	return imaging.ComputeHistogramStats(buf), nil
}
