package server

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-editor-mcp/internal/editor"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	defer s.Session().Close()

	assert.NotNil(t, s.cache)
	require.NotNil(t, s.Session())
	assert.False(t, s.Session().Loaded(), "new session should be empty")
}

func TestNew_WithSessionOptions(t *testing.T) {
	defaults := editor.DefaultConfig()
	defaults.Resolution = "SD"

	s := New(WithSessionOptions(editor.WithDefaults(defaults), editor.WithDebounce(time.Millisecond)), WithDebug(true))
	defer s.Session().Close()

	assert.True(t, s.debug)
	assert.Equal(t, "SD", s.Session().Config().Resolution)
}

func TestHandleRequest(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		method   string
		id       interface{}
		wantNil  bool
		wantCode int
	}{
		{method: "initialize", id: 1},
		{method: "ping", id: "ping-1"},
		{method: "tools/list", id: 2},
		{method: "notifications/initialized", wantNil: true},
		{method: "nonexistent/method", id: 3, wantCode: -32601},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: tt.id, Method: tt.method})
			if tt.wantNil {
				assert.Nil(t, resp, "notifications get no response")
				return
			}
			require.NotNil(t, resp)
			assert.Equal(t, "2.0", resp.JSONRPC)
			assert.Equal(t, tt.id, resp.ID)
			if tt.wantCode != 0 {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				assert.Nil(t, resp.Result)
			} else {
				assert.Nil(t, resp.Error)
				assert.NotNil(t, resp.Result)
			}
		})
	}
}

func TestHandleInitialize(t *testing.T) {
	s := newTestServer(t)

	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})
	assert.Equal(t, "init-1", resp.ID)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok, "Result should be a map")
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	serverInfo, ok := result["serverInfo"].(map[string]interface{})
	require.True(t, ok, "serverInfo should be a map")
	assert.Equal(t, "image-editor-mcp", serverInfo["name"])
	assert.Equal(t, "0.1.0", serverInfo["version"])
}

func TestServe_RoundTrip(t *testing.T) {
	s := New(WithSessionOptions(editor.WithDebounce(time.Hour)))

	input := strings.Join([]string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		``,
		`not json`,
		`{"jsonrpc":"2.0","id":"two","method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"editor_state"}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"editor_load","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":6,"method":"resources/list"}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, s.Serve(strings.NewReader(input), &out))

	// Responses keyed by id as it came back over the wire.
	raw := make(map[interface{}]string)
	resps := make(map[interface{}]MCPResponse)
	var order []interface{}

	dec := json.NewDecoder(&out)
	for dec.More() {
		var msg json.RawMessage
		require.NoError(t, dec.Decode(&msg))

		var resp MCPResponse
		require.NoError(t, json.Unmarshal(msg, &resp))
		assert.Equal(t, "2.0", resp.JSONRPC)

		raw[resp.ID] = string(msg)
		resps[resp.ID] = resp
		order = append(order, resp.ID)
	}

	// The notification, the blank line and the malformed line get no reply.
	// JSON numbers come back as float64 and string ids stay strings.
	require.Equal(t, []interface{}{float64(1), "two", float64(3), float64(4), float64(5), float64(6)}, order)

	for _, id := range []interface{}{float64(1), "two", float64(3), float64(4)} {
		assert.Nil(t, resps[id].Error, "response %v", id)
		assert.NotContains(t, raw[id], `"error"`, "response %v", id)
	}

	tools, ok := resps[float64(3)].Result.(map[string]interface{})["tools"].([]interface{})
	require.True(t, ok, "tools/list result should carry a tools array")
	assert.Len(t, tools, len(GetToolDefinitions()))

	failed := resps[float64(5)].Error
	require.NotNil(t, failed)
	assert.Equal(t, -32000, failed.Code)
	assert.Contains(t, failed.Data, "path is required")
	assert.NotContains(t, raw[float64(5)], `"result"`)

	unknown := resps[float64(6)].Error
	require.NotNil(t, unknown)
	assert.Equal(t, -32601, unknown.Code)
	assert.Equal(t, "Method not found: resources/list", unknown.Message)
	assert.NotContains(t, raw[float64(6)], `"data"`)
}
