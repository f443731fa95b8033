package mcp

import "encoding/json"

// JSON-RPC 2.0 envelope types for the MCP endpoint.

const Version = "2.0"

const (
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternal       = -32603

	// Tool-scoped failures keep the HTTP-flavored codes the provider
	// integration has always used.
	CodeToolBadRequest = 400
	CodeToolFailure    = 500
)

type Request struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type Response struct {
	Jsonrpc string `json:"jsonrpc"`
	ID      any    `json:"id"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func NewResponse(id any, result any) Response {
	return Response{Jsonrpc: Version, ID: id, Result: result}
}

func NewErrorResponse(id any, err *Error) Response {
	return Response{Jsonrpc: Version, ID: id, Error: err}
}

// ToolResult is the MCP content envelope for one tool call: a single text
// block carrying the serialized result.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
}

type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func TextResult(text string) *ToolResult {
	return &ToolResult{Content: []ContentBlock{{Type: "text", Text: text}}}
}

// JSONResult pretty-prints v into a text content block.
func JSONResult(v any) (*ToolResult, *Error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, NewError(CodeInternal, "failed to encode tool result")
	}
	return TextResult(string(b)), nil
}
