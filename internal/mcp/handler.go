package mcp

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler binds the JSON-RPC endpoint to gin.
type Handler struct {
	dispatcher *Dispatcher
	log        *zap.Logger
}

func NewHandler(dispatcher *Dispatcher, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{dispatcher: dispatcher, log: logger}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// HandleJSONRPC serves the single MCP endpoint. Only a malformed envelope
// produces a non-200 status; every other failure is a JSON-RPC error object.
func (h *Handler) HandleJSONRPC(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("malformed JSON-RPC envelope", zap.Error(err))
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(nil, NewError(CodeInvalidRequest, "Invalid JSON-RPC request")))
		return
	}

	if req.Jsonrpc != Version {
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(req.ID, NewError(CodeInvalidRequest, "Invalid JSON-RPC version")))
		return
	}

	switch req.Method {
	case "initialize":
		c.JSON(http.StatusOK, NewResponse(req.ID, Initialize()))
	case "initialized":
		c.JSON(http.StatusOK, NewResponse(req.ID, map[string]any{}))
	case "tools/list":
		c.JSON(http.StatusOK, NewResponse(req.ID, map[string]any{"tools": Tools()}))
	case "tools/call":
		h.handleToolCall(c, req)
	default:
		c.JSON(http.StatusOK,
			NewErrorResponse(req.ID, NewError(CodeMethodNotFound, "Method not found: "+req.Method)))
	}
}

func (h *Handler) handleToolCall(c *gin.Context, req Request) {
	var params toolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			c.JSON(http.StatusOK,
				NewErrorResponse(req.ID, NewError(CodeInvalidParams, "Invalid tools/call params")))
			return
		}
	}
	if params.Name == "" {
		c.JSON(http.StatusOK,
			NewErrorResponse(req.ID, NewError(CodeInvalidParams, "Tool name is required")))
		return
	}

	result, rpcErr := h.dispatcher.Call(c.Request.Context(), params.Name, params.Arguments)
	if rpcErr != nil {
		c.JSON(http.StatusOK, NewErrorResponse(req.ID, rpcErr))
		return
	}
	c.JSON(http.StatusOK, NewResponse(req.ID, result))
}

// HandleHealth is the liveness probe.
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleCapabilities keeps the first-generation discovery endpoint alive: a
// plain read-only view of the tool catalog.
func (h *Handler) HandleCapabilities(c *gin.Context) {
	type capability struct {
		Name        string      `json:"name"`
		Description string      `json:"description"`
		Parameters  InputSchema `json:"parameters"`
	}

	tools := Tools()
	caps := make([]capability, 0, len(tools))
	for _, t := range tools {
		caps = append(caps, capability{Name: t.Name, Description: t.Description, Parameters: t.InputSchema})
	}
	c.JSON(http.StatusOK, caps)
}
