package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"

	"github.com/pageza/healthara/backend/internal/service"
	"github.com/pageza/healthara/backend/internal/session"
)

type mcpTool func(s *session.Session, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

// MCPHandler exposes the profile tools as MCP tool calls
type MCPHandler struct {
	tools map[string]mcpTool
}

func NewMCPHandler() *MCPHandler {
	return &MCPHandler{tools: map[string]mcpTool{
		"profile_summary":  profileSummaryTool,
		"analyze_diet":     analyzeDietTool,
		"nutrition_prompt": nutritionPromptTool,
	}}
}

func (h *MCPHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/mcp", h.CallTool)
}

func (h *MCPHandler) CallTool(c *gin.Context) {
	s, ok := requireSession(c)
	if !ok {
		return
	}

	var req protocol.CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	tool, found := h.tools[req.Name]
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tool: " + req.Name})
		return
	}

	result, err := tool(s, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

type analyzeDietParams struct {
	Foods []string `json:"foods"`
}

type nutritionPromptParams struct {
	Query string `json:"query"`
}

func profileSummaryTool(s *session.Session, _ *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	return textResult(s.Summary()), nil
}

func analyzeDietTool(s *session.Session, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params analyzeDietParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if len(params.Foods) == 0 {
		return nil, fmt.Errorf("foods is required")
	}
	return jsonResult(service.AnalyzeDietCompatibility(params.Foods, s.Profile()))
}

func nutritionPromptTool(s *session.Session, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params nutritionPromptParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	return textResult(service.BuildNutritionPrompt(s.Profile(), params.Query)), nil
}

// extractParams converts the Arguments map into target via JSON
func extractParams(req *protocol.CallToolRequest, target any) error {
	raw, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("failed to marshal arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

func jsonResult(v any) (*protocol.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return textResult(string(raw)), nil
}

func textResult(text string) *protocol.CallToolResult {
	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{Type: "text", Text: text},
		},
	}
}
