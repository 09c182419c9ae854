package api

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolCallResponse represents the wrapped API response for calling a tool.
type ToolCallResponse struct {
	Body string
}

// Tool describes a single callable tool advertised by a tool server.
type Tool struct {
	Name        string      `json:"name"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	InputSchema *JSONSchema `json:"inputSchema,omitempty"`
}

// JSONSchema is the subset of JSON Schema carried through from tool definitions.
type JSONSchema struct {
	Type       string         `json:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Required   []string       `json:"required,omitempty"`
}

// Tools represents a collection of Tool.
type Tools struct {
	Tools []Tool `json:"tools"`
}

// ToolsResponse represents the wrapped API response for listing tools.
type ToolsResponse struct {
	Body Tools
}

// domainTool wraps mcp.Tool for conversion to Tool via ToAPIType.
type domainTool mcp.Tool

// ToAPIType converts a wrapped domain type to Tool.
func (d domainTool) ToAPIType() (Tool, error) {
	var inputSchema *JSONSchema
	if d.InputSchema.Type != "" {
		inputSchema = &JSONSchema{
			Type:       d.InputSchema.Type,
			Properties: d.InputSchema.Properties,
			Required:   d.InputSchema.Required,
		}
	}

	return Tool{
		Name:        d.Name,
		Title:       d.Annotations.Title,
		Description: d.Description,
		InputSchema: inputSchema,
	}, nil
}
