package api

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcptools/toolgate/internal/contracts"
	"github.com/mcptools/toolgate/internal/errors"
)

// ServersResponse represents the wrapped API response for a list of servers.
type ServersResponse struct {
	Body []string
}

// ServerToolsRequest represents the incoming API request for the tool schemas of a server.
type ServerToolsRequest struct {
	Name string `doc:"Name of the server to lookup tools for" example:"time" path:"name"`
}

// ServerToolCallRequest represents the incoming API request to call a tool on a particular server.
type ServerToolCallRequest struct {
	Server string         `doc:"Name of the server"       example:"time"             path:"server"`
	Tool   string         `doc:"Name of the tool to call" example:"get_current_time" path:"tool"`
	Body   map[string]any `doc:"Body of the tool to call"                            path:"body"`
}

// RegisterServerRoutes sets up server and tool related API endpoint routes.
func RegisterServerRoutes(routerAPI huma.API, accessor contracts.MCPClientAccessor, apiPathPrefix string) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	// Route at the root of the group (no path specified).
	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Summary:     "List all servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersResponse, error) {
			return handleServers(accessor)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listTools",
			Method:      http.MethodGet,
			Path:        "/{name}/tools",
			Summary:     "List server tools",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ServerToolsRequest) (*ToolsResponse, error) {
			return handleServerTools(accessor, input.Name)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "callTool",
			Method:      http.MethodPost,
			Path:        "/{server}/tools/{tool}",
			Summary:     "Call a tool for a server",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ServerToolCallRequest) (*ToolCallResponse, error) {
			return handleServerToolCall(accessor, input.Server, input.Tool, input.Body)
		},
	)
}

// handleServers returns the list of running tool servers, sorted by name.
func handleServers(accessor contracts.MCPClientAccessor) (*ServersResponse, error) {
	servers := accessor.List()
	slices.Sort(servers)

	resp := &ServersResponse{}
	resp.Body = servers

	return resp, nil
}

// handleServerTools returns the schemas for the tools that exist for a given server.
func handleServerTools(accessor contracts.MCPClientAccessor, name string) (*ToolsResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mcpClient, clientOk := accessor.Client(name)
	if !clientOk {
		return nil, fmt.Errorf("%w: %s", errors.ErrServerNotFound, name)
	}

	knownTools, toolsOk := accessor.Tools(name)
	if !toolsOk || len(knownTools) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrToolsNotFound, name)
	}

	result, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrToolListFailed, name)
	}
	if result == nil {
		return nil, fmt.Errorf("%w: %s: no result", errors.ErrToolListFailed, name)
	}

	tools := make([]Tool, 0, len(result.Tools))
	for _, tool := range result.Tools {
		if slices.Contains(knownTools, tool.Name) {
			data, err := domainTool(tool).ToAPIType()
			if err != nil {
				return nil, err
			}
			tools = append(tools, data)
		}
	}

	resp := &ToolsResponse{}
	resp.Body = Tools{Tools: tools}

	return resp, nil
}

// handleServerToolCall handles making a call to a specific tool on a tool server.
func handleServerToolCall(
	accessor contracts.MCPClientAccessor,
	server string,
	tool string,
	data map[string]any,
) (*ToolCallResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mcpClient, clientOk := accessor.Client(server)
	if !clientOk {
		return nil, fmt.Errorf("%w: %s", errors.ErrServerNotFound, server)
	}

	knownTools, toolsOk := accessor.Tools(server)
	if !toolsOk || len(knownTools) == 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrToolsNotFound, server)
	}

	if !slices.Contains(knownTools, tool) {
		return nil, fmt.Errorf("%w: %s/%s", errors.ErrToolForbidden, server, tool)
	}

	result, err := mcpClient.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      tool,
			Arguments: data,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %w", errors.ErrToolCallFailed, server, tool, err)
	} else if result == nil {
		return nil, fmt.Errorf("%w: %s/%s: result was nil", errors.ErrToolCallFailedUnknown, server, tool)
	} else if result.IsError {
		return nil, fmt.Errorf("%w: %s/%s: %v", errors.ErrToolCallFailed, server, tool, extractMessage(result.Content))
	}

	resp := &ToolCallResponse{}
	resp.Body = extractMessage(result.Content)

	return resp, nil
}

// extractMessage attempts to extract a single message from content returned by a tool call.
func extractMessage(content []mcp.Content) string {
	if len(content) == 0 {
		return ""
	}

	// Most tools return a single text item; return the first one found.
	for _, c := range content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}

	return ""
}
