package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"todopix/internal/store"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the item store as MCP tools.
type MCPServer struct {
	store store.Store
}

func NewMCPServer(s store.Store) *MCPServer {
	return &MCPServer{store: s}
}

func (m *MCPServer) listTodosHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := m.store.List()
	if len(items) == 0 {
		return mcp.NewToolResultText("The to-do list is empty."), nil
	}

	var lines []string
	for _, item := range items {
		line := fmt.Sprintf("[%d] %s", item.ID, item.Text)
		if item.Image != nil {
			line += fmt.Sprintf(" (photo: %s)", *item.Image)
		}
		lines = append(lines, line)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Found %d items:\n%s", len(items), strings.Join(lines, "\n"))), nil
}

func (m *MCPServer) addTodoHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil
	}

	item, err := m.store.Append(text, nil)
	if err != nil {
		if errors.Is(err, store.ErrEmptyText) {
			return mcp.NewToolResultError("text is required"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("store error: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Added item [%d] %s", item.ID, item.Text)), nil
}

// NewServer builds the streamable HTTP MCP server with the to-do tools
// registered.
func NewServer(s store.Store) *server.StreamableHTTPServer {
	m := NewMCPServer(s)

	mcpServer := server.NewMCPServer("todopix", "1.0.0")

	listTool := mcp.NewTool("list_todos",
		mcp.WithDescription("List all to-do items in insertion order."),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
	addTool := mcp.NewTool("add_todo",
		mcp.WithDescription("Add a new to-do item."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The item text; must be non-blank")),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	mcpServer.AddTool(listTool, m.listTodosHandler)
	mcpServer.AddTool(addTool, m.addTodoHandler)

	return server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
}
