// ABOUTME: MCP server wiring Alfresco operations into tools, resources, and prompts
// ABOUTME: Dependencies are injected once at startup; handlers hold no globals
package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/checkout"
	"github.com/contentgrid/alfresco-mcp/internal/config"
)

var validate = validator.New()

// Server exposes Alfresco content operations over MCP.
type Server struct {
	cfg       *config.Config
	client    *alfresco.Client
	checkouts *checkout.Store
	downloads string
	mcpServer *mcp.Server
}

// NewServer builds the MCP server around an already-constructed Alfresco
// client and checkout store. Plain downloads land in downloadsDir.
func NewServer(cfg *config.Config, client *alfresco.Client, checkouts *checkout.Store, downloadsDir string) *Server {
	impl := &mcp.Implementation{
		Name:    "alfresco-mcp",
		Version: "1.0.0",
	}

	s := &Server{
		cfg:       cfg,
		client:    client,
		checkouts: checkouts,
		downloads: downloadsDir,
		mcpServer: mcp.NewServer(impl, nil),
	}

	s.registerSearchTools()
	s.registerNodeTools()
	s.registerContentTools()
	s.registerLifecycleTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// cleanNodeID normalizes user-supplied node identifiers: whitespace is
// trimmed and alfresco:// URI forms are reduced to the trailing ID segment.
func cleanNodeID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "alfresco://") {
		parts := strings.Split(id, "/")
		id = parts[len(parts)-1]
	}
	return id
}

// textResult wraps a human-readable text block as a tool result. The typed
// output struct carries the same data for machine consumption.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// boolOrDefault resolves an optional boolean parameter whose default is not
// false.
func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// expandPath handles quoted and ~-prefixed user paths.
func expandPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), `"'`)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
