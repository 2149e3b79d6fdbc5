// ABOUTME: Repository discovery: the repository_info tool and the info resource
// ABOUTME: Both read the Alfresco discovery API
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const repositoryInfoURI = "alfresco://repository/info"

func (s *Server) registerResources() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "repository_info",
		Description: "Report the Alfresco repository edition, version, and status.",
	}, s.handleRepositoryInfoTool)

	infoResource := &mcp.Resource{
		URI:         repositoryInfoURI,
		Name:        "Repository Information",
		Description: "Alfresco repository edition, version, and status from the discovery API",
		MIMEType:    "application/json",
	}
	s.mcpServer.AddResource(infoResource, s.handleRepositoryInfoResource)
}

// RepositoryInfoInput defines the input for the repository_info tool.
type RepositoryInfoInput struct{}

// RepositoryInfoOutput defines the output for the repository_info tool.
type RepositoryInfoOutput struct {
	Edition     string `json:"edition" jsonschema:"Repository edition (Community or Enterprise)"`
	Version     string `json:"version" jsonschema:"Repository version display string"`
	Schema      int    `json:"schema,omitempty" jsonschema:"Database schema number"`
	ReadOnly    bool   `json:"read_only" jsonschema:"True when the repository is in read-only mode"`
	AuditOn     bool   `json:"audit_on" jsonschema:"True when auditing is enabled"`
	QuickShare  bool   `json:"quick_share" jsonschema:"True when quick share is enabled"`
	Thumbnails  bool   `json:"thumbnails" jsonschema:"True when thumbnail generation is enabled"`
	ServerURL   string `json:"server_url" jsonschema:"Configured Alfresco server URL"`
}

func (s *Server) handleRepositoryInfoTool(ctx context.Context, req *mcp.CallToolRequest, input RepositoryInfoInput) (*mcp.CallToolResult, RepositoryInfoOutput, error) {
	info, err := s.client.RepositoryInfo(ctx)
	if err != nil {
		return nil, RepositoryInfoOutput{}, fmt.Errorf("failed to query repository information: %w", err)
	}

	output := RepositoryInfoOutput{
		Edition:    info.Edition,
		Version:    info.Version.Display,
		Schema:     info.Version.Schema,
		ReadOnly:   info.Status.IsReadOnly,
		AuditOn:    info.Status.IsAuditEnabled,
		QuickShare: info.Status.IsQuickShareEnabled,
		Thumbnails: info.Status.IsThumbnailGenerationEnabled,
		ServerURL:  s.cfg.URL,
	}

	var sb strings.Builder
	sb.WriteString("Alfresco Repository Information\n\n")
	sb.WriteString(fmt.Sprintf("Server: %s\n", s.cfg.URL))
	sb.WriteString(fmt.Sprintf("Edition: %s\n", info.Edition))
	sb.WriteString(fmt.Sprintf("Version: %s\n", info.Version.Display))
	if info.Version.Schema != 0 {
		sb.WriteString(fmt.Sprintf("Schema: %d\n", info.Version.Schema))
	}
	sb.WriteString(fmt.Sprintf("Read-only: %t\n", info.Status.IsReadOnly))
	sb.WriteString(fmt.Sprintf("Audit enabled: %t\n", info.Status.IsAuditEnabled))
	sb.WriteString(fmt.Sprintf("Quick share enabled: %t\n", info.Status.IsQuickShareEnabled))
	sb.WriteString(fmt.Sprintf("Thumbnail generation: %t\n", info.Status.IsThumbnailGenerationEnabled))

	return textResult(sb.String()), output, nil
}

func (s *Server) handleRepositoryInfoResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	info, err := s.client.RepositoryInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query repository information: %w", err)
	}

	payload := map[string]any{
		"server_url": s.cfg.URL,
		"edition":    info.Edition,
		"version":    info.Version.Display,
		"schema":     info.Version.Schema,
		"status": map[string]bool{
			"read_only":            info.Status.IsReadOnly,
			"audit_enabled":        info.Status.IsAuditEnabled,
			"quick_share_enabled":  info.Status.IsQuickShareEnabled,
			"thumbnail_generation": info.Status.IsThumbnailGenerationEnabled,
		},
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      repositoryInfoURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
