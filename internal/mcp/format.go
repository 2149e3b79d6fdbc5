// ABOUTME: Presentation helpers shared by tool handlers
// ABOUTME: Sizes, filename sanitizing, and search hit rendering
package mcp

import (
	"fmt"
	"strings"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
)

// humanSize renders a byte count the way the tool results display it.
func humanSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// sanitizeFilename strips control characters and characters that are
// invalid in filenames on common filesystems.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer("\n", "", "\r", "", "\t", "").Replace(name)
	name = strings.NewReplacer(
		"<", "_", ">", "_", ":", "_", `"`, "_", "|", "_", "?", "_", "*", "_",
		"/", "_", "\\", "_",
	).Replace(name)
	if name == "" || strings.Trim(name, "_") == "" {
		return "document"
	}
	return name
}

// downloadFileName disambiguates a downloaded file by inserting the node ID
// before the extension.
func downloadFileName(filename, nodeID string) string {
	filename = sanitizeFilename(filename)
	if dot := strings.LastIndex(filename, "."); dot > 0 {
		return filename[:dot] + "_" + nodeID + filename[dot:]
	}
	return filename + "_" + nodeID
}

// SearchHit is one entry of a search or browse result.
type SearchHit struct {
	ID        string `json:"id" jsonschema:"Node identifier"`
	Name      string `json:"name" jsonschema:"Node name"`
	NodeType  string `json:"node_type" jsonschema:"Content model type"`
	CreatedAt string `json:"created_at,omitempty" jsonschema:"Creation timestamp"`
	IsFolder  bool   `json:"is_folder,omitempty" jsonschema:"Whether the node is a folder"`
	Size      int64  `json:"size,omitempty" jsonschema:"Content size in bytes for files"`
}

func hitFromNode(n alfresco.Node) SearchHit {
	hit := SearchHit{
		ID:        n.ID,
		Name:      n.Name,
		NodeType:  n.NodeType,
		CreatedAt: n.CreatedAt,
		IsFolder:  n.IsFolder,
	}
	if n.Content != nil {
		hit.Size = n.Content.SizeInBytes
	}
	return hit
}

// formatHits renders search results as the numbered list shown to the model.
func formatHits(nodes []alfresco.Node) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d item(s) matching the search query:\n\n", len(nodes)))
	for i, n := range nodes {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, n.Name))
		sb.WriteString(fmt.Sprintf("   - ID: %s\n", n.ID))
		sb.WriteString(fmt.Sprintf("   - Type: %s\n", n.NodeType))
		if n.CreatedAt != "" {
			sb.WriteString(fmt.Sprintf("   - Created: %s\n", n.CreatedAt))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
