// ABOUTME: Folder and node management tools: create, inspect, update, delete
// ABOUTME: Node IDs are normalized before hitting the repository
package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
)

func (s *Server) registerNodeTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_folder",
		Description: "Create a folder under a parent node.",
	}, s.handleCreateFolder)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_node_properties",
		Description: "Fetch the metadata and properties of a node.",
	}, s.handleGetNodeProperties)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_node_properties",
		Description: "Update the name, title, description, or author of a node.",
	}, s.handleUpdateNodeProperties)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_node",
		Description: "Delete a node, to the trashcan by default or permanently.",
	}, s.handleDeleteNode)
}

// CreateFolderInput defines the input for the create_folder tool.
type CreateFolderInput struct {
	FolderName  string `json:"folder_name" validate:"required" jsonschema:"Name of the folder to create"`
	ParentID    string `json:"parent_id,omitempty" jsonschema:"Parent folder node (default -shared-)"`
	Description string `json:"description,omitempty" jsonschema:"Folder description (cm:description)"`
}

// CreateFolderOutput defines the output for the create_folder tool.
type CreateFolderOutput struct {
	ID       string `json:"id" jsonschema:"Node identifier of the new folder"`
	Name     string `json:"name" jsonschema:"Folder name as created (may be renamed on conflict)"`
	ParentID string `json:"parent_id" jsonschema:"Parent folder node identifier"`
}

func (s *Server) handleCreateFolder(ctx context.Context, req *mcp.CallToolRequest, input CreateFolderInput) (*mcp.CallToolResult, CreateFolderOutput, error) {
	if err := validate.StructCtx(ctx, input); err != nil {
		return nil, CreateFolderOutput{}, fmt.Errorf("folder_name is required")
	}

	parentID := cleanNodeID(input.ParentID)
	if parentID == "" {
		parentID = "-shared-"
	}

	node, err := s.client.CreateFolder(ctx, parentID, input.FolderName, input.Description)
	if err != nil {
		return nil, CreateFolderOutput{}, fmt.Errorf("failed to create folder %q: %w", input.FolderName, err)
	}

	output := CreateFolderOutput{ID: node.ID, Name: node.Name, ParentID: parentID}
	text := fmt.Sprintf("Folder created successfully.\n\nName: %s\nNode ID: %s\nParent: %s\n", node.Name, node.ID, parentID)
	return textResult(text), output, nil
}

// GetNodePropertiesInput defines the input for the get_node_properties tool.
type GetNodePropertiesInput struct {
	NodeID string `json:"node_id" jsonschema:"Node to inspect"`
}

// NodePropertiesOutput defines the output for the get_node_properties tool.
type NodePropertiesOutput struct {
	ID         string            `json:"id" jsonschema:"Node identifier"`
	Name       string            `json:"name" jsonschema:"Node name"`
	NodeType   string            `json:"node_type" jsonschema:"Content model type"`
	IsFolder   bool              `json:"is_folder" jsonschema:"True when the node is a folder"`
	Path       string            `json:"path,omitempty" jsonschema:"Repository path of the node"`
	CreatedAt  string            `json:"created_at,omitempty" jsonschema:"Creation timestamp"`
	CreatedBy  string            `json:"created_by,omitempty" jsonschema:"Creator username"`
	ModifiedAt string            `json:"modified_at,omitempty" jsonschema:"Last modification timestamp"`
	ModifiedBy string            `json:"modified_by,omitempty" jsonschema:"Last modifier username"`
	SizeBytes  int64             `json:"size_bytes,omitempty" jsonschema:"Content size in bytes for files"`
	MimeType   string            `json:"mime_type,omitempty" jsonschema:"Content MIME type for files"`
	Version    string            `json:"version,omitempty" jsonschema:"Version label if versioned"`
	Properties map[string]string `json:"properties,omitempty" jsonschema:"String-valued node properties"`
}

func (s *Server) handleGetNodeProperties(ctx context.Context, req *mcp.CallToolRequest, input GetNodePropertiesInput) (*mcp.CallToolResult, NodePropertiesOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, NodePropertiesOutput{}, fmt.Errorf("node_id is required")
	}

	node, err := s.client.GetNode(ctx, nodeID, "properties", "path")
	if err != nil {
		return nil, NodePropertiesOutput{}, fmt.Errorf("failed to fetch node %s: %w", nodeID, err)
	}

	output := NodePropertiesOutput{
		ID:       node.ID,
		Name:     node.Name,
		NodeType: node.NodeType,
		IsFolder: node.IsFolder,
		Version:  node.VersionLabel(),
	}
	if node.Path != nil {
		output.Path = node.Path.Name
	}
	output.CreatedAt = node.CreatedAt
	output.ModifiedAt = node.ModifiedAt
	if node.CreatedByUser != nil {
		output.CreatedBy = node.CreatedByUser.DisplayName
	}
	if node.ModifiedByUser != nil {
		output.ModifiedBy = node.ModifiedByUser.DisplayName
	}
	if node.Content != nil {
		output.SizeBytes = node.Content.SizeInBytes
		output.MimeType = node.Content.MimeType
	}
	if len(node.Properties) > 0 {
		output.Properties = make(map[string]string, len(node.Properties))
		for key := range node.Properties {
			if v := node.StringProperty(key); v != "" {
				output.Properties[key] = v
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Properties for %s:\n\n", node.Name))
	sb.WriteString(fmt.Sprintf("Node ID: %s\n", node.ID))
	sb.WriteString(fmt.Sprintf("Type: %s\n", node.NodeType))
	if output.Path != "" {
		sb.WriteString(fmt.Sprintf("Path: %s\n", output.Path))
	}
	if output.CreatedAt != "" {
		sb.WriteString(fmt.Sprintf("Created: %s by %s\n", output.CreatedAt, output.CreatedBy))
	}
	if output.ModifiedAt != "" {
		sb.WriteString(fmt.Sprintf("Modified: %s by %s\n", output.ModifiedAt, output.ModifiedBy))
	}
	if node.Content != nil {
		sb.WriteString(fmt.Sprintf("Size: %s\n", humanSize(node.Content.SizeInBytes)))
		sb.WriteString(fmt.Sprintf("MIME type: %s\n", node.Content.MimeType))
	}
	if output.Version != "" {
		sb.WriteString(fmt.Sprintf("Version: %s\n", output.Version))
	}
	if len(output.Properties) > 0 {
		keys := make([]string, 0, len(output.Properties))
		for key := range output.Properties {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		sb.WriteString("\nCustom properties:\n")
		for _, key := range keys {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", key, output.Properties[key]))
		}
	}

	return textResult(sb.String()), output, nil
}

// UpdateNodePropertiesInput defines the input for the update_node_properties tool.
type UpdateNodePropertiesInput struct {
	NodeID      string `json:"node_id" jsonschema:"Node to update"`
	Name        string `json:"name,omitempty" jsonschema:"New node name"`
	Title       string `json:"title,omitempty" jsonschema:"New title (cm:title)"`
	Description string `json:"description,omitempty" jsonschema:"New description (cm:description)"`
	Author      string `json:"author,omitempty" jsonschema:"New author (cm:author)"`
}

// UpdateNodePropertiesOutput defines the output for the update_node_properties tool.
type UpdateNodePropertiesOutput struct {
	ID      string   `json:"id" jsonschema:"Node identifier"`
	Name    string   `json:"name" jsonschema:"Node name after the update"`
	Updated []string `json:"updated" jsonschema:"Names of the fields that were changed"`
}

func (s *Server) handleUpdateNodeProperties(ctx context.Context, req *mcp.CallToolRequest, input UpdateNodePropertiesInput) (*mcp.CallToolResult, UpdateNodePropertiesOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, UpdateNodePropertiesOutput{}, fmt.Errorf("node_id is required")
	}

	update := alfresco.NodeUpdate{Properties: map[string]any{}}
	var updated []string
	if input.Name != "" {
		update.Name = input.Name
		updated = append(updated, "name")
	}
	if input.Title != "" {
		update.Properties["cm:title"] = input.Title
		updated = append(updated, "title")
	}
	if input.Description != "" {
		update.Properties["cm:description"] = input.Description
		updated = append(updated, "description")
	}
	if input.Author != "" {
		update.Properties["cm:author"] = input.Author
		updated = append(updated, "author")
	}
	if len(updated) == 0 {
		return nil, UpdateNodePropertiesOutput{}, fmt.Errorf("nothing to update: provide name, title, description, or author")
	}
	if len(update.Properties) == 0 {
		update.Properties = nil
	}

	node, err := s.client.UpdateNode(ctx, nodeID, update)
	if err != nil {
		return nil, UpdateNodePropertiesOutput{}, fmt.Errorf("failed to update node %s: %w", nodeID, err)
	}

	output := UpdateNodePropertiesOutput{ID: node.ID, Name: node.Name, Updated: updated}
	text := fmt.Sprintf("Node %s updated successfully.\n\nChanged fields: %s\n", node.Name, strings.Join(updated, ", "))
	return textResult(text), output, nil
}

// DeleteNodeInput defines the input for the delete_node tool.
type DeleteNodeInput struct {
	NodeID    string `json:"node_id" jsonschema:"Node to delete"`
	Permanent bool   `json:"permanent,omitempty" jsonschema:"Skip the trashcan and delete permanently (default false)"`
}

// DeleteNodeOutput defines the output for the delete_node tool.
type DeleteNodeOutput struct {
	ID        string `json:"id" jsonschema:"Node identifier that was deleted"`
	Permanent bool   `json:"permanent" jsonschema:"True when the node bypassed the trashcan"`
}

func (s *Server) handleDeleteNode(ctx context.Context, req *mcp.CallToolRequest, input DeleteNodeInput) (*mcp.CallToolResult, DeleteNodeOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, DeleteNodeOutput{}, fmt.Errorf("node_id is required")
	}

	if err := s.client.DeleteNode(ctx, nodeID, input.Permanent); err != nil {
		return nil, DeleteNodeOutput{}, fmt.Errorf("failed to delete node %s: %w", nodeID, err)
	}

	output := DeleteNodeOutput{ID: nodeID, Permanent: input.Permanent}
	text := fmt.Sprintf("Node %s moved to the trashcan.", nodeID)
	if input.Permanent {
		text = fmt.Sprintf("Node %s permanently deleted.", nodeID)
	}
	return textResult(text), output, nil
}
