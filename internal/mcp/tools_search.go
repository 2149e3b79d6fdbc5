// ABOUTME: Search and browse tools: AFTS, sorted, metadata, CMIS, children listing
// ABOUTME: Empty queries return usage text without touching the network
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
)

const defaultMaxResults = 25

// SearchContentInput defines the input for the search_content tool.
type SearchContentInput struct {
	Query      string `json:"query" jsonschema:"AFTS search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 25)"`
	NodeType   string `json:"node_type,omitempty" jsonschema:"Content model type filter (default cm:content)"`
}

// SearchOutput defines the output for all search tools.
type SearchOutput struct {
	Count   int         `json:"count" jsonschema:"Number of results returned"`
	Results []SearchHit `json:"results" jsonschema:"Matching nodes in result order"`
}

const searchContentUsage = `Content Search Tool

Usage: Provide a search query to search Alfresco repository content.

Example searches:
- admin (finds items with 'admin' in name or content)
- name:test* (finds items with names starting with 'test')
- modified:[2024-01-01 TO 2024-12-31] (finds items modified in 2024)
- TYPE:"cm:content" (finds all documents)
- TYPE:"cm:folder" (finds all folders)

Search uses AFTS (Alfresco Full Text Search) syntax for flexible content discovery.
By default, searches for documents (cm:content) unless a different type is specified.
`

func (s *Server) registerSearchTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_content",
		Description: "Search the Alfresco repository using AFTS full-text query syntax.",
	}, s.handleSearchContent)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "advanced_search",
		Description: "AFTS search with explicit sort field and direction.",
	}, s.handleAdvancedSearch)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_by_metadata",
		Description: "Search by metadata filters: term, creator, and content type.",
	}, s.handleSearchByMetadata)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cmis_search",
		Description: "Search the repository using a CMIS SQL query.",
	}, s.handleCMISSearch)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "browse_repository",
		Description: "List the children of a repository folder.",
	}, s.handleBrowseRepository)
}

// withTypeFilter appends a TYPE clause unless the query already carries one.
func withTypeFilter(query, nodeType string) string {
	if strings.Contains(strings.ToUpper(query), "TYPE:") {
		return query
	}
	if query == "*" {
		return fmt.Sprintf("TYPE:%q", nodeType)
	}
	return fmt.Sprintf("(%s) AND TYPE:%q", query, nodeType)
}

func maxOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxResults
	}
	return n
}

func (s *Server) handleSearchContent(ctx context.Context, req *mcp.CallToolRequest, input SearchContentInput) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return textResult(searchContentUsage), SearchOutput{}, nil
	}

	nodeType := strings.TrimSpace(input.NodeType)
	if nodeType == "" {
		nodeType = "cm:content"
	}
	query := withTypeFilter(input.Query, nodeType)

	logging.Debug("search_content", "query", query)

	nodes, err := s.client.Search(ctx, query, alfresco.SearchOptions{
		MaxItems: maxOrDefault(input.MaxResults),
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("content search failed: %w", err)
	}

	return searchResult(nodes)
}

// AdvancedSearchInput defines the input for the advanced_search tool.
type AdvancedSearchInput struct {
	Query         string `json:"query" validate:"required" jsonschema:"AFTS search query"`
	SortField     string `json:"sort_field,omitempty" jsonschema:"Field to sort by (default cm:modified)"`
	SortAscending bool   `json:"sort_ascending,omitempty" jsonschema:"Sort ascending (default false)"`
	MaxResults    int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

func (s *Server) handleAdvancedSearch(ctx context.Context, req *mcp.CallToolRequest, input AdvancedSearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if err := validate.StructCtx(ctx, input); err != nil {
		return nil, SearchOutput{}, fmt.Errorf("query is required")
	}

	sortField := strings.TrimSpace(input.SortField)
	if sortField == "" {
		sortField = "cm:modified"
	}

	nodes, err := s.client.Search(ctx, input.Query, alfresco.SearchOptions{
		MaxItems:      maxOrDefault(input.MaxResults),
		SortField:     sortField,
		SortAscending: input.SortAscending,
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("advanced search failed: %w", err)
	}

	return searchResult(nodes)
}

// SearchByMetadataInput defines the input for the search_by_metadata tool.
type SearchByMetadataInput struct {
	Term        string `json:"term,omitempty" jsonschema:"Free-text term to match"`
	Creator     string `json:"creator,omitempty" jsonschema:"Creator username filter"`
	ContentType string `json:"content_type,omitempty" jsonschema:"Content model type filter"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

const searchByMetadataUsage = `Metadata Search Tool

Usage: Provide at least one filter to search by metadata.

Filters:
- term: free-text term matched against content and names
- creator: username that created the node (e.g. admin)
- content_type: content model type (e.g. cm:content, cm:folder)

Filters are combined with AND.
`

func (s *Server) handleSearchByMetadata(ctx context.Context, req *mcp.CallToolRequest, input SearchByMetadataInput) (*mcp.CallToolResult, SearchOutput, error) {
	var clauses []string
	if term := strings.TrimSpace(input.Term); term != "" {
		clauses = append(clauses, fmt.Sprintf("(%s)", term))
	}
	if creator := strings.TrimSpace(input.Creator); creator != "" {
		clauses = append(clauses, fmt.Sprintf("creator:%q", creator))
	}
	if contentType := strings.TrimSpace(input.ContentType); contentType != "" {
		clauses = append(clauses, fmt.Sprintf("TYPE:%q", contentType))
	}
	if len(clauses) == 0 {
		return textResult(searchByMetadataUsage), SearchOutput{}, nil
	}

	nodes, err := s.client.Search(ctx, strings.Join(clauses, " AND "), alfresco.SearchOptions{
		MaxItems: maxOrDefault(input.MaxResults),
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("metadata search failed: %w", err)
	}

	return searchResult(nodes)
}

// CMISSearchInput defines the input for the cmis_search tool.
type CMISSearchInput struct {
	CMISQuery  string `json:"cmis_query" jsonschema:"CMIS SQL query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (default 25)"`
}

const cmisSearchUsage = `CMIS Search Tool

Usage: Provide a CMIS SQL query to search Alfresco repository.

Example CMIS queries:
- SELECT * FROM cmis:document WHERE cmis:name LIKE 'test%'
- SELECT * FROM cmis:folder WHERE CONTAINS('project')
- SELECT * FROM cmis:document WHERE cmis:creationDate > '2024-01-01T00:00:00.000Z'
- SELECT * FROM cmis:document WHERE cmis:contentStreamMimeType = 'application/pdf'

CMIS provides precise SQL queries for exact matching and filtering.
`

func (s *Server) handleCMISSearch(ctx context.Context, req *mcp.CallToolRequest, input CMISSearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if strings.TrimSpace(input.CMISQuery) == "" {
		return textResult(cmisSearchUsage), SearchOutput{}, nil
	}

	nodes, err := s.client.Search(ctx, input.CMISQuery, alfresco.SearchOptions{
		Language: alfresco.LanguageCMIS,
		MaxItems: maxOrDefault(input.MaxResults),
	})
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("CMIS search failed: %w", err)
	}

	return searchResult(nodes)
}

func searchResult(nodes []alfresco.Node) (*mcp.CallToolResult, SearchOutput, error) {
	output := SearchOutput{
		Count:   len(nodes),
		Results: make([]SearchHit, 0, len(nodes)),
	}
	for _, n := range nodes {
		output.Results = append(output.Results, hitFromNode(n))
	}

	if len(nodes) == 0 {
		return textResult("No items matched the search query."), output, nil
	}
	return textResult(formatHits(nodes)), output, nil
}

// BrowseRepositoryInput defines the input for the browse_repository tool.
type BrowseRepositoryInput struct {
	ParentID string `json:"parent_id,omitempty" jsonschema:"Folder node to list (default -my-)"`
	MaxItems int    `json:"max_items,omitempty" jsonschema:"Maximum number of entries (default 25)"`
}

func (s *Server) handleBrowseRepository(ctx context.Context, req *mcp.CallToolRequest, input BrowseRepositoryInput) (*mcp.CallToolResult, SearchOutput, error) {
	parentID := cleanNodeID(input.ParentID)
	if parentID == "" {
		parentID = "-my-"
	}

	nodes, err := s.client.ListChildren(ctx, parentID, maxOrDefault(input.MaxItems))
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("failed to browse %s: %w", parentID, err)
	}

	output := SearchOutput{
		Count:   len(nodes),
		Results: make([]SearchHit, 0, len(nodes)),
	}
	for _, n := range nodes {
		output.Results = append(output.Results, hitFromNode(n))
	}

	if len(nodes) == 0 {
		return textResult(fmt.Sprintf("Folder %s is empty.", parentID)), output, nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Contents of %s (%d items):\n\n", parentID, len(nodes)))
	for _, n := range nodes {
		kind := "file"
		if n.IsFolder {
			kind = "folder"
		}
		sb.WriteString(fmt.Sprintf("- %s [%s] (ID: %s", n.Name, kind, n.ID))
		if n.IsFile && n.Content != nil {
			sb.WriteString(", " + humanSize(n.Content.SizeInBytes))
		}
		sb.WriteString(")\n")
	}

	return textResult(sb.String()), output, nil
}
