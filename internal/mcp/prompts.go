// ABOUTME: MCP prompt definitions for guided document workflows
// ABOUTME: search-and-analyze builds an analysis plan around the search tools
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var analysisSections = map[string]string{
	"summary": `- Document count and types
- Key themes and topics
- Most relevant documents
- Quick insights`,
	"detailed": `- Comprehensive document inventory
- Metadata analysis (dates, authors, sizes)
- Content categorization
- Compliance status
- Recommended actions
- Related search suggestions`,
	"trends": `- Temporal patterns (creation and modification dates)
- Document lifecycle analysis
- Usage and access patterns
- Version history insights
- Storage optimization recommendations`,
	"compliance": `- Document retention analysis
- Security classification review
- Access permissions audit
- Regulatory compliance status
- Risk assessment
- Remediation recommendations`,
}

// registerPrompts adds the guided workflow prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "search-and-analyze",
		Description: "Search the repository and analyze the matching documents",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "query",
				Description: "Search query for documents",
				Required:    true,
			},
			{
				Name:        "analysis_type",
				Description: "Type of analysis: summary, detailed, trends, or compliance (default summary)",
			},
		},
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		query := req.Params.Arguments["query"]
		if query == "" {
			return nil, fmt.Errorf("query argument is required")
		}
		analysisType := req.Params.Arguments["analysis_type"]
		section, ok := analysisSections[analysisType]
		if !ok {
			analysisType = "summary"
			section = analysisSections["summary"]
		}

		content := fmt.Sprintf(`Alfresco Document Analysis Request

Please search for documents matching %q and provide a %s analysis.

Step 1: Search
Use the search_content tool to find relevant documents.

Step 2: Analysis
Based on the search results, provide:
%s

Step 3: Recommendations
Provide actionable insights and next steps based on the %s analysis.`,
			query, analysisType, section, analysisType)

		result := &mcp.GetPromptResult{
			Description: fmt.Sprintf("Search and %s analysis for %q", analysisType, query),
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}
		return result, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
