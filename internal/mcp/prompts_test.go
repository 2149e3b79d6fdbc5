// ABOUTME: Tests for the search-and-analyze prompt
// ABOUTME: Exercises analysis type selection and required arguments
package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// getPrompt drives the registered prompt handler through a fresh server.
func getPrompt(t *testing.T, args map[string]string) (*mcp.GetPromptResult, error) {
	t.Helper()
	ts := newTestServer(t, noNetwork(t))

	session, err := connectTestSession(t, ts.Server)
	if err != nil {
		t.Fatalf("connect session: %v", err)
	}
	return session.GetPrompt(context.Background(), &mcp.GetPromptParams{
		Name:      "search-and-analyze",
		Arguments: args,
	})
}

func connectTestSession(t *testing.T, s *Server) (*mcp.ClientSession, error) {
	t.Helper()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	if _, err := s.mcpServer.Connect(context.Background(), serverTransport, nil); err != nil {
		return nil, err
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { _ = session.Close() })
	return session, nil
}

func TestSearchAndAnalyzePromptDefaultsToSummary(t *testing.T) {
	result, err := getPrompt(t, map[string]string{"query": "contracts"})
	if err != nil {
		t.Fatalf("get prompt failed: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, `"contracts"`) {
		t.Errorf("prompt should embed the query: %s", text.Text)
	}
	if !strings.Contains(text.Text, "summary analysis") {
		t.Errorf("prompt should default to summary: %s", text.Text)
	}
	if !strings.Contains(text.Text, "search_content") {
		t.Errorf("prompt should reference the search tool: %s", text.Text)
	}
}

func TestSearchAndAnalyzePromptComplianceSection(t *testing.T) {
	result, err := getPrompt(t, map[string]string{
		"query":         "retention policy",
		"analysis_type": "compliance",
	})
	if err != nil {
		t.Fatalf("get prompt failed: %v", err)
	}
	text := result.Messages[0].Content.(*mcp.TextContent).Text
	if !strings.Contains(text, "Document retention analysis") {
		t.Errorf("compliance section missing: %s", text)
	}
}

func TestSearchAndAnalyzePromptRequiresQuery(t *testing.T) {
	if _, err := getPrompt(t, nil); err == nil {
		t.Fatal("expected an error for a missing query")
	}
}
