// ABOUTME: Test harness for the MCP tool handlers
// ABOUTME: Backs the Alfresco client with an httptest server and temp directories
package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/checkout"
	"github.com/contentgrid/alfresco-mcp/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// testServer wires a Server against a fake Alfresco backend.
type testServer struct {
	*Server
	store     *checkout.Store
	downloads string
}

func newTestServer(t *testing.T, handler http.Handler) *testServer {
	t.Helper()
	backend := httptest.NewServer(handler)
	t.Cleanup(backend.Close)

	cfg := &config.Config{
		URL:         backend.URL,
		Username:    "admin",
		Password:    "admin",
		VerifySSL:   true,
		TimeoutSecs: 5,
		MaxFileSize: config.DefaultMaxFileSize,
	}
	store := checkout.NewStore(t.TempDir())
	downloads := t.TempDir()
	return &testServer{
		Server:    NewServer(cfg, alfresco.New(cfg), store, downloads),
		store:     store,
		downloads: downloads,
	}
}

// noNetwork fails the test on any backend contact.
func noNetwork(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected backend request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(body)); err != nil {
		t.Errorf("write response: %v", err)
	}
}

func nodeEntryJSON(id, name string, isFile bool) string {
	kind := `"isFile": true, "isFolder": false`
	nodeType := "cm:content"
	if !isFile {
		kind = `"isFile": false, "isFolder": true`
		nodeType = "cm:folder"
	}
	return `{"entry": {"id": "` + id + `", "name": "` + name + `", "nodeType": "` + nodeType + `", ` + kind + `,
		"content": {"mimeType": "text/plain", "sizeInBytes": 42},
		"properties": {"cm:versionLabel": "1.1"}}}`
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("expected a tool result with content")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestCleanNodeID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abc-123", "abc-123"},
		{"  abc-123  ", "abc-123"},
		{"alfresco://node/abc-123", "abc-123"},
		{"alfresco://abc-123", "abc-123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cleanNodeID(tt.in); got != tt.want {
			t.Errorf("cleanNodeID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolOrDefault(t *testing.T) {
	f := false
	if boolOrDefault(nil, true) != true {
		t.Error("nil should yield the default")
	}
	if boolOrDefault(&f, true) != false {
		t.Error("explicit false should win over the default")
	}
}

// TestMissingNodeIDNeverTouchesNetwork sweeps the node_id-required handlers.
func TestMissingNodeIDNeverTouchesNetwork(t *testing.T) {
	ts := newTestServer(t, noNetwork(t))
	ctx := context.Background()

	calls := map[string]func() error{
		"get_node_properties": func() error {
			_, _, err := ts.handleGetNodeProperties(ctx, nil, GetNodePropertiesInput{})
			return err
		},
		"update_node_properties": func() error {
			_, _, err := ts.handleUpdateNodeProperties(ctx, nil, UpdateNodePropertiesInput{Name: "x"})
			return err
		},
		"delete_node": func() error {
			_, _, err := ts.handleDeleteNode(ctx, nil, DeleteNodeInput{})
			return err
		},
		"download_document": func() error {
			_, _, err := ts.handleDownloadDocument(ctx, nil, DownloadDocumentInput{})
			return err
		},
		"checkout_document": func() error {
			_, _, err := ts.handleCheckoutDocument(ctx, nil, CheckoutDocumentInput{})
			return err
		},
		"checkin_document": func() error {
			_, _, err := ts.handleCheckinDocument(ctx, nil, CheckinDocumentInput{})
			return err
		},
		"cancel_checkout": func() error {
			_, _, err := ts.handleCancelCheckout(ctx, nil, CancelCheckoutInput{})
			return err
		},
	}
	for name, call := range calls {
		if err := call(); err == nil {
			t.Errorf("%s: expected a validation error for a missing node_id", name)
		}
	}
}

func TestExpandPathStripsQuotesAndTilde(t *testing.T) {
	if got := expandPath(`"/tmp/report.txt"`); got != "/tmp/report.txt" {
		t.Errorf("quoted path not cleaned: %q", got)
	}
	if got := expandPath("~/notes.txt"); strings.HasPrefix(got, "~") {
		t.Errorf("tilde not expanded: %q", got)
	}
}
