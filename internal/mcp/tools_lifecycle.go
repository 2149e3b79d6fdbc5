// ABOUTME: Document lifecycle tools: checkout with lock, checkin with versioning, cancel
// ABOUTME: Local working copies are tracked in the checkout manifest
package mcp

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/checkout"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
)

func (s *Server) registerLifecycleTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "checkout_document",
		Description: "Lock a document for editing and download a working copy.",
	}, s.handleCheckoutDocument)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "checkin_document",
		Description: "Upload edited content as a new version and release the lock.",
	}, s.handleCheckinDocument)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "cancel_checkout",
		Description: "Release a document lock and discard the local working copy.",
	}, s.handleCancelCheckout)
}

// CheckoutDocumentInput defines the input for the checkout_document tool.
type CheckoutDocumentInput struct {
	NodeID             string `json:"node_id" jsonschema:"Document node to check out"`
	DownloadForEditing *bool  `json:"download_for_editing,omitempty" jsonschema:"Download a working copy for local editing (default true)"`
}

// CheckoutDocumentOutput defines the output for the checkout_document tool.
type CheckoutDocumentOutput struct {
	ID        string `json:"id" jsonschema:"Document node identifier"`
	Name      string `json:"name" jsonschema:"Document name"`
	Locked    bool   `json:"locked" jsonschema:"True when the repository lock was acquired"`
	LocalFile string `json:"local_file,omitempty" jsonschema:"Path of the downloaded working copy"`
}

func (s *Server) handleCheckoutDocument(ctx context.Context, req *mcp.CallToolRequest, input CheckoutDocumentInput) (*mcp.CallToolResult, CheckoutDocumentOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("node_id is required")
	}

	node, err := s.client.GetNode(ctx, nodeID)
	if err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("failed to fetch node %s: %w", nodeID, err)
	}
	if !node.IsFile {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("node %s is not a document", nodeID)
	}

	locked := true
	if _, err := s.client.LockNode(ctx, nodeID); err != nil {
		switch {
		case alfresco.IsAlreadyLocked(err):
			return nil, CheckoutDocumentOutput{}, fmt.Errorf("document %s is already locked by another user", nodeID)
		case alfresco.IsUnsupported(err):
			// Some servers have no lock API; proceed with a download-only checkout.
			logging.Warn("lock API not supported, proceeding without lock", "node", nodeID)
			locked = false
		default:
			return nil, CheckoutDocumentOutput{}, fmt.Errorf("failed to lock document %s: %w", nodeID, err)
		}
	}

	output := CheckoutDocumentOutput{ID: nodeID, Name: node.Name, Locked: locked}

	if !boolOrDefault(input.DownloadForEditing, true) {
		text := fmt.Sprintf("Document checked out.\n\nName: %s\nNode ID: %s\nLock: %s\n\nNo working copy was downloaded. Use checkin_document with a file_path to check in changes.",
			node.Name, nodeID, lockStatus(locked))
		return textResult(text), output, nil
	}

	body, err := s.client.GetContent(ctx, nodeID, true)
	if err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("failed to download content of %s: %w", nodeID, err)
	}
	defer body.Close()

	dir, err := s.checkouts.Dir()
	if err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("cannot prepare checkout directory: %w", err)
	}

	rec := checkout.Record{
		OriginalNodeID:   nodeID,
		LockedNodeID:     nodeID,
		LocalFile:        checkout.WorkingCopyName(node.Name, nodeID),
		CheckoutTime:     time.Now().UTC().Format(time.RFC3339),
		OriginalFilename: node.Name,
	}
	localPath := s.checkouts.WorkingCopyPath(rec)
	f, err := os.Create(localPath)
	if err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("cannot create working copy in %s: %w", dir, err)
	}
	size, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("failed to write working copy %s: %w", localPath, err)
	}

	if err := s.checkouts.Put(rec); err != nil {
		return nil, CheckoutDocumentOutput{}, fmt.Errorf("failed to record checkout: %w", err)
	}

	output.LocalFile = localPath
	text := fmt.Sprintf(`Document checked out for editing.

Name: %s
Node ID: %s
Lock: %s
Working copy: %s
Size: %s

Edit the working copy, then use checkin_document to upload your changes as a new version, or cancel_checkout to discard them.`,
		node.Name, nodeID, lockStatus(locked), localPath, humanSize(size))
	return textResult(text), output, nil
}

func lockStatus(locked bool) string {
	if locked {
		return "acquired"
	}
	return "not supported by server"
}

// CheckinDocumentInput defines the input for the checkin_document tool.
type CheckinDocumentInput struct {
	NodeID       string `json:"node_id" jsonschema:"Original document node (not a working copy)"`
	Comment      string `json:"comment,omitempty" jsonschema:"Version comment"`
	MajorVersion bool   `json:"major_version,omitempty" jsonschema:"Create a major version instead of a minor one (default false)"`
	FilePath     string `json:"file_path,omitempty" jsonschema:"File to upload (defaults to the tracked working copy)"`
	NewName      string `json:"new_name,omitempty" jsonschema:"Rename the document during checkin"`
}

// CheckinDocumentOutput defines the output for the checkin_document tool.
type CheckinDocumentOutput struct {
	ID      string `json:"id" jsonschema:"Document node identifier"`
	Name    string `json:"name" jsonschema:"Document name after checkin"`
	Version string `json:"version,omitempty" jsonschema:"New version label"`
}

func (s *Server) handleCheckinDocument(ctx context.Context, req *mcp.CallToolRequest, input CheckinDocumentInput) (*mcp.CallToolResult, CheckinDocumentOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, CheckinDocumentOutput{}, fmt.Errorf("node_id is required")
	}

	var (
		sourcePath  string
		fromTracked bool
	)
	if input.FilePath != "" {
		sourcePath = expandPath(input.FilePath)
		if _, err := os.Stat(sourcePath); err != nil {
			return nil, CheckinDocumentOutput{}, fmt.Errorf("specified file not found: %s", sourcePath)
		}
	} else {
		rec, ok := s.checkouts.Get(nodeID)
		if !ok {
			return nil, CheckinDocumentOutput{}, fmt.Errorf("no checkout found for node %s: use checkout_document first, or specify file_path", nodeID)
		}
		sourcePath = s.checkouts.WorkingCopyPath(rec)
		if _, err := os.Stat(sourcePath); err != nil {
			return nil, CheckinDocumentOutput{}, fmt.Errorf("working copy not found: %s (it may have been moved or deleted)", sourcePath)
		}
		fromTracked = true
	}

	f, err := os.Open(sourcePath)
	if err != nil {
		return nil, CheckinDocumentOutput{}, fmt.Errorf("cannot open %s: %w", sourcePath, err)
	}
	defer f.Close()

	logging.Debug("checkin_document", "node", nodeID, "file", sourcePath, "major", input.MajorVersion)

	node, err := s.client.UpdateContent(ctx, nodeID, f, alfresco.UpdateContentOptions{
		MajorVersion: input.MajorVersion,
		Comment:      input.Comment,
		Name:         input.NewName,
	})
	if err != nil {
		return nil, CheckinDocumentOutput{}, fmt.Errorf("failed to update content of %s: %w", nodeID, err)
	}

	// Content is committed; a failed unlock must not fail the checkin.
	unlockStatus := "released"
	if _, err := s.client.UnlockNode(ctx, nodeID); err != nil {
		switch {
		case alfresco.IsNotFound(err):
			unlockStatus = "document was not locked"
		case alfresco.IsUnsupported(err):
			unlockStatus = "not supported by server"
		default:
			unlockStatus = "release failed: " + err.Error()
			logging.Error("failed to unlock after checkin", "node", nodeID, "err", err)
		}
	}

	version := node.VersionLabel()
	if version == "" {
		if fresh, err := s.client.GetNode(ctx, nodeID, "properties"); err == nil {
			version = fresh.VersionLabel()
		}
	}

	cleanup := "no working copy to clean up"
	if fromTracked {
		if _, _, err := s.checkouts.Remove(nodeID); err != nil {
			cleanup = "checkout tracking update failed: " + err.Error()
		} else if err := os.Remove(sourcePath); err != nil {
			cleanup = "working copy removal failed: " + err.Error()
		} else {
			cleanup = "working copy removed"
		}
	}

	versionType := "minor"
	if input.MajorVersion {
		versionType = "major"
	}
	comment := input.Comment
	if comment == "" {
		comment = "(no comment)"
	}

	output := CheckinDocumentOutput{ID: nodeID, Name: node.Name, Version: version}
	text := fmt.Sprintf(`Document checked in successfully.

Name: %s
Node ID: %s
New version: %s (%s)
Comment: %s
Lock: %s
Cleanup: %s

The document is available for others to edit again.`,
		node.Name, nodeID, version, versionType, comment, unlockStatus, cleanup)
	return textResult(text), output, nil
}

// CancelCheckoutInput defines the input for the cancel_checkout tool.
type CancelCheckoutInput struct {
	NodeID string `json:"node_id" jsonschema:"Document node whose checkout to cancel"`
}

// CancelCheckoutOutput defines the output for the cancel_checkout tool.
type CancelCheckoutOutput struct {
	ID       string `json:"id" jsonschema:"Document node identifier"`
	Name     string `json:"name" jsonschema:"Document name"`
	Unlocked bool   `json:"unlocked" jsonschema:"True when the repository lock was released"`
}

func (s *Server) handleCancelCheckout(ctx context.Context, req *mcp.CallToolRequest, input CancelCheckoutInput) (*mcp.CallToolResult, CancelCheckoutOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, CancelCheckoutOutput{}, fmt.Errorf("node_id is required")
	}

	node, err := s.client.GetNode(ctx, nodeID)
	if err != nil {
		return nil, CancelCheckoutOutput{}, fmt.Errorf("failed to fetch node %s: %w", nodeID, err)
	}

	unlocked := true
	unlockStatus := "released"
	if _, err := s.client.UnlockNode(ctx, nodeID); err != nil {
		unlocked = false
		switch {
		case alfresco.IsNotFound(err):
			unlockStatus = "document was not locked"
		case alfresco.IsUnsupported(err):
			unlockStatus = "not supported by server"
		default:
			unlockStatus = "release failed: " + err.Error()
			logging.Error("failed to unlock document", "node", nodeID, "err", err)
		}
	}

	cleanup := "no local checkout tracking found"
	rec, ok, err := s.checkouts.Remove(nodeID)
	if err != nil {
		cleanup = "checkout tracking update failed: " + err.Error()
	} else if ok {
		localPath := s.checkouts.WorkingCopyPath(rec)
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			cleanup = "working copy removal failed: " + err.Error()
		} else {
			cleanup = "working copy removed"
		}
	}

	output := CancelCheckoutOutput{ID: nodeID, Name: node.Name, Unlocked: unlocked}
	text := fmt.Sprintf(`Checkout cancelled.

Name: %s
Node ID: %s
Lock: %s
Cleanup: %s

Any unsaved changes in the local working copy have been discarded.`,
		node.Name, nodeID, unlockStatus, cleanup)
	return textResult(text), output, nil
}
