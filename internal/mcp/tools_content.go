// ABOUTME: Content transfer tools: upload from path or base64, download to disk or inline
// ABOUTME: Base64 uploads without a filename get a sniffed extension and generated name
package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
)

func (s *Server) registerContentTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "upload_document",
		Description: "Upload a document from a local file path or base64 content.",
	}, s.handleUploadDocument)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "download_document",
		Description: "Download a document's content, to the downloads folder or inline as base64.",
	}, s.handleDownloadDocument)
}

// UploadDocumentInput defines the input for the upload_document tool.
type UploadDocumentInput struct {
	FilePath      string `json:"file_path,omitempty" jsonschema:"Local path of the file to upload"`
	Base64Content string `json:"base64_content,omitempty" jsonschema:"File content encoded as base64"`
	FileName      string `json:"file_name,omitempty" jsonschema:"Name for the uploaded file (defaults to the local file name)"`
	ParentID      string `json:"parent_id,omitempty" jsonschema:"Destination folder node (default -shared-)"`
	Title         string `json:"title,omitempty" jsonschema:"Document title (cm:title)"`
	Description   string `json:"description,omitempty" jsonschema:"Document description (cm:description)"`
}

// UploadDocumentOutput defines the output for the upload_document tool.
type UploadDocumentOutput struct {
	ID        string `json:"id" jsonschema:"Node identifier of the uploaded document"`
	Name      string `json:"name" jsonschema:"Name as stored (may be renamed on conflict)"`
	ParentID  string `json:"parent_id" jsonschema:"Destination folder node identifier"`
	SizeBytes int64  `json:"size_bytes" jsonschema:"Uploaded content size in bytes"`
}

// uploadName picks a filename for base64 content, sniffing the extension
// when the caller did not provide one.
func uploadName(fileName string, content []byte) string {
	if fileName != "" {
		return fileName
	}
	ext := mimetype.Detect(content).Extension()
	if ext == "" {
		ext = ".bin"
	}
	return "upload-" + uuid.NewString()[:8] + ext
}

func (s *Server) handleUploadDocument(ctx context.Context, req *mcp.CallToolRequest, input UploadDocumentInput) (*mcp.CallToolResult, UploadDocumentOutput, error) {
	hasPath := input.FilePath != ""
	hasContent := input.Base64Content != ""
	if hasPath == hasContent {
		return nil, UploadDocumentOutput{}, fmt.Errorf("provide exactly one of file_path or base64_content")
	}

	parentID := cleanNodeID(input.ParentID)
	if parentID == "" {
		parentID = "-shared-"
	}

	var (
		reader   io.Reader
		fileName string
		size     int64
	)
	if hasPath {
		path := expandPath(input.FilePath)
		info, err := os.Stat(path)
		if err != nil {
			return nil, UploadDocumentOutput{}, fmt.Errorf("cannot read %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, UploadDocumentOutput{}, fmt.Errorf("%s is a directory, not a file", path)
		}
		if info.Size() > s.cfg.MaxFileSize {
			return nil, UploadDocumentOutput{}, fmt.Errorf("file %s exceeds the %s upload limit", path, humanSize(s.cfg.MaxFileSize))
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, UploadDocumentOutput{}, fmt.Errorf("cannot open %s: %w", path, err)
		}
		defer f.Close()

		reader = f
		size = info.Size()
		fileName = input.FileName
		if fileName == "" {
			fileName = filepath.Base(path)
		}
	} else {
		content, err := base64.StdEncoding.DecodeString(input.Base64Content)
		if err != nil {
			return nil, UploadDocumentOutput{}, fmt.Errorf("base64_content is not valid base64: %w", err)
		}
		if int64(len(content)) > s.cfg.MaxFileSize {
			return nil, UploadDocumentOutput{}, fmt.Errorf("content exceeds the %s upload limit", humanSize(s.cfg.MaxFileSize))
		}
		reader = bytes.NewReader(content)
		size = int64(len(content))
		fileName = uploadName(input.FileName, content)
	}

	logging.Debug("upload_document", "name", fileName, "parent", parentID, "size", size)

	node, err := s.client.UploadFile(ctx, parentID, fileName, reader, alfresco.UploadOptions{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, UploadDocumentOutput{}, fmt.Errorf("upload of %q failed: %w", fileName, err)
	}

	output := UploadDocumentOutput{ID: node.ID, Name: node.Name, ParentID: parentID, SizeBytes: size}
	text := fmt.Sprintf("Document uploaded successfully.\n\nName: %s\nNode ID: %s\nParent: %s\nSize: %s\n",
		node.Name, node.ID, parentID, humanSize(size))
	return textResult(text), output, nil
}

// DownloadDocumentInput defines the input for the download_document tool.
type DownloadDocumentInput struct {
	NodeID     string `json:"node_id" jsonschema:"Document node to download"`
	SaveToDisk *bool  `json:"save_to_disk,omitempty" jsonschema:"Write the file to the downloads folder (default true)"`
	Attachment *bool  `json:"attachment,omitempty" jsonschema:"Request the content as an attachment (default true)"`
}

// DownloadDocumentOutput defines the output for the download_document tool.
type DownloadDocumentOutput struct {
	ID            string `json:"id" jsonschema:"Document node identifier"`
	Name          string `json:"name" jsonschema:"Document name in the repository"`
	SizeBytes     int64  `json:"size_bytes" jsonschema:"Downloaded content size in bytes"`
	SavedPath     string `json:"saved_path,omitempty" jsonschema:"Local path the file was written to"`
	Base64Content string `json:"base64_content,omitempty" jsonschema:"Content as base64 when not saved to disk"`
}

func (s *Server) handleDownloadDocument(ctx context.Context, req *mcp.CallToolRequest, input DownloadDocumentInput) (*mcp.CallToolResult, DownloadDocumentOutput, error) {
	nodeID := cleanNodeID(input.NodeID)
	if nodeID == "" {
		return nil, DownloadDocumentOutput{}, fmt.Errorf("node_id is required")
	}

	node, err := s.client.GetNode(ctx, nodeID)
	if err != nil {
		return nil, DownloadDocumentOutput{}, fmt.Errorf("failed to fetch node %s: %w", nodeID, err)
	}
	if !node.IsFile {
		return nil, DownloadDocumentOutput{}, fmt.Errorf("node %s is not a document", nodeID)
	}

	body, err := s.client.GetContent(ctx, nodeID, boolOrDefault(input.Attachment, true))
	if err != nil {
		return nil, DownloadDocumentOutput{}, fmt.Errorf("failed to download %s: %w", nodeID, err)
	}
	defer body.Close()

	output := DownloadDocumentOutput{ID: node.ID, Name: node.Name}

	if boolOrDefault(input.SaveToDisk, true) {
		if err := os.MkdirAll(s.downloads, 0o755); err != nil {
			return nil, DownloadDocumentOutput{}, fmt.Errorf("cannot create downloads directory: %w", err)
		}
		path := filepath.Join(s.downloads, downloadFileName(node.Name, nodeID))
		f, err := os.Create(path)
		if err != nil {
			return nil, DownloadDocumentOutput{}, fmt.Errorf("cannot create %s: %w", path, err)
		}
		n, err := io.Copy(f, body)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return nil, DownloadDocumentOutput{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
		output.SizeBytes = n
		output.SavedPath = path

		text := fmt.Sprintf("Document downloaded successfully.\n\nName: %s\nSaved to: %s\nSize: %s\n",
			node.Name, path, humanSize(n))
		return textResult(text), output, nil
	}

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, DownloadDocumentOutput{}, fmt.Errorf("failed to read content of %s: %w", nodeID, err)
	}
	output.SizeBytes = int64(len(content))
	output.Base64Content = base64.StdEncoding.EncodeToString(content)

	text := fmt.Sprintf("Document %s downloaded (%s), content returned as base64.", node.Name, humanSize(output.SizeBytes))
	return textResult(text), output, nil
}
