// ABOUTME: Content transfer: download, versioned update, multipart upload
// ABOUTME: Streams bodies where possible; callers own returned readers
package alfresco

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strconv"
)

// GetContent streams a file node's binary content. When attachment is false
// the server serves it for inline preview instead of download.
func (c *Client) GetContent(ctx context.Context, nodeID string, attachment bool) (io.ReadCloser, error) {
	endpoint := fmt.Sprintf("%s/nodes/%s/content", c.coreBase, url.PathEscape(nodeID))
	if !attachment {
		endpoint += "?attachment=false"
	}

	req, err := c.newRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	body, _, err := c.doRaw("get content", req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// UpdateContentOptions controls versioning behavior of a content update.
type UpdateContentOptions struct {
	MajorVersion bool
	Comment      string
	Name         string // optional rename applied with the new version
}

// UpdateContent replaces a file node's content, creating a new version.
func (c *Client) UpdateContent(ctx context.Context, nodeID string, content io.Reader, opts UpdateContentOptions) (*Node, error) {
	params := url.Values{}
	params.Set("majorVersion", strconv.FormatBool(opts.MajorVersion))
	if opts.Comment != "" {
		params.Set("comment", opts.Comment)
	}
	if opts.Name != "" {
		params.Set("name", opts.Name)
	}

	endpoint := fmt.Sprintf("%s/nodes/%s/content?%s",
		c.coreBase, url.PathEscape(nodeID), params.Encode())

	req, err := c.newRequest(ctx, "PUT", endpoint, content)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	var entry nodeEntry
	if err := c.doJSON("update content", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

// UploadOptions carries optional metadata for a new file node.
type UploadOptions struct {
	Title       string
	Description string
}

// UploadFile creates a file node under parentID via multipart upload. Name
// collisions are resolved server-side with autoRename, matching Share.
func (c *Client) UploadFile(ctx context.Context, parentID, name string, content io.Reader, opts UploadOptions) (*Node, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadForm(mw, name, content, opts)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	endpoint := fmt.Sprintf("%s/nodes/%s/children", c.coreBase, url.PathEscape(parentID))
	req, err := c.newRequest(ctx, "POST", endpoint, pr)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var entry nodeEntry
	if err := c.doJSON("upload file", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

func writeUploadForm(mw *multipart.Writer, name string, content io.Reader, opts UploadOptions) error {
	part, err := mw.CreateFormFile("filedata", name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}

	fields := map[string]string{
		"name":       name,
		"nodeType":   "cm:content",
		"autoRename": "true",
	}
	if opts.Title != "" {
		fields["cm:title"] = opts.Title
	}
	if opts.Description != "" {
		fields["cm:description"] = opts.Description
	}
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			return err
		}
	}
	return nil
}
