// ABOUTME: Node operations: metadata, children, folders, properties, delete, lock
// ABOUTME: Thin typed wrappers over /nodes endpoints
package alfresco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// GetNode fetches node metadata. Optional include fields (properties, path,
// permissions) expand the response.
func (c *Client) GetNode(ctx context.Context, nodeID string, include ...string) (*Node, error) {
	endpoint := fmt.Sprintf("%s/nodes/%s", c.coreBase, url.PathEscape(nodeID))
	if len(include) > 0 {
		endpoint += "?include=" + url.QueryEscape(strings.Join(include, ","))
	}

	req, err := c.newRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var entry nodeEntry
	if err := c.doJSON("get node", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

// ListChildren returns up to maxItems direct children of a folder node.
func (c *Client) ListChildren(ctx context.Context, parentID string, maxItems int) ([]Node, error) {
	endpoint := fmt.Sprintf("%s/nodes/%s/children?maxItems=%d",
		c.coreBase, url.PathEscape(parentID), maxItems)

	req, err := c.newRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var list nodeList
	if err := c.doJSON("list children", req, &list); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(list.List.Entries))
	for _, e := range list.List.Entries {
		nodes = append(nodes, e.Entry)
	}
	return nodes, nil
}

// CreateFolder creates a cm:folder child under parentID. The folder name is
// also set as cm:title, matching Share behavior.
func (c *Client) CreateFolder(ctx context.Context, parentID, name, description string) (*Node, error) {
	props := map[string]any{"cm:title": name}
	if description != "" {
		props["cm:description"] = description
	}

	body, err := json.Marshal(map[string]any{
		"name":       name,
		"nodeType":   "cm:folder",
		"properties": props,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/nodes/%s/children", c.coreBase, url.PathEscape(parentID))
	req, err := c.newRequest(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var entry nodeEntry
	if err := c.doJSON("create folder", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

// NodeUpdate describes a metadata update. Zero-value fields are left alone.
type NodeUpdate struct {
	Name       string
	Properties map[string]any
}

// UpdateNode changes a node's name and/or properties.
func (c *Client) UpdateNode(ctx context.Context, nodeID string, update NodeUpdate) (*Node, error) {
	payload := map[string]any{}
	if update.Name != "" {
		payload["name"] = update.Name
	}
	if len(update.Properties) > 0 {
		payload["properties"] = update.Properties
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/nodes/%s", c.coreBase, url.PathEscape(nodeID))
	req, err := c.newRequest(ctx, "PUT", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var entry nodeEntry
	if err := c.doJSON("update node", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

// DeleteNode moves a node to the trashcan, or deletes it outright when
// permanent is true.
func (c *Client) DeleteNode(ctx context.Context, nodeID string, permanent bool) error {
	endpoint := fmt.Sprintf("%s/nodes/%s?permanent=%s",
		c.coreBase, url.PathEscape(nodeID), strconv.FormatBool(permanent))

	req, err := c.newRequest(ctx, "DELETE", endpoint, nil)
	if err != nil {
		return err
	}
	return c.doJSON("delete node", req, nil)
}

// LockNode takes a persistent owner lock on a node. Servers without the lock
// API answer 405, surfaced as KindUnsupported; a lock held elsewhere is
// KindAlreadyLocked.
func (c *Client) LockNode(ctx context.Context, nodeID string) (*Node, error) {
	body := []byte(`{"type":"ALLOW_OWNER_CHANGES","lifetime":"PERSISTENT"}`)
	endpoint := fmt.Sprintf("%s/nodes/%s/lock", c.coreBase, url.PathEscape(nodeID))

	req, err := c.newRequest(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var entry nodeEntry
	if err := c.doJSON("lock node", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}

// UnlockNode releases a node lock. 404 means the node was not locked.
func (c *Client) UnlockNode(ctx context.Context, nodeID string) (*Node, error) {
	endpoint := fmt.Sprintf("%s/nodes/%s/unlock", c.coreBase, url.PathEscape(nodeID))

	req, err := c.newRequest(ctx, "POST", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var entry nodeEntry
	if err := c.doJSON("unlock node", req, &entry); err != nil {
		return nil, err
	}
	return &entry.Entry, nil
}
