// ABOUTME: Discovery API wrapper for repository version and status
// ABOUTME: Disabled Discovery (501) surfaces as KindUnsupported
package alfresco

import "context"

// RepositoryInfo fetches server edition, version, and status via the
// Discovery API. Administrators can disable the endpoint, in which case the
// error kind is KindUnsupported.
func (c *Client) RepositoryInfo(ctx context.Context) (*RepositoryInfo, error) {
	req, err := c.newRequest(ctx, "GET", c.discovery, nil)
	if err != nil {
		return nil, err
	}

	var envelope discoveryEnvelope
	if err := c.doJSON("repository info", req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Entry.Repository, nil
}
