// ABOUTME: Search API wrapper supporting AFTS and CMIS query languages
// ABOUTME: Builds /search/versions/1/search POST bodies with paging and sort
package alfresco

import (
	"bytes"
	"context"
	"encoding/json"
)

// Query languages accepted by the search API.
const (
	LanguageAFTS = "afts"
	LanguageCMIS = "cmis"
)

// SearchOptions shapes a search request. Zero MaxItems means the server
// default; an empty SortField means server-side relevance ordering.
type SearchOptions struct {
	Language      string
	MaxItems      int
	SortField     string
	SortAscending bool
}

type searchRequest struct {
	Query struct {
		Query    string `json:"query"`
		Language string `json:"language"`
	} `json:"query"`
	Paging *struct {
		MaxItems int `json:"maxItems"`
	} `json:"paging,omitempty"`
	Sort []searchSort `json:"sort,omitempty"`
}

type searchSort struct {
	Type      string `json:"type"`
	Field     string `json:"field"`
	Ascending bool   `json:"ascending"`
}

// Search runs a query and returns the matching nodes in result order.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]Node, error) {
	var payload searchRequest
	payload.Query.Query = query
	payload.Query.Language = opts.Language
	if payload.Query.Language == "" {
		payload.Query.Language = LanguageAFTS
	}
	if opts.MaxItems > 0 {
		payload.Paging = &struct {
			MaxItems int `json:"maxItems"`
		}{MaxItems: opts.MaxItems}
	}
	if opts.SortField != "" {
		payload.Sort = []searchSort{{
			Type:      "FIELD",
			Field:     opts.SortField,
			Ascending: opts.SortAscending,
		}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, "POST", c.searchBase+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var list nodeList
	if err := c.doJSON("search", req, &list); err != nil {
		return nil, err
	}

	nodes := make([]Node, 0, len(list.List.Entries))
	for _, e := range list.List.Entries {
		nodes = append(nodes, e.Entry)
	}
	return nodes, nil
}
