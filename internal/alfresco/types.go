// ABOUTME: Wire types for the Alfresco public REST API v1
// ABOUTME: Only the fields the tools actually consume are mapped
package alfresco

// UserInfo identifies the creator or modifier of a node.
type UserInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// ContentInfo describes the binary content of a file node.
type ContentInfo struct {
	MimeType    string `json:"mimeType"`
	SizeInBytes int64  `json:"sizeInBytes"`
}

// PathInfo is the human-readable repository path of a node.
type PathInfo struct {
	Name string `json:"name"`
}

// Node is a file or folder in the repository.
type Node struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	NodeType       string         `json:"nodeType"`
	IsFile         bool           `json:"isFile"`
	IsFolder       bool           `json:"isFolder"`
	IsLocked       bool           `json:"isLocked"`
	CreatedAt      string         `json:"createdAt"`
	ModifiedAt     string         `json:"modifiedAt"`
	CreatedByUser  *UserInfo      `json:"createdByUser,omitempty"`
	ModifiedByUser *UserInfo      `json:"modifiedByUser,omitempty"`
	Content        *ContentInfo   `json:"content,omitempty"`
	Path           *PathInfo      `json:"path,omitempty"`
	Properties     map[string]any `json:"properties,omitempty"`
}

// StringProperty returns a string-valued property such as cm:title, or ""
// when absent or not a string.
func (n *Node) StringProperty(key string) string {
	if n.Properties == nil {
		return ""
	}
	if v, ok := n.Properties[key].(string); ok {
		return v
	}
	return ""
}

// VersionLabel returns cm:versionLabel, or "" when the node is unversioned.
func (n *Node) VersionLabel() string {
	return n.StringProperty("cm:versionLabel")
}

type nodeEntry struct {
	Entry Node `json:"entry"`
}

type nodeList struct {
	List struct {
		Pagination struct {
			Count        int  `json:"count"`
			HasMoreItems bool `json:"hasMoreItems"`
			TotalItems   int  `json:"totalItems"`
		} `json:"pagination"`
		Entries []nodeEntry `json:"entries"`
	} `json:"list"`
}

// apiError is the error envelope Alfresco returns for failed requests.
type apiError struct {
	Error struct {
		ErrorKey     string `json:"errorKey"`
		StatusCode   int    `json:"statusCode"`
		BriefSummary string `json:"briefSummary"`
	} `json:"error"`
}

// RepositoryVersion is the version block of the Discovery API response.
type RepositoryVersion struct {
	Major   string `json:"major"`
	Minor   string `json:"minor"`
	Patch   string `json:"patch"`
	Label   string `json:"label"`
	Display string `json:"display"`
	Schema  int    `json:"schema"`
}

// RepositoryStatus is the status block of the Discovery API response.
type RepositoryStatus struct {
	IsReadOnly                   bool `json:"isReadOnly"`
	IsAuditEnabled               bool `json:"isAuditEnabled"`
	IsQuickShareEnabled          bool `json:"isQuickShareEnabled"`
	IsThumbnailGenerationEnabled bool `json:"isThumbnailGenerationEnabled"`
}

// RepositoryInfo is the Discovery API payload describing the server.
type RepositoryInfo struct {
	ID      string            `json:"id"`
	Edition string            `json:"edition"`
	Version RepositoryVersion `json:"version"`
	Status  RepositoryStatus  `json:"status"`
}

type discoveryEnvelope struct {
	Entry struct {
		Repository RepositoryInfo `json:"repository"`
	} `json:"entry"`
}
