// ABOUTME: Local manifest tracking which documents are checked out for editing
// ABOUTME: Single-writer JSON store; mutations are read-modify-write under a mutex
package checkout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/contentgrid/alfresco-mcp/internal/config"
)

// ManifestName is the manifest file inside the checkout directory.
const ManifestName = ".checkout_manifest.json"

// Record tracks one checked-out document. At most one record exists per
// original node ID; a re-checkout overwrites (last write wins).
type Record struct {
	OriginalNodeID   string `json:"original_node_id"`
	LockedNodeID     string `json:"locked_node_id"`
	LocalFile        string `json:"local_file"`
	CheckoutTime     string `json:"checkout_time"` // ISO-8601
	OriginalFilename string `json:"original_filename"`
}

type manifest struct {
	Checkouts map[string]Record `json:"checkouts"`
}

// Store is the manifest plus the directory holding working copies.
// The mutex serializes writers within this process only; concurrent
// processes can still race on the file (last writer wins).
type Store struct {
	mu  sync.Mutex
	dir string
}

// NewStore returns a Store rooted at dir. Nothing is created until the
// first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir is ~/Downloads/checkout, matching where downloaded documents
// land.
func DefaultDir() string {
	return filepath.Join(config.GetDownloadsDir(), "checkout")
}

// Dir returns the checkout directory, creating it if needed.
func (s *Store) Dir() (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create checkout directory: %w", err)
	}
	return s.dir, nil
}

func (s *Store) manifestPath() string {
	return filepath.Join(s.dir, ManifestName)
}

// load reads the manifest. A missing or corrupt file yields an empty
// manifest; stale records are lost, not recovered.
func (s *Store) load() manifest {
	m := manifest{Checkouts: map[string]Record{}}

	data, err := os.ReadFile(s.manifestPath())
	if err != nil {
		return m
	}
	if err := json.Unmarshal(data, &m); err != nil || m.Checkouts == nil {
		return manifest{Checkouts: map[string]Record{}}
	}
	return m
}

// save writes the manifest atomically: temp file in the same directory,
// then rename over the old manifest.
func (s *Store) save(m manifest) error {
	if _, err := s.Dir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := os.Rename(tmpName, s.manifestPath()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace manifest: %w", err)
	}
	return nil
}

// Put records a checkout, replacing any existing record for the same node.
func (s *Store) Put(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.load()
	m.Checkouts[rec.OriginalNodeID] = rec
	return s.save(m)
}

// Get looks up the record for a node ID.
func (s *Store) Get(nodeID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.load().Checkouts[nodeID]
	return rec, ok
}

// Remove deletes the record for a node ID and reports whether one existed.
func (s *Store) Remove(nodeID string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.load()
	rec, ok := m.Checkouts[nodeID]
	if !ok {
		return Record{}, false, nil
	}
	delete(m.Checkouts, nodeID)
	if err := s.save(m); err != nil {
		return Record{}, true, err
	}
	return rec, true, nil
}

// List returns all current records keyed by original node ID.
func (s *Store) List() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Checkouts
}

// WorkingCopyPath returns the absolute path of a record's local file.
func (s *Store) WorkingCopyPath(rec Record) string {
	return filepath.Join(s.dir, rec.LocalFile)
}

// WorkingCopyName builds the on-disk name for a working copy: the document
// name with spaces and path separators replaced, suffixed with the node ID
// to avoid collisions between same-named documents.
func WorkingCopyName(filename, nodeID string) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", "\\", "_").Replace(filename)
	return safe + "_" + nodeID
}
