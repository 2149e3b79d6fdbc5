// ABOUTME: Tests for the checkout manifest store
// ABOUTME: Covers lifecycle, corruption tolerance, and last-write-wins
package checkout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(nodeID string) Record {
	return Record{
		OriginalNodeID:   nodeID,
		LockedNodeID:     nodeID,
		LocalFile:        WorkingCopyName("report.docx", nodeID),
		CheckoutTime:     "2025-06-01T10:30:00Z",
		OriginalFilename: "report.docx",
	}
}

func TestPutGetRemove(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "checkout"))

	rec := testRecord("n1")
	require.NoError(t, store.Put(rec))

	got, ok := store.Get("n1")
	require.True(t, ok)
	assert.Equal(t, rec, got)

	removed, ok, err := store.Remove("n1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, removed)

	_, ok = store.Get("n1")
	assert.False(t, ok)
}

func TestRemoveMissingIsNotAnError(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "checkout"))

	_, ok, err := store.Remove("never-checked-out")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastWriteWinsPerNode(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "checkout"))

	first := testRecord("n1")
	require.NoError(t, store.Put(first))

	second := testRecord("n1")
	second.CheckoutTime = "2025-06-02T09:00:00Z"
	require.NoError(t, store.Put(second))

	got, ok := store.Get("n1")
	require.True(t, ok)
	assert.Equal(t, "2025-06-02T09:00:00Z", got.CheckoutTime)
	assert.Len(t, store.List(), 1)
}

func TestCorruptManifestTreatedAsEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkout")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestName), []byte("{not json"), 0644))

	store := NewStore(dir)
	assert.Empty(t, store.List())

	// Writing after corruption starts over cleanly.
	require.NoError(t, store.Put(testRecord("n1")))
	assert.Len(t, store.List(), 1)
}

func TestManifestPersistsAcrossStores(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkout")

	require.NoError(t, NewStore(dir).Put(testRecord("n1")))

	reopened := NewStore(dir)
	_, ok := reopened.Get("n1")
	assert.True(t, ok)
}

func TestManifestFileShape(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "checkout")
	store := NewStore(dir)
	require.NoError(t, store.Put(testRecord("n1")))

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"checkouts"`)
	assert.Contains(t, string(data), `"original_node_id": "n1"`)
}

func TestWorkingCopyName(t *testing.T) {
	assert.Equal(t, "Q3_Report.docx_n1", WorkingCopyName("Q3 Report.docx", "n1"))
	assert.Equal(t, "a_b_c_n2", WorkingCopyName(`a/b\c`, "n2"))
}
