// ABOUTME: Tests for node CRUD and lock operations
// ABOUTME: Asserts request shapes and typed response decoding
package alfresco

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNodeInclude(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "properties,path", r.URL.Query().Get("include"))
		_, _ = w.Write([]byte(`{"entry":{
			"id":"n1","name":"report.pdf","nodeType":"cm:content","isFile":true,
			"content":{"mimeType":"application/pdf","sizeInBytes":2048},
			"path":{"name":"/Company Home/Shared"},
			"properties":{"cm:title":"Q3 Report","cm:versionLabel":"1.2"}
		}}`))
	}))

	node, err := client.GetNode(context.Background(), "n1", "properties", "path")
	require.NoError(t, err)

	assert.True(t, node.IsFile)
	assert.Equal(t, "application/pdf", node.Content.MimeType)
	assert.Equal(t, int64(2048), node.Content.SizeInBytes)
	assert.Equal(t, "/Company Home/Shared", node.Path.Name)
	assert.Equal(t, "Q3 Report", node.StringProperty("cm:title"))
	assert.Equal(t, "1.2", node.VersionLabel())
	assert.Equal(t, "", node.StringProperty("cm:description"))
}

func TestListChildren(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alfresco/api/-default-/public/alfresco/versions/1/nodes/-my-/children", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("maxItems"))
		_, _ = w.Write([]byte(`{"list":{"pagination":{"count":2},"entries":[
			{"entry":{"id":"f1","name":"Projects","isFolder":true,"nodeType":"cm:folder"}},
			{"entry":{"id":"d1","name":"notes.txt","isFile":true,"nodeType":"cm:content"}}
		]}}`))
	}))

	nodes, err := client.ListChildren(context.Background(), "-my-", 10)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, nodes[0].IsFolder)
	assert.Equal(t, "notes.txt", nodes[1].Name)
}

func TestCreateFolder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Reports", body["name"])
		assert.Equal(t, "cm:folder", body["nodeType"])

		props := body["properties"].(map[string]any)
		assert.Equal(t, "Reports", props["cm:title"])
		assert.Equal(t, "quarterly reports", props["cm:description"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"entry":{"id":"f-new","name":"Reports","nodeType":"cm:folder","isFolder":true}}`))
	}))

	node, err := client.CreateFolder(context.Background(), "-shared-", "Reports", "quarterly reports")
	require.NoError(t, err)
	assert.Equal(t, "f-new", node.ID)
}

func TestUpdateNodeProperties(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "PUT", r.Method)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "renamed.txt", body["name"])
		props := body["properties"].(map[string]any)
		assert.Equal(t, "New Title", props["cm:title"])

		_, _ = w.Write([]byte(`{"entry":{"id":"n1","name":"renamed.txt"}}`))
	}))

	node, err := client.UpdateNode(context.Background(), "n1", NodeUpdate{
		Name:       "renamed.txt",
		Properties: map[string]any{"cm:title": "New Title"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt", node.Name)
}

func TestDeleteNodePermanentFlag(t *testing.T) {
	var gotPermanent string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "DELETE", r.Method)
		gotPermanent = r.URL.Query().Get("permanent")
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, client.DeleteNode(context.Background(), "n1", true))
	assert.Equal(t, "true", gotPermanent)

	require.NoError(t, client.DeleteNode(context.Background(), "n1", false))
	assert.Equal(t, "false", gotPermanent)
}

func TestLockNode(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "/nodes/n1/lock")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PERSISTENT", body["lifetime"])

		_, _ = w.Write([]byte(`{"entry":{"id":"n1","name":"doc.txt","isLocked":true}}`))
	}))

	node, err := client.LockNode(context.Background(), "n1")
	require.NoError(t, err)
	assert.True(t, node.IsLocked)
}

func TestLockNodeAlreadyLocked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusLocked)
		_, _ = w.Write([]byte(`{"error":{"statusCode":423,"briefSummary":"Cannot perform operation since the node is locked"}}`))
	}))

	_, err := client.LockNode(context.Background(), "n1")
	require.Error(t, err)
	assert.True(t, IsAlreadyLocked(err))
}

func TestUnlockNodeNotLocked(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.UnlockNode(context.Background(), "n1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
