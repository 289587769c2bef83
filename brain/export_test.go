package brain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Export_FailsWithNoReadyDocuments(t *testing.T) {
	store := newTestStore(0)

	_, err := store.Export()
	require.ErrorIs(t, err, ErrNoReadyDocuments)
}

func Test_Export_SnapshotsReadyDocumentsOnly(t *testing.T) {
	store := newTestStore(0,
		&fakeReader{contentType: "text/plain", text: "First paragraph.\n\nSecond paragraph."},
		&fakeReader{contentType: "text/bad", err: errors.New("boom")},
	)

	okID, err := store.Upload("manual.txt", "text/plain", []byte("raw"))
	require.NoError(t, err)
	badID, err := store.Upload("broken.pdf", "text/bad", []byte("raw"))
	require.NoError(t, err)

	waitForStatus(t, store, okID, StatusReady)
	waitForStatus(t, store, badID, StatusError)

	exp, err := store.Export()
	require.NoError(t, err)

	assert.Equal(t, 1, exp.TotalFiles)
	assert.Equal(t, 1, exp.TotalChunks)
	require.Len(t, exp.KnowledgeBase, 1)

	doc := exp.KnowledgeBase[0]
	assert.Equal(t, "manual.txt", doc.FileName)
	assert.Equal(t, int64(3), doc.FileSize)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", doc.FullText)
	require.Len(t, doc.Chunks, 1)
	assert.Equal(t, okID+"-chunk-0", doc.Chunks[0].ID)
	assert.Equal(t, EstimateTokens(doc.FullText), doc.Chunks[0].Tokens)
}

func Test_ExportJSON_FieldNames(t *testing.T) {
	store := newTestStore(0, &fakeReader{contentType: "text/plain", text: "content"})

	id, err := store.Upload("manual.txt", "text/plain", []byte("raw"))
	require.NoError(t, err)
	waitForStatus(t, store, id, StatusReady)

	raw, err := store.ExportJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	for _, key := range []string{"project", "exportDate", "totalFiles", "totalChunks", "knowledgeBase"} {
		assert.Contains(t, decoded, key)
	}

	kb := decoded["knowledgeBase"].([]any)
	require.Len(t, kb, 1)
	entry := kb[0].(map[string]any)
	for _, key := range []string{"fileName", "fileSize", "processedAt", "fullText", "chunks"} {
		assert.Contains(t, entry, key)
	}

	chunk := entry["chunks"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "text", "tokens"} {
		assert.Contains(t, chunk, key)
	}
}
