package brain

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	contentType string
	text        string
	err         error
	release     chan struct{}
}

func (r *fakeReader) Matches(contentType string) bool {
	return contentType == r.contentType
}

func (r *fakeReader) ReadText(_ io.Reader, _ string) (string, error) {
	if r.release != nil {
		<-r.release
	}
	return r.text, r.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(floor time.Duration, rs ...Reader) *Store {
	return NewStore(StoreConfig{
		Log:            testLogger(),
		Readers:        rs,
		VectorizeFloor: floor,
	})
}

func waitForStatus(t *testing.T, s *Store, id string, want Status) {
	t.Helper()
	require.Eventually(t, func() bool {
		status, ok := s.Status(id)
		return ok && status == want
	}, 2*time.Second, 5*time.Millisecond)
}

func Test_Upload_RejectsUnsupportedContentType(t *testing.T) {
	store := newTestStore(0, &fakeReader{contentType: "text/plain", text: "hi"})

	_, err := store.Upload("photo.png", "image/png", []byte{0x89})

	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, store.Documents())
}

func Test_Upload_ProcessesDocument(t *testing.T) {
	store := newTestStore(0, &fakeReader{
		contentType: "text/plain",
		text:        "Paragraph one.\n\nParagraph two.",
	})

	id, err := store.Upload("manual.txt", "text/plain", []byte("raw bytes"))
	require.NoError(t, err)

	waitForStatus(t, store, id, StatusReady)

	doc, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, "manual.txt", doc.Name)
	assert.Equal(t, int64(9), doc.Size)
	assert.Equal(t, "Paragraph one.\n\nParagraph two.", doc.Content)
	require.Len(t, doc.Chunks, 1)
	assert.Equal(t, id+"-chunk-0", doc.Chunks[0].ID)
}

func Test_Upload_ExtractionFailureIsIsolated(t *testing.T) {
	store := newTestStore(0,
		&fakeReader{contentType: "text/bad", err: errors.New("corrupted binary")},
		&fakeReader{contentType: "text/good", text: "fine content"},
	)

	badID, err := store.Upload("bad.txt", "text/bad", []byte("x"))
	require.NoError(t, err)
	goodID, err := store.Upload("good.txt", "text/good", []byte("y"))
	require.NoError(t, err)

	waitForStatus(t, store, badID, StatusError)
	waitForStatus(t, store, goodID, StatusReady)

	bad, _ := store.Get(badID)
	assert.Empty(t, bad.Chunks)
	assert.Empty(t, bad.Content)
}

func Test_Upload_StatusSequenceIsMonotonic(t *testing.T) {
	reader := &fakeReader{
		contentType: "text/plain",
		text:        "content",
		release:     make(chan struct{}),
	}
	store := newTestStore(300*time.Millisecond, reader)

	id, err := store.Upload("doc.txt", "text/plain", []byte("x"))
	require.NoError(t, err)

	status, ok := store.Status(id)
	require.True(t, ok)
	assert.Equal(t, StatusProcessing, status)

	close(reader.release)
	waitForStatus(t, store, id, StatusVectorizing)
	waitForStatus(t, store, id, StatusReady)
}

func Test_Transition_RejectsBackwardMoves(t *testing.T) {
	store := newTestStore(0, &fakeReader{contentType: "text/plain", text: "content"})

	id, err := store.Upload("doc.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	waitForStatus(t, store, id, StatusReady)

	assert.Error(t, store.transition(id, StatusProcessing))
	assert.Error(t, store.transition(id, StatusVectorizing))
	assert.Error(t, store.transition(id, StatusError))

	status, _ := store.Status(id)
	assert.Equal(t, StatusReady, status)
}

func Test_Transition_ErrorIsTerminal(t *testing.T) {
	store := newTestStore(0, &fakeReader{contentType: "text/bad", err: errors.New("boom")})

	id, err := store.Upload("doc.txt", "text/bad", []byte("x"))
	require.NoError(t, err)
	waitForStatus(t, store, id, StatusError)

	assert.Error(t, store.transition(id, StatusVectorizing))
	assert.Error(t, store.transition(id, StatusReady))
}

func Test_Transition_UnknownDocument(t *testing.T) {
	store := newTestStore(0)

	assert.ErrorIs(t, store.transition("nope", StatusReady), ErrUnknownDocument)
}

func Test_ReadyChunks_ExcludesUnreadyDocuments(t *testing.T) {
	blocked := &fakeReader{
		contentType: "text/blocked",
		text:        "pending text",
		release:     make(chan struct{}),
	}
	store := newTestStore(0,
		blocked,
		&fakeReader{contentType: "text/plain", text: "visible text"},
	)

	readyID, err := store.Upload("ready.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	pendingID, err := store.Upload("pending.txt", "text/blocked", []byte("y"))
	require.NoError(t, err)

	waitForStatus(t, store, readyID, StatusReady)

	pool := store.ReadyChunks()
	require.Len(t, pool, 1)
	assert.Equal(t, "visible text", pool[0].Text)

	close(blocked.release)
	waitForStatus(t, store, pendingID, StatusReady)
	assert.Len(t, store.ReadyChunks(), 2)
}

func Test_Remove(t *testing.T) {
	store := newTestStore(0, &fakeReader{contentType: "text/plain", text: "content"})

	id, err := store.Upload("doc.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	waitForStatus(t, store, id, StatusReady)

	require.NoError(t, store.Remove(id))

	_, ok := store.Get(id)
	assert.False(t, ok)
	assert.Empty(t, store.ReadyChunks())
	assert.ErrorIs(t, store.Remove(id), ErrUnknownDocument)
}

func Test_Stats(t *testing.T) {
	store := newTestStore(0,
		&fakeReader{contentType: "text/plain", text: "some document content here"},
		&fakeReader{contentType: "text/bad", err: errors.New("boom")},
	)

	okID, err := store.Upload("a.txt", "text/plain", []byte("x"))
	require.NoError(t, err)
	badID, err := store.Upload("b.txt", "text/bad", []byte("y"))
	require.NoError(t, err)

	waitForStatus(t, store, okID, StatusReady)
	waitForStatus(t, store, badID, StatusError)

	stats := store.Stats()
	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 1, stats.Ready)
	assert.Equal(t, 1, stats.Chunks)
	assert.Equal(t, len("some document content here")/4, stats.EstimatedTokens)
}
