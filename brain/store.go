package brain

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Reader extracts plain text from an uploaded binary. Implementations must
// separate page/section boundaries with a blank line so the segmenter sees
// them as paragraph breaks.
type Reader interface {
	Matches(contentType string) bool
	ReadText(r io.Reader, contentType string) (string, error)
}

// StoreConfig configures a document store.
type StoreConfig struct {
	Log     *slog.Logger
	Readers []Reader

	// VectorizeFloor is the minimum time a document stays in the
	// vectorizing state so progress stays legible to the caller.
	VectorizeFloor time.Duration
}

// Store owns the in-memory document collection and its ingestion pipeline.
// Each document is mutated only by its own pipeline goroutine through the
// guarded transition entry point; everything else reads copies.
type Store struct {
	log            *slog.Logger
	readers        []Reader
	vectorizeFloor time.Duration

	mu    sync.RWMutex
	docs  map[string]*Document
	order []string
}

func NewStore(cfg StoreConfig) *Store {
	return &Store{
		log:            cfg.Log,
		readers:        cfg.Readers,
		vectorizeFloor: cfg.VectorizeFloor,
		docs:           make(map[string]*Document),
	}
}

// Upload registers a new document and starts its extraction pipeline. The
// declared content type must match a registered reader, otherwise the upload
// is rejected before any extraction work happens. Extraction runs in the
// background; multiple documents may be in flight at once and a failure in
// one never affects the others.
func (s *Store) Upload(name string, contentType string, data []byte) (string, error) {
	reader := s.findReader(contentType)
	if reader == nil {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	doc := &Document{
		ID:         uuid.NewString(),
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     StatusProcessing,
	}

	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	s.mu.Unlock()

	s.log.Info("document uploaded", "id", doc.ID, "name", name, "size", doc.Size)
	go s.ingest(doc.ID, name, contentType, reader, data)

	return doc.ID, nil
}

func (s *Store) ingest(id, name, contentType string, reader Reader, data []byte) {
	text, err := reader.ReadText(bytes.NewReader(data), contentType)
	if err != nil {
		extractErr := &ExtractionError{Name: name, Err: err}
		s.log.Error("extraction failed", "id", id, "err", extractErr)
		if terr := s.transition(id, StatusError); terr != nil {
			s.log.Warn("could not mark document failed", "id", id, "err", terr)
		}
		return
	}

	if err := s.transition(id, StatusVectorizing); err != nil {
		s.log.Warn("document gone before vectorizing", "id", id, "err", err)
		return
	}
	time.Sleep(s.vectorizeFloor)

	chunks := Segment(text, id)

	s.mu.Lock()
	if doc, ok := s.docs[id]; ok {
		doc.Content = text
		doc.Chunks = chunks
	}
	s.mu.Unlock()

	if err := s.transition(id, StatusReady); err != nil {
		s.log.Warn("document gone before ready", "id", id, "err", err)
		return
	}
	s.log.Info("document ready", "id", id, "name", name, "chunks", len(chunks))
}

// forwardTransitions enumerates the only legal status moves. There is no way
// out of ready or error except removing the document.
var forwardTransitions = map[Status]map[Status]bool{
	StatusProcessing:  {StatusVectorizing: true, StatusError: true},
	StatusVectorizing: {StatusReady: true},
}

// transition is the single mutation entry point for document status.
func (s *Store) transition(id string, next Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	if !forwardTransitions[doc.Status][next] {
		return fmt.Errorf("illegal status transition %s -> %s for document %s", doc.Status, next, id)
	}

	doc.Status = next
	return nil
}

// Remove deletes a document regardless of its state.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	delete(s.docs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of one document.
func (s *Store) Get(id string) (Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	return *doc, true
}

// Status reports the current lifecycle state of a document.
func (s *Store) Status(id string) (Status, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return "", false
	}
	return doc.Status, true
}

// Documents lists all documents in upload order.
func (s *Store) Documents() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.docs[id])
	}
	return out
}

// ReadyChunks returns the retrieval candidate pool: the chunks of every
// ready document, in upload order. Chunks of processing, vectorizing or
// failed documents are never exposed.
func (s *Store) ReadyChunks() []Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pool []Chunk
	for _, id := range s.order {
		doc := s.docs[id]
		if doc.Status != StatusReady {
			continue
		}
		pool = append(pool, doc.Chunks...)
	}
	return pool
}

// Stats summarizes the knowledge base for dashboards.
type Stats struct {
	Documents       int
	Ready           int
	Chunks          int
	EstimatedTokens int
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	for _, doc := range s.docs {
		st.Documents++
		st.Chunks += len(doc.Chunks)
		st.EstimatedTokens += len(doc.Content) / 4
		if doc.Status == StatusReady {
			st.Ready++
		}
	}
	return st
}

func (s *Store) findReader(contentType string) Reader {
	for _, r := range s.readers {
		if r.Matches(contentType) {
			return r
		}
	}
	return nil
}
