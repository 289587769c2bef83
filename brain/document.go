package brain

import "time"

// Status is the lifecycle state of an uploaded document. Transitions only
// move forward: processing -> vectorizing -> ready, or processing -> error.
type Status string

const (
	StatusProcessing  Status = "processing"
	StatusVectorizing Status = "vectorizing"
	StatusReady       Status = "ready"
	StatusError       Status = "error"
)

// Chunk is a bounded span of document text sized for retrieval.
type Chunk struct {
	ID         string
	Text       string
	TokenCount int

	// Score is populated during a single retrieval call and not persisted.
	Score int
}

// Document is an uploaded source file together with its extracted text and
// retrievable chunks. A document is owned by the store's ingestion pipeline
// and its chunk sequence is replaced wholesale when reprocessed.
type Document struct {
	ID         string
	Name       string
	Size       int64
	Content    string
	Chunks     []Chunk
	UploadedAt time.Time
	Status     Status
}
