package brain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned by Upload when no registered reader
	// accepts the declared content type. No extraction is attempted.
	ErrUnsupportedType = errors.New("unsupported document content type")

	// ErrUnknownDocument is returned for operations on a document id that
	// is not in the store.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrNoReadyDocuments is returned by Export when nothing has finished
	// processing.
	ErrNoReadyDocuments = errors.New("no processed documents to export")

	// ErrEmptyMessage marks a whitespace-only send. Callers treat it as a
	// no-op rather than a failure.
	ErrEmptyMessage = errors.New("empty message")

	// ErrBusy marks a send attempted while a previous one is still in
	// flight for the same session.
	ErrBusy = errors.New("a send is already in flight")
)

// ExtractionError reports a failure to pull text out of an uploaded binary.
// It is contained to the one document it names.
type ExtractionError struct {
	Name string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Name, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
