// Package readers extracts plain text from uploaded binaries, gated by the
// declared content type. Extracted text keeps blank lines between page and
// section boundaries so downstream segmentation treats them as paragraph
// breaks.
package readers

import (
	"fmt"
	"io"
	"strings"
)

// TextReader passes plain-text uploads through unchanged.
type TextReader struct{}

func (r *TextReader) Matches(contentType string) bool {
	return contentType == "text/plain" || strings.HasPrefix(contentType, "text/plain;")
}

func (r *TextReader) ReadText(src io.Reader, _ string) (string, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("reading text document: %w", err)
	}

	return string(buf), nil
}
