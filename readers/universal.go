package readers

import (
	"fmt"
	"io"

	"code.sajari.com/docconv/v2"
)

var universalTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.oasis.opendocument.text":                                 true,
	"application/xml": true,
	"text/xml":        true,
}

// UniversalReader converts page-structured formats (pdf, docx, odt, xml)
// through docconv, which joins page text with blank-line separators.
type UniversalReader struct{}

func (r *UniversalReader) Matches(contentType string) bool {
	return universalTypes[contentType]
}

func (r *UniversalReader) ReadText(src io.Reader, contentType string) (string, error) {
	res, err := docconv.Convert(src, contentType, false)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	return res.Body, nil
}
