package brain

import (
	"encoding/json"
	"time"
)

// Export is a snapshot of all ready documents, shaped for consumption by
// external tooling. Only the JSON shape is a contract, not the transport.
type Export struct {
	Project       string           `json:"project"`
	ExportDate    time.Time        `json:"exportDate"`
	TotalFiles    int              `json:"totalFiles"`
	TotalChunks   int              `json:"totalChunks"`
	KnowledgeBase []ExportDocument `json:"knowledgeBase"`
}

type ExportDocument struct {
	FileName    string        `json:"fileName"`
	FileSize    int64         `json:"fileSize"`
	ProcessedAt time.Time     `json:"processedAt"`
	FullText    string        `json:"fullText"`
	Chunks      []ExportChunk `json:"chunks"`
}

type ExportChunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Tokens int    `json:"tokens"`
}

const exportProject = "BizBot Brain"

// Export snapshots every ready document. Documents still processing or in
// the error state are left out; with no ready documents it fails instead of
// producing an empty artifact.
func (s *Store) Export() (*Export, error) {
	var ready []Document
	for _, doc := range s.Documents() {
		if doc.Status == StatusReady {
			ready = append(ready, doc)
		}
	}
	if len(ready) == 0 {
		return nil, ErrNoReadyDocuments
	}

	exp := &Export{
		Project:    exportProject,
		ExportDate: time.Now(),
		TotalFiles: len(ready),
	}
	for _, doc := range ready {
		chunks := make([]ExportChunk, 0, len(doc.Chunks))
		for _, c := range doc.Chunks {
			chunks = append(chunks, ExportChunk{ID: c.ID, Text: c.Text, Tokens: c.TokenCount})
		}
		exp.TotalChunks += len(chunks)
		exp.KnowledgeBase = append(exp.KnowledgeBase, ExportDocument{
			FileName:    doc.Name,
			FileSize:    doc.Size,
			ProcessedAt: doc.UploadedAt,
			FullText:    doc.Content,
			Chunks:      chunks,
		})
	}

	return exp, nil
}

// ExportJSON renders the snapshot as indented JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	exp, err := s.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(exp, "", "  ")
}
