package corpus

import (
	"context"

	"github.com/auditkit/evidenced/core"
)

// ContentType declares the shape of a document's normalized payload.
type ContentType string

const (
	// ContentTypeCSV is tabular data parsed from comma/tab separated files.
	ContentTypeCSV ContentType = "csv"
	// ContentTypeExcel is tabular data handed over by an external
	// spreadsheet parser.
	ContentTypeExcel ContentType = "excel"
	// ContentTypeText is a single unstructured text blob.
	ContentTypeText ContentType = "text"
)

// Document is a normalized document record. Tabular documents carry Rows;
// textual documents carry Text. Byte-level extraction from source formats is
// a provider concern, never seen by consumers.
type Document struct {
	ID          core.ID
	Name        string
	ContentType ContentType
	Rows        []map[string]any
	Text        string
}

// Tabular reports whether the document's payload should be scored row by row.
func (d *Document) Tabular() bool {
	return d.ContentType == ContentTypeCSV || d.ContentType == ContentTypeExcel
}

// Provider enumerates the documents currently available for evidence search.
// Implementations must be safe for concurrent use.
type Provider interface {
	// List returns the names of all available documents.
	List(ctx context.Context) ([]string, error)

	// Load returns the normalized record for one document.
	// Returns ErrDocumentNotFound when the name is unknown and
	// ErrUnsupportedFormat when the document cannot be normalized.
	Load(ctx context.Context, name string) (*Document, error)
}
