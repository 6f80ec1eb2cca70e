package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/auditkit/evidenced/core"
)

// DirProvider serves documents from a flat directory of uploaded files.
// CSV and TSV files are parsed into rows using their header line; plain-text
// files become a single text blob. The directory is rescanned on every List
// call, so newly uploaded files are picked up without restarting.
type DirProvider struct {
	dir string
}

var _ Provider = (*DirProvider)(nil)

// NewDirProvider creates a provider rooted at dir, creating the directory if
// it does not exist.
func NewDirProvider(dir string) (*DirProvider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, err
			}
			return &DirProvider{dir: dir}, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return &DirProvider{dir: dir}, nil
}

// List returns the names of all regular files in the directory, sorted.
func (p *DirProvider) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load parses one file into a normalized Document.
func (p *DirProvider) Load(ctx context.Context, name string) (*Document, error) {
	// Reject path traversal; names come from List but Load is also
	// reachable from callers.
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}

	path := filepath.Join(p.dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return parseDelimited(name, raw, ',')
	case ".tsv":
		return parseDelimited(name, raw, '\t')
	case ".txt", ".md", ".log":
		text := string(raw)
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, name)
		}
		return &Document{
			ID:          core.IDFromContent(text),
			Name:        name,
			ContentType: ContentTypeText,
			Text:        text,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func parseDelimited(name string, raw []byte, comma rune) (*Document, error) {
	reader := csv.NewReader(strings.NewReader(string(raw)))
	reader.Comma = comma
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, name)
	}

	header := records[0]
	rows := make([]map[string]any, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]any, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return &Document{
		ID:          core.IDFromContent(string(raw)),
		Name:        name,
		ContentType: ContentTypeCSV,
		Rows:        rows,
	}, nil
}
