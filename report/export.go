package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/auditkit/evidenced/core"
)

// Exporter writes raw evidence to files in an export directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger.With("component", "exporter")
	}
}

// NewExporter creates an exporter rooted at dir, creating the directory if
// it does not exist.
func NewExporter(dir string, opts ...ExporterOption) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	e := &Exporter{
		dir:    dir,
		logger: slog.Default().With("component", "exporter"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Export writes the evidence in the requested format and returns the path
// of the written file. Spreadsheet formats fall back to CSV. A CSV export
// of zero evidence items writes nothing, not even a header row.
func (e *Exporter) Export(queryID string, evidence []core.EvidenceItem, format string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	format = strings.ToLower(format)
	path := filepath.Join(e.dir, fmt.Sprintf("evidence_%s_%s.%s", queryID, timestamp, format))

	switch format {
	case "json":
		if err := e.exportJSON(evidence, path); err != nil {
			return "", err
		}
	case "csv":
		if err := e.exportCSV(evidence, path); err != nil {
			return "", err
		}
	case "xlsx", "xls":
		// No native spreadsheet writer; emit CSV under the corrected name.
		e.logger.Warn("spreadsheet export falling back to csv", "format", format)
		path = strings.TrimSuffix(path, "."+format) + ".csv"
		if err := e.exportCSV(evidence, path); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	e.logger.Info("evidence exported", "query_id", queryID, "format", format, "path", path, "items", len(evidence))
	return path, nil
}

// exportJSON writes the evidence as an indented JSON array. Zero evidence
// items still produce a valid, empty array.
func (e *Exporter) exportJSON(evidence []core.EvidenceItem, path string) error {
	if evidence == nil {
		evidence = []core.EvidenceItem{}
	}
	data, err := json.MarshalIndent(evidence, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// exportCSV flattens each item into one row: the fixed columns first, then
// the union of data keys as data_<key> columns in sorted order.
func (e *Exporter) exportCSV(evidence []core.EvidenceItem, path string) error {
	if len(evidence) == 0 {
		return nil
	}

	baseColumns := []string{"source", "source_type", "title", "description", "confidence_score", "timestamp"}

	dataKeys := make(map[string]bool)
	for _, item := range evidence {
		for key := range item.Data {
			dataKeys[key] = true
		}
	}
	sortedKeys := make([]string, 0, len(dataKeys))
	for key := range dataKeys {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	header := append([]string{}, baseColumns...)
	for _, key := range sortedKeys {
		header = append(header, "data_"+key)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, item := range evidence {
		row := make([]string, 0, len(header))
		row = append(row,
			item.Source,
			string(item.SourceType),
			item.Title,
			item.Description,
			fmt.Sprintf("%g", item.ConfidenceScore),
			formatTimestamp(item.Timestamp),
		)
		for _, key := range sortedKeys {
			value, ok := item.Data[key]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, flattenValue(value))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// flattenValue renders scalars directly and anything structured through a
// generic print, so nested maps and slices survive as a single cell.
func flattenValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return fmt.Sprintf("%t", v)
	case int, int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
