package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"docufill/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the export header row.
var columns = []string{
	"Placeholder",
	"Type",
	"Description",
	"Example",
	"Value",
	"Filled",
}

// Writer wraps csv.Writer for exporting a session's placeholder table.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePlaceholders converts the session's placeholders to CSV rows and
// writes them in document order.
func (w *Writer) WritePlaceholders(placeholders []domain.Placeholder) error {
	for i := range placeholders {
		if err := w.csv.Write(placeholderToRow(&placeholders[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func placeholderToRow(p *domain.Placeholder) []string {
	filled := "no"
	if p.Filled {
		filled = "yes"
	}
	return []string{p.Token, p.Kind, p.Description, p.Example, p.Value, filled}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a document name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_document_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(documentName, ext string) string {
	sanitized := SanitizeFilename(strings.TrimSuffix(documentName, ".docx"))
	if sanitized == "" {
		sanitized = "placeholders"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
