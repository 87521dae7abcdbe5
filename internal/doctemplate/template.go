package doctemplate

import (
	"bytes"
	"fmt"

	"github.com/nguyenthenguyen/docx"

	"docufill/internal/domain"
)

// Template wraps an uploaded .docx document. Structural reading and writing
// is owned by the docx library; this package only works on the document
// body text.
type Template struct {
	doc *docx.ReplaceDocx
}

// Open parses .docx bytes into a Template.
func Open(data []byte) (*Template, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return &Template{doc: doc}, nil
}

// Paragraphs returns the plain text of every paragraph in document order.
// Table-cell paragraphs are included, since cell content is paragraphs too.
func (t *Template) Paragraphs() []string {
	return extractParagraphTexts(t.doc.Editable().GetContent())
}

// Render substitutes the token→value mapping into the document body and
// serializes a downloadable .docx.
func (t *Template) Render(mapping map[string]string) ([]byte, error) {
	editable := t.doc.Editable()
	editable.SetContent(substituteContent(editable.GetContent(), mapping))

	var buf bytes.Buffer
	if err := editable.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing document: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying zip reader.
func (t *Template) Close() error {
	return t.doc.Close()
}
