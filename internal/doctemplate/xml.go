package doctemplate

import (
	"regexp"
	"sort"
	"strings"
)

// WordprocessingML body text lives in <w:t> runs inside <w:p> paragraph
// blocks. Placeholders can be split across runs by the editor, so both
// extraction and substitution work on the joined paragraph text rather than
// on individual runs.
var (
	// Self-closing <w:p/> blocks are matched too: they carry no text but
	// still occupy a paragraph position, which context windows rely on.
	paragraphRe = regexp.MustCompile(`(?s)<w:p(?: [^>]*)?/>|<w:p[ >].*?</w:p>`)
	textRe      = regexp.MustCompile(`(?s)<w:t(?: [^>]*)?>(.*?)</w:t>`)
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&apos;", "'",
	"&quot;", `"`,
	"&amp;", "&",
)

// extractParagraphTexts returns the joined run text of each paragraph block
// in document order. Paragraphs without text runs are returned as empty
// strings so context windows stay positionally correct.
func extractParagraphTexts(content string) []string {
	blocks := paragraphRe.FindAllString(content, -1)
	texts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		texts = append(texts, paragraphText(block))
	}
	return texts
}

func paragraphText(block string) string {
	var b strings.Builder
	for _, m := range textRe.FindAllStringSubmatch(block, -1) {
		b.WriteString(xmlUnescaper.Replace(m[1]))
	}
	return b.String()
}

// substituteContent replaces every mapping token inside the document body.
// For each paragraph whose joined text contains a token, the substituted
// text is written back into the paragraph's first text run and the remaining
// runs are blanked, which also handles tokens split across runs.
func substituteContent(content string, mapping map[string]string) string {
	if len(mapping) == 0 {
		return content
	}

	// Longest token first, so "$[X]" wins over "[X]" when both appear.
	tokens := make([]string, 0, len(mapping))
	for token := range mapping {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if len(tokens[i]) != len(tokens[j]) {
			return len(tokens[i]) > len(tokens[j])
		}
		return tokens[i] < tokens[j]
	})

	return paragraphRe.ReplaceAllStringFunc(content, func(block string) string {
		original := paragraphText(block)
		if original == "" {
			return block
		}

		replaced := original
		for _, token := range tokens {
			replaced = strings.ReplaceAll(replaced, token, mapping[token])
		}
		if replaced == original {
			return block
		}

		first := true
		return textRe.ReplaceAllStringFunc(block, func(string) string {
			if first {
				first = false
				return `<w:t xml:space="preserve">` + xmlEscaper.Replace(replaced) + `</w:t>`
			}
			return `<w:t xml:space="preserve"></w:t>`
		})
	})
}
