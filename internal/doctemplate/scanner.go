package doctemplate

import (
	"regexp"
	"strings"
)

// placeholderRe matches bracket-delimited tokens like "[Company Name]",
// "[[Effective Date]]" or "$[Amount]".
var placeholderRe = regexp.MustCompile(`(\$?\[+[^\[\]]+\]+)`)

// Found is a detected placeholder token with the clause text around its
// first occurrence.
type Found struct {
	Token   string
	Context string
}

// Scan detects placeholder tokens in paragraph texts. First-occurrence order
// is preserved and duplicates are dropped. The context snippet is the
// non-empty paragraphs within ±window of the paragraph where the token first
// appears, joined with spaces.
func Scan(paragraphs []string, window int) []Found {
	if window < 0 {
		window = 0
	}

	seen := make(map[string]bool)
	var found []Found

	for i, p := range paragraphs {
		tokens := placeholderRe.FindAllString(p, -1)
		if len(tokens) == 0 {
			continue
		}

		var snippet []string
		for off := -window; off <= window; off++ {
			j := i + off
			if j >= 0 && j < len(paragraphs) && strings.TrimSpace(paragraphs[j]) != "" {
				snippet = append(snippet, strings.TrimSpace(paragraphs[j]))
			}
		}
		context := strings.Join(snippet, " ")

		for _, token := range tokens {
			if seen[token] {
				continue
			}
			seen[token] = true
			found = append(found, Found{Token: token, Context: context})
		}
	}

	return found
}
