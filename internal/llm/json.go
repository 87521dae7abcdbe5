package llm

import "regexp"

// Models are told to return raw JSON but routinely wrap it in prose or code
// fences. These extractors pull the widest JSON block out of a reply.
var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
)

// ExtractJSONObject returns the widest {...} block in s, if any.
func ExtractJSONObject(s string) (string, bool) {
	m := jsonObjectRe.FindString(s)
	return m, m != ""
}

// ExtractJSONArray returns the widest [...] block in s, if any.
func ExtractJSONArray(s string) (string, bool) {
	m := jsonArrayRe.FindString(s)
	return m, m != ""
}
