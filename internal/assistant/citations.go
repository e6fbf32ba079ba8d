package assistant

import "regexp"

// citationPattern matches the inline citation token the provider inserts when
// the file-search tool quotes a retrieved document, e.g. 【3:1†source】 or
// 【1†source】. Purely cosmetic and removed before display or speech.
var citationPattern = regexp.MustCompile(`【\d+(?::\d+)?†source】`)

// StripCitations removes all citation markers from assistant text, leaving
// the surrounding text untouched.
func StripCitations(s string) string {
	return citationPattern.ReplaceAllString(s, "")
}
