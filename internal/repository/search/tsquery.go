package search

import "strings"

// Tokenize lowercases the query and extracts alphanumeric term runs.
// Everything else (punctuation, operators) is a separator, which keeps user
// input from ever reaching to_tsquery as syntax.
func Tokenize(query string) []string {
	query = strings.ToLower(query)
	var tokens []string
	var b strings.Builder
	for _, r := range query {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

// buildTsquery joins tokens into an OR tsquery expression. Multi-term queries
// are an OR of terms: a recipe matching any term is a candidate, and ts_rank
// weighs how many terms it matches.
func buildTsquery(tokens []string) string {
	return strings.Join(tokens, " | ")
}
