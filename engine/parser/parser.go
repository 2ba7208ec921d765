// Package parser matches player input against the commands registered on a
// room. Intentionally dumb: no NLP, just normalized phrase comparison.
package parser

import (
	"sort"
	"strings"

	"github.com/nathoo/midway/types"
)

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Normalize lower-cases input, collapses whitespace and strips articles.
func Normalize(input string) string {
	words := strings.Fields(strings.ToLower(input))
	return strings.Join(stripArticles(words), " ")
}

// Match returns the keyword of the registered command the input refers to,
// or "" if none matches. A command matches when the input equals its
// pattern, its keyword, or its pattern without a leading "play".
func Match(input string, cmds map[string]types.Command) string {
	norm := Normalize(input)
	if norm == "" {
		return ""
	}

	// Stable order so overlapping patterns resolve the same way every time.
	keywords := make([]string, 0, len(cmds))
	for kw := range cmds {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		if Normalize(cmds[kw].Pattern) == norm {
			return kw
		}
	}
	for _, kw := range keywords {
		if kw == norm || strings.TrimPrefix(Normalize(cmds[kw].Pattern), "play ") == norm {
			return kw
		}
	}
	return ""
}

// stripArticles removes articles ("the", "a", "an") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
