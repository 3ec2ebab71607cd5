package textstats

import (
	"strings"
	"unicode"
)

// Filter is the immutable word-filtering configuration handed to a Cleaner.
type Filter struct {
	// StopWords are dropped when stop-word removal is requested. Matching is
	// exact and happens before lower-casing.
	StopWords []string `yaml:"stop_words" json:"stop_words"`
	// StopPrefixes drop any token starting with one of them.
	StopPrefixes []string `yaml:"stop_prefixes" json:"stop_prefixes"`
	// KeepPunct lists punctuation runes that are not stripped from tokens.
	KeepPunct string `yaml:"keep_punct" json:"keep_punct"`
}

// DefaultFilter returns the stop words and prefixes used for tweet text.
func DefaultFilter() Filter {
	return Filter{
		StopWords: []string{"a", "an", "the", "this", "that", "of", "for", "or",
			"and", "on", "to", "be", "if", "we", "you", "in", "is",
			"at", "it", "rt", "mt", "with"},
		StopPrefixes: []string{"@", "#", "http", "&"},
		KeepPunct:    "#@&",
	}
}

// Cleaner turns raw text into normalised tokens. It copies its Filter on
// construction and never mutates it, so one Cleaner may be shared.
type Cleaner struct {
	stopWords    map[string]struct{}
	stopPrefixes []string
	keep         string
}

// NewCleaner builds a Cleaner from f.
func NewCleaner(f Filter) *Cleaner {
	c := &Cleaner{
		stopWords:    make(map[string]struct{}, len(f.StopWords)),
		stopPrefixes: append([]string(nil), f.StopPrefixes...),
		keep:         f.KeepPunct,
	}
	for _, w := range f.StopWords {
		c.stopWords[w] = struct{}{}
	}
	return c
}

// Tokens splits text on whitespace, drops mentions, links and tokens with a
// stop prefix, strips surrounding punctuation, optionally drops stop words
// and finally lower-cases unless caseSensitive is set.
func (c *Cleaner) Tokens(text string, caseSensitive, dropStopWords bool) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		if c.skip(tok) {
			continue
		}
		tok = strings.TrimFunc(tok, c.isPunct)
		if tok == "" {
			continue
		}
		if dropStopWords {
			if _, ok := c.stopWords[tok]; ok {
				continue
			}
		}
		if !caseSensitive {
			tok = strings.ToLower(tok)
		}
		out = append(out, tok)
	}
	return out
}

func (c *Cleaner) skip(tok string) bool {
	if strings.Contains(tok, "http") || strings.Contains(tok, "@") {
		return true
	}
	for _, p := range c.stopPrefixes {
		if strings.HasPrefix(tok, p) {
			return true
		}
	}
	return false
}

func (c *Cleaner) isPunct(r rune) bool {
	return unicode.IsPunct(r) && !strings.ContainsRune(c.keep, r)
}

// NGrams returns the consecutive runs of n tokens, each joined by a single
// space. It returns nil when n is not positive or exceeds len(tokens).
func NGrams(tokens []string, n int) []string {
	if n <= 0 || n > len(tokens) {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}
