package textstats

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tweet is the subset of a tweet record the analyses read.
type Tweet struct {
	AbridgedText string                      `json:"abridged_text"`
	Entities     map[string][]map[string]any `json:"entities"`
}

// EntityDesc selects an entity field, e.g. {"hashtags", "text", false} or
// {"user_mentions", "screen_name", true}.
type EntityDesc struct {
	Kind          string
	Key           string
	CaseSensitive bool
}

// ParseEntityDesc parses "kind.key" with an optional ":cs" suffix marking the
// comparison as case-sensitive.
func ParseEntityDesc(s string) (EntityDesc, error) {
	var d EntityDesc
	if strings.HasSuffix(s, ":cs") {
		d.CaseSensitive = true
		s = strings.TrimSuffix(s, ":cs")
	}
	kind, key, ok := strings.Cut(s, ".")
	if !ok || kind == "" || key == "" {
		return d, fmt.Errorf("entity %q: want kind.key, e.g. hashtags.text", s)
	}
	d.Kind, d.Key = kind, key
	return d, nil
}

// ReadTweets decodes a JSON array of tweets.
func ReadTweets(r io.Reader) ([]Tweet, error) {
	var tweets []Tweet
	if err := json.NewDecoder(r).Decode(&tweets); err != nil {
		return nil, fmt.Errorf("decoding tweets: %w", err)
	}
	return tweets, nil
}

// LoadTweets reads a JSON array of tweets from path.
func LoadTweets(path string) ([]Tweet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tweets: %w", err)
	}
	defer f.Close()
	return ReadTweets(f)
}

// Entities collects the desc.Key values of every desc.Kind entity across
// tweets, lower-cased unless the description is case-sensitive.
func Entities(tweets []Tweet, desc EntityDesc) []string {
	var out []string
	for _, tw := range tweets {
		for _, ent := range tw.Entities[desc.Kind] {
			v, ok := ent[desc.Key].(string)
			if !ok {
				continue
			}
			if !desc.CaseSensitive {
				v = strings.ToLower(v)
			}
			out = append(out, v)
		}
	}
	return out
}

// Analyzer runs the tweet analyses with a fixed Cleaner.
type Analyzer struct {
	cleaner *Cleaner
}

// NewAnalyzer returns an Analyzer filtering words with f.
func NewAnalyzer(f Filter) *Analyzer {
	return &Analyzer{cleaner: NewCleaner(f)}
}

// TopKEntities returns the k most frequent entities.
func (a *Analyzer) TopKEntities(tweets []Tweet, desc EntityDesc, k int) ([]string, error) {
	return TopK(Entities(tweets, desc), k)
}

// MinCountEntities returns the entities occurring at least minCount times.
func (a *Analyzer) MinCountEntities(tweets []Tweet, desc EntityDesc, minCount int) ([]string, error) {
	return MinCount(Entities(tweets, desc), minCount)
}

func (a *Analyzer) ngrams(tw Tweet, n int, caseSensitive, dropStopWords bool) []string {
	return NGrams(a.cleaner.Tokens(tw.AbridgedText, caseSensitive, dropStopWords), n)
}

func (a *Analyzer) allNGrams(tweets []Tweet, n int, caseSensitive bool) []string {
	var out []string
	for _, tw := range tweets {
		out = append(out, a.ngrams(tw, n, caseSensitive, true)...)
	}
	return out
}

// TopKNGrams returns the k most frequent n-grams with stop words removed.
func (a *Analyzer) TopKNGrams(tweets []Tweet, n int, caseSensitive bool, k int) ([]string, error) {
	return TopK(a.allNGrams(tweets, n, caseSensitive), k)
}

// MinCountNGrams returns the n-grams occurring at least minCount times with
// stop words removed.
func (a *Analyzer) MinCountNGrams(tweets []Tweet, n int, caseSensitive bool, minCount int) ([]string, error) {
	return MinCount(a.allNGrams(tweets, n, caseSensitive), minCount)
}

// SalientNGrams returns the salient n-grams of each tweet. Stop words are kept.
func (a *Analyzer) SalientNGrams(tweets []Tweet, n int, caseSensitive bool, threshold float64) [][]string {
	docs := make([][]string, len(tweets))
	for i, tw := range tweets {
		docs[i] = a.ngrams(tw, n, caseSensitive, false)
	}
	return Salient(docs, threshold)
}
