// Package textstats counts tokens, entities and n-grams across batches of
// tweets: frequency tables, top-k lists, minimum-count sets and per-document
// salient terms scored with augmented tf-idf.
package textstats

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Count maps each distinct token to the number of times it occurs.
func Count[T comparable](tokens []T) map[T]int {
	counts := make(map[T]int)
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// TopK returns the k most frequent tokens, most frequent first. Ties are
// broken by token order so the result is deterministic.
func TopK[T cmp.Ordered](tokens []T, k int) ([]T, error) {
	if k < 0 {
		return nil, fmt.Errorf("k must be a non-negative integer, got %d", k)
	}
	counts := Count(tokens)
	keys := make([]T, 0, len(counts))
	for t := range counts {
		keys = append(keys, t)
	}
	slices.SortFunc(keys, func(a, b T) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if k < len(keys) {
		keys = keys[:k]
	}
	return keys, nil
}

// MinCount returns, in sorted order, the tokens occurring at least minCount
// times.
func MinCount[T cmp.Ordered](tokens []T, minCount int) ([]T, error) {
	if minCount < 0 {
		return nil, fmt.Errorf("min count must be a non-negative integer, got %d", minCount)
	}
	var out []T
	for t, n := range Count(tokens) {
		if n >= minCount {
			out = append(out, t)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Salient returns, for each document, the sorted tokens whose tf-idf score is
// strictly above threshold. Term frequency is augmented:
// 0.5 + 0.5*count/maxCount; idf is ln(docs/docsContaining).
func Salient[T cmp.Ordered](docs [][]T, threshold float64) [][]T {
	containing := make(map[T]int)
	for _, doc := range docs {
		for t := range Count(doc) {
			containing[t]++
		}
	}
	n := float64(len(docs))
	out := make([][]T, len(docs))
	for i, doc := range docs {
		out[i] = []T{}
		if len(doc) == 0 {
			continue
		}
		counts := Count(doc)
		maxCount := 0
		for _, c := range counts {
			maxCount = max(maxCount, c)
		}
		for t, c := range counts {
			tf := 0.5 + 0.5*float64(c)/float64(maxCount)
			idf := math.Log(n / float64(containing[t]))
			if tf*idf > threshold {
				out[i] = append(out[i], t)
			}
		}
		slices.Sort(out[i])
	}
	return out
}
