// Package ranking provides the lexical scoring shared by the in-memory
// passage store and the extractive reader: a Unicode word tokeniser with
// English stopwords and a sparse TF-IDF cosine scorer.
package ranking

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// Tokenize lower-cases text and returns its word tokens without stopwords.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, t := range raw {
		if _, stop := stopwords[t]; stop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TermSet returns the distinct tokens of text.
func TermSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Scorer holds inverse document frequencies for a corpus.
type Scorer struct {
	idf  map[string]float64
	size int
}

// NewScorer computes smoothed IDF values over corpus.
func NewScorer(corpus []string) *Scorer {
	df := make(map[string]int)
	for _, text := range corpus {
		for term := range TermSet(text) {
			df[term]++
		}
	}

	n := float64(len(corpus))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1.0
	}
	return &Scorer{idf: idf, size: len(corpus)}
}

// IDF returns the inverse document frequency of term.
// Terms absent from the corpus get the maximum weight.
func (s *Scorer) IDF(term string) float64 {
	if v, ok := s.idf[term]; ok {
		return v
	}
	return math.Log(1+float64(s.size)) + 1.0
}

// vector builds an L2-normalised sparse TF-IDF vector.
func (s *Scorer) vector(text string) map[string]float64 {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}

	vec := make(map[string]float64, len(tf))
	norm := 0.0
	total := float64(len(tokens))
	for term, count := range tf {
		v := float64(count) / total * s.IDF(term)
		vec[term] = v
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for term := range vec {
			vec[term] /= norm
		}
	}
	return vec
}

// Score returns the cosine similarity of the TF-IDF vectors of query and text.
// It is zero when they share no terms.
func (s *Scorer) Score(query, text string) float64 {
	q := s.vector(query)
	if len(q) == 0 {
		return 0
	}
	d := s.vector(text)

	dot := 0.0
	for term, w := range q {
		dot += w * d[term]
	}
	return dot
}

// Hit is a scored position in a ranked corpus.
type Hit struct {
	Index int
	Score float64
}

// Rank scores every text against query and returns the non-zero hits,
// best first. Equal scores keep corpus order.
func Rank(query string, texts []string) []Hit {
	scorer := NewScorer(texts)

	hits := make([]Hit, 0, len(texts))
	for i, text := range texts {
		if score := scorer.Score(query, text); score > 0 {
			hits = append(hits, Hit{Index: i, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	return hits
}
