package ranking

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on",
		"at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "its",
		"this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further",
		"than", "so", "such", "into", "about", "between", "through", "during", "before", "after",
		"above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don",
		"should", "now", "what", "which", "who", "whom", "whose", "how", "why", "when", "where",
		"do", "does", "did", "i", "you", "we", "they", "he", "she", "me", "my", "our", "your",
		"there", "here", "have", "has", "had", "not", "no", "any", "all", "some",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether the lower-case token is ignored for scoring.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
