package domain

// NotFoundMessage is returned as the answer when no passage yields a span.
const NotFoundMessage = "I couldn't find an answer to your question in the course materials."

// Answer is a span extracted from a single passage.
type Answer struct {
	// Text is the extracted answer span.
	Text string

	// Context is the window of passage text surrounding the span.
	Context string

	// Confidence is the reader's score. Zero is a valid score.
	Confidence float64

	// Start and End are byte offsets of the span within the passage.
	Start int
	End   int

	// Passage is the passage the span was extracted from.
	Passage Passage
}

// AnswerResult is the response returned to callers of the QA pipeline.
type AnswerResult struct {
	Answer      string   `json:"answer"`
	Context     *string  `json:"context"`
	Confidence  float64  `json:"confidence"`
	UsefulLinks []string `json:"useful_links"`
}

// NotFoundResult returns the sentinel result for unanswered questions.
func NotFoundResult() AnswerResult {
	return AnswerResult{
		Answer:      NotFoundMessage,
		Context:     nil,
		Confidence:  0.0,
		UsefulLinks: []string{},
	}
}

// Found reports whether the result carries an extracted answer.
func (r AnswerResult) Found() bool {
	return r.Context != nil
}
