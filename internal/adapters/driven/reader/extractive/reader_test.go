package extractive

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

func passage(id, content string) domain.Passage {
	return domain.Passage{ID: id, Content: content, Metadata: domain.Metadata{CourseTitle: "Algebra 101"}}
}

func TestExtractAnswers_PicksCoveringSentence(t *testing.T) {
	r := New()
	p := passage("p1", "Vectors have magnitude. A matrix is a rectangular array of numbers. Determinants are scalars.")

	answers, err := r.ExtractAnswers(context.Background(), "What is a matrix?", []domain.Passage{p}, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1)

	a := answers[0]
	assert.Equal(t, "A matrix is a rectangular array of numbers.", a.Text)
	assert.Equal(t, a.Text, p.Content[a.Start:a.End])
	assert.Equal(t, "p1", a.Passage.ID)
	assert.Greater(t, a.Confidence, 0.0)
	assert.LessOrEqual(t, a.Confidence, 1.0)
	assert.Contains(t, a.Context, a.Text)
}

func TestExtractAnswers_RareTermsWeighMore(t *testing.T) {
	r := New()
	passages := []domain.Passage{
		passage("common", "Every cell has a membrane."),
		passage("rare", "Mitochondria release energy."),
		passage("common2", "A cell divides by mitosis."),
	}

	answers, err := r.ExtractAnswers(context.Background(), "Which cell part are the mitochondria?", passages, 3)
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, "rare", answers[0].Passage.ID)
}

func TestExtractAnswers_FullCoverageBeatsPartial(t *testing.T) {
	r := New()
	passages := []domain.Passage{
		passage("partial", "The determinant is a number."),
		passage("full", "The determinant of a square matrix is a scalar."),
	}

	answers, err := r.ExtractAnswers(context.Background(), "determinant of a square matrix", passages, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "full", answers[0].Passage.ID)
}

func TestExtractAnswers_NoSharedTerms(t *testing.T) {
	r := New()
	answers, err := r.ExtractAnswers(context.Background(), "photosynthesis",
		[]domain.Passage{passage("p1", "A matrix is a grid.")}, 1)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestExtractAnswers_EmptyInputs(t *testing.T) {
	r := New()
	ctx := context.Background()

	answers, err := r.ExtractAnswers(ctx, "matrix", nil, 1)
	require.NoError(t, err)
	assert.Empty(t, answers)

	answers, err = r.ExtractAnswers(ctx, "what is the", []domain.Passage{passage("p", "the matrix")}, 1)
	require.NoError(t, err)
	assert.Empty(t, answers)

	answers, err = r.ExtractAnswers(ctx, "matrix", []domain.Passage{passage("p", "the matrix")}, 0)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestExtractAnswers_TopKAndTieOrder(t *testing.T) {
	r := New()
	passages := []domain.Passage{
		passage("a", "Eigenvalues scale eigenvectors."),
		passage("b", "Eigenvalues scale eigenvectors."),
		passage("c", "Eigenvalues scale eigenvectors."),
	}

	answers, err := r.ExtractAnswers(context.Background(), "eigenvalues", passages, 2)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "a", answers[0].Passage.ID)
	assert.Equal(t, "b", answers[1].Passage.ID)
}

func TestExtractAnswers_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ExtractAnswers(ctx, "matrix", []domain.Passage{passage("p", "matrix")}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithContextWindow(t *testing.T) {
	p := passage("p1", "alpha beta gamma delta. The matrix is square. epsilon zeta eta theta")

	answers, err := New(WithContextWindow(0)).ExtractAnswers(context.Background(), "matrix", []domain.Passage{p}, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "The matrix is square.", answers[0].Context)

	answers, err = New(WithContextWindow(9)).ExtractAnswers(context.Background(), "matrix", []domain.Passage{p}, 1)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	assert.Equal(t, "delta. The matrix is square. epsilon", answers[0].Context)
}

func TestSplitSpans(t *testing.T) {
	text := "First sentence. Second one! Third? e.g.x stays\nNew line"
	var got []string
	for _, s := range splitSpans(text) {
		got = append(got, text[s.start:s.end])
	}
	assert.Equal(t, []string{"First sentence.", "Second one!", "Third?", "e.g.x stays", "New line"}, got)
}

func TestSplitSpans_CapsLongRuns(t *testing.T) {
	words := make([]string, 95)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	spans := splitSpans(text)
	require.Len(t, spans, 3)
	assert.Len(t, strings.Fields(text[spans[0].start:spans[0].end]), maxSpanWords)
	assert.Len(t, strings.Fields(text[spans[1].start:spans[1].end]), maxSpanWords)
	assert.Len(t, strings.Fields(text[spans[2].start:spans[2].end]), 15)
}
