package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundResult(t *testing.T) {
	r := NotFoundResult()

	assert.Equal(t, "I couldn't find an answer to your question in the course materials.", r.Answer)
	assert.Nil(t, r.Context)
	assert.Equal(t, 0.0, r.Confidence)
	assert.NotNil(t, r.UsefulLinks)
	assert.Empty(t, r.UsefulLinks)
	assert.False(t, r.Found())
}

func TestNotFoundResult_JSON(t *testing.T) {
	data, err := json.Marshal(NotFoundResult())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"answer": "I couldn't find an answer to your question in the course materials.",
		"context": null,
		"confidence": 0,
		"useful_links": []
	}`, string(data))
}

func TestAnswerResult_Found(t *testing.T) {
	ctx := "The quadratic formula is x = (-b ± √(b²-4ac)) / 2a."
	r := AnswerResult{Answer: "x = (-b ± √(b²-4ac)) / 2a", Context: &ctx, Confidence: 0.8}

	assert.True(t, r.Found())
}
