package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lectern/internal/core/domain"
)

// fakeModel answers with the first word of the context that also appears
// in the question, scored by its length.
func fakeModel(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req qaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		resp := qaResponse{}
		for _, word := range strings.Fields(req.Inputs.Context) {
			if strings.Contains(strings.ToLower(req.Inputs.Question), strings.ToLower(word)) && len(word) > 3 {
				start := strings.Index(req.Inputs.Context, word)
				resp = qaResponse{Answer: word, Score: float64(len(word)) / 100, Start: start, End: start + len(word)}
				break
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestExtractAnswers(t *testing.T) {
	var calls int32
	srv := fakeModel(t, &calls)
	defer srv.Close()

	r := New(Config{Endpoint: srv.URL, APIToken: "secret", ContextWindow: 6})
	passages := []domain.Passage{
		{ID: "p1", Content: "The determinant is a scalar value"},
		{ID: "p2", Content: "Eigenvectors keep their direction"},
		{ID: "p3", Content: "nothing relevant here"},
	}

	answers, err := r.ExtractAnswers(context.Background(), "what are eigenvectors or a determinant?", passages, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	require.Len(t, answers, 2)
	assert.Equal(t, "Eigenvectors", answers[0].Text)
	assert.Equal(t, "p2", answers[0].Passage.ID)
	assert.InDelta(t, 0.12, answers[0].Confidence, 1e-9)
	assert.Equal(t, "Eigenvectors keep", answers[0].Context)

	assert.Equal(t, "determinant", answers[1].Text)
	assert.Equal(t, "The determinant is a", answers[1].Context)
}

func TestExtractAnswers_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Model is currently loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := New(Config{Endpoint: srv.URL})
	_, err := r.ExtractAnswers(context.Background(), "q", []domain.Passage{{ID: "p", Content: "c"}}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReaderUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestExtractAnswers_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	r := New(Config{Endpoint: url})
	_, err := r.ExtractAnswers(context.Background(), "q", []domain.Passage{{ID: "p", Content: "c"}}, 1)
	assert.ErrorIs(t, err, domain.ErrReaderUnavailable)
}

func TestExtractAnswers_NoPassages(t *testing.T) {
	r := New(Config{Endpoint: "http://127.0.0.1:1"})
	answers, err := r.ExtractAnswers(context.Background(), "q", nil, 1)
	require.NoError(t, err)
	assert.Empty(t, answers)
}

func TestDecodeResponse(t *testing.T) {
	single, err := decodeResponse([]byte(`{"answer":"a grid","score":0.7,"start":5,"end":11}`))
	require.NoError(t, err)
	assert.Equal(t, "a grid", single.Answer)

	list, err := decodeResponse([]byte(` [{"answer":"low","score":0.1},{"answer":"high","score":0.9}]`))
	require.NoError(t, err)
	assert.Equal(t, "high", list.Answer)

	empty, err := decodeResponse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, empty.Answer)

	_, err = decodeResponse([]byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrReaderUnavailable)

	_, err = decodeResponse([]byte(`[{"answer": 3}]`))
	assert.ErrorIs(t, err, domain.ErrReaderUnavailable)
}

func TestExtractAnswers_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway</html>"))
	}))
	defer srv.Close()

	r := New(Config{Endpoint: srv.URL})
	_, err := r.ExtractAnswers(context.Background(), "q", []domain.Passage{{ID: "p", Content: "c"}}, 1)
	assert.ErrorIs(t, err, domain.ErrReaderUnavailable)
}

func TestByteOffsets(t *testing.T) {
	s := "naïve matrix"
	start, end := byteOffsets(s, 6, 12)
	assert.Equal(t, "matrix", s[start:end])

	start, end = byteOffsets(s, 0, 99)
	assert.Equal(t, s, s[start:end])
}

func TestNew_Defaults(t *testing.T) {
	r := New(Config{ContextWindow: -1})
	assert.Equal(t, DefaultEndpoint, r.endpoint)
	assert.Equal(t, DefaultContextWindow, r.contextWindow)
	assert.Equal(t, DefaultTimeout, r.client.Timeout)
}
