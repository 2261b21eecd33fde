// Package huggingface provides a Reader backed by a hosted extractive
// question-answering model such as deepset/roberta-base-squad2.
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/lectern/internal/adapters/driven/reader"
	"github.com/custodia-labs/lectern/internal/core/domain"
	"github.com/custodia-labs/lectern/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.Reader = (*Reader)(nil)

// Default configuration values.
const (
	DefaultEndpoint      = "https://api-inference.huggingface.co/models/deepset/roberta-base-squad2"
	DefaultTimeout       = 60 * time.Second
	DefaultContextWindow = 150
)

// Config holds configuration for the inference endpoint.
type Config struct {
	// Endpoint is the full model inference URL.
	Endpoint string

	// APIToken is sent as a bearer token when set.
	APIToken string

	// ContextWindow is the characters of context kept around a span.
	ContextWindow int

	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration
}

// Reader calls the inference endpoint once per passage.
type Reader struct {
	client        *http.Client
	endpoint      string
	token         string
	contextWindow int
}

// qaRequest is the question-answering pipeline request format.
type qaRequest struct {
	Inputs qaInputs `json:"inputs"`
}

type qaInputs struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// qaResponse is one answer from the pipeline. Offsets are character
// offsets into the context.
type qaResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score"`
	Start  int     `json:"start"`
	End    int     `json:"end"`
}

// New creates a Hugging Face reader.
func New(cfg Config) *Reader {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.ContextWindow < 0 {
		cfg.ContextWindow = DefaultContextWindow
	}

	return &Reader{
		client:        &http.Client{Timeout: cfg.Timeout},
		endpoint:      cfg.Endpoint,
		token:         cfg.APIToken,
		contextWindow: cfg.ContextWindow,
	}
}

// ExtractAnswers asks the model for the best span in each passage and
// returns the topK most confident. Scores are passed through as reported.
func (r *Reader) ExtractAnswers(
	ctx context.Context, question string, passages []domain.Passage, topK int,
) ([]domain.Answer, error) {
	if topK <= 0 || len(passages) == 0 {
		return nil, nil
	}

	var answers []domain.Answer
	for _, p := range passages {
		resp, err := r.infer(ctx, question, p.Content)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(resp.Answer) == "" {
			continue
		}
		start, end := byteOffsets(p.Content, resp.Start, resp.End)
		answers = append(answers, domain.Answer{
			Text:       resp.Answer,
			Context:    reader.ContextAround(p.Content, start, end, r.contextWindow),
			Confidence: resp.Score,
			Start:      start,
			End:        end,
			Passage:    p,
		})
	}

	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Confidence > answers[j].Confidence
	})
	if len(answers) > topK {
		answers = answers[:topK]
	}
	return answers, nil
}

func (r *Reader) infer(ctx context.Context, question, passage string) (*qaResponse, error) {
	jsonBody, err := json.Marshal(qaRequest{Inputs: qaInputs{Question: question, Context: passage}})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send request: %w", domain.ErrReaderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", domain.ErrReaderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: inference error (status %d): %s",
			domain.ErrReaderUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodeResponse(body)
}

// decodeResponse accepts either a single answer object or a list of
// answers, as returned when the endpoint is configured with top_k > 1.
func decodeResponse(body []byte) (*qaResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []qaResponse
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: decode response: %w", domain.ErrReaderUnavailable, err)
		}
		if len(list) == 0 {
			return &qaResponse{}, nil
		}
		best := list[0]
		for _, a := range list[1:] {
			if a.Score > best.Score {
				best = a
			}
		}
		return &best, nil
	}

	var single qaResponse
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrReaderUnavailable, err)
	}
	return &single, nil
}

// byteOffsets converts rune offsets reported by the model into byte
// offsets into s, clamped to its bounds.
func byteOffsets(s string, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	byteStart, byteEnd := len(s), len(s)
	n := 0
	for i := range s {
		if n == start {
			byteStart = i
		}
		if n == end {
			byteEnd = i
			break
		}
		n++
	}
	return byteStart, byteEnd
}
