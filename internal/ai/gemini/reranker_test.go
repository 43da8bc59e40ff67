package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func batch(titles ...string) []*jobs.Job {
	out := make([]*jobs.Job, 0, len(titles))
	for _, title := range titles {
		out = append(out, &jobs.Job{Title: title, Company: "Acme", Location: "Paris"})
	}
	return out
}

func TestRerankParsesPositionalResponse(t *testing.T) {
	stub := &stubGenerator{response: `[
		{"score": 90, "justification": "Strong match"},
		{"score": 40, "justification": "Wrong stack"}
	]`}
	reranker := NewReranker(stub, zap.NewNop(), 0)

	rankings, err := reranker.Rerank(context.Background(), "profile summary", batch("Backend Engineer", "Frontend Developer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rankings) != 2 {
		t.Fatalf("expected 2 rankings, got %d", len(rankings))
	}
	if rankings[0].Score != 90 || rankings[0].Justification != "Strong match" {
		t.Fatalf("unexpected first ranking: %+v", rankings[0])
	}
	if rankings[1].Score != 40 {
		t.Fatalf("unexpected second ranking: %+v", rankings[1])
	}

	if !strings.Contains(stub.lastPrompt, "profile summary") {
		t.Fatalf("expected the profile summary in the prompt")
	}
	if !strings.Contains(stub.lastPrompt, "Backend Engineer") {
		t.Fatalf("expected the job batch in the prompt")
	}
}

func TestRerankStripsCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n[{\"score\": 75, \"justification\": \"ok\"}]\n```"}
	reranker := NewReranker(stub, zap.NewNop(), 0)

	rankings, err := reranker.Rerank(context.Background(), "summary", batch("Backend Engineer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rankings[0].Score != 75 {
		t.Fatalf("expected score 75, got %d", rankings[0].Score)
	}
}

func TestRerankCoercesStringScores(t *testing.T) {
	stub := &stubGenerator{response: `[{"score": "82", "justification": "ok"}]`}
	reranker := NewReranker(stub, zap.NewNop(), 0)

	rankings, err := reranker.Rerank(context.Background(), "summary", batch("Backend Engineer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rankings[0].Score != 82 {
		t.Fatalf("expected score 82, got %d", rankings[0].Score)
	}
}

func TestRerankFailsWholeBatch(t *testing.T) {
	cases := []struct {
		name     string
		response string
		err      error
	}{
		{name: "generator error", err: errors.New("unavailable")},
		{name: "not json", response: "I cannot rank these."},
		{name: "partial batch", response: `[{"score": 90, "justification": "only one"}]`},
		{name: "missing score", response: `[{"justification": "a"}, {"justification": "b"}]`},
		{name: "score out of range", response: `[{"score": 90}, {"score": 120}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubGenerator{response: tc.response, err: tc.err}
			reranker := NewReranker(stub, zap.NewNop(), 0)

			_, err := reranker.Rerank(context.Background(), "summary", batch("Backend Engineer", "Data Engineer"))
			if err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestRerankEmptyBatchIsNoop(t *testing.T) {
	stub := &stubGenerator{}
	reranker := NewReranker(stub, zap.NewNop(), 0)

	rankings, err := reranker.Rerank(context.Background(), "summary", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rankings != nil {
		t.Fatalf("expected no rankings for an empty batch")
	}
	if stub.lastPrompt != "" {
		t.Fatalf("expected no prompt to be sent")
	}
}

func TestExcerptBoundsDescription(t *testing.T) {
	long := strings.Repeat("é", excerptRunes+100)
	got := excerpt(long)
	if len([]rune(got)) != excerptRunes {
		t.Fatalf("expected the excerpt capped at %d runes, got %d", excerptRunes, len([]rune(got)))
	}

	short := "compact description"
	if excerpt(short) != short {
		t.Fatalf("expected short descriptions untouched")
	}
}
