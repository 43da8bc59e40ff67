package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/ai"
	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/logger"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Reranker scores a record batch with Gemini. It implements
// ai.Reranker.
type Reranker struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// excerptRunes bounds the description excerpt per record so the
	// batch prompt stays well under model input limits.
	excerptRunes = 600
)

func NewReranker(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Reranker {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Reranker{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

type promptJob struct {
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Rerank submits the whole batch as one prompt and maps the response
// back by position. Any shape mismatch fails the batch.
func (r *Reranker) Rerank(ctx context.Context, profileSummary string, batch []*jobs.Job) ([]ai.Ranking, error) {
	if len(batch) == 0 {
		return nil, nil
	}

	items := make([]promptJob, 0, len(batch))
	for i, job := range batch {
		items = append(items, promptJob{
			Index:       i + 1,
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			Description: excerpt(job.Description),
		})
	}

	jobsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job batch: %w", err)
	}

	prompt := buildPrompt(profileSummary, string(jobsJSON))

	r.logger.Debug("gemini rerank request",
		zap.Int("batch_size", len(batch)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, r.maxLogLen)),
	)

	raw, err := r.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("gemini rerank response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, r.maxLogLen)),
	)

	return parseResponse(raw, len(batch))
}

func buildPrompt(profileSummary, jobsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Candidate:\n{{PROFILE_SUMMARY}}\n\nPostings:\n{{JOBS_JSON}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{PROFILE_SUMMARY}}", profileSummary)
	prompt = strings.ReplaceAll(prompt, "{{JOBS_JSON}}", jobsJSON)
	return prompt
}

func excerpt(description string) string {
	runes := []rune(description)
	if len(runes) <= excerptRunes {
		return description
	}
	return string(runes[:excerptRunes])
}

// parseResponse decodes the model output into a ranking slice parallel
// to the submitted batch. The response must be a JSON array with
// exactly one entry per submitted record and every score in [0,100].
func parseResponse(raw string, want int) ([]ai.Ranking, error) {
	cleaned := extractJSON(raw)

	var entries []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	if len(entries) != want {
		return nil, fmt.Errorf("gemini returned %d rankings for %d records", len(entries), want)
	}

	rankings := make([]ai.Ranking, 0, want)
	for i, entry := range entries {
		score := coerceFloat(entry["score"])
		if math.IsNaN(score) {
			return nil, fmt.Errorf("ranking %d: missing or non-numeric score", i+1)
		}
		if score < 0 || score > 100 {
			return nil, fmt.Errorf("ranking %d: score %v out of range", i+1, score)
		}

		rankings = append(rankings, ai.Ranking{
			Score:         int(math.Round(score)),
			Justification: coerceString(entry["justification"]),
		})
	}

	return rankings, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
