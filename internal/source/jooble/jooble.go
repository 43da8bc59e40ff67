// Package jooble implements the source adapter for the Jooble search
// API. Jooble aggregates other boards; each result carries the domain
// it was scraped from, which becomes the user-facing source label.
package jooble

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/source"
)

const (
	apiURL      = "https://jooble.org/api"
	maxPages    = 2
	httpTimeout = 30 * time.Second
)

type Client struct {
	apiKey string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(apiKey string, logger *zap.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return "jooble" }

// Fetch issues one sub-query per target role concurrently and merges
// the normalized results.
func (c *Client) Fetch(ctx context.Context, q source.Query) (*jobs.Jobs, error) {
	merged := &jobs.Jobs{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range source.FanOutRoles(q.Roles) {
		g.Go(func() error {
			list, err := c.searchRole(ctx, role, q)
			if err != nil {
				c.logger.Warn("jooble role query failed",
					zap.String("role", role),
					zap.Int("partial_records", list.Len()),
					zap.Error(err),
				)
			}

			mu.Lock()
			merged.Append(list)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	return source.DedupByExternalID(merged), nil
}

type searchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
	Page     int    `json:"page"`
}

type searchResponse struct {
	TotalCount int          `json:"totalCount"`
	Jobs       []joobleItem `json:"jobs"`
}

type joobleItem struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Location string      `json:"location"`
	Snippet  string      `json:"snippet"`
	Salary   string      `json:"salary"`
	Source   string      `json:"source"`
	Type     string      `json:"type"`
	Link     string      `json:"link"`
	Company  string      `json:"company"`
	Updated  string      `json:"updated"`
}

func (c *Client) searchRole(ctx context.Context, role string, q source.Query) (*jobs.Jobs, error) {
	list := &jobs.Jobs{}
	now := time.Now().UTC()

	for page := 1; page <= maxPages; page++ {
		items, err := c.fetchPage(ctx, role, q, page)
		if err != nil {
			return list, fmt.Errorf("page %d: %w", page, err)
		}
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			job := c.mapItem(item)
			if !source.KeepByAge(job.PostedAt, q.Window, now) {
				continue
			}
			list.Items = append(list.Items, job)
		}
	}

	return list, nil
}

func (c *Client) fetchPage(ctx context.Context, role string, q source.Query, page int) ([]joobleItem, error) {
	body, err := json.Marshal(searchRequest{
		Keywords: role,
		Location: q.Location,
		Page:     page,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s", c.APIURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("jooble returned %d: %s", resp.StatusCode, string(raw))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload.Jobs, nil
}

func (c *Client) mapItem(item joobleItem) *jobs.Job {
	job := &jobs.Job{
		Source:      c.Name(),
		SourceLabel: originalLabel(item),
		ExternalID:  item.ID.String(),
		Title:       item.Title,
		Company:     item.Company,
		Location:    item.Location,
		Description: item.Snippet,
		ApplyURL:    item.Link,
	}

	if job.ExternalID == "" {
		job.ExternalID = uuid.NewString()
	}

	if item.Updated != "" {
		if ts, err := time.Parse(time.RFC3339, item.Updated); err == nil {
			job.PostedAt = &ts
		}
	}

	job.Matching.Extra = map[string]string{}
	if contract := normalizeType(item.Type); contract != "" {
		job.Matching.ContractRaw = jobs.String(contract)
	} else if item.Type != "" {
		job.Matching.Extra["employment_type"] = item.Type
	}
	if item.Salary != "" {
		job.Matching.Extra["salary"] = item.Salary
	}
	if len(job.Matching.Extra) == 0 {
		job.Matching.Extra = nil
	}

	return job
}

// originalLabel resolves the originating board. The result's source
// field holds the scraped domain; the outbound link is the fallback.
func originalLabel(item joobleItem) string {
	if domain := strings.TrimSpace(item.Source); domain != "" {
		if label := source.OriginalSourceLabel("https://" + domain); label != source.GenericLabel {
			return label
		}
	}
	return source.OriginalSourceLabel(item.Link)
}

// normalizeType flattens Jooble's display vocabulary into values the
// common contract table understands. "Full-time"/"Part-time" describe
// working time, not the contract, so they map to nothing: the facet
// stays absent rather than guessed.
func normalizeType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "permanent":
		return "permanent"
	case "temporary", "contract":
		return "contract"
	case "internship":
		return "internship"
	case "freelance":
		return "freelance"
	default:
		return ""
	}
}
