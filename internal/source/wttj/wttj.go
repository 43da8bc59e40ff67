// Package wttj implements the source adapter for Welcome to the
// Jungle. Search goes through their Algolia index, whose hits are
// loosely typed; they are decoded into the common schema with
// mapstructure. WTTJ is a direct-employer board and a quality source.
package wttj

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
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/source"
)

const (
	apiURL      = "https://csekhvms53-dsn.algolia.net/1/indexes/wttj_jobs_production_fr/query"
	jobBaseURL  = "https://www.welcometothejungle.com/fr/companies"
	sourceLabel = "Welcome to the Jungle"
	hitsPerPage = 50
	httpTimeout = 30 * time.Second
)

type Client struct {
	appID  string
	apiKey string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(appID, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		appID:  appID,
		apiKey: apiKey,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return "wttj" }

func (c *Client) Fetch(ctx context.Context, q source.Query) (*jobs.Jobs, error) {
	merged := &jobs.Jobs{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range source.FanOutRoles(q.Roles) {
		g.Go(func() error {
			list, err := c.searchRole(ctx, role, q)
			if err != nil {
				c.logger.Warn("wttj role query failed",
					zap.String("role", role),
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

type queryRequest struct {
	Query       string `json:"query"`
	HitsPerPage int    `json:"hitsPerPage"`
	Filters     string `json:"filters,omitempty"`
}

type queryResponse struct {
	Hits []map[string]any `json:"hits"`
}

// hit mirrors the fields of an Algolia job hit this adapter consumes.
// Hits carry many more keys; everything unmapped is dropped rather
// than guessed.
type hit struct {
	Reference    string  `json:"reference"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ContractType string  `json:"contract_type"`
	Remote       string  `json:"remote"`
	PublishedAt  float64 `json:"published_at_timestamp"`
	Office       struct {
		City string `json:"city"`
	} `json:"office"`
	Organization struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"organization"`
	Slug string `json:"slug"`
}

func (c *Client) searchRole(ctx context.Context, role string, q source.Query) (*jobs.Jobs, error) {
	body, err := json.Marshal(queryRequest{
		Query:       role,
		HitsPerPage: hitsPerPage,
		Filters:     locationFilter(q.Location),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", c.appID)
	req.Header.Set("X-Algolia-API-Key", c.apiKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("wttj returned %d: %s", resp.StatusCode, string(raw))
	}

	var payload queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	list := &jobs.Jobs{}
	now := time.Now().UTC()
	for _, rawHit := range payload.Hits {
		var h hit
		cfg := &mapstructure.DecoderConfig{
			Result:  &h,
			TagName: "json",
		}
		decoder, _ := mapstructure.NewDecoder(cfg)
		if err := decoder.Decode(rawHit); err != nil {
			c.logger.Debug("skipping undecodable hit", zap.Error(err))
			continue
		}

		job := c.mapHit(h)
		if !source.KeepByAge(job.PostedAt, q.Window, now) {
			continue
		}
		list.Items = append(list.Items, job)
	}

	return list, nil
}

func (c *Client) mapHit(h hit) *jobs.Job {
	job := &jobs.Job{
		Source:      c.Name(),
		SourceLabel: sourceLabel,
		ExternalID:  h.Reference,
		Title:       h.Name,
		Company:     h.Organization.Name,
		Location:    h.Office.City,
		Description: h.Description,
	}

	if job.ExternalID == "" {
		job.ExternalID = uuid.NewString()
	}

	if h.Organization.Slug != "" && h.Slug != "" {
		job.ApplyURL = fmt.Sprintf("%s/%s/jobs/%s", jobBaseURL, h.Organization.Slug, h.Slug)
	}

	if h.PublishedAt > 0 {
		ts := time.Unix(int64(h.PublishedAt), 0).UTC()
		job.PostedAt = &ts
	}

	if h.ContractType != "" {
		job.Matching.ContractRaw = jobs.String(normalizeContract(h.ContractType))
	}
	if h.Remote != "" {
		job.Matching.RemoteRaw = jobs.String(h.Remote)
	}

	return job
}

// normalizeContract translates WTTJ's contract vocabulary, where
// "full_time" means a permanent contract and "temporary" a fixed-term
// one, into values the common contract table understands.
func normalizeContract(ct string) string {
	switch strings.ToLower(strings.TrimSpace(ct)) {
	case "full_time":
		return "cdi"
	case "temporary":
		return "cdd"
	default:
		return ct
	}
}

func locationFilter(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	return fmt.Sprintf("offices.city:%q", location)
}
