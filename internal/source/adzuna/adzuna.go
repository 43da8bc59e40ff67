// Package adzuna implements the source adapter for the Adzuna public
// API. Adzuna is an aggregator: the user-facing source label is
// recovered from the outbound URL, never the provider name itself.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/source"
)

const (
	apiURL         = "https://api.adzuna.com/v1/api/jobs"
	defaultCountry = "fr"
	perPage        = 50
	// maxPages bounds each role sub-query to 150 records.
	maxPages    = 3
	httpTimeout = 30 * time.Second
)

type Client struct {
	appID   string
	appKey  string
	country string
	logger  *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(appID, appKey, country string, logger *zap.Logger) *Client {
	if country == "" {
		country = defaultCountry
	}

	return &Client{
		appID:   appID,
		appKey:  appKey,
		country: country,
		logger:  logger,
		APIURL:  apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return "adzuna" }

// Fetch issues one sub-query per target role concurrently and merges
// the normalized results. A failed sub-query contributes the pages it
// already fetched.
func (c *Client) Fetch(ctx context.Context, q source.Query) (*jobs.Jobs, error) {
	merged := &jobs.Jobs{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range source.FanOutRoles(q.Roles) {
		g.Go(func() error {
			list, err := c.searchRole(ctx, role, q)
			if err != nil {
				c.logger.Warn("adzuna role query failed",
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

// searchRole walks result pages for a single role term. On a page
// error the records fetched so far are returned alongside the error.
func (c *Client) searchRole(ctx context.Context, role string, q source.Query) (*jobs.Jobs, error) {
	list := &jobs.Jobs{}
	now := time.Now().UTC()

	for page := 1; page <= maxPages; page++ {
		batch, err := c.fetchPage(ctx, role, q, page)
		if err != nil {
			return list, fmt.Errorf("page %d: %w", page, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, item := range batch {
			job := c.mapItem(item)
			if !source.KeepByAge(job.PostedAt, q.Window, now) {
				continue
			}
			list.Items = append(list.Items, job)
		}

		if len(batch) < perPage {
			break
		}
	}

	return list, nil
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

type searchResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Company      companyField   `json:"company"`
	Location     locationField  `json:"location"`
	SalaryMin    float64        `json:"salary_min"`
	SalaryMax    float64        `json:"salary_max"`
	RedirectURL  string         `json:"redirect_url"`
	Created      string         `json:"created"`
	ContractTime string         `json:"contract_time"`
	ContractType string         `json:"contract_type"`
}

type companyField struct {
	DisplayName string `json:"display_name"`
}

type locationField struct {
	DisplayName string `json:"display_name"`
}

func (c *Client) fetchPage(ctx context.Context, role string, q source.Query, page int) ([]searchResult, error) {
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.APIURL, c.country, page)

	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("what", role)
	params.Set("sort_by", "date")
	params.Set("content-type", "application/json")
	if q.Location != "" {
		params.Set("where", q.Location)
	}
	if q.Window.FetchDays > 0 {
		params.Set("max_days_old", strconv.Itoa(q.Window.FetchDays))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("adzuna returned %d: %s", resp.StatusCode, string(body))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return payload.Results, nil
}

func (c *Client) mapItem(item searchResult) *jobs.Job {
	job := &jobs.Job{
		Source:      c.Name(),
		SourceLabel: source.OriginalSourceLabel(item.RedirectURL),
		ExternalID:  item.ID,
		Title:       item.Title,
		Company:     item.Company.DisplayName,
		Location:    item.Location.DisplayName,
		Description: item.Description,
		ApplyURL:    item.RedirectURL,
	}

	if job.ExternalID == "" {
		job.ExternalID = uuid.NewString()
	}

	if item.Created != "" {
		if ts, err := time.Parse(time.RFC3339, item.Created); err == nil {
			job.PostedAt = &ts
		}
	}

	if item.ContractType != "" {
		job.Matching.ContractRaw = jobs.String(item.ContractType)
	}
	if item.ContractTime != "" {
		job.Matching.Extra = map[string]string{"contract_time": item.ContractTime}
	}
	if item.SalaryMin > 0 {
		min := item.SalaryMin
		job.Matching.SalaryMin = &min
	}
	if item.SalaryMax > 0 {
		max := item.SalaryMax
		job.Matching.SalaryMax = &max
	}

	return job
}
