// Package francetravail implements the source adapter for the France
// Travail "Offres d'emploi" API. It is a direct-employer board and a
// quality source: records keep the France Travail label.
package francetravail

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/source"
)

const (
	apiURL      = "https://api.francetravail.io/partenaire/offresdemploi/v2/offres/search"
	sourceLabel = "France Travail"
	pageSize    = 50
	httpTimeout = 30 * time.Second
)

type Client struct {
	token  string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(token string, logger *zap.Logger) *Client {
	return &Client{
		token:  token,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
	}
}

func (c *Client) Name() string { return "francetravail" }

func (c *Client) Fetch(ctx context.Context, q source.Query) (*jobs.Jobs, error) {
	merged := &jobs.Jobs{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, role := range source.FanOutRoles(q.Roles) {
		g.Go(func() error {
			list, err := c.searchRole(ctx, role, q)
			if err != nil {
				c.logger.Warn("france travail role query failed",
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

type searchResponse struct {
	Resultats []offer `json:"resultats"`
}

type offer struct {
	ID           string `json:"id"`
	Intitule     string `json:"intitule"`
	Description  string `json:"description"`
	DateCreation string `json:"dateCreation"`
	LieuTravail  struct {
		Libelle string `json:"libelle"`
	} `json:"lieuTravail"`
	Entreprise struct {
		Nom string `json:"nom"`
	} `json:"entreprise"`
	TypeContrat string `json:"typeContrat"`
	Salaire     struct {
		Libelle string `json:"libelle"`
	} `json:"salaire"`
	OrigineOffre struct {
		URLOrigine string `json:"urlOrigine"`
	} `json:"origineOffre"`
}

func (c *Client) searchRole(ctx context.Context, role string, q source.Query) (*jobs.Jobs, error) {
	params := url.Values{}
	params.Set("motsCles", role)
	params.Set("range", fmt.Sprintf("0-%d", pageSize-1))
	if bucket := recencyBucket(q.Window.FetchDays); bucket != "" {
		params.Set("publieeDepuis", bucket)
	}
	if exp := experienceFacet(q.Seniority); exp != "" {
		params.Set("experience", exp)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	// The API answers 206 for partial result ranges.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("france travail returned %d: %s", resp.StatusCode, string(raw))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	list := &jobs.Jobs{}
	now := time.Now().UTC()
	for _, item := range payload.Resultats {
		job := c.mapOffer(item)
		if !source.KeepByAge(job.PostedAt, q.Window, now) {
			continue
		}
		list.Items = append(list.Items, job)
	}

	return list, nil
}

func (c *Client) mapOffer(item offer) *jobs.Job {
	job := &jobs.Job{
		Source:      c.Name(),
		SourceLabel: sourceLabel,
		ExternalID:  item.ID,
		Title:       item.Intitule,
		Company:     item.Entreprise.Nom,
		Location:    item.LieuTravail.Libelle,
		Description: item.Description,
		ApplyURL:    item.OrigineOffre.URLOrigine,
	}

	if item.DateCreation != "" {
		if ts, err := time.Parse(time.RFC3339, item.DateCreation); err == nil {
			job.PostedAt = &ts
		}
	}

	if item.TypeContrat != "" {
		job.Matching.ContractRaw = jobs.String(item.TypeContrat)
	}
	if item.Salaire.Libelle != "" {
		job.Matching.Extra = map[string]string{"salary": item.Salaire.Libelle}
	}

	return job
}

// recencyBucket snaps the fetch window onto the discrete publieeDepuis
// values the API accepts. Windows wider than a month are left unbounded
// and trimmed locally by age.
func recencyBucket(fetchDays int) string {
	switch {
	case fetchDays <= 0 || fetchDays > 31:
		return ""
	case fetchDays <= 1:
		return "1"
	case fetchDays <= 3:
		return "3"
	case fetchDays <= 7:
		return "7"
	case fetchDays <= 14:
		return "14"
	default:
		return "31"
	}
}

func experienceFacet(seniority string) string {
	switch strings.ToLower(strings.TrimSpace(seniority)) {
	case "junior", "entry":
		return "1"
	case "mid", "intermediate":
		return "2"
	case "senior", "lead":
		return "3"
	default:
		return ""
	}
}
