package wttj

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

func TestNormalizeContract(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		// WTTJ's "full_time" names a permanent contract, not working
		// time.
		{input: "full_time", want: "cdi"},
		{input: "FULL_TIME", want: "cdi"},
		{input: "temporary", want: "cdd"},
		{input: "internship", want: "internship"},
		{input: "freelance", want: "freelance"},
	}

	for _, tc := range cases {
		if got := normalizeContract(tc.input); got != tc.want {
			t.Fatalf("normalizeContract(%q): expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestMapHit(t *testing.T) {
	c := New("app", "key", zap.NewNop())

	h := hit{
		Reference:    "REF-1",
		Name:         "Backend Engineer",
		Description:  "Build the platform.",
		ContractType: "full_time",
		Remote:       "fulltime",
		PublishedAt:  1746180000,
		Slug:         "backend-engineer",
	}
	h.Office.City = "Paris"
	h.Organization.Name = "Acme"
	h.Organization.Slug = "acme"

	job := c.mapHit(h)

	if job.Source != "wttj" {
		t.Fatalf("unexpected source: %q", job.Source)
	}
	if job.SourceLabel != "Welcome to the Jungle" {
		t.Fatalf("unexpected label: %q", job.SourceLabel)
	}
	if job.ApplyURL != "https://www.welcometothejungle.com/fr/companies/acme/jobs/backend-engineer" {
		t.Fatalf("unexpected apply url: %q", job.ApplyURL)
	}
	if job.Contract() != jobs.ContractPermanent {
		t.Fatalf("expected full_time to normalize to permanent, got %q", job.Contract())
	}
	if job.Remote() != jobs.RemoteFull {
		t.Fatalf("expected full remote, got %q", job.Remote())
	}

	want := time.Unix(1746180000, 0).UTC()
	if job.PostedAt == nil || !job.PostedAt.Equal(want) {
		t.Fatalf("unexpected posted date: %v", job.PostedAt)
	}
}

func TestMapHitWithoutSlugsHasNoApplyURL(t *testing.T) {
	c := New("app", "key", zap.NewNop())

	job := c.mapHit(hit{Reference: "REF-2", Name: "Backend Engineer"})
	if job.ApplyURL != "" {
		t.Fatalf("expected no apply url without slugs, got %q", job.ApplyURL)
	}
	if job.Matching.ContractRaw != nil || job.Matching.RemoteRaw != nil {
		t.Fatalf("expected absent facets to stay absent")
	}
}
