package filtering

import (
	"context"
	"testing"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

func TestAgencyExclusionDropsDenylistedCompany(t *testing.T) {
	filter := NewAgencyExclusion(true, nil)

	list := &jobs.Jobs{Items: []*jobs.Job{
		{Company: "Michael Page", Title: "Backend Engineer", HeuristicScore: 99},
		{Company: "Acme", Title: "Backend Engineer"},
	}}

	filtered, step, err := filter.Apply(context.Background(), list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 1 || filtered.Len() != 1 {
		t.Fatalf("expected one record dropped, got step %+v", step)
	}
	if filtered.Items[0].Company != "Acme" {
		t.Fatalf("expected the agency posting to be gone, kept %q", filtered.Items[0].Company)
	}
}

func TestAgencyExclusionMatchesDescriptionCaseInsensitively(t *testing.T) {
	filter := NewAgencyExclusion(true, []string{"hays"})

	list := &jobs.Jobs{Items: []*jobs.Job{
		{Company: "Confidential", Description: "Our client, represented by HAYS, is hiring."},
		{Company: "Confidential", Description: "A growing startup."},
	}}

	filtered, _, err := filter.Apply(context.Background(), list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filtered.Len() != 1 {
		t.Fatalf("expected the description match to be dropped, got %d records", filtered.Len())
	}
}

func TestAgencyExclusionDisabledWhenNotRequested(t *testing.T) {
	filter := NewAgencyExclusion(false, nil)
	if filter.IsEnabled() {
		t.Fatalf("expected the filter to be disabled")
	}
}
