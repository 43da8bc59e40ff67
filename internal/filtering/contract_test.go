package filtering

import (
	"context"
	"testing"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

func applyContract(t *testing.T, requested []jobs.ContractType, items []*jobs.Job) *jobs.Jobs {
	t.Helper()

	filtered, _, err := NewContractType(requested).Apply(context.Background(), &jobs.Jobs{Items: items})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return filtered
}

func TestContractFilterKeepsUnknownForNonFreelanceRequests(t *testing.T) {
	filtered := applyContract(t, []jobs.ContractType{jobs.ContractPermanent}, []*jobs.Job{
		{ExternalID: "unknown"},
		{ExternalID: "permanent", Matching: jobs.Matching{ContractRaw: jobs.String("cdi")}},
		{ExternalID: "internship", Matching: jobs.Matching{ContractRaw: jobs.String("stage")}},
	})

	if filtered.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", filtered.Len())
	}
	if filtered.FindByExternalID("", "unknown") == nil {
		t.Fatalf("expected the unknown-contract record to be kept")
	}
	if filtered.FindByExternalID("", "internship") != nil {
		t.Fatalf("expected the non-matching record to be dropped")
	}
}

func TestContractFilterDropsUnknownWhenFreelanceRequested(t *testing.T) {
	filtered := applyContract(t, []jobs.ContractType{jobs.ContractFreelance}, []*jobs.Job{
		{ExternalID: "unknown"},
		{ExternalID: "freelance", Matching: jobs.Matching{ContractRaw: jobs.String("freelance")}},
	})

	if filtered.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", filtered.Len())
	}
	if filtered.FindByExternalID("", "unknown") != nil {
		t.Fatalf("expected the unknown-contract record to be dropped for a freelance request")
	}
}

func TestFreelanceRequestAcceptsFixedTermWithLabel(t *testing.T) {
	filtered := applyContract(t, []jobs.ContractType{jobs.ContractFreelance}, []*jobs.Job{
		{ExternalID: "contract", Matching: jobs.Matching{ContractRaw: jobs.String("contract")}},
		{ExternalID: "permanent", Matching: jobs.Matching{ContractRaw: jobs.String("cdi")}},
	})

	if filtered.Len() != 1 {
		t.Fatalf("expected only the fixed-term record, got %d", filtered.Len())
	}

	kept := filtered.Items[0]
	if kept.ExternalID != "contract" {
		t.Fatalf("expected the fixed-term record to be retained")
	}
	if kept.Matching.ContractLabel != "Freelance" {
		t.Fatalf("expected the display label %q, got %q", "Freelance", kept.Matching.ContractLabel)
	}
}

func TestContractFilterDisabledWithoutRequest(t *testing.T) {
	if NewContractType(nil).IsEnabled() {
		t.Fatalf("expected the filter to be disabled with no requested types")
	}
}
