package jobs

import (
	"testing"
)

func TestNormalizeContract(t *testing.T) {
	cases := []struct {
		name string
		raw  *string
		want ContractType
	}{
		{name: "nil stays unknown", raw: nil, want: ContractUnknown},
		{name: "cdi", raw: String("CDI"), want: ContractPermanent},
		{name: "cdd", raw: String("cdd"), want: ContractFixedTerm},
		{name: "contract means fixed-term", raw: String("contract"), want: ContractFixedTerm},
		{name: "interim", raw: String("MIS"), want: ContractFixedTerm},
		{name: "internship", raw: String("stage"), want: ContractInternship},
		{name: "freelance", raw: String("freelance"), want: ContractFreelance},
		{name: "padded", raw: String("  permanent  "), want: ContractPermanent},
		{name: "unrecognized", raw: String("gig"), want: ContractUnknown},
		{name: "empty string", raw: String(""), want: ContractUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeContract(tc.raw); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeRemote(t *testing.T) {
	cases := []struct {
		name string
		raw  *string
		want RemoteMode
	}{
		{name: "nil stays unknown", raw: nil, want: RemoteUnknown},
		{name: "full", raw: String("FULL"), want: RemoteFull},
		{name: "hybrid", raw: String("hybrid"), want: RemoteHybrid},
		{name: "french on-site", raw: String("présentiel"), want: RemoteOnSite},
		{name: "no means on-site", raw: String("no"), want: RemoteOnSite},
		{name: "unrecognized", raw: String("sometimes"), want: RemoteUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeRemote(tc.raw); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDedupKey(t *testing.T) {
	a := DedupKey("Backend Engineer", "Acme")
	b := DedupKey("backend engineer!", "ACME.")
	if a != b {
		t.Fatalf("expected matching keys, got %q and %q", a, b)
	}

	c := DedupKey("Backend Engineer", "Acme Labs")
	if a == c {
		t.Fatalf("expected different companies to produce different keys")
	}

	// Title and company must not bleed into each other.
	if DedupKey("ab", "c") == DedupKey("a", "bc") {
		t.Fatalf("expected key parts to stay separated")
	}
}

func TestIsQualitySource(t *testing.T) {
	if !IsQualitySource("francetravail") || !IsQualitySource("wttj") {
		t.Fatalf("expected direct-employer sources to be quality sources")
	}
	if IsQualitySource("adzuna") || IsQualitySource("jooble") {
		t.Fatalf("expected aggregators to not be quality sources")
	}
}

func TestJobsTopAndTail(t *testing.T) {
	list := &Jobs{Items: []*Job{
		{ExternalID: "1"}, {ExternalID: "2"}, {ExternalID: "3"},
	}}

	top := list.Top(2)
	if top.Len() != 2 || top.Items[0].ExternalID != "1" {
		t.Fatalf("unexpected top slice: %+v", top.Items)
	}

	tail := list.Tail(2)
	if tail.Len() != 1 || tail.Items[0].ExternalID != "3" {
		t.Fatalf("unexpected tail slice: %+v", tail.Items)
	}

	if list.Top(10).Len() != 3 || list.Tail(10).Len() != 0 {
		t.Fatalf("expected out-of-range slicing to clamp")
	}
}

func TestSortByScoreIsStable(t *testing.T) {
	list := &Jobs{Items: []*Job{
		{ExternalID: "low", HeuristicScore: 10},
		{ExternalID: "first", HeuristicScore: 50},
		{ExternalID: "second", HeuristicScore: 50},
	}}

	list.SortByScore()

	if list.Items[0].ExternalID != "first" || list.Items[1].ExternalID != "second" {
		t.Fatalf("expected equal scores to keep relative order, got %+v", list.Items)
	}
	if list.Items[2].ExternalID != "low" {
		t.Fatalf("expected descending order")
	}
}
