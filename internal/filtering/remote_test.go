package filtering

import (
	"context"
	"testing"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

func TestRemoteFilterAlwaysKeepsUnknown(t *testing.T) {
	filter := NewRemoteMode([]jobs.RemoteMode{jobs.RemoteFull})

	list := &jobs.Jobs{Items: []*jobs.Job{
		{ExternalID: "unknown"},
		{ExternalID: "remote", Matching: jobs.Matching{RemoteRaw: jobs.String("full")}},
		{ExternalID: "office", Matching: jobs.Matching{RemoteRaw: jobs.String("on-site")}},
	}}

	filtered, step, err := filter.Apply(context.Background(), list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if step.Dropped != 1 {
		t.Fatalf("expected only the on-site record dropped, got %+v", step)
	}
	if filtered.FindByExternalID("", "unknown") == nil {
		t.Fatalf("expected the unknown-mode record to survive")
	}
	if filtered.FindByExternalID("", "office") != nil {
		t.Fatalf("expected the on-site record to be dropped")
	}
}

func TestRemoteFilterDisabledWithoutRequest(t *testing.T) {
	if NewRemoteMode(nil).IsEnabled() {
		t.Fatalf("expected the filter to be disabled with no requested modes")
	}
}
