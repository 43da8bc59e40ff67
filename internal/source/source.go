// Package source defines the contract every job-board adapter
// implements and the shared query model adapters translate into their
// provider's native API.
package source

import (
	"context"
	"time"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/profile"
)

// MaxRoleQueries caps the role fan-out: most providers accept a single
// query term per call, so adapters issue one sub-query per leading
// target role.
const MaxRoleQueries = 4

// Query is the provider-independent subset of a candidate profile that
// adapters translate into their native request.
type Query struct {
	// Roles are the candidate roles in profile order. Adapters cap the
	// fan-out themselves via FanOutRoles.
	Roles     []string
	Location  string
	Seniority string
	Window    profile.Window
}

// Adapter fetches postings from one external source and normalizes them
// into the common record schema. An adapter must isolate its own
// failures: a broken page or sub-query yields fewer records, never an
// aborted sibling.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, q Query) (*jobs.Jobs, error)
}

// FanOutRoles returns the leading roles used for per-role sub-queries.
func FanOutRoles(roles []string) []string {
	if len(roles) > MaxRoleQueries {
		roles = roles[:MaxRoleQueries]
	}
	return roles
}

// DedupByExternalID keeps the first record per external id. Role
// fan-out can return the same posting for several role terms, and the
// external id must stay unique within one adapter fetch.
func DedupByExternalID(list *jobs.Jobs) *jobs.Jobs {
	seen := make(map[string]bool, list.Len())
	out := &jobs.Jobs{Items: make([]*jobs.Job, 0, list.Len())}
	for _, job := range list.Items {
		if seen[job.ExternalID] {
			continue
		}
		seen[job.ExternalID] = true
		out.Items = append(out.Items, job)
	}
	return out
}

// KeepByAge applies the local side of the recency translation: when a
// minimum age is requested, records newer than that bound are
// discarded. Undated records are dropped too, since their age cannot be
// verified against the bound.
func KeepByAge(postedAt *time.Time, w profile.Window, now time.Time) bool {
	if w.MinAgeDays <= 0 {
		return true
	}
	if postedAt == nil {
		return false
	}
	return postedAt.Before(now.AddDate(0, 0, -w.MinAgeDays))
}
