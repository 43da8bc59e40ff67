package filtering

import (
	"context"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

type remoteFilter struct {
	requested []jobs.RemoteMode
}

// NewRemoteMode creates the work-mode facet filter. Unlike the
// contract filter it is uniformly lenient: a record with an unknown
// work mode is always kept, because work-mode data is sparse and
// filtering it away destroys recall.
func NewRemoteMode(requested []jobs.RemoteMode) Filter {
	return &remoteFilter{requested: requested}
}

func (f *remoteFilter) Name() string { return "remote_mode" }

func (f *remoteFilter) IsEnabled() bool { return len(f.requested) > 0 }

func (f *remoteFilter) Validate() error { return nil }

func (f *remoteFilter) Apply(_ context.Context, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := list.Len()

	kept := make([]*jobs.Job, 0, initial)
	for _, job := range list.Items {
		mode := job.Remote()
		if mode == jobs.RemoteUnknown || f.matches(mode) {
			kept = append(kept, job)
		}
	}
	list.Items = kept

	return list, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *remoteFilter) matches(mode jobs.RemoteMode) bool {
	for _, m := range f.requested {
		if mode == m {
			return true
		}
	}
	return false
}
