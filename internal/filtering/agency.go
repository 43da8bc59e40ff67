package filtering

import (
	"context"
	"strings"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// DefaultAgencyDenylist names recruitment agencies and staffing brands
// whose postings are dropped when the profile excludes agencies.
var DefaultAgencyDenylist = []string{
	"michael page",
	"page personnel",
	"hays",
	"adecco",
	"randstad",
	"manpower",
	"expectra",
	"robert half",
	"robert walters",
	"walters people",
	"kelly services",
	"synergie",
	"proman",
	"crit",
	"lynx rh",
	"fed group",
	"spring professional",
	"lhh recruitment",
	"akkodis",
	"modis",
	"approach people",
	"hunteed",
	"free-work",
	"mindquest",
}

type agencyFilter struct {
	enabled  bool
	denylist []string
}

// NewAgencyExclusion creates a filter dropping records whose company
// name or description matches the denylist, case-insensitively. The
// denylist is injected so it can be swapped per tenant; nil falls back
// to DefaultAgencyDenylist.
func NewAgencyExclusion(enabled bool, denylist []string) Filter {
	if denylist == nil {
		denylist = DefaultAgencyDenylist
	}
	return &agencyFilter{
		enabled:  enabled,
		denylist: denylist,
	}
}

func (f *agencyFilter) Name() string { return "agency_exclusion" }

func (f *agencyFilter) IsEnabled() bool { return f.enabled }

func (f *agencyFilter) Validate() error { return nil }

func (f *agencyFilter) Apply(_ context.Context, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := list.Len()

	kept := make([]*jobs.Job, 0, initial)
	for _, job := range list.Items {
		if f.matchesAgency(job) {
			continue
		}
		kept = append(kept, job)
	}
	list.Items = kept

	return list, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *agencyFilter) matchesAgency(job *jobs.Job) bool {
	haystack := strings.ToLower(job.Company) + " " + strings.ToLower(job.Description)
	for _, agency := range f.denylist {
		if agency == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(agency)) {
			return true
		}
	}
	return false
}
