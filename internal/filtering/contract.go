package filtering

import (
	"context"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

type contractFilter struct {
	requested []jobs.ContractType
}

// NewContractType creates the contract-type facet filter. The facet is
// tri-state: a record whose source never exposed a contract type is
// handled differently from one carrying a non-matching value.
//
// Two deliberate policies live here:
//   - a freelance request also accepts fixed-term records, since most
//     sources fold freelance/contractor work into their fixed-term
//     category;
//   - unknown records are dropped only when freelance was explicitly
//     requested. Freelance searches are strict because false positives
//     cost the user; every other combination keeps unknowns to avoid
//     starving results.
func NewContractType(requested []jobs.ContractType) Filter {
	return &contractFilter{requested: requested}
}

func (f *contractFilter) Name() string { return "contract_type" }

func (f *contractFilter) IsEnabled() bool { return len(f.requested) > 0 }

func (f *contractFilter) Validate() error { return nil }

func (f *contractFilter) Apply(_ context.Context, list *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := list.Len()

	freelanceRequested := false
	for _, t := range f.requested {
		if t == jobs.ContractFreelance {
			freelanceRequested = true
		}
	}

	kept := make([]*jobs.Job, 0, initial)
	for _, job := range list.Items {
		contract := job.Contract()

		if contract == jobs.ContractUnknown {
			if freelanceRequested {
				continue
			}
			kept = append(kept, job)
			continue
		}

		if f.matches(contract) {
			if freelanceRequested && contract == jobs.ContractFixedTerm {
				job.Matching.ContractLabel = "Freelance"
			}
			kept = append(kept, job)
		}
	}
	list.Items = kept

	return list, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *contractFilter) matches(contract jobs.ContractType) bool {
	for _, t := range f.requested {
		if contract == t {
			return true
		}
		if t == jobs.ContractFreelance && contract == jobs.ContractFixedTerm {
			return true
		}
	}
	return false
}
