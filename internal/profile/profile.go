package profile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// Profile is the structured search intent of one candidate. It is
// immutable for the duration of a pipeline run.
type Profile struct {
	// Roles are the target role titles in priority order; the first one
	// is the primary role. At least one role is required.
	Roles     []string `mapstructure:"roles" json:"roles"`
	Skills    []string `mapstructure:"skills" json:"skills"`
	Location  string   `mapstructure:"location" json:"location"`
	Seniority string   `mapstructure:"seniority" json:"seniority"`
	// Contracts restricts results to the listed contract types
	// (permanent, fixed-term, internship, freelance). Empty means no
	// contract filtering.
	Contracts []string `mapstructure:"contracts" json:"contracts"`
	// RemoteModes restricts results to the listed work modes (on-site,
	// hybrid, full-remote). Empty means no work-mode filtering.
	RemoteModes []string `mapstructure:"remote-modes" json:"remote_modes"`
	// Recency is either a plain day count ("7", "30") or one of the
	// inverted-range sentinels "older-30" / "older-90".
	Recency string `mapstructure:"recency" json:"recency"`
	// ExcludeAgencies drops postings from known recruitment agencies.
	ExcludeAgencies bool `mapstructure:"exclude-agencies" json:"exclude_agencies"`
}

// Validate checks the invariants scoring cannot proceed without. A
// profile with no target roles is fatal to the run.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("profile is required")
	}

	roles := 0
	for _, role := range p.Roles {
		if strings.TrimSpace(role) != "" {
			roles++
		}
	}
	if roles == 0 {
		return fmt.Errorf("profile must list at least one target role")
	}

	for _, c := range p.Contracts {
		if _, err := parseContract(c); err != nil {
			return err
		}
	}
	for _, m := range p.RemoteModes {
		if _, err := parseRemoteMode(m); err != nil {
			return err
		}
	}

	if _, err := ParseRecency(p.Recency); err != nil {
		return err
	}

	return nil
}

// RequestedContracts returns the normalized contract-type set, dropping
// blanks and duplicates.
func (p *Profile) RequestedContracts() []jobs.ContractType {
	seen := make(map[jobs.ContractType]bool)
	var out []jobs.ContractType
	for _, c := range p.Contracts {
		t, err := parseContract(c)
		if err != nil || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// RequestedRemoteModes returns the normalized remote-mode set.
func (p *Profile) RequestedRemoteModes() []jobs.RemoteMode {
	seen := make(map[jobs.RemoteMode]bool)
	var out []jobs.RemoteMode
	for _, m := range p.RemoteModes {
		mode, err := parseRemoteMode(m)
		if err != nil || seen[mode] {
			continue
		}
		seen[mode] = true
		out = append(out, mode)
	}
	return out
}

func parseContract(s string) (jobs.ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "permanent":
		return jobs.ContractPermanent, nil
	case "fixed-term", "fixed_term":
		return jobs.ContractFixedTerm, nil
	case "internship":
		return jobs.ContractInternship, nil
	case "freelance":
		return jobs.ContractFreelance, nil
	default:
		return jobs.ContractUnknown, fmt.Errorf("unknown contract type %q", s)
	}
}

func parseRemoteMode(s string) (jobs.RemoteMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on-site", "on_site", "onsite":
		return jobs.RemoteOnSite, nil
	case "hybrid":
		return jobs.RemoteHybrid, nil
	case "full-remote", "full_remote":
		return jobs.RemoteFull, nil
	default:
		return jobs.RemoteUnknown, fmt.Errorf("unknown remote mode %q", s)
	}
}

// Summary renders a compact human-readable description of the profile
// for the semantic re-ranker prompt.
func (p *Profile) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target roles (priority order): %s\n", strings.Join(p.Roles, ", "))
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.Seniority != "" {
		fmt.Fprintf(&b, "Seniority: %s\n", p.Seniority)
	}
	return strings.TrimSpace(b.String())
}

const (
	// RecencyOlderThan30 and RecencyOlderThan90 are sentinel values
	// requesting only postings older than the given age.
	RecencyOlderThan30 = "older-30"
	RecencyOlderThan90 = "older-90"

	defaultRecencyDays = 30
)

// Window is the two-parameter recency range passed uniformly to every
// adapter: how far back to fetch, and the minimum age a record must
// have to be kept. Providers cannot filter by minimum age server-side,
// so "older than" requests fetch a wider window and discard locally.
type Window struct {
	FetchDays  int
	MinAgeDays int
}

// ParseRecency translates the profile recency value into a Window. The
// translation happens once, at the orchestrator boundary.
func ParseRecency(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Window{FetchDays: defaultRecencyDays}, nil
	case RecencyOlderThan30:
		return Window{FetchDays: 120, MinAgeDays: 30}, nil
	case RecencyOlderThan90:
		return Window{FetchDays: 180, MinAgeDays: 90}, nil
	}

	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || days <= 0 {
		return Window{}, fmt.Errorf("invalid recency %q: expected a positive day count, %q or %q", s, RecencyOlderThan30, RecencyOlderThan90)
	}
	return Window{FetchDays: days}, nil
}
