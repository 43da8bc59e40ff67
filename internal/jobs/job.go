package jobs

import (
	"strings"
	"time"
	"unicode"
)

// ContractType is the normalized employment contract facet.
type ContractType string

const (
	ContractPermanent  ContractType = "permanent"
	ContractFixedTerm  ContractType = "fixed-term"
	ContractInternship ContractType = "internship"
	ContractFreelance  ContractType = "freelance"
	ContractUnknown    ContractType = "unknown"
)

// RemoteMode is the normalized work-mode facet.
type RemoteMode string

const (
	RemoteOnSite  RemoteMode = "on-site"
	RemoteHybrid  RemoteMode = "hybrid"
	RemoteFull    RemoteMode = "full-remote"
	RemoteUnknown RemoteMode = "unknown"
)

// Job is the normalized representation of one posting across all sources.
type Job struct {
	// Source is the adapter that produced the record.
	Source string `json:"source"`
	// SourceLabel is the user-facing originating board. It must never be
	// the name of an aggregator provider.
	SourceLabel string `json:"source_label"`
	// ExternalID is unique within one Source for a single fetch.
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	ApplyURL    string     `json:"apply_url"`

	Matching Matching `json:"matching"`

	// HeuristicScore is 0-100. A score of 0 means the record was filtered
	// out, never "worst possible real match".
	HeuristicScore int `json:"heuristic_score"`
	// Rank is 1-based and contiguous, assigned once after final ordering.
	Rank int `json:"rank,omitempty"`

	SemanticScore *int   `json:"semantic_score,omitempty"`
	Justification string `json:"justification,omitempty"`
}

// Matching carries the facet bag used by filters and scoring. ContractRaw
// and RemoteRaw are tri-state: a nil value means the source did not expose
// the facet, which filters treat differently from a present non-matching
// value.
type Matching struct {
	ContractRaw *string `json:"contract_raw,omitempty"`
	// ContractLabel is a display override, e.g. "Freelance" when a
	// fixed-term record satisfied a freelance request.
	ContractLabel string             `json:"contract_label,omitempty"`
	RemoteRaw     *string            `json:"remote_raw,omitempty"`
	SalaryMin     *float64           `json:"salary_min,omitempty"`
	SalaryMax     *float64           `json:"salary_max,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// FullText returns the lowercased title and description, the haystack for
// every substring-based filter and scorer.
func (j *Job) FullText() string {
	return strings.ToLower(j.Title + " " + j.Description)
}

// Contract returns the normalized contract type of the record.
func (j *Job) Contract() ContractType {
	return NormalizeContract(j.Matching.ContractRaw)
}

// Remote returns the normalized work mode of the record.
func (j *Job) Remote() RemoteMode {
	return NormalizeRemote(j.Matching.RemoteRaw)
}

var contractVocabulary = map[string]ContractType{
	"cdi":            ContractPermanent,
	"permanent":      ContractPermanent,
	"cdd":            ContractFixedTerm,
	"contract":       ContractFixedTerm,
	"fixed_term":     ContractFixedTerm,
	"fixed-term":     ContractFixedTerm,
	"temporary":      ContractFixedTerm,
	"interim":        ContractFixedTerm,
	"mis":            ContractFixedTerm,
	"sai":            ContractFixedTerm,
	"stage":          ContractInternship,
	"internship":     ContractInternship,
	"intern":         ContractInternship,
	"apprenticeship": ContractInternship,
	"alternance":     ContractInternship,
	"app":            ContractInternship,
	"stg":            ContractInternship,
	"freelance":      ContractFreelance,
	"free-lance":     ContractFreelance,
	"independent":    ContractFreelance,
	"independant":    ContractFreelance,
	"self_employed":  ContractFreelance,
	"self-employed":  ContractFreelance,
	"lib":            ContractFreelance,
}

// NormalizeContract maps a source-native contract value into the common
// model. A nil raw value stays unknown; it is never defaulted to a guess.
func NormalizeContract(raw *string) ContractType {
	if raw == nil {
		return ContractUnknown
	}

	if t, ok := contractVocabulary[strings.ToLower(strings.TrimSpace(*raw))]; ok {
		return t
	}
	return ContractUnknown
}

var remoteVocabulary = map[string]RemoteMode{
	"full":        RemoteFull,
	"fulltime":    RemoteFull,
	"full_remote": RemoteFull,
	"full-remote": RemoteFull,
	"remote":      RemoteFull,
	"total":       RemoteFull,
	"hybrid":      RemoteHybrid,
	"hybride":     RemoteHybrid,
	"partial":     RemoteHybrid,
	"partiel":     RemoteHybrid,
	"on-site":     RemoteOnSite,
	"onsite":      RemoteOnSite,
	"on_site":     RemoteOnSite,
	"office":      RemoteOnSite,
	"no":          RemoteOnSite,
	"none":        RemoteOnSite,
	"presentiel":  RemoteOnSite,
	"présentiel":  RemoteOnSite,
}

// NormalizeRemote maps a source-native work-mode value into the common
// model. A nil raw value stays unknown.
func NormalizeRemote(raw *string) RemoteMode {
	if raw == nil {
		return RemoteUnknown
	}

	if m, ok := remoteVocabulary[strings.ToLower(strings.TrimSpace(*raw))]; ok {
		return m
	}
	return RemoteUnknown
}

// qualitySources lists adapters believed to expose direct-employer
// listings. Records from these sources are never zeroed out by the
// relevance scorer.
var qualitySources = map[string]bool{
	"francetravail": true,
	"wttj":          true,
}

// IsQualitySource reports whether the adapter name is on the
// direct-employer allowlist.
func IsQualitySource(source string) bool {
	return qualitySources[source]
}

// DedupKey builds the soft deduplication key for a record: normalized
// title plus normalized company, lowercase with every non-alphanumeric
// rune stripped.
func DedupKey(title, company string) string {
	return normalizeKeyPart(title) + "|" + normalizeKeyPart(company)
}

func normalizeKeyPart(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// String pins a literal to the heap so adapters can populate the
// tri-state raw facet fields without temporaries.
func String(s string) *string {
	return &s
}
