package source

import (
	"net/url"
	"strings"
)

// GenericLabel is the user-facing source label when the originating
// board cannot be recognized.
const GenericLabel = "Direct listing"

// knownBoards maps outbound URL domains to the job board they belong
// to. Aggregator adapters use it to recover the true originating board
// for display; the aggregator's own identity is never shown.
var knownBoards = map[string]string{
	"indeed.com":                "Indeed",
	"linkedin.com":              "LinkedIn",
	"glassdoor.com":             "Glassdoor",
	"glassdoor.fr":              "Glassdoor",
	"monster.fr":                "Monster",
	"monster.com":               "Monster",
	"hellowork.com":             "HelloWork",
	"apec.fr":                   "Apec",
	"meteojob.com":              "Meteojob",
	"welcometothejungle.com":    "Welcome to the Jungle",
	"lesjeudis.com":             "Les Jeudis",
	"francetravail.fr":          "France Travail",
	"candidat.francetravail.fr": "France Travail",
	"jobijoba.com":              "Jobijoba",
	"talent.com":                "Talent.com",
}

// OriginalSourceLabel inspects an outbound apply URL and returns the
// user-facing label of the originating board, falling back to
// GenericLabel when the domain is not recognized.
func OriginalSourceLabel(applyURL string) string {
	u, err := url.Parse(strings.TrimSpace(applyURL))
	if err != nil || u.Host == "" {
		return GenericLabel
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	for domain, label := range knownBoards {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return label
		}
	}
	return GenericLabel
}
