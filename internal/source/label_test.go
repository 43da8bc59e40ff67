package source

import "testing"

func TestOriginalSourceLabel(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{name: "known board", url: "https://www.indeed.com/viewjob?jk=123", want: "Indeed"},
		{name: "subdomain of known board", url: "https://fr.indeed.com/viewjob?jk=123", want: "Indeed"},
		{name: "french board", url: "https://www.hellowork.com/fr-fr/emplois/1.html", want: "HelloWork"},
		{name: "unknown board", url: "https://jobs.acme-corp.example/offer/9", want: GenericLabel},
		{name: "empty url", url: "", want: GenericLabel},
		{name: "not a url", url: "::::", want: GenericLabel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OriginalSourceLabel(tc.url); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

// The aggregator identity must never leak into user-facing labels,
// whatever URL the provider hands back.
func TestOriginalSourceLabelNeverNamesAggregators(t *testing.T) {
	urls := []string{
		"https://www.adzuna.fr/land/ad/123",
		"https://fr.jooble.org/away/456",
	}

	for _, u := range urls {
		label := OriginalSourceLabel(u)
		if label == "adzuna" || label == "jooble" {
			t.Fatalf("aggregator identity leaked for %s", u)
		}
		if label != GenericLabel {
			t.Fatalf("expected the generic label for %s, got %q", u, label)
		}
	}
}
