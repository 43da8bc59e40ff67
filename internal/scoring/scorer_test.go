package scoring

import (
	"testing"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/profile"
)

func scoreOne(t *testing.T, p *profile.Profile, job *jobs.Job) (int, bool) {
	t.Helper()

	list := NewScorer(p, zap.NewNop()).Score(&jobs.Jobs{Items: []*jobs.Job{job}})
	if list.Len() == 0 {
		return 0, false
	}
	return list.Items[0].HeuristicScore, true
}

func TestRoleMatchTiers(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}}

	cases := []struct {
		name string
		job  *jobs.Job
		want int
	}{
		{
			name: "title substring",
			job:  &jobs.Job{Title: "Senior Backend Engineer"},
			want: 40,
		},
		{
			name: "full text substring",
			job:  &jobs.Job{Title: "Developer", Description: "We need a backend engineer for our platform."},
			want: 30,
		},
		{
			name: "role word in title",
			job:  &jobs.Job{Title: "Software Engineer"},
			want: 25,
		},
		{
			name: "role word in text",
			job:  &jobs.Job{Title: "Developer", Description: "You will join the engineer guild."},
			want: 15,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, kept := scoreOne(t, p, tc.job)
			if !kept {
				t.Fatalf("expected the record to survive")
			}
			if got != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRoleMatchTakesMaximumAcrossRoles(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Platform Engineer", "Backend Engineer"}}

	got, _ := scoreOne(t, p, &jobs.Job{Title: "Backend Engineer / Platform Engineer"})
	if got != 40 {
		t.Fatalf("expected role scores to not accumulate, got %d", got)
	}
}

func TestSkillCoverageScaling(t *testing.T) {
	p := &profile.Profile{
		Roles:  []string{"Backend Engineer"},
		Skills: []string{"Python", "SQL", "Kubernetes", "Redis"},
	}

	// Title matches the role (40) and the text carries two of four
	// skills: 2/4 * 35 = 17.
	job := &jobs.Job{
		Title:       "Backend Engineer",
		Description: "Daily work with Python services and SQL analytics.",
	}

	got, _ := scoreOne(t, p, job)
	if got != 57 {
		t.Fatalf("expected 40 + 17, got %d", got)
	}
}

func TestSkillCoverageNormalizedAgainstTenSkills(t *testing.T) {
	skills := []string{
		"SQL", "Kubernetes", "Redis", "Kafka", "AWS", "Terraform",
		"Docker", "Python", "Rust", "Scala", "Elixir", "Java",
	}
	p := &profile.Profile{Roles: []string{"Backend Engineer"}, Skills: skills}

	// Ten matching skills out of twelve listed: coverage is full
	// because the denominator is capped at ten.
	job := &jobs.Job{
		Title:       "Backend Engineer",
		Description: "SQL Kubernetes Redis Kafka AWS Terraform Docker Python Rust Scala",
	}

	got, _ := scoreOne(t, p, job)
	if got != 75 {
		t.Fatalf("expected 40 + 35, got %d", got)
	}
}

func TestLocationMatch(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}, Location: "Paris"}

	got, _ := scoreOne(t, p, &jobs.Job{Title: "Backend Engineer", Location: "Paris 9e"})
	if got != 55 {
		t.Fatalf("expected 40 + 15 for a direct location match, got %d", got)
	}

	got, _ = scoreOne(t, p, &jobs.Job{Title: "Backend Engineer", Location: "Île-de-France"})
	if got != 50 {
		t.Fatalf("expected 40 + 10 for a region match, got %d", got)
	}

	got, _ = scoreOne(t, p, &jobs.Job{Title: "Backend Engineer", Location: "Lyon"})
	if got != 40 {
		t.Fatalf("expected no location points, got %d", got)
	}
}

func TestPermanentContractBonus(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}}

	job := &jobs.Job{
		Title:    "Backend Engineer",
		Matching: jobs.Matching{ContractRaw: jobs.String("cdi")},
	}

	got, _ := scoreOne(t, p, job)
	if got != 45 {
		t.Fatalf("expected 40 + 5, got %d", got)
	}
}

func TestZeroRelevanceDrop(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}, Skills: []string{"Go"}}

	// No role overlap, no skill overlap, but a location match: still
	// dropped so a location coincidence alone cannot survive.
	job := &jobs.Job{
		Source:   "adzuna",
		Title:    "Pastry Chef",
		Location: "Paris",
	}

	if _, kept := scoreOne(t, p, job); kept {
		t.Fatalf("expected the unrelated record to be dropped")
	}
}

func TestQualitySourceFlooredInsteadOfDropped(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}, Skills: []string{"Go"}}

	job := &jobs.Job{
		Source: "francetravail",
		Title:  "Pastry Chef",
	}

	got, kept := scoreOne(t, p, job)
	if !kept {
		t.Fatalf("expected the quality-source record to survive")
	}
	if got != 10 {
		t.Fatalf("expected the floor score 10, got %d", got)
	}
}

func TestQualitySourceBonus(t *testing.T) {
	p := &profile.Profile{Roles: []string{"Backend Engineer"}}

	job := &jobs.Job{Source: "wttj", Title: "Backend Engineer"}

	got, _ := scoreOne(t, p, job)
	if got != 50 {
		t.Fatalf("expected 40 + 10, got %d", got)
	}
}

func TestScoreCappedAtOneHundred(t *testing.T) {
	p := &profile.Profile{
		Roles:    []string{"Backend Engineer"},
		Skills:   []string{"Go", "SQL"},
		Location: "Paris",
	}

	job := &jobs.Job{
		Source:      "wttj",
		Title:       "Backend Engineer",
		Location:    "Paris",
		Description: "Go and SQL everywhere.",
		Matching:    jobs.Matching{ContractRaw: jobs.String("cdi")},
	}

	got, _ := scoreOne(t, p, job)
	if got != 100 {
		t.Fatalf("expected the score to cap at 100, got %d", got)
	}
}
