// Package scoring computes the deterministic heuristic relevance score
// per record, collapses duplicates, and assigns final rank positions.
package scoring

import (
	"strings"

	"go.uber.org/zap"

	"github.com/jobscoutdev/jobscout/internal/jobs"
	"github.com/jobscoutdev/jobscout/internal/profile"
)

const (
	maxRoleScore     = 40
	maxSkillScore    = 35
	maxLocationScore = 15
	permanentBonus   = 5
	qualityBonus     = 10

	// qualityFloor is the minimum score a quality-source record keeps
	// even when its text overlap with the profile is zero.
	qualityFloor = 10

	// maxCountedSkills caps the denominator of the skill-coverage
	// ratio: listing 30 skills should not make full coverage
	// unreachable.
	maxCountedSkills = 10
)

// Scorer assigns each record a heuristic score in [0,100].
type Scorer struct {
	profile *profile.Profile
	logger  *zap.Logger
}

func NewScorer(p *profile.Profile, logger *zap.Logger) *Scorer {
	return &Scorer{profile: p, logger: logger}
}

// Score computes the heuristic score for every record and drops the
// ones with zero role and zero skill overlap. Quality-source records
// are never dropped for zero relevance; they are floored instead.
func (s *Scorer) Score(list *jobs.Jobs) *jobs.Jobs {
	kept := make([]*jobs.Job, 0, list.Len())
	for _, job := range list.Items {
		title := strings.ToLower(job.Title)
		fullText := strings.ToLower(job.FullText())

		roleScore := s.roleScore(title, fullText)
		skillMatches := s.skillMatches(fullText)

		quality := jobs.IsQualitySource(job.Source)
		if roleScore == 0 && skillMatches == 0 && !quality {
			job.HeuristicScore = 0
			s.logger.Debug("dropping zero-relevance record",
				zap.String("source", job.Source),
				zap.String("title", job.Title),
			)
			continue
		}

		score := roleScore + s.skillScore(skillMatches)
		score += s.locationScore(strings.ToLower(job.Location))
		if job.Contract() == jobs.ContractPermanent {
			score += permanentBonus
		}
		if quality {
			score += qualityBonus
			if score < qualityFloor {
				score = qualityFloor
			}
		}
		if score > 100 {
			score = 100
		}

		job.HeuristicScore = score
		kept = append(kept, job)
	}
	list.Items = kept

	return list
}

// roleScore returns the strongest role match across all requested
// roles and match tiers. A single strong match dominates; role scores
// are never summed.
func (s *Scorer) roleScore(title, fullText string) int {
	best := 0
	for _, role := range s.profile.Roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}

		switch {
		case strings.Contains(title, role):
			best = max(best, maxRoleScore)
		case strings.Contains(fullText, role):
			best = max(best, 30)
		default:
			for _, word := range strings.Fields(role) {
				if len(word) <= 3 {
					continue
				}
				if strings.Contains(title, word) {
					best = max(best, 25)
				} else if strings.Contains(fullText, word) {
					best = max(best, 15)
				}
			}
		}
	}
	return best
}

func (s *Scorer) skillMatches(fullText string) int {
	matches := 0
	for _, skill := range s.profile.Skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if len(skill) <= 2 {
			continue
		}
		if strings.Contains(fullText, skill) {
			matches++
		}
	}
	return matches
}

// skillScore scales match count against the profile's skill count,
// normalized to at most maxCountedSkills.
func (s *Scorer) skillScore(matches int) int {
	if matches == 0 {
		return 0
	}
	counted := 0
	for _, skill := range s.profile.Skills {
		if len(strings.TrimSpace(skill)) > 2 {
			counted++
		}
	}
	if counted > maxCountedSkills {
		counted = maxCountedSkills
	}
	if counted == 0 {
		return 0
	}

	ratio := float64(matches) / float64(counted)
	if ratio > 1 {
		ratio = 1
	}
	return int(ratio * maxSkillScore)
}

// parisRegion covers the common ways French boards name the region
// containing Paris.
var parisRegion = []string{"île-de-france", "ile-de-france", "ile de france", "idf"}

func (s *Scorer) locationScore(recordLocation string) int {
	want := strings.ToLower(strings.TrimSpace(s.profile.Location))
	if want == "" || recordLocation == "" {
		return 0
	}

	if strings.Contains(recordLocation, want) {
		return maxLocationScore
	}
	if strings.Contains(want, "paris") {
		for _, region := range parisRegion {
			if strings.Contains(recordLocation, region) {
				return 10
			}
		}
	}
	return 0
}
