package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Jobs is a mutable collection of records flowing through the pipeline.
type Jobs struct {
	Items []*Job
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

// Append merges another collection into this one. Ordering is not
// meaningful until SortByScore has run.
func (j *Jobs) Append(other *Jobs) {
	if other == nil {
		return
	}
	j.Items = append(j.Items, other.Items...)
}

// SortByScore orders records descending by heuristic score. The sort is
// stable so records with equal scores keep their relative order.
func (j *Jobs) SortByScore() {
	sort.SliceStable(j.Items, func(a, b int) bool {
		return j.Items[a].HeuristicScore > j.Items[b].HeuristicScore
	})
}

// Top returns a new collection holding at most n leading records. The
// returned collection shares the underlying records.
func (j *Jobs) Top(n int) *Jobs {
	if n > len(j.Items) {
		n = len(j.Items)
	}
	return &Jobs{Items: j.Items[:n:n]}
}

// Tail returns a new collection holding the records after the first n.
func (j *Jobs) Tail(n int) *Jobs {
	if n > len(j.Items) {
		n = len(j.Items)
	}
	return &Jobs{Items: j.Items[n:]}
}

func (j *Jobs) FindByExternalID(source, id string) *Job {
	for _, job := range j.Items {
		if job.Source == source && job.ExternalID == id {
			return job
		}
	}
	return nil
}

// DumpToTmpFile writes the collection as indented JSON to a temporary
// file and returns its name.
func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobscout_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// DumpToFile writes the collection as indented JSON to the given path.
func (j *Jobs) DumpToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}

// ReportByCompany groups the ranked output per company for the
// interactive report action.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		entry := map[string]string{
			"rank":     fmt.Sprintf("%d", job.Rank),
			"title":    job.Title,
			"location": job.Location,
			"source":   job.SourceLabel,
			"url":      job.ApplyURL,
			"score":    fmt.Sprintf("%d", job.HeuristicScore),
		}
		if job.SemanticScore != nil {
			entry["semantic_score"] = fmt.Sprintf("%d", *job.SemanticScore)
		}
		if job.Justification != "" {
			entry["justification"] = job.Justification
		}
		report[job.Company] = append(report[job.Company], entry)
	}
	return report
}
