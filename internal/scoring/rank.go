package scoring

import (
	"github.com/jobscoutdev/jobscout/internal/jobs"
)

// MaxRanked bounds the deduplicated output size.
const MaxRanked = 75

// DedupAndRank sorts the collection descending by heuristic score,
// then keeps the first occurrence of each (normalized title,
// normalized company) key. Sorting before the walk guarantees the
// highest-scoring instance of a posting mirrored on several boards is
// the one retained. The operation is idempotent.
func DedupAndRank(list *jobs.Jobs) *jobs.Jobs {
	list.SortByScore()

	seen := make(map[string]bool, list.Len())
	kept := make([]*jobs.Job, 0, list.Len())
	for _, job := range list.Items {
		key := jobs.DedupKey(job.Title, job.Company)
		if seen[key] {
			continue
		}
		seen[key] = true

		kept = append(kept, job)
		if len(kept) == MaxRanked {
			break
		}
	}
	list.Items = kept

	return list
}
