package archive

import (
	"sort"

	"acgarden/pkg/atcoder"
)

// Select reduces a full submission history to the ordered list of
// submissions to archive:
//
//  1. keep accepted submissions only
//  2. drop submissions whose archive key is already archived
//  3. order by submission time, most recent first
//  4. keep the first occurrence of each key, so a problem solved more
//     than once since the last run archives only its newest solution
//
// The result is processed in the returned (most-recent-first) order.
// Together with the archived-key check this guarantees each run adds at
// most one entry per problem and never touches an existing entry.
func Select(submissions []atcoder.Submission, archived map[string]struct{}) []atcoder.Submission {
	candidates := make([]atcoder.Submission, 0, len(submissions))
	for _, s := range submissions {
		if !s.IsAccepted() {
			continue
		}
		if _, ok := archived[s.Key()]; ok {
			continue
		}
		candidates = append(candidates, s)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EpochSecond > candidates[j].EpochSecond
	})

	seen := make(map[string]struct{}, len(candidates))
	selected := candidates[:0]
	for _, s := range candidates {
		if _, ok := seen[s.Key()]; ok {
			continue
		}
		seen[s.Key()] = struct{}{}
		selected = append(selected, s)
	}

	return selected
}
