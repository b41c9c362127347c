// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate merges records across listing roots and pages,
// deduplicates them, and applies the relevance threshold.
package aggregate

import "github.com/pdiddy/pubharvest/pkg/types"

// Dedup removes records whose (title, date, venue, doi) key was already
// seen. The first occurrence survives; relative order is otherwise
// preserved. Key equality is exactly the 4-tuple, not full-record equality,
// so duplicates with differing abstracts still collapse.
func Dedup(records []types.PublicationRecord) []types.PublicationRecord {
	seen := make(map[types.RecordKey]bool, len(records))
	out := records[:0:0]
	for _, r := range records {
		key := r.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

// Filter returns the records whose relevance score meets minHits. Records
// below the threshold remain available to the caller in the input slice for
// the unfiltered view.
func Filter(records []types.PublicationRecord, minHits int) []types.PublicationRecord {
	var out []types.PublicationRecord
	for _, r := range records {
		if r.RelevanceScore >= minHits {
			out = append(out, r)
		}
	}
	return out
}
