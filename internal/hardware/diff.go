// internal/hardware/diff.go
package hardware

import "sort"

// DiffResult partitions the union of two datasets' ids. Every id from either
// side lands in exactly one of the four sets.
type DiffResult struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Updated   []string `json:"updated"`
	Unchanged []string `json:"unchanged"`
}

// Counts returns the partition sizes in added/removed/updated/unchanged order.
func (d DiffResult) Counts() (added, removed, updated, unchanged int) {
	return len(d.Added), len(d.Removed), len(d.Updated), len(d.Unchanged)
}

// Diff compares a prior dataset against a freshly harvested one. Ids present
// only in new are added, only in old removed; common ids are updated when the
// full record differs structurally, unchanged otherwise. Result slices are
// sorted for stable reporting.
func Diff(old, new Dataset) DiffResult {
	oldByID := old.ByID()
	newByID := new.ByID()

	var result DiffResult
	for id := range newByID {
		if _, ok := oldByID[id]; !ok {
			result.Added = append(result.Added, id)
		}
	}
	for id, oldRec := range oldByID {
		newRec, ok := newByID[id]
		if !ok {
			result.Removed = append(result.Removed, id)
			continue
		}
		if oldRec.Equal(newRec) {
			result.Unchanged = append(result.Unchanged, id)
		} else {
			result.Updated = append(result.Updated, id)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Updated)
	sort.Strings(result.Unchanged)
	return result
}
