// internal/hardware/dedupe.go
package hardware

// Dedupe collapses records sharing an id down to the first occurrence,
// preserving the original order of survivors. Applying it twice is a no-op.
func Dedupe(records Dataset) Dataset {
	seen := make(map[string]struct{}, len(records))
	unique := make(Dataset, 0, len(records))

	for _, r := range records {
		if r.ID == "" {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		unique = append(unique, r)
	}

	return unique
}
