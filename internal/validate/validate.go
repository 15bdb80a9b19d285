// internal/validate/validate.go

// Package validate checks a normalized batch before it may replace the live
// dataset. Validation is batch-level and exhaustive: the caller gets every
// violation, not just the first, so a bad harvest can be diagnosed from one
// run's output.
package validate

import (
	"fmt"
	"strings"

	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/hardware"
)

// Violation describes one failed check on one record.
type Violation struct {
	Index int    `json:"index"` // position in the batch
	ID    string `json:"id"`
	Field string `json:"field"`
	Cause string `json:"cause"`
}

func (v Violation) String() string {
	return fmt.Sprintf("record %d (%s): %s %s", v.Index, v.ID, v.Field, v.Cause)
}

// BatchError carries the full violation list for a rejected batch.
type BatchError struct {
	Violations []Violation
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("batch validation failed with %d violation(s): %s",
		len(e.Violations), strings.Join(parts, "; "))
}

// Validator applies the configured bounds to record batches.
type Validator struct {
	minPrice float64
	maxPrice float64
}

// New builds a Validator from the validation section of the configuration.
func New(cfg config.ValidationConfig) *Validator {
	return &Validator{minPrice: cfg.MinPrice, maxPrice: cfg.MaxPrice}
}

// Batch checks every record and the batch-level id uniqueness invariant.
// A nil return means the batch may be persisted.
func (v *Validator) Batch(records hardware.Dataset) error {
	var violations []Violation
	add := func(i int, id, field, cause string) {
		violations = append(violations, Violation{Index: i, ID: id, Field: field, Cause: cause})
	}

	seen := make(map[string]int, len(records))
	for i, rec := range records {
		if rec.ID == "" {
			add(i, "", "id", "is empty")
		} else if prev, dup := seen[rec.ID]; dup {
			add(i, rec.ID, "id", fmt.Sprintf("duplicates record %d", prev))
		} else {
			seen[rec.ID] = i
		}

		if !rec.Category.Valid() {
			add(i, rec.ID, "category", fmt.Sprintf("unknown value %q", rec.Category))
		}
		if rec.Brand == "" {
			add(i, rec.ID, "brand", "is empty")
		}
		if rec.Model == "" {
			add(i, rec.ID, "model", "is empty")
		}
		if rec.ReleaseDate == "" {
			add(i, rec.ID, "releaseDate", "is empty")
		}
		if rec.Description == "" {
			add(i, rec.ID, "description", "is empty")
		}

		if rec.Price != nil {
			if *rec.Price < v.minPrice || *rec.Price > v.maxPrice {
				add(i, rec.ID, "price", fmt.Sprintf("%.2f outside [%.0f, %.0f]",
					*rec.Price, v.minPrice, v.maxPrice))
			}
		}
	}

	if len(violations) > 0 {
		return &BatchError{Violations: violations}
	}
	return nil
}
