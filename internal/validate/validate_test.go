// internal/validate/validate_test.go
package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/hwcatalog/harvester/internal/config"
	"github.com/hwcatalog/harvester/internal/hardware"
)

func validator() *Validator {
	return New(config.ValidationConfig{MinPrice: 50, MaxPrice: 50000})
}

func record(brand, model string, price float64) hardware.Record {
	rec := hardware.Record{
		ID:          hardware.MakeID(hardware.CategoryCPU, brand, model),
		Category:    hardware.CategoryCPU,
		Brand:       brand,
		Model:       model,
		ReleaseDate: "2022-01-01",
		Description: strings.TrimSpace(brand + " " + model),
	}
	if price > 0 {
		rec.Price = &price
	}
	return rec
}

func TestBatchAccepted(t *testing.T) {
	batch := hardware.Dataset{
		record("AMD", "Ryzen 7 5800X", 2299),
		record("Intel", "Core i5-12400F", 1199),
	}
	if err := validator().Batch(batch); err != nil {
		t.Errorf("clean batch rejected: %v", err)
	}
}

func TestBatchNilPriceAllowed(t *testing.T) {
	if err := validator().Batch(hardware.Dataset{record("AMD", "Ryzen 5 5600X", 0)}); err != nil {
		t.Errorf("missing price must not fail validation: %v", err)
	}
}

func TestBatchCollectsAllViolations(t *testing.T) {
	bad := hardware.Dataset{
		record("", "", 2299),             // empty brand, model, description
		record("AMD", "Ryzen 9", 99999),  // price above bound
		record("Intel", "Core i3", 10),   // price below bound
	}
	bad[0].ID = ""

	err := validator().Batch(bad)
	if err == nil {
		t.Fatal("expected batch rejection")
	}

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %T", err)
	}
	// id, brand, model, description empty on the first plus two price bounds.
	if len(be.Violations) != 6 {
		t.Fatalf("expected 6 violations, got %d: %v", len(be.Violations), be.Violations)
	}
}

func TestBatchDescriptionRequired(t *testing.T) {
	rec := record("AMD", "Ryzen 7 5800X", 2299)
	rec.Description = ""

	err := validator().Batch(hardware.Dataset{rec})
	if err == nil {
		t.Fatal("empty description must be rejected")
	}

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %T", err)
	}
	if len(be.Violations) != 1 || be.Violations[0].Field != "description" {
		t.Errorf("expected one description violation, got %v", be.Violations)
	}
}

func TestBatchDuplicateIDs(t *testing.T) {
	a := record("AMD", "Ryzen 7 5800X", 2299)
	dup := record("AMD", "Ryzen 7 5800X", 1999)

	err := validator().Batch(hardware.Dataset{a, dup})
	if err == nil {
		t.Fatal("duplicate ids must be rejected")
	}

	var be *BatchError
	if !errors.As(err, &be) {
		t.Fatalf("expected *BatchError, got %T", err)
	}
	if len(be.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(be.Violations))
	}
	v := be.Violations[0]
	if v.Index != 1 || v.ID != a.ID || v.Field != "id" {
		t.Errorf("violation should name the offending id and index: %+v", v)
	}
	if !strings.Contains(v.Cause, "record 0") {
		t.Errorf("violation should point at the first occurrence: %q", v.Cause)
	}
}

func TestBatchEmptyIsValid(t *testing.T) {
	if err := validator().Batch(nil); err != nil {
		t.Errorf("empty batch must be valid: %v", err)
	}
}
