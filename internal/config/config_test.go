// internal/config/config_test.go
package config

import (
	"strings"
	"testing"

	"github.com/hwcatalog/harvester/internal/hardware"
)

const sampleYAML = `
data_dir: /var/lib/harvester
retention_days: 14
log_level: debug
fetch:
  max_retries: 5
  delay_min_seconds: 2
  delay_max_seconds: 4
validation:
  min_price: 50
  max_price: 50000
categories:
  cpu:
    sources:
      - name: techspecs
        url: https://example.com/cpu-specs/
  gpu:
    sources:
      - url: https://shop.example.com/search?q=gpu
        render: true
        listing:
          item: .gl-item
          title: .p-name em
          price: .p-price i
exports:
  - format: csv
    path: out/export.csv
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.DataDir != "/var/lib/harvester" {
		t.Errorf("data_dir = %q", cfg.DataDir)
	}
	if cfg.Fetch.MaxRetries != 5 {
		t.Errorf("max_retries = %d", cfg.Fetch.MaxRetries)
	}
	if cfg.RetentionDays != 14 {
		t.Errorf("retention_days = %d", cfg.RetentionDays)
	}

	gpu := cfg.Categories[hardware.CategoryGPU].Sources[0]
	if !gpu.Render {
		t.Error("render flag lost")
	}
	if gpu.Listing == nil || gpu.Listing.Item != ".gl-item" {
		t.Errorf("listing selectors lost: %+v", gpu.Listing)
	}
	if gpu.Name != "shop.example.com" {
		t.Errorf("source name not defaulted from host: %q", gpu.Name)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("categories:\n  cpu: {}\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Fetch.MaxRetries != 3 {
		t.Errorf("default max_retries = %d, want 3", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.DelayMinSeconds != 1 || cfg.Fetch.DelayMaxSeconds != 5 {
		t.Errorf("default delay range = %v..%v, want 1..5",
			cfg.Fetch.DelayMinSeconds, cfg.Fetch.DelayMaxSeconds)
	}
	if cfg.Validation.MinPrice != 50 || cfg.Validation.MaxPrice != 50000 {
		t.Errorf("default price bounds = %v..%v",
			cfg.Validation.MinPrice, cfg.Validation.MaxPrice)
	}
	if cfg.RetentionDays != 30 {
		t.Errorf("default retention_days = %d", cfg.RetentionDays)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown category",
			yaml: "categories:\n  toaster: {}\n",
			want: "unknown category",
		},
		{
			name: "missing source url",
			yaml: "categories:\n  cpu:\n    sources:\n      - name: nourl\n",
			want: "url is required",
		},
		{
			name: "bad export format",
			yaml: "categories:\n  cpu: {}\nexports:\n  - format: carrier-pigeon\n",
			want: "unsupported format",
		},
		{
			name: "db export without dsn",
			yaml: "categories:\n  cpu: {}\nexports:\n  - format: mysql\n",
			want: "dsn is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDataFile(t *testing.T) {
	cfg := Default()
	cfg.DataDir = "/data/"
	if got := cfg.DataFile(hardware.CategoryPhone); got != "/data/phone_data.json" {
		t.Errorf("DataFile = %q", got)
	}
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("HARVESTER_TEST_DSN", "user:pw@/specs")
	yaml := "categories:\n  cpu: {}\nexports:\n  - format: mysql\n    dsn: ${HARVESTER_TEST_DSN}\n"
	cfg, err := LoadFromBytes([]byte(yaml))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Exports[0].DSN != "user:pw@/specs" {
		t.Errorf("dsn = %q", cfg.Exports[0].DSN)
	}
}
