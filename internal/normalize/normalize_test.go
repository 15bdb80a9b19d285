// internal/normalize/normalize_test.go
package normalize

import (
	"strings"
	"testing"

	"github.com/hwcatalog/harvester/internal/hardware"
)

var cpuHeader = []string{"Name", "Codename", "Cores", "Clock", "Socket", "Process", "L3 Cache", "TDP"}

func TestCPURowFullTable(t *testing.T) {
	row := []string{"AMD Ryzen 7 5800X", "Vermeer", "8 / 16", "3.8 to 4.7 GHz", "AM4", "7 nm", "32 MB", "105 W"}

	rec := Row(hardware.CategoryCPU, cpuHeader, row, "techpowerup")
	if rec == nil {
		t.Fatal("row rejected")
	}

	if rec.Model != "AMD Ryzen 7 5800X" || rec.Brand != "AMD" {
		t.Errorf("identity: model=%q brand=%q", rec.Model, rec.Brand)
	}
	if rec.Cores != 8 || rec.Threads != 16 {
		t.Errorf("cores/threads = %d/%d", rec.Cores, rec.Threads)
	}
	if rec.BaseClock != 3.8 || rec.BoostClock != 4.7 {
		t.Errorf("clocks = %v/%v", rec.BaseClock, rec.BoostClock)
	}
	if rec.Socket != "AM4" || rec.Process != "7 nm" {
		t.Errorf("socket=%q process=%q", rec.Socket, rec.Process)
	}
	if rec.Cache != 32 || rec.TDP != 105 {
		t.Errorf("cache=%v tdp=%d", rec.Cache, rec.TDP)
	}
	if rec.IntegratedGraphics {
		t.Error("5800X has no integrated graphics")
	}
	if rec.ReleaseDate != "2020-01-01" {
		t.Errorf("releaseDate = %q (5800 generation is 2020)", rec.ReleaseDate)
	}
	if !strings.HasPrefix(rec.ID, "cpu-") {
		t.Errorf("id = %q", rec.ID)
	}
	if rec.Source != "techpowerup" {
		t.Errorf("source = %q", rec.Source)
	}
	if !strings.Contains(rec.Description, "Vermeer") {
		t.Errorf("codename lost from description: %q", rec.Description)
	}
	if rec.Price != nil {
		t.Errorf("no price column must stay nil, got %v", *rec.Price)
	}
}

func TestCPUUnitConversions(t *testing.T) {
	row := []string{"Intel Core i5-12400F", "Alder Lake", "6", "3400 to 4600 MHz", "LGA1700", "10 nm", "18432 KB", "65 W"}

	rec := Row(hardware.CategoryCPU, cpuHeader, row, "test")
	if rec == nil {
		t.Fatal("row rejected")
	}

	if rec.BaseClock != 3.4 || rec.BoostClock != 4.6 {
		t.Errorf("MHz not scaled to GHz: %v/%v", rec.BaseClock, rec.BoostClock)
	}
	if rec.Cache != 18 {
		t.Errorf("KB not scaled to MB: %v", rec.Cache)
	}
	// Bare core count assumes SMT.
	if rec.Cores != 6 || rec.Threads != 12 {
		t.Errorf("cores/threads = %d/%d, want 6/12", rec.Cores, rec.Threads)
	}
	// F suffix means no iGPU.
	if rec.IntegratedGraphics {
		t.Error("F-suffix Intel part must have no integrated graphics")
	}
}

func TestCPUCoreHeuristics(t *testing.T) {
	tests := []struct {
		text            string
		cores, threads int
	}{
		{"6 / 12", 6, 12},
		{"6 (12)", 6, 12},
		{"8", 8, 16},
		{"24", 24, 24}, // beyond the SMT assumption bound
		{"", 4, 8},
	}
	for _, tt := range tests {
		c, th := parseCores(tt.text)
		if c != tt.cores || th != tt.threads {
			t.Errorf("parseCores(%q) = %d/%d, want %d/%d", tt.text, c, th, tt.cores, tt.threads)
		}
	}
}

func TestCPUDefaultsWhenCellsMissing(t *testing.T) {
	row := []string{"AMD Ryzen 5 5600G", "", "", "", "", "", "", ""}
	rec := Row(hardware.CategoryCPU, cpuHeader, row, "test")
	if rec == nil {
		t.Fatal("row rejected")
	}
	if rec.Cores != 4 || rec.Threads != 8 {
		t.Errorf("default cores/threads = %d/%d", rec.Cores, rec.Threads)
	}
	if rec.BaseClock != 3.0 || rec.BoostClock != 4.0 {
		t.Errorf("default clocks = %v/%v", rec.BaseClock, rec.BoostClock)
	}
	if rec.Cache != 8.0 || rec.TDP != 65 {
		t.Errorf("default cache/tdp = %v/%d", rec.Cache, rec.TDP)
	}
	if !rec.IntegratedGraphics {
		t.Error("AMD G-suffix part must report integrated graphics")
	}
}

func TestRowRejectsModellessRows(t *testing.T) {
	if rec := Row(hardware.CategoryCPU, cpuHeader, []string{"", "x", "", "", "", "", "", ""}, "t"); rec != nil {
		t.Error("empty model cell must reject the row")
	}
	listing := []string{"Gaming graphics card bundle deal", "999", ""}
	if rec := Row(hardware.CategoryGPU, []string{"Name", "Price", "Link"}, listing, "t"); rec != nil {
		t.Error("title without a model token must reject the row")
	}
}

func TestPriceParsing(t *testing.T) {
	tests := []struct {
		text string
		want float64 // 0 means nil expected
	}{
		{"2499.00", 2499},
		{"¥1,999", 1999},
		{"$299", 299 * usdToCNY},
		{"USD 150", 150 * usdToCNY},
		{"0", 0},
		{"TBD", 0},
		{"", 0},
	}
	for _, tt := range tests {
		got := parsePrice(tt.text)
		if tt.want == 0 {
			if got != nil {
				t.Errorf("parsePrice(%q) = %v, want nil", tt.text, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("parsePrice(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestGPUFromListingTitle(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	row := []string{"NVIDIA GeForce RTX 4060 8GB GDDR6 gaming card", "2499.00", "https://item.example.com/1"}

	rec := Row(hardware.CategoryGPU, header, row, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}

	if rec.Model != "RTX 4060" || rec.Brand != "NVIDIA" {
		t.Errorf("identity: model=%q brand=%q", rec.Model, rec.Brand)
	}
	if rec.VRAM != 8 {
		t.Errorf("vram = %d", rec.VRAM)
	}
	if rec.BusWidth != 128 || rec.ShaderCores != 3072 || rec.PowerConsumption != 115 {
		t.Errorf("generation figures: bus=%d shaders=%d power=%d",
			rec.BusWidth, rec.ShaderCores, rec.PowerConsumption)
	}
	if rec.CoreClock != 2500 || rec.MemoryClock != 21000 {
		t.Errorf("clock estimates: core=%d mem=%d", rec.CoreClock, rec.MemoryClock)
	}
	if !rec.RayTracing || rec.UpscalingTech != "DLSS" {
		t.Errorf("feature flags: rt=%v upscaling=%q", rec.RayTracing, rec.UpscalingTech)
	}
	if rec.ReleaseDate != "2023-01-01" {
		t.Errorf("releaseDate = %q", rec.ReleaseDate)
	}
	if rec.Price == nil || *rec.Price != 2499 {
		t.Errorf("price = %v", rec.Price)
	}
	if rec.Description != row[0] {
		t.Errorf("listing description should keep the title: %q", rec.Description)
	}
}

func TestGPUAMDHeuristics(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	row := []string{"Sapphire AMD Radeon RX 7800 XT 16GB", "4599", ""}

	rec := Row(hardware.CategoryGPU, header, row, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}
	if rec.Model != "RX 7800 XT" || rec.Brand != "AMD" {
		t.Errorf("identity: model=%q brand=%q", rec.Model, rec.Brand)
	}
	if rec.VRAM != 16 || rec.BusWidth != 256 {
		t.Errorf("vram=%d bus=%d", rec.VRAM, rec.BusWidth)
	}
	if !rec.RayTracing || rec.UpscalingTech != "FSR" {
		t.Errorf("RDNA3 part: rt=%v upscaling=%q", rec.RayTracing, rec.UpscalingTech)
	}
}

func TestGPUOlderPartNoRayTracing(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	rec := Row(hardware.CategoryGPU, header, []string{"NVIDIA GeForce GTX 1660 Super 6GB", "1299", ""}, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}
	if rec.RayTracing {
		t.Error("GTX part must not report ray tracing")
	}
	if rec.UpscalingTech != "" {
		t.Errorf("GTX part upscaling = %q", rec.UpscalingTech)
	}
}

func TestPhoneFromListingTitle(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	row := []string{"Apple iPhone 15 Pro Max 256GB Natural Titanium 5G", "9999.00", ""}

	rec := Row(hardware.CategoryPhone, header, row, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}

	if rec.Model != "iPhone 15 Pro Max" || rec.Brand != "Apple" {
		t.Errorf("identity: model=%q brand=%q", rec.Model, rec.Brand)
	}
	if rec.Storage != 256 {
		t.Errorf("storage = %d", rec.Storage)
	}
	if rec.RAM != 12 {
		t.Errorf("flagship RAM estimate = %d", rec.RAM)
	}
	if rec.ScreenSize != 6.7 {
		t.Errorf("screen = %v", rec.ScreenSize)
	}
	if rec.RefreshRate != 120 {
		t.Errorf("refresh = %d", rec.RefreshRate)
	}
	if rec.OS != "iOS" || !rec.Support5G {
		t.Errorf("os=%q 5g=%v", rec.OS, rec.Support5G)
	}
	if rec.ReleaseDate != "2023-01-01" {
		t.Errorf("releaseDate = %q", rec.ReleaseDate)
	}
}

func TestPhoneExplicitSpecsBeatEstimates(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	row := []string{"Xiaomi 14 12GB+512GB 6.36inch 120Hz 4610mAh Snapdragon 8", "3999", ""}

	rec := Row(hardware.CategoryPhone, header, row, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}
	if rec.RAM != 12 || rec.Storage != 512 {
		t.Errorf("ram/storage = %d/%d", rec.RAM, rec.Storage)
	}
	if rec.ScreenSize != 6.36 {
		t.Errorf("screen = %v", rec.ScreenSize)
	}
	if rec.RefreshRate != 120 || rec.BatteryCapacity != 4610 {
		t.Errorf("refresh/battery = %d/%d", rec.RefreshRate, rec.BatteryCapacity)
	}
	if !strings.HasPrefix(rec.Processor, "Snapdragon") {
		t.Errorf("processor = %q", rec.Processor)
	}
	if rec.OS != "Android" {
		t.Errorf("os = %q", rec.OS)
	}
}

func TestPhone4GOnlyFlag(t *testing.T) {
	header := []string{"Name", "Price", "Link"}
	rec := Row(hardware.CategoryPhone, header, []string{"Samsung Galaxy A23 4G 64GB", "899", ""}, "shop")
	if rec == nil {
		t.Fatal("row rejected")
	}
	if rec.Support5G {
		t.Error("explicit 4G title must clear the 5G flag")
	}
}

func TestReleaseDateExplicitYearWins(t *testing.T) {
	got := releaseDate(hardware.CategoryCPU, "Intel", "Core Ultra 2024 Edition")
	if got != "2024-01-01" {
		t.Errorf("embedded year ignored: %q", got)
	}
}
