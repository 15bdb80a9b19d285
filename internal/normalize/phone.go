// internal/normalize/phone.go
package normalize

import (
	"regexp"
	"strings"

	"github.com/hwcatalog/harvester/internal/hardware"
)

var phoneModelRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(iPhone\s*\d+\s*(?:Pro\s*Max|Pro|Plus|Max|Mini)?)\b`),
	regexp.MustCompile(`(?i)\b(Galaxy\s+[A-Za-z]?\d+\s*(?:Ultra|Plus|FE)?)\b`),
	regexp.MustCompile(`(?i)\b(Mate\s*\d+\s*(?:Pro\+?|RS)?)\b`),
	regexp.MustCompile(`(?i)\b(Redmi\s+[A-Za-z]*\s*\d+\s*(?:Pro\+?|Ultra)?)\b`),
	regexp.MustCompile(`(?i)\b(Xiaomi\s*\d+\s*(?:Pro|Ultra)?)\b`),
	regexp.MustCompile(`(?i)\b(P\d{2}\s*(?:Pro|Lite)?)\b`),
}

var (
	ramRe     = regexp.MustCompile(`(?i)\b(\d+)\s*GB?\s*(?:RAM|\+)`)
	storageRe = regexp.MustCompile(`(?i)(?:\+\s*|\b)(\d+)\s*[GT]B\b(?:\s*(?:storage|ROM))?`)
	screenRe  = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*(?:inch|")`)
	resRe     = regexp.MustCompile(`\b(\d{3,4}\s*[xX*]\s*\d{3,4})\b`)
	refreshRe = regexp.MustCompile(`(?i)\b(\d{2,3})\s*Hz\b`)
	batteryRe = regexp.MustCompile(`(?i)\b(\d{4,5})\s*mAh\b`)
	cameraRe  = regexp.MustCompile(`(?i)\b(\d+MP(?:\s*\+\s*\d+MP)*)\b`)
)

var processorRe = regexp.MustCompile(
	`(?i)\b((?:Snapdragon|Dimensity|Kirin|Tensor|Exynos)\s*[0-9A-Za-z+ ]?[0-9A-Za-z+]*|A\d{2}\s*(?:Pro|Bionic)?)\b`)

// Default chip family when the title names none, by vendor.
var defaultProcessor = map[string]string{
	"Apple":   "A-series",
	"Xiaomi":  "Snapdragon",
	"Huawei":  "Kirin",
	"Samsung": "Exynos",
}

func phoneRecord(cell func(string) string) *hardware.Record {
	title := cell("model")
	if title == "" {
		return nil
	}
	model := matchModel(phoneModelRes, title)
	if model == "" {
		return nil
	}
	brand := brandFor(hardware.CategoryPhone, title)

	return &hardware.Record{
		Model:           model,
		Brand:           brand,
		Price:           parsePrice(cell("price")),
		Description:     title,
		Processor:       processorFor(title, brand),
		RAM:             ramFor(title),
		Storage:         storageFor(title),
		ScreenSize:      screenSizeFor(title),
		Resolution:      resolutionFor(title),
		RefreshRate:     refreshRateFor(title),
		BatteryCapacity: batteryFor(title),
		Camera:          cameraFor(title),
		OS:              osFor(brand),
		Support5G:       supports5G(title),
	}
}

func processorFor(title, brand string) string {
	if m := processorRe.FindStringSubmatch(title); m != nil {
		return strings.Join(strings.Fields(m[1]), " ")
	}
	if p, ok := defaultProcessor[brand]; ok {
		return p
	}
	return "Snapdragon"
}

// Tier heuristics: flagship suffixes imply the bigger configuration.
func isFlagship(title string) bool {
	return containsAny(title, "pro", "ultra", "max", "plus")
}

func ramFor(title string) int {
	if m := ramRe.FindStringSubmatch(title); m != nil {
		if v := atoiOr(m[1], 0); v >= 2 && v <= 24 {
			return v
		}
	}
	if isFlagship(title) {
		return 12
	}
	return 8
}

func storageFor(title string) int {
	// Take the largest GB figure; RAM+storage titles list RAM first.
	best := 0
	for _, m := range storageRe.FindAllStringSubmatch(title, -1) {
		v := atoiOr(m[1], 0)
		if strings.Contains(strings.ToUpper(m[0]), "TB") {
			v *= 1024
		}
		if v > best {
			best = v
		}
	}
	if best >= 32 {
		return best
	}
	if isFlagship(title) {
		return 256
	}
	return 128
}

func screenSizeFor(title string) float64 {
	if m := screenRe.FindStringSubmatch(title); m != nil {
		if nums := allFloats(m[1]); len(nums) == 1 && nums[0] > 3 && nums[0] < 9 {
			return nums[0]
		}
	}
	switch {
	case containsAny(title, "max", "ultra"):
		return 6.7
	case containsAny(title, "mini", " se"):
		return 5.4
	}
	return 6.1
}

func resolutionFor(title string) string {
	if m := resRe.FindStringSubmatch(title); m != nil {
		return strings.ReplaceAll(strings.ReplaceAll(m[1], "*", "x"), " ", "")
	}
	return "1080x2400"
}

func refreshRateFor(title string) int {
	if m := refreshRe.FindStringSubmatch(title); m != nil {
		if v := atoiOr(m[1], 0); v >= 60 && v <= 240 {
			return v
		}
	}
	tl := strings.ToLower(title)
	switch {
	case containsAny(title, "ultra", "gaming"):
		return 120
	case strings.Contains(tl, "iphone"):
		if strings.Contains(tl, "pro") {
			return 120
		}
		return 60
	case strings.Contains(tl, "pro"):
		return 120
	}
	return 90
}

func batteryFor(title string) int {
	if m := batteryRe.FindStringSubmatch(title); m != nil {
		if v := atoiOr(m[1], 0); v >= 1000 && v <= 12000 {
			return v
		}
	}
	switch {
	case isFlagship(title):
		return 5000
	case strings.Contains(strings.ToLower(title), "iphone"):
		return 3500
	}
	return 4500
}

func cameraFor(title string) string {
	if m := cameraRe.FindStringSubmatch(title); m != nil {
		return strings.ReplaceAll(m[1], " ", "")
	}
	if isFlagship(title) {
		return "50MP+12MP+12MP"
	}
	return "48MP+8MP+2MP"
}

func osFor(brand string) string {
	if brand == "Apple" {
		return "iOS"
	}
	return "Android"
}

// supports5G assumes modern handsets do unless the title says otherwise.
func supports5G(title string) bool {
	return !containsAny(title, "4g", "3g", "2g")
}
