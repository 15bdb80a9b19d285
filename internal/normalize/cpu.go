// internal/normalize/cpu.go
package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// CPU fallbacks for cells the source page left blank or unparsable.
const (
	defaultCores      = 4
	defaultThreads    = 8
	defaultBaseClock  = 3.0
	defaultBoostClock = 4.0
	defaultCacheMB    = 8.0
	defaultTDP        = 65
)

var (
	// SKU suffixes carrying an iGPU signal: Intel F/KF parts ship without
	// graphics, AMD G/GE parts ship with them.
	intelNoGfxRe = regexp.MustCompile(`(?i)\b\d{4,5}K?F\b`)
	amdGfxRe     = regexp.MustCompile(`(?i)\b\d{3,4}GE?\b`)
)

func cpuRecord(cell func(string) string) *hardware.Record {
	model := cell("model")
	if model == "" {
		return nil
	}
	brand := brandFor(hardware.CategoryCPU, model)

	cores, threads := parseCores(cell("cores"))
	base, boost := parseClock(cell("clock"))

	rec := &hardware.Record{
		Model:              model,
		Brand:              brand,
		Price:              parsePrice(cell("price")),
		Cores:              cores,
		Threads:            threads,
		BaseClock:          base,
		BoostClock:         boost,
		Socket:             cell("socket"),
		TDP:                firstInt(cell("tdp"), defaultTDP),
		Cache:              parseCache(cell("cache")),
		IntegratedGraphics: hasIntegratedGraphics(brand, model),
		Process:            cell("process"),
	}

	if released := cell("released"); released != "" {
		if y := embeddedYear(released, 1990, 2100); y != 0 {
			rec.ReleaseDate = fmt.Sprintf("%d-01-01", y)
		}
	}

	desc := fmt.Sprintf("%s %s", brand, model)
	if codename := cell("codename"); codename != "" {
		desc += " - " + codename
	}
	rec.Description = fmt.Sprintf("%s - %d cores / %d threads", desc, cores, threads)

	return rec
}

// parseCores understands "6 / 12", "6 (12)", two loose numbers, or a bare
// core count. A bare count assumes SMT up to 16 cores; very large counts
// (server parts with SMT off listings) are taken as-is.
func parseCores(text string) (cores, threads int) {
	nums := intRe.FindAllString(text, -1)
	switch {
	case len(nums) >= 2:
		cores = atoiOr(nums[0], defaultCores)
		threads = atoiOr(nums[1], cores*2)
	case len(nums) == 1:
		cores = atoiOr(nums[0], defaultCores)
		if cores <= 16 {
			threads = cores * 2
		} else {
			threads = cores
		}
	default:
		cores, threads = defaultCores, defaultThreads
	}
	return cores, threads
}

// parseClock understands "3.4 to 4.6 GHz" and "3.6-4.2 GHz" ranges. A single
// figure is treated as the base clock with a modest boost estimate. MHz
// figures are scaled down to GHz.
func parseClock(text string) (base, boost float64) {
	nums := allFloats(text)
	switch {
	case len(nums) >= 2:
		base, boost = nums[0], nums[1]
	case len(nums) == 1:
		base = nums[0]
		boost = base * 1.2
	default:
		return defaultBaseClock, defaultBoostClock
	}
	if strings.Contains(strings.ToUpper(text), "MHZ") {
		base /= 1000
		boost /= 1000
	}
	return base, boost
}

// parseCache normalizes cache sizes to megabytes.
func parseCache(text string) float64 {
	nums := allFloats(text)
	if len(nums) == 0 {
		return defaultCacheMB
	}
	v := nums[0]
	tu := strings.ToUpper(text)
	switch {
	case strings.Contains(tu, "KB"):
		v /= 1024
	case strings.Contains(tu, "GB"):
		v *= 1024
	}
	return v
}

func hasIntegratedGraphics(brand, model string) bool {
	switch brand {
	case "Intel":
		return !intelNoGfxRe.MatchString(model)
	case "AMD":
		return amdGfxRe.MatchString(model)
	case "Apple":
		return true
	}
	return false
}

func atoiOr(s string, fallback int) int {
	return firstInt(s, fallback)
}
