// internal/normalize/gpu.go
package normalize

import (
	"regexp"
	"strings"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// GPU rows mostly come from listing pages, so nearly everything is parsed
// out of the product title. Figures the title omits are estimated from the
// model generation; retail titles rarely state bus width or shader counts.

var gpuModelRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(RTX\s*\d+\s*(?:Ti|Super|XT)?)\b`),
	regexp.MustCompile(`(?i)\b(GTX\s*\d+\s*(?:Ti|Super)?)\b`),
	regexp.MustCompile(`(?i)\b(RX\s*\d+\s*(?:XTX|XT|GRE)?)\b`),
	regexp.MustCompile(`(?i)\b(Arc\s*[AB]\d+)\b`),
	regexp.MustCompile(`(?i)\b(Radeon\s+[A-Za-z0-9 ]+?)\s*(?:\d+GB|$)`),
	regexp.MustCompile(`(?i)\b(GeForce\s+[A-Za-z0-9 ]+?)\s*(?:\d+GB|$)`),
}

var vramRe = regexp.MustCompile(`(?i)\b(\d+)\s*GB?\b`)

type modelFigure struct {
	token string
	value int
}

// Per-generation estimates, most specific token first.
var (
	gpuVRAM = []modelFigure{
		{"4090", 24}, {"4080", 16}, {"4070", 12}, {"4060", 8},
		{"7900", 20}, {"7800", 16}, {"7700", 12}, {"7600", 8},
	}
	gpuBusWidth = []modelFigure{
		{"4090", 384}, {"4080", 256}, {"4070", 192}, {"4060", 128},
		{"7900", 384}, {"7800", 256}, {"7700", 192}, {"7600", 128},
	}
	gpuShaders = []modelFigure{
		{"4090", 16384}, {"4080", 9728}, {"4070", 5888}, {"4060", 3072},
		{"3090", 10496}, {"3080", 8704}, {"3070", 5888}, {"3060", 3584},
		{"7900", 5376}, {"7800", 3840}, {"7700", 3456}, {"7600", 2048},
	}
	gpuPower = []modelFigure{
		{"4090", 450}, {"4080", 320}, {"4070", 200}, {"4060", 115},
		{"7900", 355}, {"7800", 263}, {"7700", 245}, {"7600", 165},
	}
)

func gpuRecord(cell func(string) string) *hardware.Record {
	title := cell("model")
	if title == "" {
		return nil
	}
	model := matchModel(gpuModelRes, title)
	if model == "" {
		return nil
	}
	brand := brandFor(hardware.CategoryGPU, title)

	vram := extractVRAM(title)
	if vram == 0 {
		vram = figureFor(gpuVRAM, model, 8)
	}

	return &hardware.Record{
		Model:            model,
		Brand:            brand,
		Price:            parsePrice(cell("price")),
		Description:      title,
		VRAM:             vram,
		BusWidth:         busWidthFor(model, vram),
		ShaderCores:      figureFor(gpuShaders, model, 2048),
		CoreClock:        coreClockFor(title),
		MemoryClock:      memoryClockFor(title),
		PowerConsumption: figureFor(gpuPower, model, 200),
		RayTracing:       hasRayTracing(brand, model),
		UpscalingTech:    upscalingTechFor(brand, model),
	}
}

func matchModel(patterns []*regexp.Regexp, title string) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(title); m != nil {
			return strings.Join(strings.Fields(m[1]), " ")
		}
	}
	return ""
}

// extractVRAM looks for an explicit capacity near a GDDR or VRAM mention so
// storage-sized numbers in phone-style titles don't leak in.
func extractVRAM(title string) int {
	tu := strings.ToUpper(title)
	if !strings.Contains(tu, "GDDR") && !strings.Contains(tu, "VRAM") && !strings.Contains(tu, "GB") {
		return 0
	}
	if m := vramRe.FindStringSubmatch(title); m != nil {
		v := atoiOr(m[1], 0)
		if v >= 2 && v <= 48 {
			return v
		}
	}
	return 0
}

func figureFor(table []modelFigure, model string, fallback int) int {
	ml := strings.ToLower(model)
	for _, f := range table {
		if strings.Contains(ml, f.token) {
			return f.value
		}
	}
	return fallback
}

func busWidthFor(model string, vram int) int {
	if w := figureFor(gpuBusWidth, model, 0); w != 0 {
		return w
	}
	switch {
	case vram >= 16:
		return 256
	case vram >= 12:
		return 192
	case vram >= 8:
		return 128
	}
	return 64
}

// coreClockFor estimates the core clock in MHz by generation.
func coreClockFor(title string) int {
	switch {
	case containsAny(title, "rtx 40", "rtx40", "rx 7", "rx7"):
		return 2500
	case containsAny(title, "rtx 30", "rtx30", "rx 6", "rx6"):
		return 1800
	}
	return 1500
}

// memoryClockFor estimates the effective memory clock in MHz by generation.
func memoryClockFor(title string) int {
	switch {
	case containsAny(title, "rtx 40", "rtx40", "rx 7", "rx7"):
		return 21000
	case containsAny(title, "rtx 30", "rtx30", "rx 6", "rx6"):
		return 19000
	case containsAny(title, "rtx 20", "rtx20", "rx 5", "rx5"):
		return 14000
	}
	return 16000
}

// hasRayTracing: all NVIDIA RTX parts, and AMD from RDNA2 (RX 6000) up.
func hasRayTracing(brand, model string) bool {
	ml := strings.ToLower(model)
	switch brand {
	case "NVIDIA":
		return strings.Contains(ml, "rtx")
	case "AMD":
		return containsAny(ml, "rx 6", "rx 7", "rx6", "rx7")
	}
	return false
}

func upscalingTechFor(brand, model string) string {
	ml := strings.ToLower(model)
	switch brand {
	case "NVIDIA":
		if strings.Contains(ml, "rtx") {
			return "DLSS"
		}
	case "AMD":
		if containsAny(ml, "rx 6", "rx 7", "rx6", "rx7") {
			return "FSR"
		}
	}
	return ""
}
