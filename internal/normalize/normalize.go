// internal/normalize/normalize.go

// Package normalize turns extracted text rows into typed hardware records.
// Source pages are messy: columns move around, units vary, half the fields
// are missing. Normalization is header-guided where a header exists, falls
// back to content sniffing, and fills gaps with documented per-category
// defaults. A row is rejected only when no usable model can be found.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// usdToCNY converts US-dollar prices into the catalog currency. A fixed
// rate is a known approximation; prices here are indicative, not quotes.
const usdToCNY = 7.2

// Row normalizes one extracted row into a Record. The header drives column
// mapping; cells unclaimed by the header are sniffed by content. Returns nil
// when the row carries no recognizable model.
func Row(cat hardware.Category, header, row []string, source string) *hardware.Record {
	cols := mapColumns(header, row)
	cell := func(key string) string {
		if i, ok := cols[key]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var rec *hardware.Record
	switch cat {
	case hardware.CategoryCPU:
		rec = cpuRecord(cell)
	case hardware.CategoryGPU:
		rec = gpuRecord(cell)
	case hardware.CategoryPhone:
		rec = phoneRecord(cell)
	default:
		return nil
	}
	if rec == nil {
		return nil
	}

	rec.Category = cat
	rec.Source = source
	rec.ID = hardware.MakeID(cat, rec.Brand, rec.Model)
	if rec.ReleaseDate == "" {
		rec.ReleaseDate = releaseDate(cat, rec.Brand, rec.Model)
	}
	return rec
}

var (
	coresCellRe  = regexp.MustCompile(`^\d+\s*(?:/|\()\s*\d+\s*\)?$`)
	socketCellRe = regexp.MustCompile(`(?i)^(AM\d|LGA\s?\d+|TR4|sTRX\d|SP\d|FM\d)`)
	intRe        = regexp.MustCompile(`\d+`)
	floatRe      = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// mapColumns assigns row indices to logical fields. Header names claim
// first; remaining cells are claimed by what their content looks like.
func mapColumns(header, row []string) map[string]int {
	cols := make(map[string]int)
	used := make(map[int]bool)
	claim := func(key string, idx int) {
		if _, ok := cols[key]; !ok {
			cols[key] = idx
			used[idx] = true
		}
	}

	for i, h := range header {
		hl := strings.ToLower(h)
		switch {
		case strings.Contains(hl, "codename"):
			claim("codename", i)
		case strings.Contains(hl, "name") || strings.Contains(hl, "model"):
			claim("model", i)
		case strings.Contains(hl, "clock") || strings.Contains(hl, "frequency"):
			claim("clock", i)
		case strings.Contains(hl, "core") || strings.Contains(hl, "thread"):
			claim("cores", i)
		case strings.Contains(hl, "socket"):
			claim("socket", i)
		case strings.Contains(hl, "process") || strings.Contains(hl, "node"):
			claim("process", i)
		case strings.Contains(hl, "cache"):
			claim("cache", i)
		case strings.Contains(hl, "tdp"):
			claim("tdp", i)
		case strings.Contains(hl, "price"):
			claim("price", i)
		case strings.Contains(hl, "link") || strings.Contains(hl, "url"):
			claim("link", i)
		case strings.Contains(hl, "release") || strings.Contains(hl, "date"):
			claim("released", i)
		}
	}

	for i, c := range row {
		if i >= len(header) || used[i] {
			continue
		}
		cu := strings.ToUpper(strings.TrimSpace(c))
		if cu == "" {
			continue
		}
		switch {
		case coresCellRe.MatchString(cu):
			claim("cores", i)
		case strings.Contains(cu, "GHZ") || strings.Contains(cu, "MHZ"):
			claim("clock", i)
		case strings.HasSuffix(cu, "W") && intRe.MatchString(cu):
			claim("tdp", i)
		case strings.Contains(cu, "MB") || strings.Contains(cu, "KB"):
			claim("cache", i)
		case strings.Contains(cu, "NM"):
			claim("process", i)
		case socketCellRe.MatchString(cu):
			claim("socket", i)
		}
	}
	return cols
}

// parsePrice extracts a price, converting dollar figures at the fixed rate.
// Unparsable or zero prices stay nil rather than inventing a number.
func parsePrice(text string) *float64 {
	if text == "" {
		return nil
	}
	usd := strings.Contains(text, "$") || strings.Contains(strings.ToUpper(text), "USD")

	m := floatRe.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v <= 0 {
		return nil
	}
	if usd {
		v *= usdToCNY
	}
	return &v
}

func firstInt(text string, fallback int) int {
	if m := intRe.FindString(text); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			return v
		}
	}
	return fallback
}

func allFloats(text string) []float64 {
	var out []float64
	for _, m := range floatRe.FindAllString(text, -1) {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func containsAny(haystack string, needles ...string) bool {
	h := strings.ToLower(haystack)
	for _, n := range needles {
		if strings.Contains(h, n) {
			return true
		}
	}
	return false
}
