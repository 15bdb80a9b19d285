// internal/normalize/brand.go
package normalize

import (
	"strings"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// brandUnknown tags records whose text matched no known vendor. Board
// partner names (ASUS, Gigabyte, MSI, ...) deliberately land here too: the
// catalog tracks chip vendors, not card vendors.
const brandUnknown = "Other"

type brandEntry struct {
	brand    string
	keywords []string
}

// Keyword tables are ordered; the first match wins. More specific vendors
// sit above catch-all ones.
var brandTables = map[hardware.Category][]brandEntry{
	hardware.CategoryCPU: {
		{"Intel", []string{"intel", "core i", "xeon", "pentium", "celeron", "atom"}},
		{"AMD", []string{"amd", "ryzen", "athlon", "threadripper", "epyc", "fx-"}},
		{"Apple", []string{"apple", "m1", "m2", "m3", "m4"}},
		{"Qualcomm", []string{"qualcomm", "snapdragon"}},
		{"MediaTek", []string{"mediatek", "dimensity"}},
	},
	hardware.CategoryGPU: {
		{"NVIDIA", []string{"nvidia", "geforce", "rtx", "gtx"}},
		{"AMD", []string{"amd", "radeon", "rx "}},
		{"Intel", []string{"intel", "arc "}},
	},
	hardware.CategoryPhone: {
		{"Apple", []string{"apple", "iphone"}},
		{"Xiaomi", []string{"xiaomi", "redmi"}},
		{"Huawei", []string{"huawei", "mate ", "p series"}},
		{"Samsung", []string{"samsung", "galaxy"}},
	},
}

// brandFor identifies the vendor from model or title text.
func brandFor(cat hardware.Category, text string) string {
	tl := strings.ToLower(text)
	for _, entry := range brandTables[cat] {
		for _, kw := range entry.keywords {
			if strings.Contains(tl, kw) {
				return entry.brand
			}
		}
	}
	return brandUnknown
}
