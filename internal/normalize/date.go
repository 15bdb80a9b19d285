// internal/normalize/date.go
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hwcatalog/harvester/internal/hardware"
)

// Earliest believable four-digit year embedded in a model string, per
// category. Anything older is a SKU number, not a date.
var minModelYear = map[hardware.Category]int{
	hardware.CategoryCPU:   2010,
	hardware.CategoryGPU:   2018,
	hardware.CategoryPhone: 2020,
}

type era struct {
	tokens []string
	year   int
}

// Generation-to-year tables for models that never spell out a date. Ordered
// newest first so the most specific generation token wins.
var eraTables = map[hardware.Category]map[string][]era{
	hardware.CategoryCPU: {
		"Intel": {
			{[]string{"14900", "13900", "12900"}, 2023},
			{[]string{"11900", "10900"}, 2020},
			{[]string{"9900", "9700"}, 2018},
		},
		"AMD": {
			{[]string{"9950", "7950", "7900"}, 2023},
			{[]string{"5950", "5900", "5800"}, 2020},
			{[]string{"3950", "3900", "3800"}, 2019},
		},
		"Apple": {
			{[]string{"m4"}, 2024},
			{[]string{"m3"}, 2023},
			{[]string{"m2"}, 2022},
			{[]string{"m1"}, 2020},
		},
	},
	hardware.CategoryGPU: {
		"NVIDIA": {
			{[]string{"4060"}, 2023},
			{[]string{"4090", "4080", "4070"}, 2022},
			{[]string{"3060"}, 2021},
			{[]string{"3090", "3080", "3070"}, 2020},
		},
		"AMD": {
			{[]string{"7800", "7700", "7600"}, 2023},
			{[]string{"7900"}, 2022},
			{[]string{"6700", "6600"}, 2021},
			{[]string{"6900", "6800"}, 2020},
		},
	},
	hardware.CategoryPhone: {
		"Apple": {
			{[]string{"15"}, 2023},
			{[]string{"14"}, 2022},
			{[]string{"13"}, 2021},
			{[]string{"12"}, 2020},
		},
		"Xiaomi": {
			{[]string{"14"}, 2023},
			{[]string{"13"}, 2022},
			{[]string{"12"}, 2021},
		},
		"Huawei": {
			{[]string{"60"}, 2023},
			{[]string{"50"}, 2022},
			{[]string{"40"}, 2021},
		},
		"Samsung": {
			{[]string{"24"}, 2024},
			{[]string{"23"}, 2023},
			{[]string{"22"}, 2022},
		},
	},
}

// releaseDate estimates a YYYY-01-01 release date: an explicit plausible
// year in the model wins, then the brand's generation table, then the
// current year as a last resort.
func releaseDate(cat hardware.Category, brand, model string) string {
	currentYear := time.Now().Year()

	if y := embeddedYear(model, minModelYear[cat], currentYear+1); y != 0 {
		return fmt.Sprintf("%d-01-01", y)
	}

	ml := strings.ToLower(model)
	for _, e := range eraTables[cat][brand] {
		for _, tok := range e.tokens {
			if strings.Contains(ml, tok) {
				return fmt.Sprintf("%d-01-01", e.year)
			}
		}
	}

	return fmt.Sprintf("%d-01-01", currentYear)
}

// embeddedYear finds a standalone four-digit year within [min, max].
func embeddedYear(model string, min, max int) int {
	for _, m := range intRe.FindAllString(model, -1) {
		if len(m) != 4 {
			continue
		}
		y, err := strconv.Atoi(m)
		if err == nil && y >= min && y <= max {
			return y
		}
	}
	return 0
}
