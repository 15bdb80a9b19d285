// internal/hardware/id.go
package hardware

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// MakeID derives the stable record identity from category, brand and model.
// The same physical product scraped from different sources or passes must
// collapse to the same id, so the input is lowercased and whitespace runs are
// folded to single dashes before hashing. The id is immutable once assigned.
func MakeID(category Category, brand, model string) string {
	key := fmt.Sprintf("%s-%s-%s", category, brand, model)
	key = strings.ToLower(key)
	key = strings.Join(strings.Fields(key), "-")

	sum := md5.Sum([]byte(key))
	return fmt.Sprintf("%s-%s", category, hex.EncodeToString(sum[:])[:8])
}
