// internal/view/format.go
package view

import (
	"fmt"
	"strconv"
)

// FormatNumber renders n compactly: 1234 as "1.2k", 3400000 as "3.4M".
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}
