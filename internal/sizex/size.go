// Package sizex formats byte counts into human-readable labels.
package sizex

import (
	"math"
	"strconv"
	"strings"
)

var units = []string{"Bytes", "KB", "MB", "GB", "TB"}

// Format renders a byte count using base-1024 scaling, rounded to two
// decimal places with trailing zeros trimmed. Zero formats as "0 Bytes".
//
//	Format(0)          == "0 Bytes"
//	Format(1024)       == "1 KB"
//	Format(1536)       == "1.5 KB"
//	Format(1073741824) == "1 GB"
func Format(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(units) {
		i = len(units) - 1
	}

	v := float64(bytes) / math.Pow(1024, float64(i))
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")

	return s + " " + units[i]
}
