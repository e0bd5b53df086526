package update

import (
	"strconv"
	"strings"
)

// CompareVersions orders two dotted version strings numerically. Missing
// trailing segments count as 0, as do segments that are not plain decimal
// integers, so "1.2" equals "1.2.0". Exponent or hex forms ("1e3", "0x10")
// and values that overflow int also count as 0. It returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		x, y := segment(as, i), segment(bs, i)
		switch {
		case x > y:
			return 1
		case x < y:
			return -1
		}
	}
	return 0
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}
