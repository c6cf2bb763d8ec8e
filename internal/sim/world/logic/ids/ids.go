package ids

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CitizenPrefix   = "C"
	StructurePrefix = "S"
)

func Format(prefix string, n uint64) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

func ParseUintAfterPrefix(prefix, id string) (uint64, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(id[len(prefix):], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Less orders ids by their numeric suffix, falling back to string order
// for ids that do not carry the prefix.
func Less(prefix, a, b string) bool {
	na, oka := ParseUintAfterPrefix(prefix, a)
	nb, okb := ParseUintAfterPrefix(prefix, b)
	if oka && okb && na != nb {
		return na < nb
	}
	return a < b
}
