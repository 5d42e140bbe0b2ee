// Package update polls a remote version file and reports when a newer release
// of notedeck is available.
package update

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the running release. It is overridden at build time with
// -ldflags "-X github.com/five82/notedeck/internal/update.Version=...".
var Version = "1.0.0"

// IsNewVersion reports whether remote is strictly newer than current.
// Versions are dotted numeric tuples; missing trailing components count as
// zero and a leading "v" is ignored.
func IsNewVersion(remote, current string) (bool, error) {
	r, err := parseVersion(remote)
	if err != nil {
		return false, fmt.Errorf("remote version: %w", err)
	}
	c, err := parseVersion(current)
	if err != nil {
		return false, fmt.Errorf("current version: %w", err)
	}
	n := max(len(r), len(c))
	for i := 0; i < n; i++ {
		a, b := component(r, i), component(c, i)
		if a != b {
			return a > b, nil
		}
	}
	return false, nil
}

func parseVersion(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(strings.TrimPrefix(value, "v"), "V")
	if value == "" {
		return nil, fmt.Errorf("empty version")
	}
	parts := strings.Split(value, ".")
	out := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid version %q: component %q is not a number", value, part)
		}
		out[i] = n
	}
	return out, nil
}

func component(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}
