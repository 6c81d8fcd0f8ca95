package launcher

import (
	"regexp"
	"strconv"
	"strings"
)

// versionPart matches runs of digits or of anything else.
var versionPart = regexp.MustCompile(`\d+|\D+`)

// compareVersions compares two paths that embed version numbers, such as
// "Versions/3.9/bin" and "Versions/3.13/bin". Digit runs compare as numbers,
// other runs lexicographically.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
func compareVersions(a, b string) int {
	partsA := versionPart.FindAllString(a, -1)
	partsB := versionPart.FindAllString(b, -1)

	for i := 0; i < len(partsA) || i < len(partsB); i++ {
		// A prefix sorts first.
		if i >= len(partsA) {
			return -1
		}
		if i >= len(partsB) {
			return 1
		}
		if cmp := comparePart(partsA[i], partsB[i]); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// versionLess returns true if a sorts before b.
func versionLess(a, b string) bool {
	return compareVersions(a, b) < 0
}

func comparePart(a, b string) int {
	numA, errA := strconv.Atoi(a)
	numB, errB := strconv.Atoi(b)

	switch {
	case errA == nil && errB == nil:
		return compareInts(numA, numB)
	case errA == nil:
		// numbers come before text
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func compareInts(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
