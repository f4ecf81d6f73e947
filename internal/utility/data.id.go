package utility

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var leadingDigits = regexp.MustCompile(`^\d+`)

// LeadingNumber extracts the leading digits of the string form of id.
// "12" -> 12, "7-A" -> 7, "A7" -> not numeric. Runs of digits beyond the
// int64 range saturate to math.MaxInt64.
func LeadingNumber(id interface{}) (int64, bool) {
	if id == nil {
		return 0, false
	}
	match := leadingDigits.FindString(ToString(id))
	if match == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(match, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt64, true
	}
	if err != nil {
		return 0, false
	}
	return n, true
}

// SameID compares two identifiers by their string form, so 3, int64(3), 3.0 and "3" are equal
func SameID(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return ToString(a) == ToString(b)
}
