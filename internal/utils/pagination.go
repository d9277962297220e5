// Package utils provides small helper functions shared across layers.
// Nothing here knows about messages, rooms, or HTTP.
package utils

import "strconv"

// AtoiDefault converts a string to an int using strconv.Atoi.
// Empty or unparsable input yields the provided default instead.
//
// Example:
//
//	n := utils.AtoiDefault("42", 0) // returns 42
//	n = utils.AtoiDefault("", 10)   // returns 10
//	n = utils.AtoiDefault("x", 5)   // returns 5
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ClampInt bounds n to the inclusive range [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// PageBounds turns a raw offset/limit pair into slice bounds over a result
// of the given total length. A negative offset becomes 0, a non-positive
// limit falls back to defLimit, and the limit is capped at maxLimit. The
// returned start and end always satisfy 0 <= start <= end <= total, so
// s[start:end] is safe for any input.
func PageBounds(offset, limit, defLimit, maxLimit, total int) (start, end int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset >= total {
		return total, total
	}
	end = offset + limit
	if end > total {
		end = total
	}
	return offset, end
}
