package telecodec

import "golang.org/x/exp/constraints"

// DefaultMaxPayload is the transport's payload ceiling in bytes, set by the
// satellite uplink's maximum message size. A payload must be strictly
// smaller to be accepted.
const DefaultMaxPayload = 158

// NoLimit disables budget enforcement for transports without a ceiling,
// such as the plain HTTP ingest the self-describing map was designed for.
const NoLimit = int(^uint(0) >> 1)

// Fits reports whether a payload of n bytes is inside the budget. Shared by
// all encoders; the strictness (< not <=) is part of the contract.
func Fits[T constraints.Integer](n, limit T) bool {
	return n < limit
}

// CheckBudget is the fatal-path form of Fits, for on-demand single encodes.
func CheckBudget(n, limit int) error {
	if !Fits(n, limit) {
		return &PayloadTooLargeError{Size: n, Limit: limit}
	}
	return nil
}
