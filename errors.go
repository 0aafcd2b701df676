package telecodec

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedData indicates that a decode could not complete because the
	// payload ended before all expected bytes were present.
	ErrTruncatedData = errors.New("telecodec: truncated data")

	// ErrTrailingData is returned when non-empty bytes remain after the
	// expected end of a payload, indicating a malformed or mislabeled input.
	ErrTrailingData = errors.New("telecodec: trailing data found after decoding")

	// ErrBadTag indicates a tag byte that is not part of the active grammar.
	ErrBadTag = errors.New("telecodec: unrecognized tag byte")

	// ErrFieldCount indicates a decoded map whose entry count is not the
	// fixed field count of a telemetry record.
	ErrFieldCount = errors.New("telecodec: map entry count is not 20")

	// ErrUnknownScheme indicates an EncodingScheme value outside the closed set.
	ErrUnknownScheme = errors.New("telecodec: unknown encoding scheme")

	// ErrUnknownField indicates a positional payload carrying a field number
	// that is not part of the schema.
	ErrUnknownField = errors.New("telecodec: unknown schema field number")

	// ErrPoolExhausted indicates batch generation gave up before reaching the
	// requested number of in-budget samples.
	ErrPoolExhausted = errors.New("telecodec: pool generation exhausted retry allowance")

	// ErrValueRange indicates a parsed value or string length that does not
	// fit its fixed-width wire slot. Encoding fails rather than wrap.
	ErrValueRange = errors.New("telecodec: value outside wire range")
)

// MissingFieldError reports a required record field absent from the input.
// Validation never defaults or reorders fields; the first missing name in
// declared order is reported.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("telecodec: missing required field %q", e.Field)
}

// FieldError qualifies a parse failure with the field it belongs to, so a
// batch producer can attribute a rejected record to a specific field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("telecodec: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// VectorError reports an accelerometer value that did not tokenize into
// exactly three numeric components.
type VectorError struct {
	Raw    string
	Tokens int
}

func (e *VectorError) Error() string {
	return fmt.Sprintf("telecodec: acc must contain 3 numeric values, got %d in %q", e.Tokens, e.Raw)
}

// PayloadTooLargeError reports an encoded payload that violates the
// transport size budget. Fatal for single-shot encodes; batch generation
// treats the condition as recoverable and regenerates instead.
type PayloadTooLargeError struct {
	Size  int
	Limit int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("telecodec: encoded payload is %d bytes (limit %d)", e.Size, e.Limit)
}

// ParityError reports the first byte at which two encoder outputs diverge
// for identical input. A length mismatch with a common prefix reports the
// shorter length as the offset.
type ParityError struct {
	Offset int
	LenA   int
	LenB   int
	ByteA  byte // 0 when A ended before Offset
	ByteB  byte // 0 when B ended before Offset
}

func (e *ParityError) Error() string {
	if e.LenA != e.LenB && e.Offset >= min(e.LenA, e.LenB) {
		return fmt.Sprintf("telecodec: parity mismatch: lengths differ (%d vs %d), first divergence at offset %d", e.LenA, e.LenB, e.Offset)
	}
	return fmt.Sprintf("telecodec: parity mismatch at offset %d: 0x%02x vs 0x%02x", e.Offset, e.ByteA, e.ByteB)
}
