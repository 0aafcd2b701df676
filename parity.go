package telecodec

// EncodeFunc is any single-record encoder whose output can be compared for
// parity.
type EncodeFunc func(*Record) ([]byte, error)

// Diff compares two encoder outputs byte for byte. It returns nil when they
// are identical and a *ParityError locating the first divergence otherwise.
func Diff(a, b []byte) *ParityError {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return &ParityError{Offset: i, LenA: len(a), LenB: len(b), ByteA: a[i], ByteB: b[i]}
		}
	}
	if len(a) != len(b) {
		e := &ParityError{Offset: n, LenA: len(a), LenB: len(b)}
		if len(a) > n {
			e.ByteA = a[n]
		}
		if len(b) > n {
			e.ByteB = b[n]
		}
		return e
	}
	return nil
}

// CheckParity encodes the same record through a reference encoder and a
// candidate (typically the embedded-target simulation) and fails unless the
// outputs are byte-identical. This is the gate that keeps an externally
// maintained encoder bit-compatible as the schema evolves; a mismatch is
// never ignored.
func CheckParity(r *Record, reference, candidate EncodeFunc) error {
	want, err := reference(r)
	if err != nil {
		return err
	}
	got, err := candidate(r)
	if err != nil {
		return err
	}
	if diff := Diff(want, got); diff != nil {
		return diff
	}
	return nil
}
