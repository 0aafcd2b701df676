package telecodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceMap(r *Record) ([]byte, error) {
	return EncodeMap(r, &MsgPack), nil
}

func embeddedMap(r *Record) ([]byte, error) {
	return EncodeEmbedded(r), nil
}

// TestEmbeddedParity pins the contract that matters most: the simulated
// embedded encoder and the reference grammar encoder must agree byte for
// byte on identical input.
func TestEmbeddedParity(t *testing.T) {
	rec := sampleRecord()

	ref := EncodeMap(&rec, &MsgPack)
	emb := EncodeEmbedded(&rec)

	require.Equal(t, len(ref), len(emb), "lengths must match")
	assert.Equal(t, ref, emb, "payloads must be byte-identical")
	assert.NoError(t, CheckParity(&rec, referenceMap, embeddedMap))
}

func TestEmbeddedParityAcrossGeneratedRecords(t *testing.T) {
	gen := NewGenerator(7)
	for range 100 {
		rec := gen.Record()
		require.NoError(t, CheckParity(&rec, referenceMap, embeddedMap), "record %+v", rec)
	}
}

func TestDiffLocatesFirstMismatch(t *testing.T) {
	a := []byte{1, 2, 3, 4}
	b := []byte{1, 2, 9, 4}

	diff := Diff(a, b)
	require.NotNil(t, diff)
	assert.Equal(t, 2, diff.Offset)
	assert.Equal(t, byte(3), diff.ByteA)
	assert.Equal(t, byte(9), diff.ByteB)

	assert.Nil(t, Diff(a, a))
}

func TestDiffLengthMismatch(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3, 4}

	diff := Diff(a, b)
	require.NotNil(t, diff)
	assert.Equal(t, 3, diff.Offset)
	assert.Equal(t, 3, diff.LenA)
	assert.Equal(t, 4, diff.LenB)
	assert.Contains(t, diff.Error(), "lengths differ")
}

func TestCheckParityFailsAcrossGrammars(t *testing.T) {
	// A CBOR candidate against the MessagePack reference must diverge at
	// the very first byte (map header tag).
	rec := sampleRecord()
	cborMap := func(r *Record) ([]byte, error) {
		return EncodeMap(r, &CBOR), nil
	}

	err := CheckParity(&rec, referenceMap, cborMap)
	require.Error(t, err)

	var perr *ParityError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Offset)
}
