package telecodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/protobuf/encoding/protowire"
)

type SchemaTestSuite struct {
	suite.Suite
}

func (s *SchemaTestSuite) TestRoundTrip() {
	rec := sampleRecord()
	b, err := EncodeSchema(&rec, DefaultMaxPayload)
	s.Require().NoError(err)

	want, err := rec.Typed()
	s.Require().NoError(err)

	got, err := DecodeSchema(b)
	s.Require().NoError(err)
	s.Assert().Equal(want, got)
}

func (s *SchemaTestSuite) TestWireLayout() {
	rec := sampleRecord()
	b, err := EncodeSchema(&rec, DefaultMaxPayload)
	s.Require().NoError(err)

	// Field 1 (msisdn) leads: tag (1<<3)|BytesType, then length 12.
	s.Assert().Equal(byte(0x0a), b[0])
	s.Assert().Equal(byte(12), b[1])
	s.Assert().Equal("393600504920", string(b[2:14]))

	// Output size is a function of actual field lengths: 5 strings with
	// 1-byte tags and lengths, 5 one-byte varints, 12 fixed32 floats of
	// which seven carry two-byte tags (field numbers above 15).
	s.Assert().Len(b, 140)
}

func (s *SchemaTestSuite) TestSizeBudgetFatal() {
	rec := sampleRecord()
	_, err := EncodeSchema(&rec, 100)
	s.Require().Error(err)

	var tooLarge *PayloadTooLargeError
	s.Require().ErrorAs(err, &tooLarge)
	s.Assert().Equal(140, tooLarge.Size)
	s.Assert().Equal(100, tooLarge.Limit)
}

func (s *SchemaTestSuite) TestExactLimitIsRejected() {
	rec := sampleRecord()
	b, err := EncodeSchema(&rec, DefaultMaxPayload)
	s.Require().NoError(err)

	// The budget is strict: a payload of exactly limit bytes must fail.
	_, err = EncodeSchema(&rec, len(b))
	s.Require().Error(err)
	_, err = EncodeSchema(&rec, len(b)+1)
	s.Assert().NoError(err)
}

func (s *SchemaTestSuite) TestMalformedRecordFailsBeforeEncoding() {
	rec := sampleRecord()
	rec.Acc = "-974.0700 -25.1270"

	_, err := EncodeSchema(&rec, DefaultMaxPayload)
	var verr *VectorError
	s.Require().ErrorAs(err, &verr)
	s.Assert().Equal(2, verr.Tokens)
}

func (s *SchemaTestSuite) TestDecodeRejectsUnknownField() {
	b := protowire.AppendTag(nil, 99, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	_, err := DecodeSchema(b)
	s.Assert().ErrorIs(err, ErrUnknownField)
}

func (s *SchemaTestSuite) TestDecodeRejectsTruncation() {
	rec := sampleRecord()
	b, err := EncodeSchema(&rec, DefaultMaxPayload)
	s.Require().NoError(err)

	_, err = DecodeSchema(b[:len(b)-2])
	s.Assert().ErrorIs(err, ErrTruncatedData)
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaTestSuite))
}

func TestSchemaDeterminism(t *testing.T) {
	rec := sampleRecord()
	a, err := EncodeSchema(&rec, DefaultMaxPayload)
	require.NoError(t, err)
	b, err := EncodeSchema(&rec, DefaultMaxPayload)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
