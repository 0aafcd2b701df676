package telecodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// sampleRecord is the literal tracker report used across the codec tests,
// including the cross-implementation parity check.
func sampleRecord() Record {
	return Record{
		MSISDN:      "393600504920",
		ISO6346:     "LMCU0954822",
		Time:        "300725 221117.8",
		RSSI:        "21",
		CGI:         "999-01-1-31D41",
		BLEM:        "1",
		BatSOC:      "93",
		Acc:         "-974.0700 -25.1270 -45.6744",
		Temperature: "18.32",
		Humidity:    "75.44",
		Pressure:    "1016.7932",
		Door:        "D",
		GNSS:        "1",
		Latitude:    "31.9277",
		Longitude:   "28.6378",
		Altitude:    "56.62",
		Speed:       "0.8",
		Heading:     "302.07",
		NSat:        "11",
		HDOP:        "5.0",
	}
}

type RecordTestSuite struct {
	suite.Suite
}

func (s *RecordTestSuite) TestPairsFollowDeclaredOrder() {
	rec := sampleRecord()
	pairs := rec.Pairs()
	require.Len(s.T(), pairs, len(FieldNames))
	for i, p := range pairs {
		s.Assert().Equal(FieldNames[i], p[0], "pair %d", i)
	}
}

func (s *RecordTestSuite) TestFromMapRoundTrip() {
	rec := sampleRecord()
	got, err := FromMap(rec.Map())
	s.Require().NoError(err)
	s.Assert().Equal(rec, got)
}

func (s *RecordTestSuite) TestFromMapMissingField() {
	fields := sampleRecord().Map()
	delete(fields, "pressure")

	_, err := FromMap(fields)
	s.Require().Error(err)

	var missing *MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Assert().Equal("pressure", missing.Field)
}

func (s *RecordTestSuite) TestFromMapReportsFirstMissingInOrder() {
	fields := sampleRecord().Map()
	delete(fields, "hdop")
	delete(fields, "time")

	_, err := FromMap(fields)
	var missing *MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Assert().Equal("time", missing.Field)
}

func (s *RecordTestSuite) TestFromJSON() {
	rec, err := FromJSON([]byte(`{
		"msisdn":"393600504920","iso6346":"LMCU0954822","time":"300725 221117.8",
		"rssi":"21","cgi":"999-01-1-31D41","ble-m":"1","bat-soc":"93",
		"acc":"-974.0700 -25.1270 -45.6744","temperature":"18.32","humidity":"75.44",
		"pressure":"1016.7932","door":"D","gnss":"1","latitude":"31.9277",
		"longitude":"28.6378","altitude":"56.62","speed":"0.8","heading":"302.07",
		"nsat":"11","hdop":"5.0"}`))
	s.Require().NoError(err)
	s.Assert().Equal(sampleRecord(), rec)
}

func (s *RecordTestSuite) TestTyped() {
	rec := sampleRecord()
	t, err := rec.Typed()
	s.Require().NoError(err)

	s.Assert().Equal("393600504920", t.MSISDN)
	s.Assert().Equal(21, t.RSSI)
	s.Assert().Equal(93, t.BatSOC)
	s.Assert().Equal(11, t.NSat)
	s.Assert().Equal([3]float32{-974.0700, -25.1270, -45.6744}, t.Acc)
	s.Assert().Equal(float32(18.32), t.Temperature)
	s.Assert().Equal(float32(1016.7932), t.Pressure)
	s.Assert().Equal(float32(5.0), t.HDOP)
}

func (s *RecordTestSuite) TestTypedFieldQualifiedErrors() {
	rec := sampleRecord()
	rec.BatSOC = "full"

	_, err := rec.Typed()
	var ferr *FieldError
	s.Require().ErrorAs(err, &ferr)
	s.Assert().Equal("bat-soc", ferr.Field)

	rec = sampleRecord()
	rec.Latitude = "north"
	_, err = rec.Typed()
	s.Require().ErrorAs(err, &ferr)
	s.Assert().Equal("latitude", ferr.Field)
}

func TestRecordSuite(t *testing.T) {
	suite.Run(t, new(RecordTestSuite))
}

func TestParseVectorSeparatorStyles(t *testing.T) {
	want := [3]float32{-993.9, -27.1, -52.0}
	for _, raw := range []string{
		"-993.9 -27.1 -52.0",
		"-993.9,-27.1,-52.0",
		"-993.9,-27.1 -52.0",
		"-993.9-27.1-52.0",
	} {
		t.Run(raw, func(t *testing.T) {
			v, err := ParseVector(raw)
			require.NoError(t, err)
			assert.Equal(t, want, v)
		})
	}
}

func TestParseVectorWrongTokenCount(t *testing.T) {
	for _, raw := range []string{"-993.9 -27.1", "", "x y z", "1 2 3 4"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseVector(raw)
			require.Error(t, err)

			var verr *VectorError
			require.ErrorAs(t, err, &verr)
			assert.NotEqual(t, 3, verr.Tokens)
		})
	}
}
