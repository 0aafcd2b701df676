package telecodec

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zlib"
)

// structBlock is the fixed-width header of the compact struct encoding.
// Field order matches the declared record order exactly: each string field
// contributes a 2-byte big-endian length, each small integer one unsigned
// byte, each float a big-endian float32, with the acc vector expanded in
// place. The string bytes themselves follow the whole block, so a reader
// can parse all fixed-width data in one pass before touching any
// variable-length payload.
type structBlock struct {
	MSISDNLen   uint16
	ISO6346Len  uint16
	TimeLen     uint16
	RSSI        uint8
	CGILen      uint16
	BLEM        uint8
	BatSOC      uint8
	AccX        float32
	AccY        float32
	AccZ        float32
	Temperature float32
	Humidity    float32
	Pressure    float32
	DoorLen     uint16
	GNSS        uint8
	Latitude    float32
	Longitude   float32
	Altitude    float32
	Speed       float32
	Heading     float32
	NSat        uint8
	HDOP        float32
}

// narrower checks typed values against their fixed-width slots and records
// the first field that does not fit. Conversions past the first failure
// still run but the buffer is never emitted.
type narrower struct {
	err error
}

func (p *narrower) byteOf(name string, v int) uint8 {
	if p.err == nil && (v < 0 || v > math.MaxUint8) {
		p.err = &FieldError{Field: name, Err: fmt.Errorf("%w: %d does not fit one unsigned byte", ErrValueRange, v)}
	}
	return uint8(v)
}

func (p *narrower) lenOf(name, s string) uint16 {
	if p.err == nil && len(s) > math.MaxUint16 {
		p.err = &FieldError{Field: name, Err: fmt.Errorf("%w: %d bytes does not fit the 2-byte length slot", ErrValueRange, len(s))}
	}
	return uint16(len(s))
}

// packStruct builds the uncompressed buffer: the fixed-width block, then
// the string fields concatenated in declared order. A value outside its
// slot's range fails with *FieldError; nothing is ever silently wrapped.
func packStruct(t *TypedRecord) ([]byte, error) {
	var p narrower
	c := Fixed[structBlock]{structBlock{
		MSISDNLen:   p.lenOf("msisdn", t.MSISDN),
		ISO6346Len:  p.lenOf("iso6346", t.ISO6346),
		TimeLen:     p.lenOf("time", t.Time),
		RSSI:        p.byteOf("rssi", t.RSSI),
		CGILen:      p.lenOf("cgi", t.CGI),
		BLEM:        p.byteOf("ble-m", t.BLEM),
		BatSOC:      p.byteOf("bat-soc", t.BatSOC),
		AccX:        t.Acc[0],
		AccY:        t.Acc[1],
		AccZ:        t.Acc[2],
		Temperature: t.Temperature,
		Humidity:    t.Humidity,
		Pressure:    t.Pressure,
		DoorLen:     p.lenOf("door", t.Door),
		GNSS:        p.byteOf("gnss", t.GNSS),
		Latitude:    t.Latitude,
		Longitude:   t.Longitude,
		Altitude:    t.Altitude,
		Speed:       t.Speed,
		Heading:     t.Heading,
		NSat:        p.byteOf("nsat", t.NSat),
		HDOP:        t.HDOP,
	}}
	if p.err != nil {
		return nil, p.err
	}

	strs := t.MSISDN + t.ISO6346 + t.Time + t.CGI + t.Door
	b, err := c.AppendTo(make([]byte, 0, c.Size()+len(strs)))
	if err != nil {
		return nil, err
	}
	return append(b, strs...), nil
}

// EncodeStruct packs the record into the fixed-layout block, compresses it
// with zlib at maximum level and enforces the size budget. An over-budget
// result fails with *PayloadTooLargeError; during bulk generation the pool
// treats that as discard-and-regenerate, not as an error.
func EncodeStruct(r *Record, limit int) ([]byte, error) {
	t, err := r.Typed()
	if err != nil {
		return nil, err
	}
	raw, err := packStruct(&t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	b := buf.Bytes()
	if err := CheckBudget(len(b), limit); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeStruct decompresses and unpacks a compact struct payload. The
// buffer must hold exactly one block plus its string bytes; anything
// trailing fails with ErrTrailingData.
func DecodeStruct(b []byte) (TypedRecord, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return TypedRecord{}, err
	}
	raw, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return TypedRecord{}, err
	}

	var c Fixed[structBlock]
	n, err := c.Decode(raw)
	if err != nil {
		return TypedRecord{}, err
	}
	h := c.Payload

	strs := raw[n:]
	want := int(h.MSISDNLen) + int(h.ISO6346Len) + int(h.TimeLen) + int(h.CGILen) + int(h.DoorLen)
	if len(strs) < want {
		return TypedRecord{}, ErrTruncatedData
	}
	if len(strs) > want {
		return TypedRecord{}, ErrTrailingData
	}

	next := func(n uint16) string {
		s := string(strs[:n])
		strs = strs[n:]
		return s
	}
	return TypedRecord{
		MSISDN:      next(h.MSISDNLen),
		ISO6346:     next(h.ISO6346Len),
		Time:        next(h.TimeLen),
		CGI:         next(h.CGILen),
		Door:        next(h.DoorLen),
		RSSI:        int(h.RSSI),
		BLEM:        int(h.BLEM),
		BatSOC:      int(h.BatSOC),
		GNSS:        int(h.GNSS),
		NSat:        int(h.NSat),
		Acc:         [3]float32{h.AccX, h.AccY, h.AccZ},
		Temperature: h.Temperature,
		Humidity:    h.Humidity,
		Pressure:    h.Pressure,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		Altitude:    h.Altitude,
		Speed:       h.Speed,
		Heading:     h.Heading,
		HDOP:        h.HDOP,
	}, nil
}
