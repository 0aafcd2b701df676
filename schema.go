package telecodec

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Positional schema: field names never go on the wire, only the numbers
// below. The numbering is the external contract shared with the embedded
// nanopb encoder and must not be reassigned. The acc vector is carried as
// three independent scalar fields.
//
//	1-5   msisdn, iso6346, time, cgi, door   (length-delimited string)
//	6-10  rssi, ble_m, bat_soc, gnss, nsat   (varint)
//	11-13 acc_x, acc_y, acc_z                (fixed32 float)
//	14-22 temperature, humidity, pressure, latitude, longitude,
//	      altitude, speed, heading, hdop     (fixed32 float)
const (
	fnMSISDN  protowire.Number = 1
	fnISO6346 protowire.Number = 2
	fnTime    protowire.Number = 3
	fnCGI     protowire.Number = 4
	fnDoor    protowire.Number = 5

	fnRSSI   protowire.Number = 6
	fnBLEM   protowire.Number = 7
	fnBatSOC protowire.Number = 8
	fnGNSS   protowire.Number = 9
	fnNSat   protowire.Number = 10

	fnAccX protowire.Number = 11
	fnAccY protowire.Number = 12
	fnAccZ protowire.Number = 13

	fnTemperature protowire.Number = 14
	fnHumidity    protowire.Number = 15
	fnPressure    protowire.Number = 16
	fnLatitude    protowire.Number = 17
	fnLongitude   protowire.Number = 18
	fnAltitude    protowire.Number = 19
	fnSpeed       protowire.Number = 20
	fnHeading     protowire.Number = 21
	fnHDOP        protowire.Number = 22
)

// EncodeSchema serializes a validated record against the positional schema
// and enforces the size budget: an encoded length not strictly below limit
// fails with *PayloadTooLargeError. There is no truncation and no retry
// here; a caller needing a guaranteed fit must reduce precision or fields
// and re-encode.
func EncodeSchema(r *Record, limit int) ([]byte, error) {
	t, err := r.Typed()
	if err != nil {
		return nil, err
	}
	b := appendSchema(nil, &t)
	if err := CheckBudget(len(b), limit); err != nil {
		return nil, err
	}
	return b, nil
}

func appendSchema(b []byte, t *TypedRecord) []byte {
	str := func(n protowire.Number, v string) {
		b = protowire.AppendTag(b, n, protowire.BytesType)
		b = protowire.AppendString(b, v)
	}
	varint := func(n protowire.Number, v int) {
		b = protowire.AppendTag(b, n, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(v))
	}
	f32 := func(n protowire.Number, v float32) {
		b = protowire.AppendTag(b, n, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(v))
	}

	str(fnMSISDN, t.MSISDN)
	str(fnISO6346, t.ISO6346)
	str(fnTime, t.Time)
	str(fnCGI, t.CGI)
	str(fnDoor, t.Door)

	varint(fnRSSI, t.RSSI)
	varint(fnBLEM, t.BLEM)
	varint(fnBatSOC, t.BatSOC)
	varint(fnGNSS, t.GNSS)
	varint(fnNSat, t.NSat)

	f32(fnAccX, t.Acc[0])
	f32(fnAccY, t.Acc[1])
	f32(fnAccZ, t.Acc[2])

	f32(fnTemperature, t.Temperature)
	f32(fnHumidity, t.Humidity)
	f32(fnPressure, t.Pressure)
	f32(fnLatitude, t.Latitude)
	f32(fnLongitude, t.Longitude)
	f32(fnAltitude, t.Altitude)
	f32(fnSpeed, t.Speed)
	f32(fnHeading, t.Heading)
	f32(fnHDOP, t.HDOP)

	return b
}

// DecodeSchema parses a positional payload back into its typed form, for
// tests and offline inspection. Unknown field numbers are rejected rather
// than skipped: the schema is closed.
func DecodeSchema(b []byte) (TypedRecord, error) {
	var t TypedRecord
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return TypedRecord{}, ErrTruncatedData
		}
		b = b[n:]

		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return TypedRecord{}, ErrTruncatedData
			}
			b = b[n:]
			switch num {
			case fnMSISDN:
				t.MSISDN = v
			case fnISO6346:
				t.ISO6346 = v
			case fnTime:
				t.Time = v
			case fnCGI:
				t.CGI = v
			case fnDoor:
				t.Door = v
			default:
				return TypedRecord{}, ErrUnknownField
			}

		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return TypedRecord{}, ErrTruncatedData
			}
			b = b[n:]
			switch num {
			case fnRSSI:
				t.RSSI = int(v)
			case fnBLEM:
				t.BLEM = int(v)
			case fnBatSOC:
				t.BatSOC = int(v)
			case fnGNSS:
				t.GNSS = int(v)
			case fnNSat:
				t.NSat = int(v)
			default:
				return TypedRecord{}, ErrUnknownField
			}

		case protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return TypedRecord{}, ErrTruncatedData
			}
			b = b[n:]
			f := math.Float32frombits(v)
			switch num {
			case fnAccX:
				t.Acc[0] = f
			case fnAccY:
				t.Acc[1] = f
			case fnAccZ:
				t.Acc[2] = f
			case fnTemperature:
				t.Temperature = f
			case fnHumidity:
				t.Humidity = f
			case fnPressure:
				t.Pressure = f
			case fnLatitude:
				t.Latitude = f
			case fnLongitude:
				t.Longitude = f
			case fnAltitude:
				t.Altitude = f
			case fnSpeed:
				t.Speed = f
			case fnHeading:
				t.Heading = f
			case fnHDOP:
				t.HDOP = f
			default:
				return TypedRecord{}, ErrUnknownField
			}

		default:
			return TypedRecord{}, ErrUnknownField
		}
	}
	return t, nil
}
