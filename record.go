// Package telecodec implements the compact binary codecs used to uplink
// container telemetry over size-constrained transports (satellite, cellular
// IoT). A fixed-schema record of 20 fields is encoded by one of three
// schemes: a self-describing tagged map (MessagePack- or CBOR-flavored
// grammar), a positional protobuf-style schema, or a fixed-width struct
// block followed by zlib compression. Every payload is held to a hard
// byte ceiling before it may be handed to a transport.
package telecodec

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// FieldNames is the required field set in its declared order. Every encoder
// iterates fields in exactly this order; it is the authority that keeps
// independent encoder implementations byte-comparable.
var FieldNames = [20]string{
	"msisdn", "iso6346", "time", "rssi", "cgi", "ble-m", "bat-soc",
	"acc", "temperature", "humidity", "pressure", "door", "gnss",
	"latitude", "longitude", "altitude", "speed", "heading", "nsat", "hdop",
}

// Record is one container telemetry report with every field kept in its
// original textual formatting. Numeric fields stay strings here so that the
// self-describing encoding preserves precision exactly as produced by the
// device firmware.
type Record struct {
	MSISDN      string // SIM identity
	ISO6346     string // container identity
	Time        string // DDMMYY hhmmss.s
	RSSI        string
	CGI         string // serving cell identity
	BLEM        string // BLE source node
	BatSOC      string // battery state of charge, percent
	Acc         string // accelerometer x/y/z, mg, flexible separators
	Temperature string
	Humidity    string
	Pressure    string
	Door        string // D/O/C/T
	GNSS        string
	Latitude    string
	Longitude   string
	Altitude    string
	Speed       string
	Heading     string
	NSat        string
	HDOP        string
}

// Pairs returns the record as (name, value) pairs in declared field order.
func (r Record) Pairs() [20][2]string {
	return [20][2]string{
		{"msisdn", r.MSISDN}, {"iso6346", r.ISO6346}, {"time", r.Time},
		{"rssi", r.RSSI}, {"cgi", r.CGI}, {"ble-m", r.BLEM},
		{"bat-soc", r.BatSOC}, {"acc", r.Acc}, {"temperature", r.Temperature},
		{"humidity", r.Humidity}, {"pressure", r.Pressure}, {"door", r.Door},
		{"gnss", r.GNSS}, {"latitude", r.Latitude}, {"longitude", r.Longitude},
		{"altitude", r.Altitude}, {"speed", r.Speed}, {"heading", r.Heading},
		{"nsat", r.NSat}, {"hdop", r.HDOP},
	}
}

// Map returns the record as a name→value map, mostly for decode comparisons.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(FieldNames))
	for _, p := range r.Pairs() {
		m[p[0]] = p[1]
	}
	return m
}

// FromMap validates completeness and builds a Record from raw textual
// fields. The first field name (in declared order) absent from the input
// fails with *MissingFieldError. Values are taken verbatim; typed parsing
// is deferred to Typed.
func FromMap(fields map[string]string) (Record, error) {
	for _, name := range FieldNames {
		if _, ok := fields[name]; !ok {
			return Record{}, &MissingFieldError{Field: name}
		}
	}
	return Record{
		MSISDN:      fields["msisdn"],
		ISO6346:     fields["iso6346"],
		Time:        fields["time"],
		RSSI:        fields["rssi"],
		CGI:         fields["cgi"],
		BLEM:        fields["ble-m"],
		BatSOC:      fields["bat-soc"],
		Acc:         fields["acc"],
		Temperature: fields["temperature"],
		Humidity:    fields["humidity"],
		Pressure:    fields["pressure"],
		Door:        fields["door"],
		GNSS:        fields["gnss"],
		Latitude:    fields["latitude"],
		Longitude:   fields["longitude"],
		Altitude:    fields["altitude"],
		Speed:       fields["speed"],
		Heading:     fields["heading"],
		NSat:        fields["nsat"],
		HDOP:        fields["hdop"],
	}, nil
}

// FromJSON parses a JSON object of string fields into a validated Record.
func FromJSON(data []byte) (Record, error) {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return Record{}, err
	}
	return FromMap(fields)
}

// TypedRecord is the parsed view of a Record used by the positional and
// fixed-struct encoders. Floats are float32 because both wire formats carry
// 32-bit floats; the small integers all fit one unsigned byte on the
// fixed-struct wire.
type TypedRecord struct {
	MSISDN, ISO6346, Time, CGI, Door string

	RSSI, BLEM, BatSOC, GNSS, NSat int

	Acc [3]float32

	Temperature, Humidity, Pressure float32
	Latitude, Longitude, Altitude   float32
	Speed, Heading, HDOP            float32
}

// numberPattern matches signed decimal numbers, the token syntax of the
// accelerometer triplet.
var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseVector tokenizes an accelerometer string into its three components.
// Space, comma, comma+space and no-separator styles are all accepted, since
// the sign of the next component is separator enough. Anything other than
// exactly three numeric tokens fails with *VectorError.
func ParseVector(raw string) ([3]float32, error) {
	tokens := numberPattern.FindAllString(raw, -1)
	if len(tokens) != 3 {
		return [3]float32{}, &VectorError{Raw: raw, Tokens: len(tokens)}
	}
	var v [3]float32
	for i, tok := range tokens {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return [3]float32{}, &FieldError{Field: "acc", Err: err}
		}
		v[i] = float32(f)
	}
	return v, nil
}

func parseFieldInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: name, Err: err}
	}
	return n, nil
}

func parseFieldFloat(name, raw string) (float32, error) {
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, &FieldError{Field: name, Err: err}
	}
	return float32(f), nil
}

// Typed parses the record's textual values into their semantic types.
// Failures carry the offending field name so batch producers can attribute
// rejections. The record itself is never modified; it may be re-encoded
// any number of times.
func (r Record) Typed() (TypedRecord, error) {
	t := TypedRecord{
		MSISDN:  r.MSISDN,
		ISO6346: r.ISO6346,
		Time:    r.Time,
		CGI:     r.CGI,
		Door:    r.Door,
	}

	var err error
	ints := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"rssi", r.RSSI, &t.RSSI},
		{"ble-m", r.BLEM, &t.BLEM},
		{"bat-soc", r.BatSOC, &t.BatSOC},
		{"gnss", r.GNSS, &t.GNSS},
		{"nsat", r.NSat, &t.NSat},
	}
	for _, f := range ints {
		if *f.dst, err = parseFieldInt(f.name, f.raw); err != nil {
			return TypedRecord{}, err
		}
	}

	floats := []struct {
		name string
		raw  string
		dst  *float32
	}{
		{"temperature", r.Temperature, &t.Temperature},
		{"humidity", r.Humidity, &t.Humidity},
		{"pressure", r.Pressure, &t.Pressure},
		{"latitude", r.Latitude, &t.Latitude},
		{"longitude", r.Longitude, &t.Longitude},
		{"altitude", r.Altitude, &t.Altitude},
		{"speed", r.Speed, &t.Speed},
		{"heading", r.Heading, &t.Heading},
		{"hdop", r.HDOP, &t.HDOP},
	}
	for _, f := range floats {
		if *f.dst, err = parseFieldFloat(f.name, f.raw); err != nil {
			return TypedRecord{}, err
		}
	}

	if t.Acc, err = ParseVector(r.Acc); err != nil {
		return TypedRecord{}, err
	}
	return t, nil
}
