package telecodec

// Grammar is the tag table of one self-describing map encoding. Both wire
// variants share a single algorithm: a map header tagging the entry count,
// then each entry as two length-tagged strings. Strings fall into three
// size classes by UTF-8 byte length (an inline single-byte tag, a marker
// plus 1-byte length, or a marker plus 2-byte big-endian length) and the
// table supplies each variant's class boundaries and marker values.
type Grammar struct {
	Name string

	FixStrBase byte // tag = FixStrBase + len, for len <= FixStrMax
	FixStrMax  int
	Str8       byte // marker, then 1-byte length
	Str16      byte // marker, then 2-byte big-endian length

	FixMapBase byte // tag = FixMapBase + count, for count <= FixMapMax
	FixMapMax  int
	Map16      byte // marker, then 2-byte big-endian count
}

// MsgPack is the MessagePack-flavored grammar (fixstr/str8/str16 and
// fixmap/map16), the reference wire format of the embedded encoder.
var MsgPack = Grammar{
	Name:       "msgpack",
	FixStrBase: 0xa0,
	FixStrMax:  31,
	Str8:       0xd9,
	Str16:      0xda,
	FixMapBase: 0x80,
	FixMapMax:  15,
	Map16:      0xde,
}

// CBOR is the CBOR-flavored grammar: RFC 8949 major type 3 text strings
// and major type 5 maps, restricted to the same three size classes.
var CBOR = Grammar{
	Name:       "cbor",
	FixStrBase: 0x60,
	FixStrMax:  23,
	Str8:       0x78,
	Str16:      0x79,
	FixMapBase: 0xa0,
	FixMapMax:  23,
	Map16:      0xb9,
}

// AppendString appends a length-tagged string in the grammar's smallest
// applicable size class.
func (g *Grammar) AppendString(b []byte, s string) []byte {
	n := len(s)
	switch {
	case n <= g.FixStrMax:
		b = append(b, g.FixStrBase+byte(n))
	case n <= 0xff:
		b = append(b, g.Str8, byte(n))
	default:
		b = append(b, g.Str16, byte(n>>8), byte(n))
	}
	return append(b, s...)
}

// AppendMapHeader appends the entry-count tag for a map of count entries.
func (g *Grammar) AppendMapHeader(b []byte, count int) []byte {
	if count <= g.FixMapMax {
		return append(b, g.FixMapBase+byte(count))
	}
	return append(b, g.Map16, byte(count>>8), byte(count))
}

// readString decodes one length-tagged string starting at b[pos] and
// returns the string together with the position past it.
func (g *Grammar) readString(b []byte, pos int) (string, int, error) {
	if pos >= len(b) {
		return "", pos, ErrTruncatedData
	}
	tag := b[pos]
	pos++

	var n int
	switch {
	case tag >= g.FixStrBase && int(tag) <= int(g.FixStrBase)+g.FixStrMax:
		n = int(tag - g.FixStrBase)
	case tag == g.Str8:
		if pos >= len(b) {
			return "", pos, ErrTruncatedData
		}
		n = int(b[pos])
		pos++
	case tag == g.Str16:
		if pos+2 > len(b) {
			return "", pos, ErrTruncatedData
		}
		n = int(b[pos])<<8 | int(b[pos+1])
		pos += 2
	default:
		return "", pos, ErrBadTag
	}

	if pos+n > len(b) {
		return "", pos, ErrTruncatedData
	}
	return string(b[pos : pos+n]), pos + n, nil
}

// readMapHeader decodes the map entry count starting at b[pos].
func (g *Grammar) readMapHeader(b []byte, pos int) (int, int, error) {
	if pos >= len(b) {
		return 0, pos, ErrTruncatedData
	}
	tag := b[pos]
	pos++

	switch {
	case tag >= g.FixMapBase && int(tag) <= int(g.FixMapBase)+g.FixMapMax:
		return int(tag - g.FixMapBase), pos, nil
	case tag == g.Map16:
		if pos+2 > len(b) {
			return 0, pos, ErrTruncatedData
		}
		return int(b[pos])<<8 | int(b[pos+1]), pos + 2, nil
	default:
		return 0, pos, ErrBadTag
	}
}
