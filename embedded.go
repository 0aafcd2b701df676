package telecodec

// EncodeEmbedded reproduces, byte for byte, the MessagePack encoding
// emitted by the mpack-based firmware on the embedded target. It is written
// against the mpack tag rules directly and deliberately shares nothing with
// the Grammar-driven encoder, so that CheckParity compares two genuinely
// independent implementations of the wire format.
func EncodeEmbedded(r *Record) []byte {
	var b []byte

	b = embeddedMapHeader(b, len(FieldNames))

	for _, p := range r.Pairs() {
		b = embeddedStr(b, p[0])
		b = embeddedStr(b, p[1])
	}
	return b
}

func embeddedMapHeader(b []byte, count int) []byte {
	if count <= 15 {
		// fixmap
		return append(b, 0x80+byte(count))
	}
	// map16, big endian; the 20-field record always lands here
	return append(b, 0xde, byte(count>>8), byte(count&0xff))
}

func embeddedStr(b []byte, s string) []byte {
	n := len(s)
	switch {
	case n <= 31:
		// fixstr
		b = append(b, 0xa0+byte(n))
	case n <= 255:
		// str8
		b = append(b, 0xd9, byte(n))
	default:
		// str16, big endian
		b = append(b, 0xda, byte(n>>8), byte(n&0xff))
	}
	return append(b, s...)
}
