package telecodec

// EncodeMap serializes a record as a self-describing length-tagged map in
// the given grammar. Every value, numeric or not, goes on the wire as its
// formatted string: textual precision survives exactly and payloads stay
// trivially comparable across independent implementations. Field order is
// the declared order, always.
func EncodeMap(r *Record, g *Grammar) []byte {
	pairs := r.Pairs()

	size := 3 // map header upper bound; 20 entries needs map16 under MessagePack
	for _, p := range pairs {
		size += tagOverhead(g, len(p[0])) + len(p[0])
		size += tagOverhead(g, len(p[1])) + len(p[1])
	}

	b := make([]byte, 0, size)
	b = g.AppendMapHeader(b, len(pairs))
	for _, p := range pairs {
		b = g.AppendString(b, p[0])
		b = g.AppendString(b, p[1])
	}
	return b
}

func tagOverhead(g *Grammar, n int) int {
	switch {
	case n <= g.FixStrMax:
		return 1
	case n <= 0xff:
		return 2
	default:
		return 3
	}
}

// DecodeMap reverses EncodeMap. The payload must hold exactly 20 entries
// covering the full required field set with nothing trailing; entry order
// is not enforced on decode, since the self-describing format is readable
// without the schema.
func DecodeMap(b []byte, g *Grammar) (Record, error) {
	count, pos, err := g.readMapHeader(b, 0)
	if err != nil {
		return Record{}, err
	}
	if count != len(FieldNames) {
		return Record{}, ErrFieldCount
	}

	fields := make(map[string]string, count)
	for range count {
		var key, val string
		if key, pos, err = g.readString(b, pos); err != nil {
			return Record{}, err
		}
		if val, pos, err = g.readString(b, pos); err != nil {
			return Record{}, err
		}
		fields[key] = val
	}
	if pos != len(b) {
		return Record{}, ErrTrailingData
	}
	return FromMap(fields)
}
