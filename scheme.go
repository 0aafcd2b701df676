package telecodec

import "fmt"

// Scheme selects one of the three encodings. A record has no inherent
// scheme; the caller picks one per use case.
type Scheme uint8

const (
	// SelfDescribingMap is the length-tagged string map; the Grammar passed
	// to Encode picks the MessagePack or CBOR variant. Largest output,
	// decodable without a schema.
	SelfDescribingMap Scheme = iota
	// PositionalSchema drops field names in favor of the numbered schema.
	PositionalSchema
	// CompactStruct is the fixed-width block plus zlib, the smallest wire
	// form.
	CompactStruct
)

func (s Scheme) String() string {
	switch s {
	case SelfDescribingMap:
		return "map"
	case PositionalSchema:
		return "schema"
	case CompactStruct:
		return "struct"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// ParseScheme maps a configuration string onto the closed scheme set. For
// the self-describing map it also resolves the grammar variant, so callers
// never have to re-inspect the string; the grammar is nil for the other
// schemes.
func ParseScheme(s string) (Scheme, *Grammar, error) {
	switch s {
	case "map", "msgpack":
		return SelfDescribingMap, &MsgPack, nil
	case "cbor":
		return SelfDescribingMap, &CBOR, nil
	case "schema", "proto":
		return PositionalSchema, nil, nil
	case "struct", "zlib":
		return CompactStruct, nil, nil
	default:
		return 0, nil, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
}

// Encode serializes the record with the chosen scheme and enforces the
// budget on every path. g selects the map grammar variant (nil means
// MessagePack) and is ignored by the other schemes. This is the
// single-shot contract: a violated budget is fatal
// (*PayloadTooLargeError), never truncated.
func Encode(r *Record, scheme Scheme, g *Grammar, limit int) ([]byte, error) {
	switch scheme {
	case SelfDescribingMap:
		if g == nil {
			g = &MsgPack
		}
		b := EncodeMap(r, g)
		if err := CheckBudget(len(b), limit); err != nil {
			return nil, err
		}
		return b, nil
	case PositionalSchema:
		return EncodeSchema(r, limit)
	case CompactStruct:
		return EncodeStruct(r, limit)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, scheme)
	}
}
