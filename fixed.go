package telecodec

import (
	"encoding/binary"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// Order is the wire byte order of every codec in this package.
var Order = binary.BigEndian

// sizeCache avoids the reflection cost of binary.Size on every call.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed wraps any struct composed solely of fixed-size fields and encodes
// it as a packed big-endian block via encoding/binary. The compact struct
// encoder runs its fixed-width header through this.
//
// Constraint: Payload must not contain slices, maps or strings, which would
// make binary.Size fail.
type Fixed[Payload any] struct {
	Payload Payload
}

// Size returns the packed size of the payload in bytes. The result is
// cached per type, since binary.Size walks the struct reflectively.
func (c *Fixed[Payload]) Size() int {
	t := reflect.TypeOf((*Payload)(nil)).Elem()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	size := binary.Size(&c.Payload)
	sizeCache.Store(t, size)
	return size
}

// AppendTo appends the packed payload to b.
func (c *Fixed[Payload]) AppendTo(b []byte) ([]byte, error) {
	return binary.Append(b, Order, &c.Payload)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) {
	return c.AppendTo(make([]byte, 0, c.Size()))
}

// Decode reads exactly one packed payload from the front of data and
// returns the number of bytes consumed; trailing bytes are the caller's to
// interpret.
func (c *Fixed[Payload]) Decode(data []byte) (int, error) {
	n, err := binary.Decode(data, Order, &c.Payload)
	if err != nil {
		return 0, ErrTruncatedData
	}
	return n, nil
}
