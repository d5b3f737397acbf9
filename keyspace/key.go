// seehuhn.de/go/arcfour - RC4 and exhaustive key search
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package keyspace represents 128-bit RC4 keys and the ranges of candidate
// keys examined by an exhaustive search.
//
// A key is an unsigned 128-bit integer.  When it is used with RC4, it is
// encoded as 16 bytes in big-endian order.  If the low b bits of a key are
// unknown, the candidates form the contiguous range
// base, base+1, ..., base+2^b-1, where base is the key with the low b bits
// cleared.
package keyspace

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
)

// KeyBits is the total width of a key.
const KeyBits = 128

// KeyBytes is the length of the byte encoding of a key.
const KeyBytes = KeyBits / 8

// Key is an unsigned 128-bit integer.
type Key struct {
	Hi, Lo uint64
}

// MaxKey is the largest possible key, with all bits set.
var MaxKey = Key{Hi: ^uint64(0), Lo: ^uint64(0)}

// From64 returns the key with the given value.
func From64(x uint64) Key {
	return Key{Lo: x}
}

// KeyFromBytes interprets b as a big-endian unsigned integer.
// Inputs shorter than 16 bytes are padded with leading zeros.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) > KeyBytes {
		return Key{}, fmt.Errorf("keyspace: %d bytes do not fit into a %d-bit key",
			len(b), KeyBits)
	}
	var buf [KeyBytes]byte
	copy(buf[KeyBytes-len(b):], b)
	return Key{
		Hi: binary.BigEndian.Uint64(buf[:8]),
		Lo: binary.BigEndian.Uint64(buf[8:]),
	}, nil
}

// Bytes returns the big-endian encoding of k.
func (k Key) Bytes() [KeyBytes]byte {
	var buf [KeyBytes]byte
	k.PutBytes(buf[:])
	return buf
}

// PutBytes writes the big-endian encoding of k into the first 16 bytes of
// dst.
func (k Key) PutBytes(dst []byte) {
	binary.BigEndian.PutUint64(dst[:8], k.Hi)
	binary.BigEndian.PutUint64(dst[8:16], k.Lo)
}

// String returns k as 32 hexadecimal digits.
func (k Key) String() string {
	return fmt.Sprintf("%016x%016x", k.Hi, k.Lo)
}

// Big returns k as a big.Int.
func (k Key) Big() *big.Int {
	buf := k.Bytes()
	return new(big.Int).SetBytes(buf[:])
}

// IsZero reports whether k == 0.
func (k Key) IsZero() bool {
	return k.Hi == 0 && k.Lo == 0
}

// Cmp compares k and l and returns -1, 0 or +1.
func (k Key) Cmp(l Key) int {
	switch {
	case k.Hi < l.Hi:
		return -1
	case k.Hi > l.Hi:
		return 1
	case k.Lo < l.Lo:
		return -1
	case k.Lo > l.Lo:
		return 1
	default:
		return 0
	}
}

// Or returns k | l.
func (k Key) Or(l Key) Key {
	return Key{Hi: k.Hi | l.Hi, Lo: k.Lo | l.Lo}
}

// And returns k & l.
func (k Key) And(l Key) Key {
	return Key{Hi: k.Hi & l.Hi, Lo: k.Lo & l.Lo}
}

// AndNot returns k &^ l.
func (k Key) AndNot(l Key) Key {
	return Key{Hi: k.Hi &^ l.Hi, Lo: k.Lo &^ l.Lo}
}

// Add64 returns k + x, wrapping around modulo 2^128.
// The carry out of the top bit is returned separately.
func (k Key) Add64(x uint64) (sum Key, carry uint64) {
	lo, c := bits.Add64(k.Lo, x, 0)
	hi, c := bits.Add64(k.Hi, 0, c)
	return Key{Hi: hi, Lo: lo}, c
}

// Sub returns k - l, wrapping around modulo 2^128.
func (k Key) Sub(l Key) Key {
	lo, b := bits.Sub64(k.Lo, l.Lo, 0)
	hi, _ := bits.Sub64(k.Hi, l.Hi, b)
	return Key{Hi: hi, Lo: lo}
}

// Inc returns k + 1.  The caller must make sure that k is not MaxKey.
func (k Key) Inc() Key {
	lo, c := bits.Add64(k.Lo, 1, 0)
	return Key{Hi: k.Hi + c, Lo: lo}
}
