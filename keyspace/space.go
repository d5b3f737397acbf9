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

package keyspace

import (
	"math/big"
	"strconv"
)

// BitCountError is returned when the number of unknown key bits is outside
// the range 0, ..., 128.
type BitCountError int

func (b BitCountError) Error() string {
	return "keyspace: invalid number of unknown bits " + strconv.Itoa(int(b)) +
		" (must be between 0 and " + strconv.Itoa(KeyBits) + ")"
}

// Mask returns the key which has the low b bits set and all other bits
// cleared, i.e. 2^b-1.  For b = 128 all bits are set.
func Mask(b int) (Key, error) {
	switch {
	case b < 0 || b > KeyBits:
		return Key{}, BitCountError(b)
	case b == KeyBits:
		return MaxKey, nil
	case b >= 64:
		return Key{Hi: 1<<(b-64) - 1, Lo: ^uint64(0)}, nil
	default:
		return Key{Lo: 1<<b - 1}, nil
	}
}

// Space is the set of keys which agree with Base everywhere except in the
// low Bits bits.  The low Bits bits of Base are always zero.
type Space struct {
	Base Key
	Bits int
}

// NewSpace returns the search space for a key where the low b bits are
// unknown.  Only the high 128-b bits of key are used.
func NewSpace(key Key, b int) (Space, error) {
	mask, err := Mask(b)
	if err != nil {
		return Space{}, err
	}
	return Space{Base: key.AndNot(mask), Bits: b}, nil
}

func (s Space) mask() Key {
	m, err := Mask(s.Bits)
	if err != nil {
		panic(err)
	}
	return m
}

// AttackKey returns key with all unknown bits set to one.  This is the key
// used to produce the ciphertext in the key recovery demonstration.
func (s Space) AttackKey(key Key) Key {
	return key.Or(s.mask())
}

// First returns the smallest key in s.
func (s Space) First() Key {
	return s.Base
}

// Last returns the largest key in s.  Since the upper bound is inclusive,
// this is well-defined even when all 128 bits are unknown.
func (s Space) Last() Key {
	return s.Base.Or(s.mask())
}

// Range returns the keys of s as an inclusive range.
func (s Space) Range() Range {
	return Range{First: s.First(), Last: s.Last()}
}

// Contains reports whether k is an element of s.
func (s Space) Contains(k Key) bool {
	return k.AndNot(s.mask()) == s.Base
}

// Offset returns the zero-based position of k within s.
// The key k must be an element of s.
func (s Space) Offset(k Key) Key {
	return k.And(s.mask())
}

// Full reports whether s contains every 128-bit key.
func (s Space) Full() bool {
	return s.Bits == KeyBits
}

// Size returns the number of keys in s, 2^Bits.
func (s Space) Size() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(s.Bits))
}

// Range is the set of keys First, First+1, ..., Last.
// Both end points are included and First <= Last.
type Range struct {
	First, Last Key
}

// Size returns the number of keys in r.
func (r Range) Size() *big.Int {
	n := r.Last.Sub(r.First).Big()
	return n.Add(n, big.NewInt(1))
}

// Batch returns the sub-range of at most size keys which starts at first.
// The result is truncated at r.Last.  The key first must be an element of r
// and size must be positive.
func (r Range) Batch(first Key, size uint64) Range {
	end, carry := first.Add64(size - 1)
	if carry != 0 || end.Cmp(r.Last) > 0 {
		end = r.Last
	}
	return Range{First: first, Last: end}
}
