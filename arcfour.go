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

package arcfour

import (
	"bytes"
	"crypto/cipher"
)

// State is the 256-byte permutation manipulated by the key scheduling and the
// keystream generation.
type State [256]byte

// IsPermutation reports whether every value 0, ..., 255 occurs exactly once
// in s.
func (s *State) IsPermutation() bool {
	var seen [256]bool
	for _, v := range s {
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// reset runs the key scheduling algorithm, starting from the identity
// permutation.  The key must be non-empty.
func (s *State) reset(key []byte) {
	for i := range s {
		s[i] = uint8(i)
	}
	n := len(key)
	var j uint8
	for i := 0; i < 256; i++ {
		j += s[i] + key[i%n]
		s[i], s[j] = s[j], s[i]
	}
}

// Schedule derives the initial permutation state from the key.
// The key is not modified.
func Schedule(key []byte) (*State, error) {
	if len(key) == 0 {
		return nil, KeySizeError(0)
	}
	s := &State{}
	s.reset(key)
	return s, nil
}

// A Cipher is an instance of RC4 using a particular key.
type Cipher struct {
	s    State
	i, j uint8
}

var _ cipher.Stream = (*Cipher)(nil)

// NewCipher creates a new Cipher.  The key must be at least one byte long.
func NewCipher(key []byte) (*Cipher, error) {
	c := &Cipher{}
	err := c.Reset(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FromState returns a Cipher which generates the keystream for an already
// scheduled state.  The state is copied.
func FromState(s *State) *Cipher {
	return &Cipher{s: *s}
}

// Reset restarts the key stream using a new key.  This re-uses the memory
// of c, so that a Cipher can be used for many keys without allocation.
func (c *Cipher) Reset(key []byte) error {
	if len(key) == 0 {
		return KeySizeError(0)
	}
	c.s.reset(key)
	c.i = 0
	c.j = 0
	return nil
}

// XORKeyStream sets dst to the result of XORing src with the key stream.
// Dst and src must overlap entirely or not at all.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(src) == 0 {
		return
	}
	if len(dst) < len(src) {
		panic("arcfour: output smaller than input")
	}

	i, j := c.i, c.j
	s := &c.s
	dst = dst[:len(src)] // eliminate bounds check from loop
	for k, v := range src {
		i++
		x := s[i]
		j += x
		y := s[j]
		s[i], s[j] = y, x
		dst[k] = v ^ s[x+y]
	}
	c.i, c.j = i, j
}

// Crypt encrypts or decrypts msg using the given key.  Every call schedules
// a fresh state, no information is kept between calls.
func Crypt(key, msg []byte) ([]byte, error) {
	c := &Cipher{}
	err := c.Reset(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(msg))
	c.XORKeyStream(out, msg)
	return out, nil
}

// prefixLen is the number of bytes compared before the remainder of a
// candidate decryption is computed.
const prefixLen = 16

// Matches reports whether decrypting ciphertext with key gives plaintext.
// The cipher c is reset to the key, and buf is used as scratch space if it is
// large enough.  Most wrong keys are rejected after the first few bytes.
func Matches(c *Cipher, key, ciphertext, plaintext, buf []byte) (bool, error) {
	if len(ciphertext) != len(plaintext) {
		return false, &LengthMismatchError{
			Ciphertext: len(ciphertext),
			Plaintext:  len(plaintext),
		}
	}
	err := c.Reset(key)
	if err != nil {
		return false, err
	}

	n := len(ciphertext)
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]

	k := min(n, prefixLen)
	c.XORKeyStream(buf[:k], ciphertext[:k])
	if !bytes.Equal(buf[:k], plaintext[:k]) {
		return false, nil
	}
	c.XORKeyStream(buf[k:], ciphertext[k:])
	return bytes.Equal(buf[k:], plaintext[k:]), nil
}
