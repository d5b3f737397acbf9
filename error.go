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
	"errors"
	"strconv"
)

// ErrEmptyKey is matched by the error returned for a zero-length key.
var ErrEmptyKey = errors.New("arcfour: empty key")

// KeySizeError is returned when a key has an unusable length.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "arcfour: invalid key size " + strconv.Itoa(int(k))
}

// Is makes errors.Is(err, ErrEmptyKey) succeed for zero-length keys.
func (k KeySizeError) Is(target error) bool {
	return target == ErrEmptyKey && k == 0
}

// LengthMismatchError is returned when a ciphertext is compared to a known
// plaintext of different length.
type LengthMismatchError struct {
	Ciphertext int
	Plaintext  int
}

func (err *LengthMismatchError) Error() string {
	return "arcfour: ciphertext has " + strconv.Itoa(err.Ciphertext) +
		" bytes but plaintext has " + strconv.Itoa(err.Plaintext)
}
