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

// Package arcfour implements the RC4 stream cipher, as defined in Bruce
// Schneier's Applied Cryptography.
//
// The package exposes the two halves of the cipher separately: [Schedule]
// runs the key scheduling algorithm and returns the resulting permutation,
// and [Cipher.XORKeyStream] runs the pseudo-random generation algorithm on a
// scheduled state.  [Crypt] combines both into a single call.  Since RC4 is
// symmetric, the same functions are used for encryption and decryption.
//
// RC4 is cryptographically broken and must not be used to protect data.
// The sub-packages use it to demonstrate an exhaustive search over the
// unknown low-order bits of a partially known 128-bit key:
//
//   - [seehuhn.de/go/arcfour/keyspace] represents 128-bit keys and the
//     candidate ranges of a search,
//   - [seehuhn.de/go/arcfour/search] runs the known-plaintext search.
package arcfour
