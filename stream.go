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
	"crypto/cipher"
	"io"
)

// NewReader returns a reader which decrypts (or encrypts) the data read
// from r.
func NewReader(key []byte, r io.Reader) (io.Reader, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamReader{S: c, R: r}, nil
}

// NewWriter returns a writer which encrypts (or decrypts) the data before
// writing it to w.  Closing the returned writer closes w, if w implements
// io.Closer.
func NewWriter(key []byte, w io.Writer) (io.WriteCloser, error) {
	c, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &cipher.StreamWriter{S: c, W: w}, nil
}
