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
	"crypto/md5"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/stringprep"
)

// ParseError describes a key which could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (err *ParseError) Error() string {
	return "invalid key " + strconv.Quote(err.Input) + ": " + err.Err.Error()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

var (
	errNoDigits  = errors.New("no hexadecimal digits")
	errTooLong   = errors.New("more than 32 hexadecimal digits")
	errBadDigit  = errors.New("not a hexadecimal digit")
	errEmptyPass = errors.New("empty passphrase")
)

// ParseKey parses a key given as a hexadecimal number.  Leading and trailing
// white space is ignored, so that the contents of a key file can be passed in
// directly, and an optional "0x" prefix is allowed.
func ParseKey(s string) (Key, error) {
	digits := strings.TrimSpace(s)
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
	}
	if digits == "" {
		return Key{}, &ParseError{Input: s, Err: errNoDigits}
	}
	if len(digits) > 2*KeyBytes {
		return Key{}, &ParseError{Input: s, Err: errTooLong}
	}

	var k Key
	for i := 0; i < len(digits); i++ {
		d, ok := hexValue(digits[i])
		if !ok {
			return Key{}, &ParseError{
				Input: s,
				Err:   fmt.Errorf("%q is %w", rune(digits[i]), errBadDigit),
			}
		}
		k = Key{
			Hi: k.Hi<<4 | k.Lo>>60,
			Lo: k.Lo<<4 | uint64(d),
		}
	}
	return k, nil
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// FromPassphrase derives a key from a passphrase.  The passphrase is
// normalized using the SASLprep profile of RFC 4013, and the key is the MD5
// hash of the UTF-8 encoding of the result.
func FromPassphrase(passwd string) (Key, error) {
	prepared, err := stringprep.SASLprep.Prepare(passwd)
	if err != nil {
		return Key{}, err
	}
	if prepared == "" {
		return Key{}, errEmptyPass
	}
	sum := md5.Sum([]byte(prepared))
	return KeyFromBytes(sum[:])
}
