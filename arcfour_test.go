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
	"crypto/rc4"
	"encoding/hex"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// Test vectors from https://en.wikipedia.org/wiki/RC4#Test_vectors
var testVectors = []struct {
	key, plain, cipher string
}{
	{"Key", "Plaintext", "bbf316e8d940af0ad3"},
	{"Wiki", "pedia", "1021bf0420"},
	{"Secret", "Attack at dawn", "45a01f645fc35b383552544b9bf5"},
}

func TestVectors(t *testing.T) {
	for _, tv := range testVectors {
		out, err := Crypt([]byte(tv.key), []byte(tv.plain))
		if err != nil {
			t.Fatal(err)
		}
		if got := hex.EncodeToString(out); got != tv.cipher {
			t.Errorf("%q/%q: got %s, want %s", tv.key, tv.plain, got, tv.cipher)
		}
	}
}

func TestScheduleIsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 5, 16, 100, 255, 256, 300} {
		key := make([]byte, n)
		for trial := 0; trial < 20; trial++ {
			rng.Read(key)
			s, err := Schedule(key)
			if err != nil {
				t.Fatal(err)
			}
			if !s.IsPermutation() {
				t.Fatalf("key % x: state is not a permutation", key)
			}
		}
	}
}

func TestScheduleKeepsKey(t *testing.T) {
	key := []byte{1, 2, 3, 4, 5}
	orig := bytes.Clone(key)
	_, err := Schedule(key)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(orig, key); d != "" {
		t.Errorf("key modified (-want +got):\n%s", d)
	}
}

func TestIsPermutation(t *testing.T) {
	s := &State{}
	if s.IsPermutation() {
		t.Error("all-zero state accepted")
	}
	for i := range s {
		s[i] = uint8(255 - i)
	}
	if !s.IsPermutation() {
		t.Error("reversed identity rejected")
	}
	s[3] = s[4]
	if s.IsPermutation() {
		t.Error("duplicate entry accepted")
	}
}

func TestEmptyKey(t *testing.T) {
	_, err := Schedule(nil)
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Schedule: got %v, want ErrEmptyKey", err)
	}
	_, err = NewCipher([]byte{})
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("NewCipher: got %v, want ErrEmptyKey", err)
	}
	_, err = Crypt(nil, []byte("abc"))
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Crypt: got %v, want ErrEmptyKey", err)
	}
	var kse KeySizeError
	if !errors.As(err, &kse) || kse != 0 {
		t.Errorf("Crypt: got %v, want KeySizeError(0)", err)
	}
}

func TestLengthPreserving(t *testing.T) {
	key := []byte("length")
	for _, n := range []int{0, 1, 15, 16, 17, 1000} {
		out, err := Crypt(key, make([]byte, n))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != n {
			t.Errorf("input length %d, output length %d", n, len(out))
		}
	}
}

func TestFromState(t *testing.T) {
	key := []byte("Key")
	s, err := Schedule(key)
	if err != nil {
		t.Fatal(err)
	}
	saved := *s

	c := FromState(s)
	out := make([]byte, 9)
	c.XORKeyStream(out, []byte("Plaintext"))
	if got := hex.EncodeToString(out); got != "bbf316e8d940af0ad3" {
		t.Errorf("got %s", got)
	}
	if *s != saved {
		t.Error("FromState modified its argument")
	}
}

func TestInPlace(t *testing.T) {
	key := []byte("Secret")
	buf := []byte("Attack at dawn")
	c, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	c.XORKeyStream(buf, buf)
	if got := hex.EncodeToString(buf); got != testVectors[2].cipher {
		t.Errorf("got %s", got)
	}
}

// TestChunked checks that the keystream does not depend on how the input is
// split into calls.
func TestChunked(t *testing.T) {
	key := []byte("chunks")
	msg := make([]byte, 1000)
	for i := range msg {
		msg[i] = byte(i * 7)
	}
	want, err := Crypt(key, msg)
	if err != nil {
		t.Fatal(err)
	}

	c, err := NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	got := make([]byte, len(msg))
	pos := 0
	for _, n := range []int{1, 0, 2, 3, 10, 100, 884} {
		c.XORKeyStream(got[pos:pos+n], msg[pos:pos+n])
		pos += n
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("chunked output differs (-want +got):\n%s", d)
	}
}

func TestReset(t *testing.T) {
	c, err := NewCipher([]byte("first key"))
	if err != nil {
		t.Fatal(err)
	}
	junk := make([]byte, 77)
	c.XORKeyStream(junk, junk)

	err = c.Reset([]byte("Key"))
	if err != nil {
		t.Fatal(err)
	}
	out := make([]byte, 9)
	c.XORKeyStream(out, []byte("Plaintext"))
	if got := hex.EncodeToString(out); got != "bbf316e8d940af0ad3" {
		t.Errorf("got %s", got)
	}

	if c.Reset(nil) == nil {
		t.Error("Reset accepted an empty key")
	}
}

func TestShortOutputPanics(t *testing.T) {
	c, err := NewCipher([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("no panic for short output buffer")
		}
	}()
	c.XORKeyStream(make([]byte, 2), make([]byte, 3))
}

func TestMatches(t *testing.T) {
	key := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
		0x88, 0x99, 0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}
	for _, n := range []int{0, 1, prefixLen, prefixLen + 1, 200} {
		plain := make([]byte, n)
		for i := range plain {
			plain[i] = byte('a' + i%26)
		}
		ciphertext, err := Crypt(key, plain)
		if err != nil {
			t.Fatal(err)
		}

		c := &Cipher{}
		ok, err := Matches(c, key, ciphertext, plain, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Errorf("n=%d: correct key rejected", n)
		}

		wrong := bytes.Clone(key)
		wrong[15] ^= 1
		ok, err = Matches(c, wrong, ciphertext, plain, make([]byte, 8))
		if err != nil {
			t.Fatal(err)
		}
		if ok && n >= prefixLen {
			t.Errorf("n=%d: wrong key accepted", n)
		}
	}
}

// TestMatchesLateDifference checks that a difference after the prefix is
// still detected.
func TestMatchesLateDifference(t *testing.T) {
	key := []byte("late")
	plain := bytes.Repeat([]byte{'x'}, 3*prefixLen)
	ciphertext, err := Crypt(key, plain)
	if err != nil {
		t.Fatal(err)
	}
	plain[len(plain)-1] = 'y'
	ok, err := Matches(&Cipher{}, key, ciphertext, plain, nil)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("difference in the last byte not detected")
	}
}

func TestMatchesLengthMismatch(t *testing.T) {
	_, err := Matches(&Cipher{}, []byte("k"), make([]byte, 3), make([]byte, 4), nil)
	var lme *LengthMismatchError
	if !errors.As(err, &lme) {
		t.Fatalf("got %v, want LengthMismatchError", err)
	}
	want := &LengthMismatchError{Ciphertext: 3, Plaintext: 4}
	if d := cmp.Diff(want, lme); d != "" {
		t.Errorf("unexpected error (-want +got):\n%s", d)
	}
}

func TestStream(t *testing.T) {
	key := []byte("stream key")
	msg := bytes.Repeat([]byte("The quick brown fox. "), 100)

	buf := &bytes.Buffer{}
	w, err := NewWriter(key, buf)
	if err != nil {
		t.Fatal(err)
	}
	_, err = w.Write(msg)
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close()
	if err != nil {
		t.Fatal(err)
	}

	want, err := Crypt(key, msg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatal("writer output differs from Crypt")
	}

	r, err := NewReader(key, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	back, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back, msg) {
		t.Error("round trip through NewReader failed")
	}

	_, err = NewReader(nil, buf)
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("NewReader: got %v, want ErrEmptyKey", err)
	}
}

func FuzzCrypt(f *testing.F) {
	f.Add([]byte("Key"), []byte("Plaintext"))
	f.Add([]byte{0}, []byte{})
	f.Add(bytes.Repeat([]byte{0xff}, 256), []byte("x"))

	f.Fuzz(func(t *testing.T, key, msg []byte) {
		if len(key) == 0 || len(key) > 256 {
			return
		}

		out, err := Crypt(key, msg)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != len(msg) {
			t.Fatalf("length changed from %d to %d", len(msg), len(out))
		}

		// compare to the standard library implementation
		ref, err := rc4.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}
		want := make([]byte, len(msg))
		ref.XORKeyStream(want, msg)
		if !bytes.Equal(out, want) {
			t.Fatalf("key % x: output differs from crypto/rc4", key)
		}

		back, err := Crypt(key, out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(back, msg) {
			t.Fatal("decryption did not restore the message")
		}

		s, err := Schedule(key)
		if err != nil {
			t.Fatal(err)
		}
		if !s.IsPermutation() {
			t.Fatal("scheduled state is not a permutation")
		}
	})
}

func BenchmarkCrypt(b *testing.B) {
	key := make([]byte, 16)
	msg := make([]byte, 16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		key[15] = byte(i)
		_, _ = Crypt(key, msg)
	}
}

func BenchmarkMatches(b *testing.B) {
	key := make([]byte, 16)
	plain := []byte("a known plaintext of moderate length")
	ciphertext, _ := Crypt(key, plain)
	c := &Cipher{}
	buf := make([]byte, len(plain))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		key[15] = byte(i)
		_, _ = Matches(c, key, ciphertext, plain, buf)
	}
}
