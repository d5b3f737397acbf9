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

// Arcfour encrypts or decrypts a file with RC4.
//
// Since RC4 is symmetric, running the program twice with the same key
// restores the original file.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"seehuhn.de/go/arcfour"
	"seehuhn.de/go/arcfour/internal/buildinfo"
	"seehuhn.de/go/arcfour/keyspace"
)

func main() {
	keyHex := flag.String("k", "", "key as a sequence of hexadecimal bytes")
	keyFile := flag.String("K", "", "read a 128-bit key from `file`, as used by rc4crack")
	out := flag.String("o", "-", "output file name, - for stdout")
	force := flag.Bool("f", false, "overwrite output file if it exists")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "arcfour \u2014 encrypt or decrypt a file with RC4\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("arcfour"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  arcfour (-k hex | -K keyfile) [options] [input]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  arcfour -k 4b6579 -o secret.bin message.txt\n")
		fmt.Fprintf(os.Stderr, "  arcfour -K key.hex secret.bin\n")
	}
	flag.Parse()

	if flag.NArg() > 1 || (*keyHex == "") == (*keyFile == "") {
		flag.Usage()
		os.Exit(1)
	}

	key, err := getKey(*keyHex, *keyFile)
	if err == nil {
		err = run(key, flag.Arg(0), *out, *force)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func getKey(keyHex, keyFile string) ([]byte, error) {
	if keyFile != "" {
		body, err := os.ReadFile(keyFile)
		if err != nil {
			return nil, err
		}
		k, err := keyspace.ParseKey(string(body))
		if err != nil {
			return nil, err
		}
		buf := k.Bytes()
		return buf[:], nil
	}

	key, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if err != nil {
		return nil, fmt.Errorf("invalid key: %w", err)
	}
	if len(key) == 0 || len(key) > 256 {
		return nil, errors.New("key must be between 1 and 256 bytes long")
	}
	return key, nil
}

func run(key []byte, in, out string, force bool) (err error) {
	var r io.Reader = os.Stdin
	if in != "" && in != "-" {
		fd, err := os.Open(in)
		if err != nil {
			return err
		}
		defer fd.Close()
		r = fd
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		if !force {
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				return fmt.Errorf("output file %q already exists", out)
			}
		}
		fd, cerr := os.Create(out)
		if cerr != nil {
			return cerr
		}
		defer func() {
			cerr := fd.Close()
			if err == nil {
				err = cerr
			}
		}()
		w = fd
	}

	return crypt(key, w, r)
}

// crypt copies r to w, applying the keystream on the way.
func crypt(key []byte, w io.Writer, r io.Reader) error {
	cr, err := arcfour.NewReader(key, r)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, cr)
	return err
}
