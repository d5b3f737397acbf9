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

// Rc4crack demonstrates a known-plaintext attack on RC4.
//
// The program encrypts a plaintext file with a 128-bit key, where the low
// bits of the key are unknown to the attacker, and then recovers the key by
// trying every possible value of the unknown bits.  The number of candidates
// tried and the time taken are printed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"seehuhn.de/go/arcfour/internal/buildinfo"
	"seehuhn.de/go/arcfour/internal/profile"
	"seehuhn.de/go/arcfour/keyspace"
	"seehuhn.de/go/arcfour/search"
)

var (
	workers    = flag.Int("workers", 1, "number of goroutines testing keys (1 gives the sequential search)")
	progress   = flag.Bool("progress", false, "show progress while searching")
	passphrase = flag.Bool("passphrase", false, "derive the key from a passphrase read from the terminal, instead of a key file")
	trials     = flag.Int("trials", 0, "recover `n` random keys and summarize the cost")
	seed       = flag.Int64("seed", 0, "random seed for -trials (0 uses the current time)")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	version    = flag.Bool("version", false, "print version information and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rc4crack \u2014 recover the unknown low bits of an RC4 key\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("rc4crack"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  rc4crack [options] <plaintext> <keyfile> <bits>\n")
		fmt.Fprintf(os.Stderr, "  rc4crack [options] -passphrase <plaintext> <bits>\n")
		fmt.Fprintf(os.Stderr, "  rc4crack [options] -trials n <plaintext> <bits>\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  plaintext  file containing the known plaintext\n")
		fmt.Fprintf(os.Stderr, "  keyfile    file containing the 128-bit key in hexadecimal\n")
		fmt.Fprintf(os.Stderr, "  bits       number of unknown low-order key bits (0-128)\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  rc4crack message.txt key.hex 20\n")
		fmt.Fprintf(os.Stderr, "  rc4crack -workers 8 -progress message.txt key.hex 28\n")
	}
	flag.Parse()

	if *version {
		fmt.Println(buildinfo.Short("rc4crack"))
		return
	}

	want := 3
	if *passphrase || *trials > 0 {
		want = 2
	}
	if flag.NArg() != want {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	prof, err := profile.Start(profile.Files{CPU: *cpuprofile, Memory: *memprofile})
	if err != nil {
		return err
	}
	defer func() {
		if err := prof.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	plaintext, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("cannot read plaintext: %w", err)
	}
	bits, err := parseBits(args[len(args)-1])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opt := &search.Options{Workers: *workers}
	p := message.NewPrinter(language.English)

	if *trials > 0 {
		s := *seed
		if s == 0 {
			s = time.Now().UnixNano()
		}
		summary, err := search.Trials(ctx, *trials, bits, plaintext, rand.New(rand.NewSource(s)), opt)
		if err != nil {
			return err
		}
		printSummary(p, summary)
		return nil
	}

	var key keyspace.Key
	if *passphrase {
		key, err = readPassphrase()
	} else {
		key, err = readKeyFile(args[1])
	}
	if err != nil {
		return err
	}

	sc, err := search.NewScenario(plaintext, key, bits)
	if err != nil {
		return err
	}

	showProgress := *progress && term.IsTerminal(int(os.Stderr.Fd()))
	if showProgress {
		total := sc.Space.Size()
		start := time.Now()
		opt.Progress = func(n uint64) {
			fmt.Fprintf(os.Stderr, "\r%s", progressLine(p, n, total, time.Since(start)))
		}
	}

	res, err := sc.Crack(ctx, opt)
	if showProgress {
		fmt.Fprintln(os.Stderr)
	}
	if errors.Is(err, search.ErrNotFound) {
		return fmt.Errorf("no key among the %s candidates reproduces the plaintext", sc.Space.Size())
	} else if err != nil {
		return err
	}

	p.Printf("Iterations: %s\n", formatCount(p, res.Iterations()))
	fmt.Printf("Time: %v\n", res.Elapsed)
	fmt.Printf("Key: %s\n", res.Key)
	if !sc.Recovered(res) {
		fmt.Printf("(the ciphertext was produced with %s, the plaintext is too short to tell them apart)\n",
			sc.AttackKey)
	}
	return nil
}

// parseBits parses the number of unknown key bits.
func parseBits(s string) (int, error) {
	b, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid bit count %q: not a number", s)
	}
	if b < 0 || b > keyspace.KeyBits {
		return 0, keyspace.BitCountError(b)
	}
	return b, nil
}

func readKeyFile(fname string) (keyspace.Key, error) {
	body, err := os.ReadFile(fname)
	if err != nil {
		return keyspace.Key{}, fmt.Errorf("cannot read key: %w", err)
	}
	key, err := keyspace.ParseKey(string(body))
	if err != nil {
		return keyspace.Key{}, fmt.Errorf("key file %s: %w", fname, err)
	}
	return key, nil
}

func readPassphrase() (keyspace.Key, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return keyspace.Key{}, errors.New("-passphrase needs a terminal")
	}
	fmt.Fprint(os.Stderr, "passphrase: ")
	passwd, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return keyspace.Key{}, err
	}
	return keyspace.FromPassphrase(string(passwd))
}
