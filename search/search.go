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

// Package search recovers the unknown low-order bits of an RC4 key from a
// ciphertext and the corresponding known plaintext, by trying every
// candidate key in turn.
package search

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"time"

	"seehuhn.de/go/arcfour"
	"seehuhn.de/go/arcfour/keyspace"
)

// ErrNotFound is returned when no key in the search space decrypts the
// ciphertext to the known plaintext.
var ErrNotFound = errors.New("search: key space exhausted without a match")

// Options control how a search is run.
// A nil *Options selects a sequential search without progress reports.
type Options struct {
	// Workers is the number of goroutines used to test candidate keys.
	// Values smaller than 2 select the sequential search.
	Workers int

	// BatchSize is the number of consecutive candidates a worker takes at
	// a time.  If this is zero, DefaultBatchSize is used.
	BatchSize uint64

	// Progress, if non-nil, is called periodically with the number of
	// candidates examined so far.  The function is called from a separate
	// goroutine, and one last time with the final count before Run returns.
	Progress func(examined uint64)

	// Interval is the time between calls to Progress.  If this is zero,
	// one second is used.
	Interval time.Duration
}

// DefaultBatchSize is the number of candidates handed to a worker at a
// time, if Options.BatchSize is not set.
const DefaultBatchSize = 1 << 12

// checkEvery is the number of candidates between checks for cancellation.
const checkEvery = 1 << 10

// Result describes a successful search.
type Result struct {
	// Key is the first key, in ascending order, which decrypts the
	// ciphertext to the known plaintext.
	Key keyspace.Key

	// Offset is the zero-based position of Key in the search space.
	Offset keyspace.Key

	// Examined is the number of candidates which were actually tested.
	// For a sequential search this equals Offset+1.  With several workers,
	// candidates after Key may have been tested as well.
	Examined uint64

	// Elapsed is the wall-clock time from trying the first candidate to
	// finding the match.
	Elapsed time.Duration
}

// Iterations returns the number of candidates up to and including Key,
// in ascending order.  This is exact even when all 2^128 keys were needed.
func (r *Result) Iterations() *big.Int {
	n := r.Offset.Big()
	return n.Add(n, big.NewInt(1))
}

// Run searches space for the key which decrypts ciphertext to plaintext.
// Candidates are considered in ascending order and the smallest matching
// key is returned, also when several workers are used.
//
// If no key matches, ErrNotFound is returned.  If ctx is cancelled before
// a match is found, the context's error is returned.
func Run(ctx context.Context, ciphertext, plaintext []byte, space keyspace.Space, opt *Options) (*Result, error) {
	if len(ciphertext) != len(plaintext) {
		return nil, &arcfour.LengthMismatchError{
			Ciphertext: len(ciphertext),
			Plaintext:  len(plaintext),
		}
	}
	mask, err := keyspace.Mask(space.Bits)
	if err != nil {
		return nil, err
	}
	space.Base = space.Base.AndNot(mask)
	if opt == nil {
		opt = &Options{}
	}

	var examined atomic.Uint64
	if opt.Progress != nil {
		stop := reportProgress(opt.Progress, opt.Interval, &examined)
		defer stop()
	}

	r := space.Range()
	start := time.Now()
	var key keyspace.Key
	if opt.Workers < 2 {
		s := newScanner(ciphertext, plaintext)
		var found bool
		key, found, err = s.scan(ctx, r, &examined, nil)
		if err == nil && !found {
			err = ErrNotFound
		}
	} else {
		batch := opt.BatchSize
		if batch == 0 {
			batch = DefaultBatchSize
		}
		key, err = runPool(ctx, ciphertext, plaintext, r, opt.Workers, batch, &examined)
	}
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}

	return &Result{
		Key:      key,
		Offset:   space.Offset(key),
		Examined: examined.Load(),
		Elapsed:  elapsed,
	}, nil
}

// A scanner tests candidate keys against one ciphertext.  The memory used
// for decryption is re-used between candidates.
type scanner struct {
	ciphertext []byte
	plaintext  []byte

	c   arcfour.Cipher
	key [keyspace.KeyBytes]byte
	buf []byte
}

func newScanner(ciphertext, plaintext []byte) *scanner {
	return &scanner{
		ciphertext: ciphertext,
		plaintext:  plaintext,
		buf:        make([]byte, len(ciphertext)),
	}
}

// scan tests the keys of r in ascending order and returns the first match.
// If stop is non-nil, it is called from time to time with the next
// candidate; scanning ends without a match once stop returns true.
func (s *scanner) scan(ctx context.Context, r keyspace.Range, examined *atomic.Uint64, stop func(keyspace.Key) bool) (keyspace.Key, bool, error) {
	k := r.First
	var n uint64
	defer func() { examined.Add(n) }()
	for {
		if n%checkEvery == 0 && n > 0 {
			examined.Add(n)
			n = 0
			if err := ctx.Err(); err != nil {
				return keyspace.Key{}, false, err
			}
			if stop != nil && stop(k) {
				return keyspace.Key{}, false, nil
			}
		}

		k.PutBytes(s.key[:])
		ok, err := arcfour.Matches(&s.c, s.key[:], s.ciphertext, s.plaintext, s.buf)
		n++
		if err != nil {
			return keyspace.Key{}, false, err
		}
		if ok {
			return k, true, nil
		}

		if k == r.Last {
			return keyspace.Key{}, false, nil
		}
		k = k.Inc()
	}
}

// reportProgress calls fn every interval until the returned function is
// called.  Stopping reports the final count once more.
func reportProgress(fn func(uint64), interval time.Duration, examined *atomic.Uint64) (stop func()) {
	if interval <= 0 {
		interval = time.Second
	}
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fn(examined.Load())
				return
			case <-ticker.C:
				fn(examined.Load())
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
