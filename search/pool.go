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

package search

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/arcfour/keyspace"
)

// dispatcher hands out consecutive batches of a range in ascending order and
// keeps track of the smallest matching key found so far.
//
// Every batch which starts below the best match is scanned up to that match,
// so once all workers have finished, no smaller key can match.
type dispatcher struct {
	r     keyspace.Range
	batch uint64

	mu        sync.Mutex
	next      keyspace.Key
	exhausted bool
	found     bool
	best      keyspace.Key
}

func newDispatcher(r keyspace.Range, batch uint64) *dispatcher {
	return &dispatcher{r: r, batch: batch, next: r.First}
}

// take returns the next batch to scan.  The second return value is false
// once there is nothing left to do.
func (d *dispatcher) take() (keyspace.Range, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exhausted || d.found && d.next.Cmp(d.best) > 0 {
		return keyspace.Range{}, false
	}
	b := d.r.Batch(d.next, d.batch)
	if b.Last == d.r.Last {
		d.exhausted = true
	} else {
		d.next = b.Last.Inc()
	}
	return b, true
}

// report records a matching key.
func (d *dispatcher) report(k keyspace.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.found || k.Cmp(d.best) < 0 {
		d.best = k
		d.found = true
	}
}

// beyond reports whether a match smaller than k is already known.
func (d *dispatcher) beyond(k keyspace.Key) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.found && k.Cmp(d.best) > 0
}

func (d *dispatcher) result() (keyspace.Key, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.best, d.found
}

// runPool searches r using several goroutines and returns the smallest
// matching key.
func runPool(ctx context.Context, ciphertext, plaintext []byte, r keyspace.Range, workers int, batch uint64, examined *atomic.Uint64) (keyspace.Key, error) {
	d := newDispatcher(r, batch)

	g, ctx := errgroup.WithContext(ctx)
	for range workers {
		g.Go(func() error {
			s := newScanner(ciphertext, plaintext)
			for {
				b, ok := d.take()
				if !ok {
					return nil
				}
				k, found, err := s.scan(ctx, b, examined, d.beyond)
				if err != nil {
					return err
				}
				if found {
					d.report(k)
				}
			}
		})
	}
	err := g.Wait()
	if err != nil {
		return keyspace.Key{}, err
	}

	k, found := d.result()
	if !found {
		return keyspace.Key{}, ErrNotFound
	}
	return k, nil
}
