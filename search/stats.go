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
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"golang.org/x/exp/slices"

	"seehuhn.de/go/arcfour/keyspace"
)

// maxTrialBits limits the width of the searches in Trials, so that the
// iteration counts fit into an uint64.
const maxTrialBits = 63

// Summary describes the cost of repeated searches.
type Summary struct {
	Bits   int
	Trials int

	Min, Max uint64
	Median   float64
	Mean     float64

	// Expected is the mean number of iterations for a uniformly distributed
	// key, (2^Bits+1)/2.
	Expected float64

	Elapsed time.Duration
}

// Summarize computes summary statistics for the given iteration counts.
// The slice is not modified.
func Summarize(bits int, counts []uint64) *Summary {
	s := &Summary{
		Bits:     bits,
		Trials:   len(counts),
		Expected: (math.Ldexp(1, bits) + 1) / 2,
	}
	if len(counts) == 0 {
		return s
	}

	sorted := slices.Clone(counts)
	slices.Sort(sorted)
	n := len(sorted)
	s.Min = sorted[0]
	s.Max = sorted[n-1]
	if n%2 == 1 {
		s.Median = float64(sorted[n/2])
	} else {
		s.Median = (float64(sorted[n/2-1]) + float64(sorted[n/2])) / 2
	}

	var sum float64
	for _, c := range sorted {
		sum += float64(c)
	}
	s.Mean = sum / float64(n)
	return s
}

// Trials recovers n random keys, where the low b bits of each key are
// unknown, and summarizes the number of iterations needed.
func Trials(ctx context.Context, n, b int, plaintext []byte, rng *rand.Rand, opt *Options) (*Summary, error) {
	if n < 0 {
		return nil, fmt.Errorf("search: invalid number of trials %d", n)
	}
	if b > maxTrialBits {
		return nil, errors.New("search: too many unknown bits for repeated trials")
	}

	counts := make([]uint64, 0, n)
	var elapsed time.Duration
	for range n {
		key := keyspace.Key{Hi: rng.Uint64(), Lo: rng.Uint64()}
		sc, err := NewScenarioForKey(plaintext, key, b)
		if err != nil {
			return nil, err
		}
		res, err := sc.Crack(ctx, opt)
		if err != nil {
			return nil, err
		}
		counts = append(counts, res.Iterations().Uint64())
		elapsed += res.Elapsed
	}

	s := Summarize(b, counts)
	s.Elapsed = elapsed
	return s, nil
}
