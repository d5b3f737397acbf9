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

package main

import (
	"math/big"
	"time"

	"golang.org/x/text/message"

	"seehuhn.de/go/arcfour/search"
)

// formatCount prints n with grouped digits.  Counts beyond 2^64 are
// printed without grouping.
func formatCount(p *message.Printer, n *big.Int) string {
	if n.IsUint64() {
		return p.Sprintf("%d", n.Uint64())
	}
	return n.String()
}

func formatRate(p *message.Printer, perSec float64) string {
	switch {
	case perSec >= 1e9:
		return p.Sprintf("%.1fG/s", perSec/1e9)
	case perSec >= 1e6:
		return p.Sprintf("%.1fM/s", perSec/1e6)
	case perSec >= 1e3:
		return p.Sprintf("%.1fk/s", perSec/1e3)
	default:
		return p.Sprintf("%.1f/s", perSec)
	}
}

// progressLine describes the state of a running search.  If the search
// space is small enough, the fraction done and an estimate of the remaining
// time are included.
func progressLine(p *message.Printer, examined uint64, total *big.Int, elapsed time.Duration) string {
	line := p.Sprintf("%d keys", examined)
	secs := elapsed.Seconds()
	if secs <= 0 {
		return line
	}
	rate := float64(examined) / secs
	line += " | " + formatRate(p, rate)

	if !total.IsUint64() {
		return line
	}
	n := total.Uint64()
	line += p.Sprintf(" | %.1f%%", 100*float64(examined)/float64(n))
	if rate > 0 && examined < n {
		rem := time.Duration(float64(n-examined) / rate * float64(time.Second))
		line += " | ETA " + rem.Truncate(time.Second).String()
	}
	return line
}

func printSummary(p *message.Printer, s *search.Summary) {
	p.Printf("Trials: %d\n", s.Trials)
	p.Printf("Unknown bits: %d\n", s.Bits)
	p.Printf("Iterations: min %d, median %.1f, mean %.1f, max %d\n",
		s.Min, s.Median, s.Mean, s.Max)
	p.Printf("Expected mean: %.1f\n", s.Expected)
	p.Printf("Total time: %v\n", s.Elapsed)
}
