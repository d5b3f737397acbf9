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

	"seehuhn.de/go/arcfour"
	"seehuhn.de/go/arcfour/keyspace"
)

// A Scenario is the setup for a known-plaintext key recovery: a plaintext,
// the ciphertext obtained by encrypting it, and the part of the key which
// the attacker knows.
type Scenario struct {
	Plaintext  []byte
	Ciphertext []byte

	// TrueKey is the key given by the user.
	TrueKey keyspace.Key

	// AttackKey is the key which was used to produce Ciphertext.
	AttackKey keyspace.Key

	// Space contains the candidates for AttackKey, given the known high
	// bits of TrueKey.
	Space keyspace.Space
}

// NewScenario encrypts plaintext with the low b bits of trueKey set to
// one, and prepares a search over these b bits.  Since candidates are tried
// in ascending order, the search has to examine all 2^b candidates.
func NewScenario(plaintext []byte, trueKey keyspace.Key, b int) (*Scenario, error) {
	space, err := keyspace.NewSpace(trueKey, b)
	if err != nil {
		return nil, err
	}
	return newScenario(plaintext, trueKey, space.AttackKey(trueKey), space)
}

// NewScenarioForKey encrypts plaintext with key itself, and prepares a
// search over the low b bits of key.  For random keys, the search examines
// 2^(b-1) candidates on average.
func NewScenarioForKey(plaintext []byte, key keyspace.Key, b int) (*Scenario, error) {
	space, err := keyspace.NewSpace(key, b)
	if err != nil {
		return nil, err
	}
	return newScenario(plaintext, key, key, space)
}

func newScenario(plaintext []byte, trueKey, attackKey keyspace.Key, space keyspace.Space) (*Scenario, error) {
	keyBytes := attackKey.Bytes()
	ciphertext, err := arcfour.Crypt(keyBytes[:], plaintext)
	if err != nil {
		return nil, err
	}
	return &Scenario{
		Plaintext:  plaintext,
		Ciphertext: ciphertext,
		TrueKey:    trueKey,
		AttackKey:  attackKey,
		Space:      space,
	}, nil
}

// Crack runs the search for the scenario.
//
// If the plaintext is short, a key smaller than AttackKey may decrypt the
// ciphertext correctly by chance.  In this case the smaller key is
// returned, and Recovered reports false.
func (sc *Scenario) Crack(ctx context.Context, opt *Options) (*Result, error) {
	return Run(ctx, sc.Ciphertext, sc.Plaintext, sc.Space, opt)
}

// Recovered reports whether res contains the key used for encryption.
func (sc *Scenario) Recovered(res *Result) bool {
	return res != nil && res.Key == sc.AttackKey
}
