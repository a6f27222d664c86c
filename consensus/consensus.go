// Copyright 2017 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package consensus defines the interface ziftr style proof-of-work engines
// expose to miners and verifiers.
package consensus

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
)

// Engine is an algorithm agnostic consensus engine.
type Engine interface {
	// VerifySeal checks that header carries a valid seal for target.
	VerifySeal(header ziftr.Header, target ziftr.Target) error

	// Seal generates a new sealing request for the given work and pushes
	// the result into the given channel.
	//
	// Note, the method returns immediately and will send the result async.
	Seal(work *ziftr.Work, results chan<- *ziftr.Solution, stop <-chan struct{}) error

	// Close terminates any background threads maintained by the consensus engine.
	Close() error
}

// PoW is a consensus engine based on proof-of-work.
type PoW interface {
	Engine

	// Mine seals work and blocks until a solution is found, the nonce range
	// is exhausted or ctx is done.
	Mine(ctx context.Context, work *ziftr.Work) (*ziftr.Solution, error)

	// Hashrate returns the current mining hashrate of a PoW consensus engine.
	Hashrate() float64
}

var _ PoW = (*ziftr.Ziftr)(nil)

// TargetToDifficulty returns floor((2^256-1) / target). A zero target has no
// meaningful difficulty and maps to the maximum.
func TargetToDifficulty(target ziftr.Target) *uint256.Int {
	t := target.Uint256()
	if t.IsZero() {
		return new(uint256.Int).SetAllOne()
	}
	return new(uint256.Int).Div(new(uint256.Int).SetAllOne(), t)
}

// DifficultyToTarget is the inverse of TargetToDifficulty. Difficulties of
// zero and one map to the maximum target.
func DifficultyToTarget(difficulty *uint256.Int) ziftr.Target {
	if difficulty.LtUint64(2) {
		return ziftr.MaxTarget
	}
	return ziftr.TargetFromUint256(new(uint256.Int).Div(new(uint256.Int).SetAllOne(), difficulty))
}
