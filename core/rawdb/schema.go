// Copyright 2018 The go-ethereum Authors
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

// Package rawdb contains a collection of low level database accessors for
// accepted proof-of-work solutions.
package rawdb

import (
	"github.com/dominant-strategies/go-ziftr/common"
)

// The fields below define the low level database schema prefixing.
var (
	// databaseVersionKey tracks the current database version.
	databaseVersionKey = []byte("DatabaseVersion")

	// solutionPrefix + proof hash -> header + nonce + hashes attempted
	solutionPrefix = []byte("s")
)

// DatabaseVersion is the current solution encoding version.
const DatabaseVersion = 1

// solutionKey = solutionPrefix + hash
func solutionKey(hash common.Hash) []byte {
	return append(append([]byte{}, solutionPrefix...), hash.Bytes()...)
}
