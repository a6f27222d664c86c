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

package rawdb

import (
	"encoding/binary"
	"errors"

	"github.com/dominant-strategies/go-ziftr/common"
	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
)

// errInvalidSolution is returned when a stored solution cannot be decoded.
var errInvalidSolution = errors.New("invalid stored solution")

const solutionLength = ziftr.HeaderLength + 4 + 8

// ReadDatabaseVersion retrieves the version number of the database.
func ReadDatabaseVersion(db *Database) *uint64 {
	enc, _ := db.Get(databaseVersionKey)
	if len(enc) != 8 {
		return nil
	}
	version := binary.BigEndian.Uint64(enc)
	return &version
}

// WriteDatabaseVersion stores the version number of the database
func WriteDatabaseVersion(db *Database, version uint64) {
	var enc [8]byte
	binary.BigEndian.PutUint64(enc[:], version)
	if err := db.Put(databaseVersionKey, enc[:]); err != nil {
		db.Logger().WithField("err", err).Fatal("Failed to store the database version")
	}
}

func encodeSolution(solution *ziftr.Solution) []byte {
	enc := make([]byte, solutionLength)
	header := solution.Header.Bytes()
	copy(enc, header[:])
	binary.BigEndian.PutUint32(enc[ziftr.HeaderLength:], solution.Nonce)
	binary.BigEndian.PutUint64(enc[ziftr.HeaderLength+4:], solution.HashesAttempted)
	return enc
}

func decodeSolution(hash common.Hash, enc []byte) (*ziftr.Solution, error) {
	if len(enc) != solutionLength {
		return nil, errInvalidSolution
	}
	header, err := ziftr.HeaderFromBytes(enc[:ziftr.HeaderLength])
	if err != nil {
		return nil, err
	}
	return &ziftr.Solution{
		Header:          header,
		Nonce:           binary.BigEndian.Uint32(enc[ziftr.HeaderLength:]),
		HashesAttempted: binary.BigEndian.Uint64(enc[ziftr.HeaderLength+4:]),
		Hash:            hash,
	}, nil
}

// WriteSolution stores an accepted solution keyed by its proof hash.
func WriteSolution(db *Database, solution *ziftr.Solution) {
	if err := db.Put(solutionKey(solution.Hash), encodeSolution(solution)); err != nil {
		db.Logger().WithField("err", err).Fatal("Failed to store solution")
	}
}

// ReadSolution retrieves the solution with the given proof hash, or nil if it
// is not stored.
func ReadSolution(db *Database, hash common.Hash) *ziftr.Solution {
	enc, err := db.Get(solutionKey(hash))
	if err != nil || len(enc) == 0 {
		return nil
	}
	solution, err := decodeSolution(hash, enc)
	if err != nil {
		db.Logger().WithField("hash", hash).Error("Invalid stored solution")
		return nil
	}
	return solution
}

// HasSolution reports whether a solution with the given proof hash is stored.
func HasSolution(db *Database, hash common.Hash) bool {
	has, err := db.Has(solutionKey(hash))
	return err == nil && has
}

// DeleteSolution removes the solution with the given proof hash.
func DeleteSolution(db *Database, hash common.Hash) {
	if err := db.Delete(solutionKey(hash)); err != nil {
		db.Logger().WithField("err", err).Fatal("Failed to delete solution")
	}
}

// IterateSolutions calls fn for every stored solution until fn returns false.
// Entries that fail to decode are skipped.
func IterateSolutions(db *Database, fn func(*ziftr.Solution) bool) error {
	return db.Iterate(solutionPrefix, func(key, value []byte) bool {
		if len(key) != len(solutionPrefix)+common.HashLength {
			return true
		}
		solution, err := decodeSolution(common.BytesToHash(key[len(solutionPrefix):]), value)
		if err != nil {
			return true
		}
		return fn(solution)
	})
}
