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
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/dominant-strategies/go-ziftr/log"
)

// Database is a goleveldb backed key-value store for solutions.
type Database struct {
	db     *leveldb.DB
	logger log.Logger
}

// Open opens or creates a leveldb database at path.
func Open(path string, logger log.Logger) (*Database, error) {
	db, err := leveldb.OpenFile(path, &opt.Options{})
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Global
	}
	logger.WithField("path", path).Info("Opened solution database")
	return newDatabase(db, logger), nil
}

// NewMemoryDatabase creates an ephemeral in-memory database.
func NewMemoryDatabase() *Database {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		// The memory storage has no failure modes on open.
		panic(err)
	}
	return newDatabase(db, log.NewNullLogger())
}

func newDatabase(db *leveldb.DB, logger log.Logger) *Database {
	d := &Database{db: db, logger: logger}
	if version := ReadDatabaseVersion(d); version == nil {
		WriteDatabaseVersion(d, DatabaseVersion)
	}
	return d
}

func (d *Database) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *Database) Get(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *Database) Put(key []byte, value []byte) error {
	return d.db.Put(key, value, nil)
}

func (d *Database) Delete(key []byte) error {
	return d.db.Delete(key, nil)
}

// Iterate calls fn for every key with the given prefix until fn returns false.
func (d *Database) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	it := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()
	for it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}
	return it.Error()
}

func (d *Database) Logger() log.Logger {
	return d.logger
}

func (d *Database) Close() error {
	return d.db.Close()
}
