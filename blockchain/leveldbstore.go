// Copyright (c) 2019-2022 The Lumachain Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

package blockchain

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/lumachain/Lumachain.LUMA/common/log"
)

// BITSPERKEY is the leveldb bloom filter configuration.
const BITSPERKEY = 10

// IStore is the persistence interface the chain store runs on.  A batch
// is accumulated with NewBatch/BatchPut/BatchDelete and flushed
// atomically with BatchCommit.
type IStore interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	NewBatch()
	BatchPut(key []byte, value []byte)
	BatchDelete(key []byte)
	BatchCommit() error
	NewIterator(prefix []byte) IIterator
	Close() error
}

// IIterator is a prefix bounded iterator over the store.
type IIterator interface {
	Next() bool
	First() bool
	Key() []byte
	Value() []byte
	Release()
}

type LevelDBStore struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

// NewLevelDBStore opens, or creates, the database under the given path.
// A corrupted database is recovered in place before giving up.
func NewLevelDBStore(file string) (*LevelDBStore, error) {
	openOpts := opt.Options{
		OpenFilesCacheCapacity: 256,
		Filter:                 filter.NewBloomFilter(BITSPERKEY),
	}

	db, err := leveldb.OpenFile(file, &openOpts)
	if _, corrupted := err.(*ldberrors.ErrCorrupted); corrupted {
		log.Warnf("leveldb corruption detected for path %s: %s", file, err)
		db, err = leveldb.RecoverFile(file, nil)
	}
	if err != nil {
		return nil, err
	}

	return &LevelDBStore{
		db:    db,
		batch: nil,
	}, nil
}

func (l *LevelDBStore) Put(key []byte, value []byte) error {
	return l.db.Put(key, value, nil)
}

func (l *LevelDBStore) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *LevelDBStore) Has(key []byte) (bool, error) {
	return l.db.Has(key, nil)
}

func (l *LevelDBStore) Delete(key []byte) error {
	return l.db.Delete(key, nil)
}

func (l *LevelDBStore) NewBatch() {
	l.batch = new(leveldb.Batch)
}

func (l *LevelDBStore) BatchPut(key []byte, value []byte) {
	l.batch.Put(key, value)
}

func (l *LevelDBStore) BatchDelete(key []byte) {
	l.batch.Delete(key)
}

func (l *LevelDBStore) BatchCommit() error {
	return l.db.Write(l.batch, nil)
}

func (l *LevelDBStore) Close() error {
	return l.db.Close()
}

func (l *LevelDBStore) NewIterator(prefix []byte) IIterator {
	return &Iterator{iter: l.db.NewIterator(util.BytesPrefix(prefix), nil)}
}

type Iterator struct {
	iter iterator.Iterator
}

func (it *Iterator) Next() bool {
	return it.iter.Next()
}

func (it *Iterator) First() bool {
	return it.iter.First()
}

func (it *Iterator) Key() []byte {
	return it.iter.Key()
}

func (it *Iterator) Value() []byte {
	return it.iter.Value()
}

func (it *Iterator) Release() {
	it.iter.Release()
}
