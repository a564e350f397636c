// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the interfaces of the node's key-value storage.
package kv

// Getter wraps methods to read kvs.
type Getter interface {
	// Get retrieves the value for the given key.
	// It returns an error if the key is not found, checkable via IsNotFound.
	Get(key []byte) (value []byte, err error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool

	NewIterator(r Range) Iterator
}

// Putter wraps methods to write kvs.
type Putter interface {
	Put(key, value []byte) error
	Delete(key []byte) error

	NewBatch() Batch
}

// GetPutter groups reading and writing.
type GetPutter interface {
	Getter
	Putter
}

// GetPutCloser is a GetPutter that must be closed after use.
type GetPutCloser interface {
	GetPutter
	Close() error
}

// Batch accumulates writes and applies them in one atomic step.
type Batch interface {
	Putter

	Len() int
	Write() error
}

// Range is a half-open key interval [From, To).
type Range struct {
	From []byte
	To   []byte
}

// Iterator iterates kvs in key order.
type Iterator interface {
	Next() bool
	Release()
	Error() error

	Key() []byte
	Value() []byte
}
