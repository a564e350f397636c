// Copyright (c) 2025 The PledgeChain developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "github.com/syndtr/goleveldb/leveldb/util"

// Bucket is a logical key namespace of an underlying store. All keys passing
// through a bucket are transparently prefixed, and iterator keys come back
// with the prefix stripped.
type Bucket string

func (b Bucket) makeKey(key []byte) []byte {
	return append([]byte(b), key...)
}

func (b Bucket) makeRange(r Range) Range {
	from := append([]byte(b), r.From...)
	var to []byte
	if len(r.To) == 0 {
		// cover the whole bucket
		to = util.BytesPrefix([]byte(b)).Limit
	} else {
		to = append([]byte(b), r.To...)
	}
	return Range{From: from, To: to}
}

// NewGetter creates a bucket getter from the source getter.
func (b Bucket) NewGetter(src Getter) Getter {
	return &struct {
		GetFunc
		HasFunc
		IsNotFoundFunc
		NewIteratorFunc
	}{
		func(key []byte) ([]byte, error) { return src.Get(b.makeKey(key)) },
		func(key []byte) (bool, error) { return src.Has(b.makeKey(key)) },
		src.IsNotFound,
		func(r Range) Iterator {
			return &bucketIterator{src.NewIterator(b.makeRange(r)), len(b)}
		},
	}
}

// NewPutter creates a bucket putter from the source putter.
func (b Bucket) NewPutter(src Putter) Putter {
	return &struct {
		PutFunc
		DeleteFunc
		NewBatchFunc
	}{
		func(key, value []byte) error { return src.Put(b.makeKey(key), value) },
		func(key []byte) error { return src.Delete(b.makeKey(key)) },
		func() Batch { return &bucketBatch{b, src.NewBatch()} },
	}
}

// NewGetPutter creates a bucket get-putter from the source get-putter.
func (b Bucket) NewGetPutter(src GetPutter) GetPutter {
	return &struct {
		Getter
		Putter
	}{b.NewGetter(src), b.NewPutter(src)}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

func (it *bucketIterator) Key() []byte {
	return it.Iterator.Key()[it.prefixLen:]
}

type bucketBatch struct {
	bucket Bucket
	batch  Batch
}

func (bb *bucketBatch) Put(key, value []byte) error {
	return bb.batch.Put(bb.bucket.makeKey(key), value)
}

func (bb *bucketBatch) Delete(key []byte) error {
	return bb.batch.Delete(bb.bucket.makeKey(key))
}

func (bb *bucketBatch) NewBatch() Batch {
	return &bucketBatch{bb.bucket, bb.batch.NewBatch()}
}

func (bb *bucketBatch) Len() int {
	return bb.batch.Len()
}

func (bb *bucketBatch) Write() error {
	return bb.batch.Write()
}
