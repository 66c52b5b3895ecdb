// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package chainindex is the node's Blockchain Reader (spec.md §4.4): an
// append-only index from block/transaction identity to the sealed data the
// Node Executor produced, read without locking the Node Executor itself the
// way klaytn's node/cn ApiBackend reads the chain independently of the
// miner (node/cn/api_backend.go).
package chainindex

import (
	"errors"
	"sync"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
)

var (
	ErrUnknownBlock       = errors.New("chainindex: unknown block")
	ErrUnknownTransaction = errors.New("chainindex: unknown transaction")
	ErrOutOfOrder         = errors.New("chainindex: block applied out of order")
)

// Index is the append-only blockchain index. Safe for concurrent reads and
// writes; in practice only the Node Executor's single-writer goroutine calls
// ApplyBlock, while RPC-style readers call the Get* methods from other
// goroutines (spec.md §4.8).
type Index struct {
	mu sync.RWMutex

	blocksByHash   map[common.Hash]*types.Block
	hashByNumber   map[uint64]common.Hash
	results        map[common.Hash]*types.TransactionResult
	latest         uint64
	hasBlocks      bool
}

// New returns an empty index.
func New() *Index {
	return &Index{
		blocksByHash: make(map[common.Hash]*types.Block),
		hashByNumber: make(map[uint64]common.Hash),
		results:      make(map[common.Hash]*types.TransactionResult),
	}
}

// ApplyBlock appends a newly sealed block and its transaction results to the
// index. Panics if block.Number does not immediately follow the current
// head: the index is append-only and the Node Executor is the only writer,
// so an out-of-order apply means a Node Executor invariant was already
// broken upstream.
func (idx *Index) ApplyBlock(block *types.Block, results []*types.TransactionResult) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.hasBlocks && block.Number != idx.latest+1 {
		panic(ErrOutOfOrder)
	}
	idx.blocksByHash[block.Hash] = block
	idx.hashByNumber[block.Number] = block.Hash
	idx.latest = block.Number
	idx.hasBlocks = true

	for _, r := range results {
		idx.results[r.Transaction.Hash()] = r
	}
}

// Reset discards every indexed block and transaction result, used when
// node/inner resets to a fresh fork.
func (idx *Index) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.blocksByHash = make(map[common.Hash]*types.Block)
	idx.hashByNumber = make(map[uint64]common.Hash)
	idx.results = make(map[common.Hash]*types.TransactionResult)
	idx.latest = 0
	idx.hasBlocks = false
}

// LatestNumber returns the number of the most recently applied block.
func (idx *Index) LatestNumber() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.latest
}

// BlockByHash looks up a block by its hash.
func (idx *Index) BlockByHash(hash common.Hash) (*types.Block, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	b, ok := idx.blocksByHash[hash]
	if !ok {
		return nil, ErrUnknownBlock
	}
	return b, nil
}

// BlockByNumber looks up a block by its number.
func (idx *Index) BlockByNumber(number uint64) (*types.Block, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	hash, ok := idx.hashByNumber[number]
	if !ok {
		return nil, ErrUnknownBlock
	}
	return idx.blocksByHash[hash], nil
}

// BlockByTag resolves a symbolic tag against the current index state
// (spec.md §4.4). Committed/Finalized/L1Committed/Pending all currently
// resolve to the latest sealed block: this node has no separate L1
// settlement pipeline to lag behind, matching a devnet's single-writer,
// immediately-final execution model.
func (idx *Index) BlockByTag(tag types.BlockTag) (*types.Block, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	switch tag {
	case types.TagEarliest:
		return idx.blockByNumberLocked(0)
	default:
		if !idx.hasBlocks {
			return nil, ErrUnknownBlock
		}
		return idx.blockByNumberLocked(idx.latest)
	}
}

func (idx *Index) blockByNumberLocked(number uint64) (*types.Block, error) {
	hash, ok := idx.hashByNumber[number]
	if !ok {
		return nil, ErrUnknownBlock
	}
	return idx.blocksByHash[hash], nil
}

// TransactionResult looks up a transaction's receipt, trace and original
// data by hash.
func (idx *Index) TransactionResult(hash common.Hash) (*types.TransactionResult, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	r, ok := idx.results[hash]
	if !ok {
		return nil, ErrUnknownTransaction
	}
	return r, nil
}
