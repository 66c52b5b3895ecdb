// Copyright 2018 The klaytn Authors
// Copyright 2014 The go-ethereum Authors
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
//
// This file is derived from node/sc/bridge_tx_pool.go's pool shape (mutex +
// FIFO slice + subscription), trimmed down to the uniform-batch FIFO pool
// this spec requires (spec.md §4.3); the journal-to-disk and per-account
// nonce-queue bookkeeping that file has (this is a devnet, not a durable
// mempool) were not carried over — see DESIGN.md.
package txpool

import (
	"sync"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
	"github.com/kiyomizu-labs/devnode/metrics"
	"github.com/kiyomizu-labs/devnode/node/impersonation"
)

var logger = log.NewModuleLogger(log.TxPool)

var (
	addedCounter   = metrics.NewRegisteredCounter("txpool/added", nil)
	droppedCounter = metrics.NewRegisteredCounter("txpool/dropped", nil)
)

// Batch is a run of pool-order transactions sharing one impersonation
// status, the unit the Node Executor pulls out of the pool to seal
// (spec.md §4.3).
type Batch struct {
	Impersonating bool
	Txs           []*types.Transaction
}

// Subscriber receives a notification whenever a transaction is admitted.
type Subscriber func(tx *types.Transaction)

// Pool is the uniform-batch FIFO transaction pool. All exported methods are
// safe for concurrent use, though in practice only the Node Executor's
// single-writer goroutine calls the mutating ones (spec.md §4.8); Add is
// also reachable directly from whatever submits transactions into the node.
type Pool struct {
	mu            sync.Mutex
	txs           []*types.Transaction
	impersonation *impersonation.Registry
	subs          []Subscriber
}

// New returns an empty pool, consulting reg to decide each batch's
// impersonation status.
func New(reg *impersonation.Registry) *Pool {
	return &Pool{impersonation: reg}
}

// Add appends tx to the back of the pool and notifies subscribers.
func (p *Pool) Add(tx *types.Transaction) {
	p.mu.Lock()
	p.txs = append(p.txs, tx)
	subs := append([]Subscriber(nil), p.subs...)
	p.mu.Unlock()

	addedCounter.Inc(1)
	logger.Debug("transaction added to pool", "hash", tx.Hash())
	for _, sub := range subs {
		sub(tx)
	}
}

// Subscribe registers fn to be called for every future Add.
func (p *Pool) Subscribe(fn Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

// Len reports the number of pending transactions.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.txs)
}

// Clear drops every pending transaction, e.g. on a node reset.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	dropped := len(p.txs)
	p.txs = nil
	droppedCounter.Inc(int64(dropped))
}

// DropBySender removes every pending transaction initiated by addr and
// returns how many were removed. No caller in this module uses it.
func (p *Pool) DropBySender(addr common.Address) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	kept := p.txs[:0]
	dropped := 0
	for _, tx := range p.txs {
		if tx.Initiator == addr {
			dropped++
			continue
		}
		kept = append(kept, tx)
	}
	p.txs = kept
	droppedCounter.Inc(int64(dropped))
	return dropped
}

// TakeUniform removes and returns up to n transactions from the front of the
// pool that all share the same impersonation status as the first one,
// ported from the original implementation's take_uniform (src/node/pool.rs):
// the leading transaction decides the batch's impersonation status, and the
// batch stops extending the moment a later transaction's status disagrees.
// Returns nil if the pool is empty or n is 0.
func (p *Pool) TakeUniform(n int) *Batch {
	if n == 0 {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.txs) == 0 {
		return nil
	}
	impersonating := p.impersonation.IsImpersonated(p.txs[0].Initiator)

	count := 1
	for count < n && count < len(p.txs) {
		if p.impersonation.IsImpersonated(p.txs[count].Initiator) != impersonating {
			break
		}
		count++
	}

	batch := &Batch{Impersonating: impersonating, Txs: append([]*types.Transaction(nil), p.txs[:count]...)}
	p.txs = append(p.txs[:0], p.txs[count:]...)
	return batch
}
