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

// Package inner holds the Node Inner State (spec.md §4.7): the single
// mutable world the Node Executor owns and mutates one command at a time.
// It wires together the Fork-backed Storage, the VM Runner, the Blockchain
// Reader, the Transaction Pool, the Filter Registry and the Time Manager
// behind the seal_block sub-protocol, snapshot/restore, and dump/load.
// Grounded on the shape of the teacher's work/worker.go, which plays the
// same "own every piece of mutable mining state, advance it one block at a
// time" role for klaytn's miner.
package inner

import (
	"context"
	"errors"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
	"github.com/kiyomizu-labs/devnode/node/chainindex"
	"github.com/kiyomizu-labs/devnode/node/filters"
	"github.com/kiyomizu-labs/devnode/node/impersonation"
	"github.com/kiyomizu-labs/devnode/node/timemanager"
	"github.com/kiyomizu-labs/devnode/node/txpool"
	"github.com/kiyomizu-labs/devnode/node/vmrunner"
	"github.com/kiyomizu-labs/devnode/params"
	"github.com/kiyomizu-labs/devnode/storage/fork"
)

var logger = log.NewModuleLogger(log.NodeInner)

var (
	ErrTooManySnapshots = errors.New("inner: snapshot limit reached")
	ErrNoSnapshot        = errors.New("inner: no snapshot to restore")
	ErrHasExistingState  = errors.New("inner: load_state called on a node that already has state")
	ErrEmptyState        = errors.New("inner: dump contains no blocks")
	ErrUnknownStateVersion = errors.New("inner: unknown state dump version")
)

// snapshotEntry is one entry of the snapshot stack: enough of the mutable
// world to restore it exactly, mirroring what a real implementation would
// need to roll storage, the chain index and the clock back together.
type snapshotEntry struct {
	storage       fork.Snapshot
	blockNumber   uint64
	timestamp     uint64
}

// State is the Node Inner State.
type State struct {
	Storage       *fork.Storage
	VM            *vmrunner.Runner
	Chain         *chainindex.Index
	Pool          *txpool.Pool
	Filters       *filters.Registry
	Impersonation *impersonation.Registry
	Time          *timemanager.Manager

	snapshots      []snapshotEntry
	previousStates []snapshotEntry

	fork *fork.Descriptor
}

// New assembles a fresh Node Inner State. descriptor and source may be nil
// for an unforked devnet.
func New(chainID uint64, startTimestamp uint64, vm vmrunner.VM, source fork.Source, descriptor *fork.Descriptor) *State {
	reg := impersonation.NewRegistry()
	return &State{
		Storage:       fork.New(chainID, descriptor, source),
		VM:            vmrunner.New(vm),
		Chain:         chainindex.New(),
		Pool:          txpool.New(reg),
		Filters:       filters.NewRegistry(),
		Impersonation: reg,
		Time:          timemanager.New(startTimestamp),
		fork:          descriptor,
	}
}

// SealBlock runs the seal_block sub-protocol over batch (spec.md §4.7):
//  1. advance the clock to the next block's timestamp
//  2. execute every transaction in the batch against the VM, in order
//  3. fold near-call frames out of each transaction's trace
//  4. assemble the sealed block and its receipts
//  5. index the block and its transaction results
//  6. notify the Filter Registry of the new block and any matching logs
//  7. archive a previous-state snapshot for this block, evicting the oldest
//     once params.MaxPreviousStates is exceeded
//
// batch.Txs have already been removed from the pool by TakeUniform; SealBlock
// does not touch the pool itself.
func (s *State) SealBlock(ctx context.Context, batch *txpool.Batch) (*types.Block, []*types.TransactionResult, error) {
	timestamp := s.Time.NextTimestamp()
	parent, _ := s.Chain.BlockByTag(types.TagLatest)
	var parentHash common.Hash
	nextNumber := uint64(1)
	if parent != nil {
		parentHash = parent.Hash
		nextNumber = parent.Number + 1
	}

	var receipts []*types.Receipt
	var results []*types.TransactionResult
	for _, tx := range batch.Txs {
		execResult, err := s.VM.Commit(tx)
		if err != nil {
			return nil, nil, err
		}
		var trace *types.Call
		if len(execResult.Traces) > 0 {
			trace = types.FoldNearCalls(execResult.Traces[0])
		}
		var receipt *types.Receipt
		if len(execResult.Receipts) > 0 {
			receipt = execResult.Receipts[0]
		} else {
			receipt = types.NewReceipt(nil, 0, types.ReceiptStatusSuccessful)
		}
		receipt.TxHash = tx.Hash()
		receipts = append(receipts, receipt)
		results = append(results, &types.TransactionResult{Transaction: tx, Receipt: receipt, Trace: trace})
	}

	block := types.NewBlock(nextNumber, parentHash, timestamp, receipts)
	block.Hash = blockHash(block)
	for i, r := range receipts {
		r.BlockHash = block.Hash
		r.BlockNumber = block.Number
		r.TxIndex = uint(i)
	}

	s.Chain.ApplyBlock(block, results)

	s.Filters.NotifyNewBlock(block.Hash)
	for _, r := range results {
		for _, l := range r.Receipt.Logs {
			s.Filters.NotifyNewLog(l, block.Number)
		}
	}

	s.archivePreviousState(block.Number, timestamp)
	logger.Info("sealed block", "number", block.Number, "txs", len(batch.Txs))
	return block, results, nil
}

// blockHash derives a block's hash from its number, parent and transaction
// set; real header hashing (state root, receipts root) is the VM
// collaborator's concern, so this only needs to be stable and unique.
func blockHash(b *types.Block) common.Hash {
	buf := make([]byte, 0, 8+common.HashLength+32*len(b.Transactions))
	var numBuf [8]byte
	for i := 0; i < 8; i++ {
		numBuf[i] = byte(b.Number >> (56 - 8*i))
	}
	buf = append(buf, numBuf[:]...)
	buf = append(buf, b.ParentHash[:]...)
	for _, h := range b.Transactions {
		buf = append(buf, h[:]...)
	}
	return common.Keccak256Hash(buf)
}

func (s *State) archivePreviousState(blockNumber, timestamp uint64) {
	s.previousStates = append(s.previousStates, snapshotEntry{
		storage:     s.Storage.TakeSnapshot(),
		blockNumber: blockNumber,
		timestamp:   timestamp,
	})
	if len(s.previousStates) > params.MaxPreviousStates {
		s.previousStates = s.previousStates[len(s.previousStates)-params.MaxPreviousStates:]
	}
}

// Snapshot pushes the current world state onto the snapshot stack and
// returns its 1-based id, matching evm_snapshot semantics.
func (s *State) Snapshot() (uint64, error) {
	if len(s.snapshots) >= params.MaxSnapshots {
		return 0, ErrTooManySnapshots
	}
	s.snapshots = append(s.snapshots, snapshotEntry{
		storage:     s.Storage.TakeSnapshot(),
		blockNumber: s.Chain.LatestNumber(),
		timestamp:   s.Time.Current(),
	})
	return uint64(len(s.snapshots)), nil
}

// RestoreSnapshot pops and restores the world state captured by Snapshot,
// discarding every snapshot taken after it, matching evm_revert semantics:
// reverting to id also invalidates any later, still-outstanding snapshot.
func (s *State) RestoreSnapshot(id uint64) error {
	if id == 0 || id > uint64(len(s.snapshots)) {
		return ErrNoSnapshot
	}
	entry := s.snapshots[id-1]
	s.snapshots = s.snapshots[:id-1]
	s.Storage.Restore(entry.storage)
	s.Time.SetCurrentTimestamp(entry.timestamp)
	chain := chainindex.New()
	for n := uint64(1); n <= entry.blockNumber; n++ {
		b, err := s.Chain.BlockByNumber(n)
		if err != nil {
			break
		}
		results := make([]*types.TransactionResult, 0, len(b.Transactions))
		for _, h := range b.Transactions {
			if r, err := s.Chain.TransactionResult(h); err == nil {
				results = append(results, r)
			}
		}
		chain.ApplyBlock(b, results)
	}
	s.Chain = chain
	return nil
}

// SetCode overwrites addr's contract code, registering bytecode as a
// factory dependency.
func (s *State) SetCode(addr common.Address, bytecode []byte) {
	dep := types.NewFactoryDep(bytecode)
	s.Storage.StoreFactoryDep(dep.Hash, bytecode)
	s.Storage.SetValue(types.CodeKey(addr), types.StorageValue(dep.Hash))
}

// SetStorageAt overwrites a single raw storage slot.
func (s *State) SetStorageAt(key types.StorageKey, value types.StorageValue) {
	s.Storage.SetValue(key, value)
}

// SetBalance overwrites addr's balance slot with value's big-endian 32-byte
// encoding.
func (s *State) SetBalance(addr common.Address, value common.Hash) {
	s.Storage.SetValue(types.BalanceKey(addr), types.StorageValue(value))
}

// SetNonce overwrites addr's nonce slot.
func (s *State) SetNonce(addr common.Address, nonce uint64) {
	var v common.Hash
	for i := 0; i < 8; i++ {
		v[common.HashLength-8+i] = byte(nonce >> (56 - 8*i))
	}
	s.Storage.SetValue(types.NonceKey(addr), types.StorageValue(v))
}

// SetRichAccount funds addr with balance and marks it impersonated, the
// built-in dev-wallet workflow (spec.md §12).
func (s *State) SetRichAccount(addr common.Address, balance common.Hash) {
	s.SetBalance(addr, balance)
	s.Impersonation.Impersonate(addr)
}

// Reset discards all mutable state and re-wires the node against a new
// (possibly nil) fork descriptor, at a fresh starting timestamp.
func (s *State) Reset(chainID uint64, startTimestamp uint64, vm vmrunner.VM, source fork.Source, descriptor *fork.Descriptor) {
	s.Storage = fork.New(chainID, descriptor, source)
	s.VM = vmrunner.New(vm)
	s.Chain.Reset()
	s.Pool.Clear()
	s.Filters = filters.NewRegistry()
	s.Impersonation = impersonation.NewRegistry()
	s.Time = timemanager.New(startTimestamp)
	s.snapshots = nil
	s.previousStates = nil
	s.fork = descriptor
	logger.Info("node state reset")
}
