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

//go:generate mockgen -source=vmrunner.go -destination=mock_vm.go -package=vmrunner

// Package vmrunner wraps the external VM collaborator (spec.md §6): this
// package never executes a transaction itself, it only defines the contract
// the VM must satisfy and gives the Node Executor a thin, mockable surface
// (InspectMode, snapshot stack discipline) to drive it through, the way
// klaytn's work/worker.go drives its external vm.Config/blockchain.Processor
// collaborator rather than implementing the EVM inline.
package vmrunner

import (
	"github.com/kiyomizu-labs/devnode/core/types"
)

// InspectMode selects how VM.Inspect interprets the pushed transaction
// queue (spec.md §4.5): OneTx executes exactly the most recently pushed
// transaction and reports its result; Bootloader drains the whole queue in
// one VM invocation the way the bootloader-batched execution mode does.
type InspectMode int

const (
	InspectModeOneTx InspectMode = iota
	InspectModeBootloader
)

// ExecutionResult is what Inspect reports for the transaction(s) it ran.
type ExecutionResult struct {
	Receipts []*types.Receipt
	Traces   []*types.Call
	Reverted bool
	Reason   string
}

// VM is the external collaborator this package wraps: a VM implementation
// capable of staging transactions, executing them, and supporting the
// snapshot/rollback protocol the Node Executor needs for gas estimation and
// speculative execution (spec.md §6).
type VM interface {
	// PushTransaction stages tx for the next Inspect call without executing
	// it.
	PushTransaction(tx *types.Transaction) error

	// Inspect executes the staged transaction(s) according to mode and
	// returns their result. Does not advance the VM's snapshot stack by
	// itself; callers that want to discard side effects must wrap the call
	// in MakeSnapshot/RollbackToLatestSnapshot.
	Inspect(mode InspectMode) (*ExecutionResult, error)

	// MakeSnapshot pushes a new VM-internal snapshot and returns its id.
	MakeSnapshot() (SnapshotID, error)

	// RollbackToLatestSnapshot discards all VM state changes made since the
	// most recently pushed snapshot and pops it off the stack.
	RollbackToLatestSnapshot() error

	// PopSnapshotNoRollback discards the most recently pushed snapshot
	// without undoing its changes, committing them permanently.
	PopSnapshotNoRollback() error
}

// SnapshotID identifies a VM-internal snapshot; opaque to callers.
type SnapshotID uint64

// Runner is the thin driver the Node Executor holds: it exists mainly so
// call sites don't reach into the VM collaborator directly and so tests can
// substitute a mock VM (see mock_vm.go).
type Runner struct {
	vm VM
}

// New wraps vm.
func New(vm VM) *Runner {
	return &Runner{vm: vm}
}

// RunOne pushes tx and inspects it in OneTx mode.
func (r *Runner) RunOne(tx *types.Transaction) (*ExecutionResult, error) {
	if err := r.vm.PushTransaction(tx); err != nil {
		return nil, err
	}
	return r.vm.Inspect(InspectModeOneTx)
}

// RunSpeculative runs tx inside a snapshot that is always rolled back,
// leaving the VM's persistent state untouched; used by the Gas Estimator's
// binary search probes (spec.md §4.6).
func (r *Runner) RunSpeculative(tx *types.Transaction) (*ExecutionResult, error) {
	if _, err := r.vm.MakeSnapshot(); err != nil {
		return nil, err
	}
	result, err := r.RunOne(tx)
	if rbErr := r.vm.RollbackToLatestSnapshot(); rbErr != nil && err == nil {
		err = rbErr
	}
	return result, err
}

// Commit runs tx and keeps its effects, used when sealing it into a block.
func (r *Runner) Commit(tx *types.Transaction) (*ExecutionResult, error) {
	return r.RunOne(tx)
}
