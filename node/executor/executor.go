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

// Package executor is the Node Executor (spec.md §4.8): the single
// goroutine that owns the Node Inner State and applies every mutating
// Command to it one at a time, off a bounded channel. Every other package
// in this node only ever reads cloned/indexed views; nothing else is
// allowed to mutate inner.State directly. Grounded on the teacher's
// work/worker.go event loop (a single goroutine select-ing over several
// channels and mutating miner state as each event arrives), generalized
// from worker.update()'s fixed set of chain-head/side/tx-pool channels into
// a single generic Command channel.
package executor

import (
	"context"
	"sync"

	"github.com/kiyomizu-labs/devnode/log"
	"github.com/kiyomizu-labs/devnode/node/inner"
)

var logger = log.NewModuleLogger(log.Executor)

// queueCapacity bounds the command channel; a producer that outruns the
// executor blocks rather than growing memory without limit.
const queueCapacity = 128

// Command is one unit of work the Node Executor applies to the Node Inner
// State. Implementations live alongside the concrete commands in
// commands.go.
type Command interface {
	// execute runs against state and is only ever called from the
	// executor's own goroutine.
	execute(ctx context.Context, state *inner.State)
}

// Executor owns the Node Inner State and runs its single-writer loop.
type Executor struct {
	state  *inner.State
	queue  chan Command
	stopCh chan struct{}
	done   chan struct{}
	stop   sync.Once
}

// New starts the Node Executor's goroutine against state and returns a
// handle for submitting commands. The caller must call Stop to shut it
// down.
func New(state *inner.State) *Executor {
	e := &Executor{
		state:  state,
		queue:  make(chan Command, queueCapacity),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

// Submit enqueues cmd for execution, blocking if the queue is full. Returns
// false if the executor has already been stopped or ctx is done; a command
// dropped because the executor stopped is logged, so a caller relying on a
// reply channel isn't left hanging silently.
func (e *Executor) Submit(ctx context.Context, cmd Command) bool {
	select {
	case <-e.stopCh:
		logger.Warn("command submitted after executor stopped, dropping")
		return false
	default:
	}
	select {
	case e.queue <- cmd:
		return true
	case <-e.stopCh:
		logger.Warn("command submitted after executor stopped, dropping")
		return false
	case <-ctx.Done():
		return false
	}
}

// Stop signals the run loop to drain whatever is already queued and exit.
// Safe to call more than once; blocks until the loop has exited.
func (e *Executor) Stop() {
	e.stop.Do(func() { close(e.stopCh) })
	<-e.done
}

func (e *Executor) run() {
	defer close(e.done)
	ctx := context.Background()
	for {
		select {
		case cmd := <-e.queue:
			cmd.execute(ctx, e.state)
		case <-e.stopCh:
			e.drain(ctx)
			logger.Info("executor stopped, command queue drained")
			return
		}
	}
}

// drain runs every command already buffered in the queue before the
// executor exits, without accepting any new ones.
func (e *Executor) drain(ctx context.Context) {
	for {
		select {
		case cmd := <-e.queue:
			cmd.execute(ctx, e.state)
		default:
			return
		}
	}
}
