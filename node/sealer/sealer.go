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

// Package sealer is the Block Sealer (spec.md §4.9): decides when the Node
// Executor should be asked to seal a block, in one of three modes (Never,
// Immediate, FixedTime). Grounded on the teacher's work/worker.go, whose
// commitNewWork is driven by a similar mix of a pool-notification channel
// and a recommit timer; here the two are unified behind a single Mode that
// can be swapped at runtime.
package sealer

import (
	"context"
	"sync"
	"time"

	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
	"github.com/kiyomizu-labs/devnode/node/executor"
	"github.com/kiyomizu-labs/devnode/node/txpool"
)

var logger = log.NewModuleLogger(log.Sealer)

type ModeKind int

const (
	ModeNever ModeKind = iota
	ModeImmediate
	ModeFixedTime
)

// Mode configures the sealer's behavior. MaxTxsPerBlock applies to
// Immediate and FixedTime; Interval applies only to FixedTime.
type Mode struct {
	Kind            ModeKind
	MaxTxsPerBlock  int
	Interval        time.Duration
}

// Sealer watches the transaction pool (for Immediate mode) or a ticker (for
// FixedTime mode) and submits SealBlockCommands to the Node Executor. Mode
// changes take effect on the sealer's own goroutine via a "waker" channel so
// a FixedTime ticker can be swapped out without racing the loop that reads
// it.
type Sealer struct {
	exec *executor.Executor
	pool *txpool.Pool

	mu   sync.Mutex
	mode Mode

	wake   chan struct{}
	stopCh chan struct{}
	done   chan struct{}
}

// New starts the Block Sealer in mode and subscribes it to pool
// notifications.
func New(exec *executor.Executor, pool *txpool.Pool, mode Mode) *Sealer {
	s := &Sealer{
		exec:   exec,
		pool:   pool,
		mode:   mode,
		wake:   make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
	pool.Subscribe(s.onTxAdded)
	go s.run()
	return s
}

func (s *Sealer) onTxAdded(_ *types.Transaction) {
	s.mu.Lock()
	immediate := s.mode.Kind == ModeImmediate
	s.mu.Unlock()
	if !immediate {
		return
	}
	s.signalWake()
}

func (s *Sealer) signalWake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// SetMode swaps the sealer's mode at runtime, e.g. to pause sealing or
// switch from interval mining to immediate mining.
func (s *Sealer) SetMode(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.signalWake()
}

// Stop halts the sealer's background loop.
func (s *Sealer) Stop() {
	close(s.stopCh)
	<-s.done
}

func (s *Sealer) run() {
	defer close(s.done)
	var timer *time.Timer
	var timerCh <-chan time.Time

	for {
		s.mu.Lock()
		mode := s.mode
		s.mu.Unlock()

		if timer != nil {
			timer.Stop()
			timer = nil
			timerCh = nil
		}
		if mode.Kind == ModeFixedTime && mode.Interval > 0 {
			timer = time.NewTimer(mode.Interval)
			timerCh = timer.C
		}

		select {
		case <-s.stopCh:
			return
		case <-s.wake:
			// mode changed or a transaction arrived in Immediate mode; loop
			// back around to re-read mode and react.
			s.mu.Lock()
			mode = s.mode
			s.mu.Unlock()
			if mode.Kind == ModeImmediate {
				s.seal(mode.MaxTxsPerBlock)
			}
		case <-timerCh:
			if mode.Kind == ModeFixedTime {
				s.seal(mode.MaxTxsPerBlock)
			}
		}
	}
}

func (s *Sealer) seal(maxTxs int) {
	if s.pool.Len() == 0 {
		return
	}
	reply := make(chan executor.SealBlockResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if !s.exec.Submit(ctx, &executor.SealBlockCommand{MaxTxs: maxTxs, Reply: reply}) {
		logger.Warn("sealer failed to submit seal command")
		return
	}
	select {
	case result := <-reply:
		if result.Err != nil {
			logger.Error("seal failed", "err", result.Err)
			return
		}
		if result.Block != nil {
			logger.Info("sealer produced block", "number", result.Block.Number)
		}
	case <-ctx.Done():
		logger.Warn("sealer timed out waiting for seal result")
	}
}
