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

// Package timemanager is the node's Time Manager (spec.md §4.1): the single
// source of truth for the timestamp the next sealed block will carry.
// Grounded on the teacher's work/worker.go, which advances its own
// "current time" counter (worker.current.header.Time) by hand rather than
// trusting wall-clock reads at seal time, the same discipline this spec
// requires for deterministic, advanceable devnet time.
package timemanager

import "sync"

// Manager tracks the node's logical clock. All methods assume
// single-threaded access from the owning Node Executor (spec.md §4.8).
type Manager struct {
	mu sync.Mutex

	// lastTimestamp is the current logical time: the timestamp most recently
	// returned by NextTimestamp, or set by New, IncreaseTime or
	// SetCurrentTimestamp since then.
	lastTimestamp uint64

	// interval, when non-zero, is added to lastTimestamp every time
	// NextTimestamp is called, instead of the default one-second bump.
	interval uint64

	// enforced, when set, is consumed by the next NextTimestamp call in
	// place of either the interval or the default bump.
	enforced    uint64
	hasEnforced bool
}

// New returns a Manager whose current timestamp is startTimestamp; with no
// interval or enforced timestamp, the next sealed block carries
// startTimestamp+1.
func New(startTimestamp uint64) *Manager {
	return &Manager{lastTimestamp: startTimestamp}
}

// Current returns the current logical timestamp, including any IncreaseTime
// or SetCurrentTimestamp applied since the last seal.
func (m *Manager) Current() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastTimestamp
}

// NextTimestamp computes and records the timestamp the next sealed block
// will use, per spec.md §4.1's precedence: an enforced timestamp wins if
// set; otherwise the configured interval is added; otherwise the timestamp
// advances by exactly one second.
func (m *Manager) NextTimestamp() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasEnforced {
		m.lastTimestamp = m.enforced
		m.hasEnforced = false
		return m.lastTimestamp
	}
	if m.interval != 0 {
		m.lastTimestamp += m.interval
		return m.lastTimestamp
	}
	m.lastTimestamp++
	return m.lastTimestamp
}

// IncreaseTime adds seconds to the current timestamp immediately, without
// waiting for the next seal, and returns the new timestamp. Used by the
// evm_increaseTime-style workflow.
func (m *Manager) IncreaseTime(seconds uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTimestamp += seconds
	return m.lastTimestamp
}

// SetCurrentTimestamp overrides the current timestamp directly, returning
// the delta applied (which may be negative if going backwards is allowed by
// the caller's invariants).
func (m *Manager) SetCurrentTimestamp(timestamp uint64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	delta := int64(timestamp) - int64(m.lastTimestamp)
	m.lastTimestamp = timestamp
	return delta
}

// EnforceNextTimestamp arranges for the next NextTimestamp call to return
// exactly timestamp, overriding the interval for one seal only.
func (m *Manager) EnforceNextTimestamp(timestamp uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if timestamp <= m.lastTimestamp {
		return ErrTimestampNotInFuture
	}
	m.enforced = timestamp
	m.hasEnforced = true
	return nil
}

// SetTimestampInterval sets the fixed interval added on every future
// NextTimestamp call.
func (m *Manager) SetTimestampInterval(seconds uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interval = seconds
}

// RemoveTimestampInterval clears a previously configured interval, reverting
// to the default one-second bump. Returns false if no interval was set.
func (m *Manager) RemoveTimestampInterval() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.interval == 0 {
		return false
	}
	m.interval = 0
	return true
}

// ErrTimestampNotInFuture is returned by EnforceNextTimestamp when the
// requested timestamp would not advance the clock.
var ErrTimestampNotInFuture = timestampError("timemanager: enforced timestamp must be in the future")

type timestampError string

func (e timestampError) Error() string { return string(e) }
