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

// Package fork is the Fork-backed Storage layer (spec.md §4.2, §6): a local
// write overlay in front of an optional remote Source, with two caches in
// between so a devnet that never forks never pays for a network round trip
// and a devnet that does fork doesn't repeat one. Grounded on the original
// implementation's ForkStorage (src/fork.rs) and on the teacher's layered,
// cached database pattern (blockchain/state/database.go's cachingDB).
package fork

import (
	"context"

	"github.com/VictoriaMetrics/fastcache"
	lru "github.com/hashicorp/golang-lru"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
)

var logger = log.NewModuleLogger(log.Storage)

const (
	// valueReadCacheBytes sizes the fastcache backing the remote storage
	// value cache; fastcache wants its budget up front rather than growing
	// unbounded the way a plain map would.
	valueReadCacheBytes = 32 << 20

	// factoryDepCacheEntries bounds the LRU cache of remote bytecode
	// lookups.
	factoryDepCacheEntries = 4096
)

// factoryDepEntry distinguishes "looked up and absent" from "never looked
// up", mirroring the original implementation's Option<Vec<u8>> cache value.
type factoryDepEntry struct {
	bytecode []byte
	found    bool
}

// Storage is the fork-backed storage layer. The zero value is not usable;
// construct with New.
type Storage struct {
	chainID uint64
	fork    *Descriptor
	source  Source

	values       map[types.StorageKey]types.StorageValue
	everWritten  map[types.StorageKey]bool
	factoryDeps  map[common.Hash][]byte

	valueReadCache  *fastcache.Cache
	factoryDepCache *lru.Cache
}

// New returns a Storage with no local writes yet. fork and source may both
// be nil, in which case every read is served from the (empty) local
// overlay, matching an unforked devnet.
func New(chainID uint64, fork *Descriptor, source Source) *Storage {
	depCache, err := lru.New(factoryDepCacheEntries)
	if err != nil {
		// Only possible if factoryDepCacheEntries <= 0, which is a
		// programmer error, not a runtime condition.
		panic(err)
	}
	return &Storage{
		chainID:         chainID,
		fork:            fork,
		source:          source,
		values:          make(map[types.StorageKey]types.StorageValue),
		everWritten:     make(map[types.StorageKey]bool),
		factoryDeps:     make(map[common.Hash][]byte),
		valueReadCache:  fastcache.New(valueReadCacheBytes),
		factoryDepCache: depCache,
	}
}

// ChainID returns the chain id this storage was constructed with.
func (s *Storage) ChainID() uint64 { return s.chainID }

// Forked reports whether this storage has a remote Source behind it.
func (s *Storage) Forked() bool { return s.fork != nil && s.source != nil }

// ReadValue resolves key, checking the local overlay first, then the value
// read cache, then the remote Source — matching read_value_internal in the
// original implementation.
func (s *Storage) ReadValue(ctx context.Context, key types.StorageKey) (types.StorageValue, error) {
	if local, ok := s.values[key]; ok && !local.IsZero() {
		return local, nil
	}
	if !s.Forked() {
		return s.values[key], nil
	}

	cacheKey := key.CacheKeyBytes()
	if cached, ok := s.valueReadCache.HasGet(nil, cacheKey); ok {
		return types.StorageValue(common.BytesToHash(cached)), nil
	}

	hash, err := s.source.GetStorageAt(ctx, key.Account, key.Slot, s.fork.PinnedL2BlockNumber)
	if err != nil {
		return types.StorageValue{}, err
	}
	value := types.StorageValue(hash)
	s.valueReadCache.Set(cacheKey, value.Bytes())
	return value, nil
}

// SetValue writes value into the local overlay. A non-zero value shadows any
// remote value for key from then on; a zero value counts as unset, so
// ReadValue on a forked storage falls through to the cache and the Source.
func (s *Storage) SetValue(key types.StorageKey, value types.StorageValue) {
	s.values[key] = value
	s.everWritten[key] = true
}

// IsWriteInitial reports whether this is the first time key has ever been
// written, using the same best-effort heuristic as the original
// implementation's is_write_initial_internal: a non-zero current value
// means it was written before; a zero value might still have been written
// and later reset, which the local overlay (but not a fork) can tell.
func (s *Storage) IsWriteInitial(ctx context.Context, key types.StorageKey) (bool, error) {
	value, err := s.ReadValue(ctx, key)
	if err != nil {
		return false, err
	}
	if !value.IsZero() {
		return false, nil
	}
	return !s.everWritten[key], nil
}

// LoadFactoryDep resolves bytecode by hash, local overlay first, then the
// factory dep cache, then the remote Source.
func (s *Storage) LoadFactoryDep(ctx context.Context, hash common.Hash) ([]byte, error) {
	if local, ok := s.factoryDeps[hash]; ok {
		return local, nil
	}
	if !s.Forked() {
		return nil, nil
	}
	if cached, ok := s.factoryDepCache.Get(hash); ok {
		entry := cached.(factoryDepEntry)
		if entry.found {
			return entry.bytecode, nil
		}
		return nil, nil
	}

	bytecode, err := s.source.GetBytecodeByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	s.factoryDepCache.Add(hash, factoryDepEntry{bytecode: bytecode, found: bytecode != nil})
	return bytecode, nil
}

// StoreFactoryDep writes bytecode into the local overlay under hash.
func (s *Storage) StoreFactoryDep(hash common.Hash, bytecode []byte) {
	s.factoryDeps[hash] = bytecode
}

// Snapshot captures the local overlay for node/inner's snapshot/restore
// protocol (spec.md §4.7); the caches are not part of the snapshot since
// they only ever hold immutable, already-fetched remote data.
type Snapshot struct {
	values      map[types.StorageKey]types.StorageValue
	everWritten map[types.StorageKey]bool
	factoryDeps map[common.Hash][]byte
}

func (s *Storage) TakeSnapshot() Snapshot {
	return Snapshot{
		values:      cloneValues(s.values),
		everWritten: cloneWritten(s.everWritten),
		factoryDeps: cloneDeps(s.factoryDeps),
	}
}

func (s *Storage) Restore(snap Snapshot) {
	s.values = cloneValues(snap.values)
	s.everWritten = cloneWritten(snap.everWritten)
	s.factoryDeps = cloneDeps(snap.factoryDeps)
}

func cloneValues(m map[types.StorageKey]types.StorageValue) map[types.StorageKey]types.StorageValue {
	out := make(map[types.StorageKey]types.StorageValue, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneWritten(m map[types.StorageKey]bool) map[types.StorageKey]bool {
	out := make(map[types.StorageKey]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneDeps(m map[common.Hash][]byte) map[common.Hash][]byte {
	out := make(map[common.Hash][]byte, len(m))
	for k, v := range m {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}
