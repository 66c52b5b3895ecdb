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

// Package types holds the data model shared by the storage, pool, blockchain
// and executor layers (spec.md §3): StorageKey/StorageValue, FactoryDep,
// Transaction, Block, Receipt and the debug call tree. Grounded on the
// teacher's blockchain/types package layout (one concept per file) though
// the contents are freshly authored: klaytn's multi-tx-type, fee-delegated
// account model (blockchain/types/tx_internal_data_*.go) has no analog in
// the single, EIP-1559-shaped L2 transaction this spec defines (see
// DESIGN.md for why that teacher code was not adapted).
package types

import (
	"encoding/binary"

	"github.com/kiyomizu-labs/devnode/common"
)

// StorageKey identifies one 32-byte slot of one account, per spec.md §3.
type StorageKey struct {
	Account common.Address
	Slot    common.Hash
}

// StorageValue is a raw 32-byte slot value; the zero value means "unset
// locally" per the spec's data model.
type StorageValue common.Hash

func (v StorageValue) IsZero() bool { return v == StorageValue{} }

func (v StorageValue) Bytes() []byte { return v[:] }

// getShardIndex picks a shard by the account's last byte. It does not satisfy
// common.CacheKey: that interface's method is unexported, so only types in
// package common can implement it.
func (k StorageKey) getShardIndex(shardMask int) int {
	return int(k.Account[common.AddressLength-1]) & shardMask
}

// CacheKeyBytes renders a StorageKey into the flat 52-byte form fastcache
// wants for its fixed-key value cache (storage/fork's read cache).
func (k StorageKey) CacheKeyBytes() []byte {
	buf := make([]byte, common.AddressLength+common.HashLength)
	copy(buf, k.Account[:])
	copy(buf[common.AddressLength:], k.Slot[:])
	return buf
}

// BalanceKey and NonceKey and CodeKey derive the well-known storage slot an
// account's balance/nonce/code-hash live at, the way the teacher's
// blockchain/state package maps accounts onto trie keys -- except here the
// "trie" is a flat map, so the derivation just needs to be collision-free
// and stable, not Merkle-provable.
func BalanceKey(addr common.Address) StorageKey  { return wellKnownSlot(addr, 0) }
func NonceKey(addr common.Address) StorageKey    { return wellKnownSlot(addr, 1) }
func CodeKey(addr common.Address) StorageKey     { return wellKnownSlot(addr, 2) }
func DeployNonceKey(addr common.Address) StorageKey { return wellKnownSlot(addr, 3) }

func wellKnownSlot(addr common.Address, tag uint64) StorageKey {
	var slot common.Hash
	binary.BigEndian.PutUint64(slot[common.HashLength-8:], tag)
	return StorageKey{Account: addr, Slot: slot}
}
