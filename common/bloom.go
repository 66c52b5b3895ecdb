// Copyright 2015 The go-ethereum Authors
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

package common

import "golang.org/x/crypto/sha3"

// BloomByteLength is the number of bytes backing a Bloom (2048 bits).
const BloomByteLength = 256

// Bloom is a 2048-bit log bloom filter built with the classic three-index
// Ethereum scheme: each inserted item contributes three bit positions
// derived from its Keccak256 hash. A generic k-hash Bloom filter library
// (e.g. steakknife/bloomfilter, present in the teacher's go.mod) uses a
// different bit width and hash cardinality and would not produce a filter
// an Ethereum-style eth_getLogs bloom check could test against, so this is
// hand-rolled against the domain's actual bit-indexing scheme rather than
// wired to that dependency; see DESIGN.md.
type Bloom [BloomByteLength]byte

// Add sets the three bits derived from data's Keccak256 hash.
func (b *Bloom) Add(data []byte) {
	h := keccak256(data)
	for i := 0; i < 6; i += 2 {
		bit := (uint(h[i+1]) + (uint(h[i]) << 8)) & 2047
		b[BloomByteLength-1-bit/8] |= 1 << (bit % 8)
	}
}

// Test reports whether data's three derived bits are all set; a true result
// means "maybe present", a false result means "definitely absent".
func (b Bloom) Test(data []byte) bool {
	h := keccak256(data)
	for i := 0; i < 6; i += 2 {
		bit := (uint(h[i+1]) + (uint(h[i]) << 8)) & 2047
		if b[BloomByteLength-1-bit/8]&(1<<(bit%8)) == 0 {
			return false
		}
	}
	return true
}

func (b Bloom) Bytes() []byte { return b[:] }

func keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash hashes data and returns it as a Hash.
func Keccak256Hash(data ...[]byte) Hash {
	return BytesToHash(keccak256(data...))
}

// Keccak256 hashes data and returns the raw 32 bytes.
func Keccak256(data ...[]byte) []byte {
	return keccak256(data...)
}
