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

package fork

import "math/big"

// Network names one of the well-known networks Descriptor can fork from,
// ported from the original implementation's ForkNetwork enum (src/fork.rs);
// supplemented per spec.md §12 with the preset gas scale factors each
// network used to require hand-tuning.
type Network int

const (
	NetworkMainnet Network = iota
	NetworkSepoliaTestnet
	NetworkGoerliTestnet
	NetworkOther
)

// URL returns the default RPC endpoint for a well-known network; callers of
// NetworkOther must supply their own URL in the Descriptor instead.
func (n Network) URL() string {
	switch n {
	case NetworkMainnet:
		return "https://mainnet.era.zksync.io:443"
	case NetworkSepoliaTestnet:
		return "https://sepolia.era.zksync.dev:443"
	case NetworkGoerliTestnet:
		return "https://testnet.era.zksync.dev:443"
	default:
		return ""
	}
}

// GasScaleFactors returns the (priceScale, limitScale) pair that gas
// estimation should apply when this descriptor targets n, matching the
// per-network overrides the original implementation hard-codes.
func (n Network) GasScaleFactors() (priceScale float64, limitScale float32) {
	switch n {
	case NetworkMainnet:
		return 1.5, 1.4
	case NetworkSepoliaTestnet:
		return 2.0, 1.3
	case NetworkGoerliTestnet:
		return 1.2, 1.2
	default:
		return 1.2, 1.3
	}
}

// Descriptor pins a fork to a specific point in the upstream chain's
// history, the Go counterpart of the original implementation's ForkDetails.
type Descriptor struct {
	Network  Network
	URL      string // overrides Network.URL() when non-empty; required for NetworkOther
	ChainID  uint64

	// PinnedL1BatchNumber and PinnedL2BlockNumber/Hash/Timestamp fix the
	// exact upstream state reads are served against.
	PinnedL1BatchNumber  uint64
	PinnedL2BlockNumber  uint64
	PinnedL2BlockHash    [32]byte
	PinnedL2Timestamp    uint64

	L1GasPrice *big.Int
	L2GasPrice *big.Int

	EstimateGasPriceScaleFactor float64
	EstimateGasScaleFactor      float32
}

// ResolveURL returns URL if set, else the network's default.
func (d *Descriptor) ResolveURL() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Network.URL()
}
