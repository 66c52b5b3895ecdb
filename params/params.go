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

// Package params holds the protocol-level constants referenced throughout
// the devnode, grounded on the teacher's params package (which plays the
// same role for go-ethereum-derived constants) but replacing the full EVM
// gas schedule with the handful of constants this spec's sealing and gas
// estimation logic actually needs; the VM's own gas accounting is internal
// to the collaborator VM (§6) and out of scope here.
package params

import "math/big"

const (
	// TxGas is the minimum gas an empty-calldata, no-target transaction costs;
	// gasestimator.Estimate uses it as the lower bound of its binary search.
	TxGas uint64 = 21000

	// MaxL2TxGasLimit bounds the gas-estimation binary search's upper bound.
	MaxL2TxGasLimit uint64 = 4_000_000_000

	// EstimateGasAcceptableOverestimation is the binary-search convergence
	// tolerance: the search stops once upper-lower is within this bound.
	EstimateGasAcceptableOverestimation uint64 = 1000

	// MaxVMPubdataPerBatch bounds how much pubdata a single transaction may
	// publish. gasestimator.Estimate runs no pubdata probe and does not read
	// it.
	MaxVMPubdataPerBatch uint64 = 120_000

	// DefaultEstimateGasScaleFactor scales the converged upper bound of the
	// gas-estimation binary search into the suggested gas limit.
	DefaultEstimateGasScaleFactor float32 = 1.3

	// DefaultEstimateGasPriceScaleFactor is the gas-price scale factor for
	// estimation; gasestimator.Estimate takes no fee input and does not read
	// it.
	DefaultEstimateGasPriceScaleFactor float64 = 1.2

	// MaxSnapshots bounds the number of outstanding node-state snapshots.
	MaxSnapshots = 1024

	// MaxPreviousStates bounds the previous-state archive; oldest entries are
	// evicted FIFO once the cap is reached.
	MaxPreviousStates = 128

	// DefaultChainID is the default L2 chain id of a devnet.
	DefaultChainID uint64 = 270
)

// DefaultRichAccountBalance is 10^32 wei, matching the magnitude the
// original implementation funds its built-in dev wallets with; kept as a
// *big.Int (not a constant) because it overflows any Go integer type.
// Neither inner.New nor State.Reset applies it; wallets are funded only
// through an explicit SetRichAccount or SetBalance call.
var DefaultRichAccountBalance = new(big.Int).Exp(big.NewInt(10), big.NewInt(32), nil)

// DefaultL2GasPrice is the baseline L2 gas price; no code in this module
// reads it, and storage/fork has no per-fork gas price override.
var DefaultL2GasPrice = big.NewInt(250_000_000)
