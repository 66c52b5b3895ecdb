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

// Package gasestimator is the Gas Estimator (spec.md §4.6): a binary search
// over the VM Runner's speculative execution to find the lowest gas limit a
// transaction can be sealed with, ported from the original implementation's
// estimate_gas_impl (crates/core/src/node/in_memory.rs) into this node's VM
// Runner / snapshot vocabulary.
package gasestimator

import (
	"errors"

	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/log"
	"github.com/kiyomizu-labs/devnode/node/vmrunner"
	"github.com/kiyomizu-labs/devnode/params"
)

var logger = log.NewModuleLogger(log.GasEstimator)

var ErrExecutionReverted = errors.New("gasestimator: transaction reverts at the maximum allowed gas limit")

// Result is the outcome of Estimate.
type Result struct {
	GasLimit uint64
	// GasUsed is what the converged probe actually consumed, before
	// DefaultEstimateGasScaleFactor is applied to produce GasLimit.
	GasUsed uint64
}

// Estimate runs a binary search between the transaction's declared floor
// (params.TxGas) and params.MaxL2TxGasLimit to find the smallest gas limit
// at which tx does not revert, matching the original implementation's
// algorithm:
//  1. Probe at the upper bound first; if it still reverts, the transaction
//     can never succeed and estimation fails.
//  2. Binary search the [lower, upper] range, narrowing until the gap is
//     within params.EstimateGasAcceptableOverestimation.
//  3. Scale the converged upper bound by params.DefaultEstimateGasScaleFactor
//     to leave headroom for pubdata-price fluctuation between estimation
//     and the transaction's actual inclusion.
//
// tx is mutated in place (its Fee.GasLimit is overwritten) between probes;
// callers should pass a copy if the original must be preserved.
func Estimate(runner *vmrunner.Runner, tx *types.Transaction) (Result, error) {
	lower := params.TxGas
	upper := params.MaxL2TxGasLimit

	tx.Fee.GasLimit = upper
	upperResult, err := runner.RunSpeculative(tx)
	if err != nil {
		return Result{}, err
	}
	if upperResult.Reverted {
		return Result{}, ErrExecutionReverted
	}

	for upper-lower > params.EstimateGasAcceptableOverestimation {
		mid := lower + (upper-lower)/2
		tx.Fee.GasLimit = mid
		result, err := runner.RunSpeculative(tx)
		if err != nil {
			return Result{}, err
		}
		if result.Reverted {
			lower = mid + 1
		} else {
			upper = mid
			upperResult = result
		}
	}

	scaled := uint64(float64(upper) * float64(params.DefaultEstimateGasScaleFactor))
	if scaled > params.MaxL2TxGasLimit {
		scaled = params.MaxL2TxGasLimit
	}

	gasUsed := uint64(0)
	for _, r := range upperResult.Receipts {
		gasUsed += r.GasUsed
	}
	logger.Debug("gas estimation converged", "upper", upper, "scaled", scaled)
	return Result{GasLimit: scaled, GasUsed: gasUsed}, nil
}
