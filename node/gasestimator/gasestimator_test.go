package gasestimator

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/node/vmrunner"
	"github.com/kiyomizu-labs/devnode/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeVM records the gas limit of the last pushed transaction so Inspect can
// decide revert/success based on the configured threshold.
type probeVM struct {
	threshold uint64
	lastGas   uint64
}

func (v *probeVM) PushTransaction(tx *types.Transaction) error {
	v.lastGas = tx.Fee.GasLimit
	return nil
}

func (v *probeVM) Inspect(mode vmrunner.InspectMode) (*vmrunner.ExecutionResult, error) {
	if v.lastGas < v.threshold {
		return &vmrunner.ExecutionResult{Reverted: true}, nil
	}
	return &vmrunner.ExecutionResult{
		Receipts: []*types.Receipt{{GasUsed: v.threshold}},
	}, nil
}

func (v *probeVM) MakeSnapshot() (vmrunner.SnapshotID, error) { return 1, nil }
func (v *probeVM) RollbackToLatestSnapshot() error             { return nil }
func (v *probeVM) PopSnapshotNoRollback() error                { return nil }

func TestEstimateConverges(t *testing.T) {
	vm := &probeVM{threshold: 100000}
	runner := vmrunner.New(vm)
	tx := &types.Transaction{}

	result, err := Estimate(runner, tx)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.GasLimit, vm.threshold)
	assert.LessOrEqual(t, result.GasLimit, params.MaxL2TxGasLimit)
}

func TestEstimateFailsWhenUpperBoundReverts(t *testing.T) {
	vm := &probeVM{threshold: params.MaxL2TxGasLimit + 1} // unreachable: always reverts
	runner := vmrunner.New(vm)
	tx := &types.Transaction{}

	_, err := Estimate(runner, tx)
	assert.ErrorIs(t, err, ErrExecutionReverted)
}
