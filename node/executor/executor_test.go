package executor

import (
	"context"
	"testing"
	"time"

	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/node/inner"
	"github.com/kiyomizu-labs/devnode/node/vmrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVM struct{}

func (stubVM) PushTransaction(tx *types.Transaction) error { return nil }
func (stubVM) Inspect(mode vmrunner.InspectMode) (*vmrunner.ExecutionResult, error) {
	return &vmrunner.ExecutionResult{
		Receipts: []*types.Receipt{types.NewReceipt(nil, 21000, types.ReceiptStatusSuccessful)},
	}, nil
}
func (stubVM) MakeSnapshot() (vmrunner.SnapshotID, error) { return 1, nil }
func (stubVM) RollbackToLatestSnapshot() error             { return nil }
func (stubVM) PopSnapshotNoRollback() error                { return nil }

func newTestExecutor() *Executor {
	state := inner.New(1, 1000, stubVM{}, nil, nil)
	return New(state)
}

func TestSubmitSealBlockCommandReturnsReply(t *testing.T) {
	e := newTestExecutor()
	defer e.Stop()

	reply := make(chan SealBlockResult, 1)
	ctx := context.Background()
	ok := e.Submit(ctx, &SealBlockCommand{MaxTxs: 10, Reply: reply})
	require.True(t, ok)

	select {
	case result := <-reply:
		assert.NoError(t, result.Err)
		assert.Equal(t, uint64(1), result.Block.Number)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for seal reply")
	}
}

func TestSubmitAfterStopReturnsFalse(t *testing.T) {
	e := newTestExecutor()
	e.Stop()

	ok := e.Submit(context.Background(), &IncreaseTimeCommand{Seconds: 1})
	assert.False(t, ok, "submitting after Stop must fail rather than panic")
}

func TestStopIsIdempotent(t *testing.T) {
	e := newTestExecutor()
	e.Stop()
	assert.NotPanics(t, func() { e.Stop() })
}

func TestSetBalanceCommandAppliesToState(t *testing.T) {
	e := newTestExecutor()
	defer e.Stop()

	var a [20]byte
	a[19] = 7
	reply := make(chan struct{}, 1)
	ok := e.Submit(context.Background(), &SetBalanceCommand{Address: a, Balance: [32]byte{0x42}, Reply: reply})
	require.True(t, ok)

	select {
	case <-reply:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for set-balance reply")
	}
}

func TestIncreaseTimeCommandReportsNewTimestamp(t *testing.T) {
	e := newTestExecutor()
	defer e.Stop()

	reply := make(chan uint64, 1)
	ok := e.Submit(context.Background(), &IncreaseTimeCommand{Seconds: 50, Reply: reply})
	require.True(t, ok)

	select {
	case newTs := <-reply:
		assert.Equal(t, uint64(1050), newTs)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for increase-time reply")
	}
}
