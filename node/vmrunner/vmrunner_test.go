package vmrunner

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/stretchr/testify/assert"
)

func TestRunOneDrivesPushThenInspect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vm := NewMockVM(ctrl)
	tx := &types.Transaction{Nonce: 1}
	want := &ExecutionResult{Receipts: []*types.Receipt{{GasUsed: 21000}}}

	gomock.InOrder(
		vm.EXPECT().PushTransaction(tx).Return(nil),
		vm.EXPECT().Inspect(InspectModeOneTx).Return(want, nil),
	)

	r := New(vm)
	got, err := r.RunOne(tx)
	assert.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRunOnePropagatesPushError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vm := NewMockVM(ctrl)
	tx := &types.Transaction{}
	pushErr := errors.New("boom")
	vm.EXPECT().PushTransaction(tx).Return(pushErr)

	r := New(vm)
	got, err := r.RunOne(tx)
	assert.Nil(t, got)
	assert.Equal(t, pushErr, err)
}

func TestRunSpeculativeAlwaysRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vm := NewMockVM(ctrl)
	tx := &types.Transaction{}
	want := &ExecutionResult{Reverted: false}

	gomock.InOrder(
		vm.EXPECT().MakeSnapshot().Return(SnapshotID(1), nil),
		vm.EXPECT().PushTransaction(tx).Return(nil),
		vm.EXPECT().Inspect(InspectModeOneTx).Return(want, nil),
		vm.EXPECT().RollbackToLatestSnapshot().Return(nil),
	)

	r := New(vm)
	got, err := r.RunSpeculative(tx)
	assert.NoError(t, err)
	assert.Same(t, want, got)
}

func TestRunSpeculativeReturnsRollbackErrorWhenInspectSucceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vm := NewMockVM(ctrl)
	tx := &types.Transaction{}
	rbErr := errors.New("rollback failed")

	gomock.InOrder(
		vm.EXPECT().MakeSnapshot().Return(SnapshotID(1), nil),
		vm.EXPECT().PushTransaction(tx).Return(nil),
		vm.EXPECT().Inspect(InspectModeOneTx).Return(&ExecutionResult{}, nil),
		vm.EXPECT().RollbackToLatestSnapshot().Return(rbErr),
	)

	r := New(vm)
	_, err := r.RunSpeculative(tx)
	assert.Equal(t, rbErr, err)
}

func TestCommitDelegatesToRunOne(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vm := NewMockVM(ctrl)
	tx := &types.Transaction{}
	want := &ExecutionResult{}

	vm.EXPECT().PushTransaction(tx).Return(nil)
	vm.EXPECT().Inspect(InspectModeOneTx).Return(want, nil)

	r := New(vm)
	got, err := r.Commit(tx)
	assert.NoError(t, err)
	assert.Same(t, want, got)
}
