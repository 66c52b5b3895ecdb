// Package node_test encodes spec.md §8's concrete scenarios end to end
// across the Node Inner State, Node Executor and Block Sealer, the way the
// teacher's own ginkgo/gomega suites (e.g. its consensus/istanbul behavior
// tests) exercise a subsystem as a whole rather than one package at a time.
package node_test

import (
	"context"
	"testing"
	"time"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/devnetaccounts"
	"github.com/kiyomizu-labs/devnode/node/executor"
	"github.com/kiyomizu-labs/devnode/node/inner"
	"github.com/kiyomizu-labs/devnode/node/sealer"
	"github.com/kiyomizu-labs/devnode/node/vmrunner"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScenarios(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "devnode scenarios")
}

// transferVM always succeeds a pushed transaction with a fixed gas cost; the
// actual balance accounting a real VM performs is out of scope here (spec.md
// §6: the VM is an external collaborator), so these scenarios assert on
// block/receipt shape rather than on settled balances.
type transferVM struct{}

func (v *transferVM) PushTransaction(tx *types.Transaction) error { return nil }

func (v *transferVM) Inspect(mode vmrunner.InspectMode) (*vmrunner.ExecutionResult, error) {
	return &vmrunner.ExecutionResult{
		Receipts: []*types.Receipt{types.NewReceipt(nil, 21000, types.ReceiptStatusSuccessful)},
	}, nil
}

func (v *transferVM) MakeSnapshot() (vmrunner.SnapshotID, error) { return 1, nil }
func (v *transferVM) RollbackToLatestSnapshot() error             { return nil }
func (v *transferVM) PopSnapshotNoRollback() error                { return nil }

func mustSeal(e *executor.Executor, maxTxs int) executor.SealBlockResult {
	reply := make(chan executor.SealBlockResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ExpectWithOffset(1, e.Submit(ctx, &executor.SealBlockCommand{MaxTxs: maxTxs, Reply: reply})).To(BeTrue())
	select {
	case r := <-reply:
		return r
	case <-ctx.Done():
		Fail("timed out waiting for seal reply")
		return executor.SealBlockResult{}
	}
}

var _ = Describe("immediate sealing of a single transfer", func() {
	It("produces one block containing exactly the submitted transaction", func() {
		state := inner.New(1, 1000, &transferVM{}, nil, nil)
		exec := executor.New(state)
		defer exec.Stop()

		a := devnetaccounts.RichWallets[0]
		state.SetRichAccount(a, common.HexToHash("0x56bc75e2d63100000")) // 10^20 wei

		var b common.Address
		b[common.AddressLength-1] = 0xAB
		tx := &types.Transaction{Initiator: a, Recipient: &b, Value: nil, Nonce: 0}
		state.Pool.Add(tx)

		before := state.Chain.LatestNumber()
		result := mustSeal(exec, 10)

		Expect(result.Err).NotTo(HaveOccurred())
		Expect(result.Block.Number).To(Equal(before + 1))
		Expect(result.Results).To(HaveLen(1))
		Expect(result.Results[0].Receipt.Status).To(Equal(types.ReceiptStatusSuccessful))
	})
})

var _ = Describe("time enforcement", func() {
	It("pins the next block's timestamp then resumes the default bump", func() {
		state := inner.New(1, 1000, &transferVM{}, nil, nil)
		exec := executor.New(state)
		defer exec.Stop()

		reply := make(chan error, 1)
		Expect(exec.Submit(context.Background(), &executor.EnforceNextTimestampCommand{Timestamp: 2000, Reply: reply})).To(BeTrue())
		Eventually(reply).Should(Receive(BeNil()))

		r1 := mustSeal(exec, 10)
		Expect(r1.Block.Timestamp).To(Equal(uint64(2000)))

		r2 := mustSeal(exec, 10)
		Expect(r2.Block.Timestamp).To(Equal(uint64(2001)))
	})
})

var _ = Describe("snapshot and revert", func() {
	It("restores the block count to the snapshot point and issues a fresh id afterwards", func() {
		state := inner.New(1, 1000, &transferVM{}, nil, nil)
		exec := executor.New(state)
		defer exec.Stop()

		mustSeal(exec, 0)
		mustSeal(exec, 0)
		afterTwo := state.Chain.LatestNumber()

		snapID, err := state.Snapshot()
		Expect(err).NotTo(HaveOccurred())

		mustSeal(exec, 0)
		mustSeal(exec, 0)
		mustSeal(exec, 0)

		Expect(state.RestoreSnapshot(snapID)).To(Succeed())
		Expect(state.Chain.LatestNumber()).To(Equal(afterTwo))

		nextID, err := state.Snapshot()
		Expect(err).NotTo(HaveOccurred())
		Expect(nextID).To(Equal(uint64(1)), "reverting must clear outstanding snapshots so the next id restarts at 1")
	})
})

var _ = Describe("dump and load round-trip", func() {
	It("reproduces blocks and balances in a fresh node, which can then seal further blocks", func() {
		state := inner.New(1, 1000, &transferVM{}, nil, nil)
		exec := executor.New(state)

		a := devnetaccounts.RichWallets[1]
		state.SetRichAccount(a, common.HexToHash("0x64"))
		var b common.Address
		b[common.AddressLength-1] = 0xCD
		state.Pool.Add(&types.Transaction{Initiator: a, Recipient: &b, Nonce: 0})
		mustSeal(exec, 10)
		state.Pool.Add(&types.Transaction{Initiator: a, Recipient: &b, Nonce: 1})
		mustSeal(exec, 10)
		exec.Stop()

		dumped, err := state.DumpState()
		Expect(err).NotTo(HaveOccurred())

		fresh := inner.New(1, 1000, &transferVM{}, nil, nil)
		Expect(fresh.LoadState(dumped)).To(Succeed())
		Expect(fresh.Chain.LatestNumber()).To(Equal(uint64(2)))
		balance, err := fresh.Storage.ReadValue(context.Background(), types.BalanceKey(a))
		Expect(err).NotTo(HaveOccurred())
		Expect(balance).To(Equal(types.StorageValue(common.HexToHash("0x64"))))

		freshExec := executor.New(fresh)
		defer freshExec.Stop()
		fresh.Pool.Add(&types.Transaction{Initiator: a, Recipient: &b, Nonce: 2})
		result := mustSeal(freshExec, 10)
		Expect(result.Err).NotTo(HaveOccurred())
		Expect(result.Block.Number).To(Equal(uint64(3)))
	})
})

var _ = Describe("sealer modes", func() {
	It("never mode leaves the pool unsealed until switched to immediate", func() {
		state := inner.New(1, 1000, &transferVM{}, nil, nil)
		exec := executor.New(state)
		defer exec.Stop()

		s := sealer.New(exec, state.Pool, sealer.Mode{Kind: sealer.ModeNever})
		defer s.Stop()

		state.Pool.Add(&types.Transaction{Nonce: 0})
		Consistently(func() uint64 { return state.Chain.LatestNumber() }, "100ms", "10ms").Should(Equal(uint64(0)))

		s.SetMode(sealer.Mode{Kind: sealer.ModeImmediate, MaxTxsPerBlock: 10})
		Eventually(func() uint64 { return state.Chain.LatestNumber() }, "1s", "10ms").Should(Equal(uint64(1)))
	})
})
