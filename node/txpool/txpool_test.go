package txpool

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/node/impersonation"
	"github.com/stretchr/testify/assert"
)

func addr(b byte) common.Address {
	var a common.Address
	a[common.AddressLength-1] = b
	return a
}

func tx(initiator common.Address, nonce uint64) *types.Transaction {
	return &types.Transaction{Initiator: initiator, Nonce: nonce}
}

func TestAddAndLen(t *testing.T) {
	p := New(impersonation.NewRegistry())
	assert.Equal(t, 0, p.Len())

	p.Add(tx(addr(1), 0))
	p.Add(tx(addr(1), 1))
	assert.Equal(t, 2, p.Len())
}

func TestSubscribeNotifiedOnAdd(t *testing.T) {
	p := New(impersonation.NewRegistry())
	var seen []*types.Transaction
	p.Subscribe(func(tx *types.Transaction) {
		seen = append(seen, tx)
	})

	t1 := tx(addr(1), 0)
	p.Add(t1)
	assert.Equal(t, []*types.Transaction{t1}, seen)
}

func TestClearDropsEverything(t *testing.T) {
	p := New(impersonation.NewRegistry())
	p.Add(tx(addr(1), 0))
	p.Add(tx(addr(2), 0))
	p.Clear()
	assert.Equal(t, 0, p.Len())
}

func TestDropBySender(t *testing.T) {
	p := New(impersonation.NewRegistry())
	a1, a2 := addr(1), addr(2)
	p.Add(tx(a1, 0))
	p.Add(tx(a2, 0))
	p.Add(tx(a1, 1))

	dropped := p.DropBySender(a1)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 1, p.Len())
}

func TestTakeUniformEmptyPool(t *testing.T) {
	p := New(impersonation.NewRegistry())
	assert.Nil(t, p.TakeUniform(5))
}

func TestTakeUniformZeroCount(t *testing.T) {
	p := New(impersonation.NewRegistry())
	p.Add(tx(addr(1), 0))
	assert.Nil(t, p.TakeUniform(0))
}

func TestTakeUniformStopsAtImpersonationBoundary(t *testing.T) {
	reg := impersonation.NewRegistry()
	a1, a2 := addr(1), addr(2)
	reg.Impersonate(a2)

	p := New(reg)
	p.Add(tx(a1, 0))
	p.Add(tx(a1, 1))
	p.Add(tx(a2, 0)) // impersonation status flips here
	p.Add(tx(a1, 2))

	batch := p.TakeUniform(10)
	assert.NotNil(t, batch)
	assert.False(t, batch.Impersonating)
	assert.Len(t, batch.Txs, 2, "batch should stop before the impersonated transaction")
	assert.Equal(t, 2, p.Len(), "remaining two transactions stay in the pool")
}

func TestTakeUniformRespectsN(t *testing.T) {
	p := New(impersonation.NewRegistry())
	a1 := addr(1)
	p.Add(tx(a1, 0))
	p.Add(tx(a1, 1))
	p.Add(tx(a1, 2))

	batch := p.TakeUniform(2)
	assert.Len(t, batch.Txs, 2)
	assert.Equal(t, 1, p.Len())
}
