package types

import (
	"math/big"
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/stretchr/testify/assert"
)

func sampleTx() *Transaction {
	to := common.HexToAddress("0x0000000000000000000000000000000000000001")
	return &Transaction{
		Initiator: common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Recipient: &to,
		CallData:  []byte{0x01, 0x02, 0x03},
		Fee: Fee{
			GasLimit:     21000,
			MaxFeePerGas: big.NewInt(1_000_000_000),
		},
		Nonce: 7,
		Value: big.NewInt(42),
	}
}

func TestTransactionHashIsMemoizedAndDeterministic(t *testing.T) {
	tx := sampleTx()
	h1 := tx.Hash()
	h2 := tx.Hash()
	assert.Equal(t, h1, h2, "Hash should be memoized and stable across calls")

	other := sampleTx()
	assert.Equal(t, h1, other.Hash(), "two transactions with identical fields must hash identically")
}

func TestTransactionHashDiffersOnNonce(t *testing.T) {
	tx := sampleTx()
	h1 := tx.Hash()

	tx2 := sampleTx()
	tx2.Nonce = 8
	h2 := tx2.Hash()

	assert.NotEqual(t, h1, h2, "changing the nonce must change the hash")
}

func TestTransactionIsDeployment(t *testing.T) {
	tx := sampleTx()
	assert.False(t, tx.IsDeployment())

	tx.Recipient = nil
	assert.True(t, tx.IsDeployment())
}

func TestTransactionCost(t *testing.T) {
	tx := sampleTx()
	// gasCost = 21000 * 1_000_000_000, plus value 42
	want := new(big.Int).Add(
		new(big.Int).Mul(big.NewInt(1_000_000_000), big.NewInt(21000)),
		big.NewInt(42),
	)
	assert.Equal(t, want, tx.Cost())
}

func TestTransactionHashIncludesFactoryDeps(t *testing.T) {
	base := sampleTx()
	withDep := sampleTx()
	withDep.FactoryDeps = []FactoryDep{NewFactoryDep([]byte{0xde, 0xad, 0xbe, 0xef})}

	assert.NotEqual(t, base.Hash(), withDep.Hash(), "adding a factory dep must change the hash")
}
