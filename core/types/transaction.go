package types

import (
	"math/big"

	"github.com/kiyomizu-labs/devnode/common"
)

// Fee bundles the gas parameters of a Transaction, mirroring the EIP-1559
// style fields the spec's single transaction shape carries (spec.md §3):
// no legacy/fee-delegated/account-update variants, unlike the teacher's
// blockchain/types/tx_internal_data_* family.
type Fee struct {
	GasLimit             uint64
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	GasPerPubdataLimit   *big.Int
}

// Transaction is the node's single transaction shape (spec.md §3): an
// initiator-signed call or deployment, optionally carrying FactoryDeps for
// code it deploys.
type Transaction struct {
	Initiator   common.Address
	Recipient   *common.Address // nil for a contract-creation transaction
	CallData    []byte
	Fee         Fee
	Nonce       uint64
	Value       *big.Int
	Signature   []byte
	FactoryDeps []FactoryDep

	// hash caches Hash(); computed lazily since the teacher's analogous
	// blockchain/types.Transaction also memoizes its hash.
	hash *common.Hash
}

// Hash returns the Keccak256 hash of the transaction's RLP-free canonical
// encoding. Real signature/RLP schemes are a VM collaborator concern (§6);
// this hash only needs to be stable and collision-free for pool/indexing
// purposes.
func (tx *Transaction) Hash() common.Hash {
	if tx.hash != nil {
		return *tx.hash
	}
	h := common.Keccak256Hash(tx.signingPayload())
	tx.hash = &h
	return h
}

func (tx *Transaction) signingPayload() []byte {
	buf := make([]byte, 0, 128+len(tx.CallData))
	buf = append(buf, tx.Initiator[:]...)
	if tx.Recipient != nil {
		buf = append(buf, tx.Recipient[:]...)
	}
	buf = append(buf, tx.CallData...)
	if tx.Value != nil {
		buf = append(buf, tx.Value.Bytes()...)
	}
	var nonceBuf [8]byte
	for i := 0; i < 8; i++ {
		nonceBuf[i] = byte(tx.Nonce >> (56 - 8*i))
	}
	buf = append(buf, nonceBuf[:]...)
	for _, dep := range tx.FactoryDeps {
		buf = append(buf, dep.Hash[:]...)
	}
	return buf
}

// IsDeployment reports whether the transaction creates a contract rather
// than calling an existing one.
func (tx *Transaction) IsDeployment() bool { return tx.Recipient == nil }

// Cost is an upper bound on what the transaction can charge the initiator:
// value plus worst-case gas spend, the same quantity klaytn's tx pool checks
// a sender's balance against before admitting a transaction.
func (tx *Transaction) Cost() *big.Int {
	gasCost := new(big.Int).Mul(tx.Fee.MaxFeePerGas, new(big.Int).SetUint64(tx.Fee.GasLimit))
	total := new(big.Int).Add(gasCost, tx.Value)
	return total
}
