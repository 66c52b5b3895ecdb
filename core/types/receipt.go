package types

import (
	"math/big"

	"github.com/kiyomizu-labs/devnode/common"
)

type ReceiptStatus uint64

const (
	ReceiptStatusFailed ReceiptStatus = iota
	ReceiptStatusSuccessful
)

// Receipt records the outcome of executing one Transaction, mirroring the
// fields the teacher's blockchain/types.Receipt carries minus the
// Klaytn-specific fee-delegation bookkeeping this spec's transaction shape
// doesn't have.
type Receipt struct {
	TxHash            common.Hash
	Status            ReceiptStatus
	GasUsed           uint64
	CumulativeGasUsed uint64
	Logs              []*Log
	Bloom             common.Bloom
	ContractAddress   *common.Address // set when the transaction deployed a contract
	EffectiveGasPrice *big.Int

	BlockHash   common.Hash
	BlockNumber uint64
	TxIndex     uint
}

// NewReceipt folds logs into the receipt's bloom the way the teacher's
// blockchain/types.NewReceipt constructor does, so callers never forget to
// keep Bloom in sync with Logs.
func NewReceipt(logs []*Log, gasUsed uint64, status ReceiptStatus) *Receipt {
	return &Receipt{
		Status:  status,
		GasUsed: gasUsed,
		Logs:    logs,
		Bloom:   CreateBloom(logs),
	}
}

// TransactionResult bundles a Receipt with the debug call tree and the
// original Transaction, the unit the Blockchain Reader indexes by hash
// (spec.md §4.4).
type TransactionResult struct {
	Transaction *Transaction
	Receipt     *Receipt
	Trace       *Call
}
