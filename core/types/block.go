package types

import "github.com/kiyomizu-labs/devnode/common"

// BlockTag names a symbolic block reference the Blockchain Reader resolves
// against its cursors (spec.md §4.4: latest/pending/committed/finalized/
// l1_committed/earliest), in place of klaytn's RPC-layer block-number
// parsing (api/api_public_blockchain.go) since this node has no RPC layer of
// its own.
type BlockTag int

const (
	TagLatest BlockTag = iota
	TagPending
	TagCommitted
	TagFinalized
	TagL1Committed
	TagEarliest
)

// Block is one sealed L2 block, carrying the fields the spec's
// seal_block sub-protocol produces (spec.md §4.7) plus the L1 batch
// association unique to this rollup's data model.
type Block struct {
	Number       uint64
	Hash         common.Hash
	ParentHash   common.Hash
	Timestamp    uint64
	L1BatchNumber uint64
	Transactions []common.Hash
	GasUsed      uint64
	GasLimit     uint64
	LogsBloom    common.Bloom
}

// NewBlock assembles a Block and its logs bloom from the receipts produced
// while sealing it, the way the teacher's blockchain/types.NewBlock folds a
// block's receipts into its header bloom.
func NewBlock(number uint64, parentHash common.Hash, timestamp uint64, receipts []*Receipt) *Block {
	b := &Block{
		Number:     number,
		ParentHash: parentHash,
		Timestamp:  timestamp,
	}
	b.Transactions = make([]common.Hash, 0, len(receipts))
	var allLogs []*Log
	for _, r := range receipts {
		b.Transactions = append(b.Transactions, r.TxHash)
		b.GasUsed += r.GasUsed
		allLogs = append(allLogs, r.Logs...)
	}
	b.LogsBloom = CreateBloom(allLogs)
	return b
}
