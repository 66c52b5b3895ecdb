package types

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/stretchr/testify/assert"
)

func TestNewBlockAggregatesReceipts(t *testing.T) {
	addr := common.HexToAddress("0x0000000000000000000000000000000000000001")
	receipts := []*Receipt{
		{TxHash: common.HexToHash("0x01"), GasUsed: 100, Logs: []*Log{{Address: addr}}},
		{TxHash: common.HexToHash("0x02"), GasUsed: 200},
	}

	block := NewBlock(1, common.HexToHash("0xaa"), 12345, receipts)

	assert.Equal(t, uint64(1), block.Number)
	assert.Equal(t, uint64(300), block.GasUsed)
	assert.Len(t, block.Transactions, 2)
	assert.Equal(t, common.HexToHash("0x01"), block.Transactions[0])
	assert.True(t, block.LogsBloom.Test(addr[:]))
}

func TestNewBlockNoReceipts(t *testing.T) {
	block := NewBlock(0, common.Hash{}, 0, nil)
	assert.Equal(t, uint64(0), block.GasUsed)
	assert.Empty(t, block.Transactions)
	assert.Equal(t, common.Bloom{}, block.LogsBloom)
}
