package types

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/stretchr/testify/assert"
)

func TestNewReceiptFillsBloomFromLogs(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000099")
	logs := []*Log{{Address: addr}}

	r := NewReceipt(logs, 21000, ReceiptStatusSuccessful)
	assert.Equal(t, ReceiptStatusSuccessful, r.Status)
	assert.Equal(t, uint64(21000), r.GasUsed)
	assert.True(t, r.Bloom.Test(addr[:]))
}

func TestNewReceiptEmptyLogsZeroBloom(t *testing.T) {
	r := NewReceipt(nil, 0, ReceiptStatusFailed)
	assert.Equal(t, common.Bloom{}, r.Bloom)
}
