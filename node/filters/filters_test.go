package filters

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/stretchr/testify/assert"
)

func hash(b byte) common.Hash {
	var h common.Hash
	h[common.HashLength-1] = b
	return h
}

func addr(b byte) common.Address {
	var a common.Address
	a[common.AddressLength-1] = b
	return a
}

func TestBlockFilterDrainsOnRead(t *testing.T) {
	r := NewRegistry()
	id := r.AddBlockFilter()

	r.NotifyNewBlock(hash(1))
	r.NotifyNewBlock(hash(2))

	changes, err := r.GetChanges(id)
	assert.NoError(t, err)
	assert.Equal(t, []common.Hash{hash(1), hash(2)}, changes.Hashes)

	again, err := r.GetChanges(id)
	assert.NoError(t, err)
	assert.Empty(t, again.Hashes, "a second GetChanges before any new notification must come back empty")
}

func TestPendingTransactionFilter(t *testing.T) {
	r := NewRegistry()
	id := r.AddPendingTransactionFilter()
	r.NotifyNewPendingTransaction(hash(9))

	changes, err := r.GetChanges(id)
	assert.NoError(t, err)
	assert.Equal(t, []common.Hash{hash(9)}, changes.Hashes)
}

func TestRemoveFilter(t *testing.T) {
	r := NewRegistry()
	id := r.AddBlockFilter()
	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id), "removing a filter twice returns false the second time")

	_, err := r.GetChanges(id)
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestLogFilterMatchesAddressAndTopic(t *testing.T) {
	a := addr(5)
	other := addr(6)
	topic := hash(1)

	criteria := LogCriteria{
		FromBlock: types.TagEarliest,
		ToBlock:   types.TagLatest,
		Addresses: []common.Address{a},
	}
	criteria.Topics[0] = map[common.Hash]struct{}{topic: {}}

	r := NewRegistry()
	id := r.AddLogFilter(criteria)

	matching := &types.Log{Address: a, Topics: []common.Hash{topic}, BlockNumber: 3}
	nonMatchingAddr := &types.Log{Address: other, Topics: []common.Hash{topic}, BlockNumber: 3}
	nonMatchingTopic := &types.Log{Address: a, Topics: []common.Hash{hash(2)}, BlockNumber: 3}

	r.NotifyNewLog(matching, 10)
	r.NotifyNewLog(nonMatchingAddr, 10)
	r.NotifyNewLog(nonMatchingTopic, 10)

	changes, err := r.GetChanges(id)
	assert.NoError(t, err)
	assert.Equal(t, []*types.Log{matching}, changes.Logs)
}

func TestLogFilterEmptyAddressMatchesAny(t *testing.T) {
	criteria := LogCriteria{FromBlock: types.TagEarliest, ToBlock: types.TagLatest}
	r := NewRegistry()
	id := r.AddLogFilter(criteria)

	l := &types.Log{Address: addr(1), BlockNumber: 1}
	r.NotifyNewLog(l, 10)

	changes, err := r.GetChanges(id)
	assert.NoError(t, err)
	assert.Equal(t, []*types.Log{l}, changes.Logs)
}
