package timemanager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTimestampDefaultsToOneSecondBump(t *testing.T) {
	m := New(1000)
	assert.Equal(t, uint64(1001), m.NextTimestamp())
	assert.Equal(t, uint64(1002), m.NextTimestamp())
}

func TestNextTimestampUsesInterval(t *testing.T) {
	m := New(1000)
	m.SetTimestampInterval(5)
	assert.Equal(t, uint64(1005), m.NextTimestamp())
	assert.Equal(t, uint64(1010), m.NextTimestamp())
}

func TestRemoveTimestampIntervalRevertsToDefault(t *testing.T) {
	m := New(1000)
	m.SetTimestampInterval(5)
	assert.True(t, m.RemoveTimestampInterval())
	assert.False(t, m.RemoveTimestampInterval(), "removing twice should report no interval was set")
	assert.Equal(t, uint64(1001), m.NextTimestamp())
}

func TestEnforceNextTimestampTakesPrecedenceOverInterval(t *testing.T) {
	m := New(1000)
	m.SetTimestampInterval(5)
	require := assert.New(t)
	require.NoError(m.EnforceNextTimestamp(2000))

	assert.Equal(t, uint64(2000), m.NextTimestamp(), "an enforced timestamp must win over the configured interval")
	// enforced is one-shot: the following call falls back to the interval.
	assert.Equal(t, uint64(2005), m.NextTimestamp())
}

func TestEnforceNextTimestampRejectsNonFuture(t *testing.T) {
	m := New(1000)
	err := m.EnforceNextTimestamp(1000)
	assert.ErrorIs(t, err, ErrTimestampNotInFuture)

	err = m.EnforceNextTimestamp(999)
	assert.ErrorIs(t, err, ErrTimestampNotInFuture)
}

func TestIncreaseTime(t *testing.T) {
	m := New(1000)
	got := m.IncreaseTime(100)
	assert.Equal(t, uint64(1100), got)
	assert.Equal(t, uint64(1100), m.Current())
}

func TestSetCurrentTimestampReturnsDelta(t *testing.T) {
	m := New(1000)
	delta := m.SetCurrentTimestamp(1500)
	assert.Equal(t, int64(500), delta)
	assert.Equal(t, uint64(1500), m.Current())
}
