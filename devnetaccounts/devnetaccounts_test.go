package devnetaccounts

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/stretchr/testify/assert"
)

func TestRichWalletsAreDistinctAndNonZero(t *testing.T) {
	seen := make(map[common.Address]bool)
	for _, a := range RichWallets {
		assert.False(t, a.IsZero())
		assert.False(t, seen[a], "rich wallet addresses must be distinct")
		seen[a] = true
	}
	assert.Len(t, RichWallets, 10)
}
