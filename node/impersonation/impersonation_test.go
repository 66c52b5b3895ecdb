package impersonation

import (
	"testing"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/stretchr/testify/assert"
)

func addr(b byte) common.Address {
	var a common.Address
	a[common.AddressLength-1] = b
	return a
}

func TestImpersonateAndStop(t *testing.T) {
	r := NewRegistry()
	a := addr(1)

	assert.False(t, r.IsImpersonated(a))
	assert.True(t, r.Impersonate(a))
	assert.False(t, r.Impersonate(a), "impersonating an already-impersonated account returns false")
	assert.True(t, r.IsImpersonated(a))

	assert.True(t, r.StopImpersonating(a))
	assert.False(t, r.StopImpersonating(a), "stopping an already-stopped account returns false")
	assert.False(t, r.IsImpersonated(a))
}

func TestAutoImpersonateOverridesIndividualRegistry(t *testing.T) {
	r := NewRegistry()
	a := addr(2)

	assert.False(t, r.IsImpersonated(a))
	r.SetAutoImpersonate(true)
	assert.True(t, r.AutoImpersonating())
	assert.True(t, r.IsImpersonated(a), "auto-impersonate should cover every account, even ones never individually added")

	r.SetAutoImpersonate(false)
	assert.False(t, r.IsImpersonated(a))
}
