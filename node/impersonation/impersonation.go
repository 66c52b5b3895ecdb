// Copyright 2018 The klaytn Authors
// This file is part of the klaytn library.
//
// The klaytn library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The klaytn library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the klaytn library. If not, see <http://www.gnu.org/licenses/>.

// Package impersonation tracks which accounts the node will let sign
// transactions without a real signature check (spec.md §4.2). Membership is
// a plain set, grounded on gopkg.in/fatih/set.v0 the way the teacher reaches
// for set.v0 in its datasync/downloader peer-tracking code, minus the
// concurrency the teacher needs there: the registry is only ever touched
// from the Node Executor's single-writer goroutine (spec.md §4.8), so no
// lock is required here.
package impersonation

import (
	"gopkg.in/fatih/set.v0"

	"github.com/kiyomizu-labs/devnode/common"
)

// Registry tracks impersonated accounts. All methods assume single-threaded
// access from the owning Node Executor.
type Registry struct {
	accounts  *set.Set
	all       bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{accounts: set.New()}
}

// Impersonate adds addr to the registry. Returns false if it was already
// impersonated.
func (r *Registry) Impersonate(addr common.Address) bool {
	if r.accounts.Has(addr) {
		return false
	}
	r.accounts.Add(addr)
	return true
}

// StopImpersonating removes addr from the registry. Returns false if it
// wasn't impersonated.
func (r *Registry) StopImpersonating(addr common.Address) bool {
	if !r.accounts.Has(addr) {
		return false
	}
	r.accounts.Remove(addr)
	return true
}

// IsImpersonated reports whether addr should bypass signature verification,
// either because it was individually impersonated or because
// SetAutoImpersonate(true) is in effect.
func (r *Registry) IsImpersonated(addr common.Address) bool {
	return r.all || r.accounts.Has(addr)
}

// SetAutoImpersonate toggles the "impersonate every account" mode used by
// the dev-mode rich-wallet workflow.
func (r *Registry) SetAutoImpersonate(enabled bool) {
	r.all = enabled
}

// AutoImpersonating reports the current auto-impersonate mode.
func (r *Registry) AutoImpersonating() bool { return r.all }
