package types

import "github.com/kiyomizu-labs/devnode/common"

// FactoryDep is a piece of contract bytecode carried alongside a deploying
// transaction, addressed by its own hash so the VM collaborator can resolve
// CREATE/CREATE2-style dependencies without a separate lookup round-trip
// (spec.md §3).
type FactoryDep struct {
	Hash     common.Hash
	Bytecode []byte
}

// NewFactoryDep hashes bytecode with Keccak256 the way the teacher's
// blockchain/types package derives a contract's code hash.
func NewFactoryDep(bytecode []byte) FactoryDep {
	return FactoryDep{
		Hash:     common.Keccak256Hash(bytecode),
		Bytecode: bytecode,
	}
}
