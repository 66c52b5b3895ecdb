package fork

import (
	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
)

// StorageDump is the JSON-serializable shape of a Storage's local overlay,
// embedded into node/inner's versioned dump_state/load_state payload
// (spec.md §4.7). Field names are stable wire format, not Go convention:
// changing them breaks every existing dump.
type StorageDump struct {
	Values      []StorageDumpEntry `json:"values"`
	FactoryDeps []FactoryDepDump   `json:"factory_deps"`
}

type StorageDumpEntry struct {
	Account common.Address `json:"account"`
	Slot    common.Hash    `json:"slot"`
	Value   common.Hash    `json:"value"`
}

type FactoryDepDump struct {
	Hash     common.Hash `json:"hash"`
	Bytecode []byte      `json:"bytecode"`
}

// Dump captures the local overlay (not the remote-read caches, which are
// always safe to re-populate on demand) into a serializable snapshot.
func (s *Storage) Dump() StorageDump {
	dump := StorageDump{
		Values:      make([]StorageDumpEntry, 0, len(s.values)),
		FactoryDeps: make([]FactoryDepDump, 0, len(s.factoryDeps)),
	}
	for k, v := range s.values {
		dump.Values = append(dump.Values, StorageDumpEntry{
			Account: k.Account,
			Slot:    k.Slot,
			Value:   common.Hash(v),
		})
	}
	for hash, code := range s.factoryDeps {
		cp := make([]byte, len(code))
		copy(cp, code)
		dump.FactoryDeps = append(dump.FactoryDeps, FactoryDepDump{Hash: hash, Bytecode: cp})
	}
	return dump
}

// Load replaces the local overlay with the contents of dump, discarding
// whatever was there before. The remote-read caches are left untouched.
func (s *Storage) Load(dump StorageDump) {
	s.values = make(map[types.StorageKey]types.StorageValue, len(dump.Values))
	s.everWritten = make(map[types.StorageKey]bool, len(dump.Values))
	for _, e := range dump.Values {
		key := types.StorageKey{Account: e.Account, Slot: e.Slot}
		s.values[key] = types.StorageValue(e.Value)
		s.everWritten[key] = true
	}
	s.factoryDeps = make(map[common.Hash][]byte, len(dump.FactoryDeps))
	for _, d := range dump.FactoryDeps {
		s.factoryDeps[d.Hash] = d.Bytecode
	}
}
