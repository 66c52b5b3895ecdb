package types

import "github.com/kiyomizu-labs/devnode/common"

// Log is one EVM-style event emitted during transaction execution, the same
// shape the teacher's blockchain/types.Log carries, used both to populate a
// Receipt and to feed the logs bloom and the Filter Registry's log matching
// (spec.md §4.4).
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte

	// Positional metadata filled in once the log's enclosing transaction and
	// block are known; zero until then.
	BlockNumber uint64
	TxHash      common.Hash
	TxIndex     uint
	BlockHash   common.Hash
	Index       uint
	Removed     bool
}

// bloomLogEntries returns the byte slices a logs bloom filter should Add for
// this log: the address and every topic, matching the teacher's
// blockchain/types.CreateBloom behavior.
func (l *Log) bloomLogEntries() [][]byte {
	entries := make([][]byte, 0, 1+len(l.Topics))
	entries = append(entries, l.Address[:])
	for _, t := range l.Topics {
		topic := t
		entries = append(entries, topic[:])
	}
	return entries
}

// CreateBloom folds a set of logs into a single Bloom filter, grounded on
// the teacher's blockchain/types.CreateBloom.
func CreateBloom(logs []*Log) common.Bloom {
	var bloom common.Bloom
	for _, l := range logs {
		for _, entry := range l.bloomLogEntries() {
			bloom.Add(entry)
		}
	}
	return bloom
}
