package inner

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/storage/fork"
)

// stateDumpVersion is the only version this node writes or accepts; a
// future incompatible format bump would add a new constant and a case in
// LoadState rather than replacing this one.
const stateDumpVersion = 1

// blockDump is the JSON-serializable shape of one sealed block plus its
// transaction results, embedded into StateDump. Field names are stable wire
// format.
type blockDump struct {
	Block   *types.Block              `json:"block"`
	Results []*types.TransactionResult `json:"results"`
}

// StateDump is the versioned dump_state/load_state payload (spec.md §4.7,
// §6): a full replay log of sealed blocks plus the storage overlay they
// produced, gzip-compressed JSON on the wire. Keeping the block log instead
// of only the final storage snapshot lets a loaded node answer historical
// eth_getBlockByNumber/eth_getTransactionByHash queries for blocks sealed in
// a prior run.
type StateDump struct {
	Version       uint32             `json:"version"`
	StartTimestamp uint64            `json:"start_timestamp"`
	Blocks        []blockDump        `json:"blocks"`
	Storage       fork.StorageDump   `json:"storage"`
}

// DumpState captures the full node state. Returns ErrEmptyState if no block
// has been sealed yet: an empty dump is almost always a sign the caller
// meant to call this before any transactions were sealed, so fail loudly
// instead of silently writing a useless file.
func (s *State) DumpState() ([]byte, error) {
	latest := s.Chain.LatestNumber()
	if latest == 0 {
		return nil, ErrEmptyState
	}

	dump := StateDump{
		Version:        stateDumpVersion,
		StartTimestamp: s.Time.Current(),
		Storage:        s.Storage.Dump(),
	}
	for n := uint64(1); n <= latest; n++ {
		block, err := s.Chain.BlockByNumber(n)
		if err != nil {
			return nil, err
		}
		results := make([]*types.TransactionResult, 0, len(block.Transactions))
		for _, hash := range block.Transactions {
			r, err := s.Chain.TransactionResult(hash)
			if err != nil {
				return nil, err
			}
			results = append(results, r)
		}
		dump.Blocks = append(dump.Blocks, blockDump{Block: block, Results: results})
	}

	raw, err := json.Marshal(dump)
	if err != nil {
		return nil, errors.Wrap(err, "inner: marshal state dump")
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(raw); err != nil {
		return nil, errors.Wrap(err, "inner: compress state dump")
	}
	if err := gz.Close(); err != nil {
		return nil, errors.Wrap(err, "inner: compress state dump")
	}
	return buf.Bytes(), nil
}

// LoadState replaces the node's state with a previously dumped one. Returns
// ErrHasExistingState if any block has already been sealed: loading into a
// node that has already diverged would silently corrupt the replay log.
func (s *State) LoadState(dumped []byte) error {
	if s.Chain.LatestNumber() != 0 {
		return ErrHasExistingState
	}

	gz, err := gzip.NewReader(bytes.NewReader(dumped))
	if err != nil {
		return errors.Wrap(err, "inner: decompress state dump")
	}
	raw, err := io.ReadAll(gz)
	if err != nil {
		return errors.Wrap(err, "inner: decompress state dump")
	}

	var dump StateDump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return errors.Wrap(err, "inner: unmarshal state dump")
	}
	if dump.Version != stateDumpVersion {
		return ErrUnknownStateVersion
	}
	if len(dump.Blocks) == 0 {
		return ErrEmptyState
	}

	s.Storage.Load(dump.Storage)
	s.Chain.Reset()
	for _, b := range dump.Blocks {
		s.Chain.ApplyBlock(b.Block, b.Results)
	}
	s.Time.SetCurrentTimestamp(dump.StartTimestamp)
	return nil
}
