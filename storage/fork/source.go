package fork

import (
	"context"

	"github.com/kiyomizu-labs/devnode/common"
	"github.com/kiyomizu-labs/devnode/core/types"
)

// Source is the external collaborator ForkStorage reads through whenever a
// key is missing locally (spec.md §6). It is satisfied by whatever RPC
// client talks to the upstream network; this package never constructs one
// itself.
type Source interface {
	GetStorageAt(ctx context.Context, addr common.Address, slot common.Hash, atBlock uint64) (common.Hash, error)
	GetBytecodeByHash(ctx context.Context, hash common.Hash) ([]byte, error)

	GetTransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, error)
	GetTransactionDetails(ctx context.Context, hash common.Hash) (*TransactionDetails, error)
	GetRawBlockTransactions(ctx context.Context, number uint64) ([]*types.Transaction, error)

	GetBlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error)
	GetBlockByNumber(ctx context.Context, number uint64) (*types.Block, error)
	GetBlockDetails(ctx context.Context, number uint64) (*BlockDetails, error)

	GetFeeParams(ctx context.Context) (*FeeParams, error)
	GetConfirmedTokens(ctx context.Context, from uint32, limit uint8) ([]Token, error)
	GetBridgeContracts(ctx context.Context) (*BridgeAddresses, error)

	GetBlockTransactionCount(ctx context.Context, number uint64) (uint64, error)
	GetTransactionByBlockAndIndex(ctx context.Context, number uint64, index uint64) (*types.Transaction, error)
}

// TransactionDetails supplements the plain Transaction with the status
// fields the original implementation's zks_getTransactionDetails reports.
type TransactionDetails struct {
	Status          string
	FeePaid         uint64
	GasPerPubdata   uint64
	InitiatorAddress common.Address
}

// BlockDetails carries the batch association metadata the original
// implementation's zks_getBlockDetails exposes, beyond the plain header
// fields on types.Block.
type BlockDetails struct {
	Number          uint64
	L1BatchNumber   uint64
	RootHash        common.Hash
	CommitTxHash    *common.Hash
	ProveTxHash     *common.Hash
	ExecuteTxHash   *common.Hash
}

// FeeParams mirrors the upstream network's fee model parameters, consulted
// by the Gas Estimator's pubdata-cost probe (spec.md §4.6).
type FeeParams struct {
	L1GasPriceWei  uint64
	L2GasPriceWei  uint64
	FairPubdataPrice uint64
}

// Token describes one confirmed ERC-20 token the upstream bridge knows
// about.
type Token struct {
	L1Address common.Address
	L2Address common.Address
	Symbol    string
	Decimals  uint8
}

// BridgeAddresses names the upstream network's L1/L2 bridge contracts.
type BridgeAddresses struct {
	L1Erc20Bridge common.Address
	L2Erc20Bridge common.Address
	L1WethBridge  common.Address
	L2WethBridge  common.Address
}
