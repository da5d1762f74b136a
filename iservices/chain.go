package iservices

import (
	"context"
	"encoding/json"

	"github.com/gxchain/gxwallet/prototype"
)

//
// This file defines the chain query interface the wallet consumes.
//

var ChainAPIName = "chain"

// IChainAPI is a view of a remote node. Transport failures wrap prototype.ErrTransport,
// unknown names wrap ErrAccountNotFound or ErrAssetNotFound.
type IChainAPI interface {
	GetChainID(ctx context.Context) (string, error)

	GetAccount(ctx context.Context, name string) (*prototype.Account, error)
	// GetAccounts looks up accounts by id, skipping ids with no account
	GetAccounts(ctx context.Context, ids []prototype.ObjectID) ([]*prototype.Account, error)
	GetObjects(ctx context.Context, ids []prototype.ObjectID) ([]json.RawMessage, error)
	GetAsset(ctx context.Context, symbol string) (*prototype.Asset, error)
	GetAssetsByID(ctx context.Context, ids []prototype.ObjectID) ([]*prototype.Asset, error)

	GetGlobalProperties(ctx context.Context) (*prototype.GlobalProperties, error)
	GetHeadBlock(ctx context.Context) (*prototype.DynamicGlobalProperties, error)
	GetRequiredFee(ctx context.Context, op prototype.Operation, feeAsset prototype.ObjectID) (prototype.AssetAmount, error)

	GetKeyReferences(ctx context.Context, keys []string) ([][]prototype.ObjectID, error)
	GetWitnessByAccount(ctx context.Context, account prototype.ObjectID) (*prototype.Witness, error)
	GetCommitteeMemberByAccount(ctx context.Context, account prototype.ObjectID) (*prototype.CommitteeMember, error)
	GetAccountBalances(ctx context.Context, account prototype.ObjectID) ([]prototype.AssetAmount, error)
	GetVestingBalance(ctx context.Context, id prototype.ObjectID) (*prototype.VestingBalance, error)

	Broadcast(ctx context.Context, trx *prototype.SignedTransaction) (*prototype.Confirmation, error)
}
