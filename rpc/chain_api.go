package rpc

import (
	"context"
	"encoding/json"

	"github.com/gxchain/gxwallet/iservices"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/pkg/errors"
)

// Caller is the transport ChainAPI runs on
type Caller interface {
	Call(ctx context.Context, api, method string, params []interface{}, result interface{}) error
}

// ChainAPI implements iservices.IChainAPI over a node's database and
// network_broadcast apis.
type ChainAPI struct {
	c      Caller
	assets *AssetCache
}

var _ iservices.IChainAPI = (*ChainAPI)(nil)

func NewChainAPI(c Caller, assets *AssetCache) *ChainAPI {
	return &ChainAPI{c: c, assets: assets}
}

// Assets exposes the cache so callers can invalidate it
func (a *ChainAPI) Assets() *AssetCache {
	return a.assets
}

func (a *ChainAPI) db(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	return a.c.Call(ctx, DatabaseAPI, method, params, result)
}

func idStrings(ids []prototype.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (a *ChainAPI) GetChainID(ctx context.Context) (string, error) {
	var id string
	err := a.db(ctx, "get_chain_id", &id)
	return id, err
}

func (a *ChainAPI) GetAccount(ctx context.Context, name string) (*prototype.Account, error) {
	var acc *prototype.Account
	if err := a.db(ctx, "get_account_by_name", &acc, name); err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.Wrapf(prototype.ErrAccountNotFound, "account %s", name)
	}
	return acc, nil
}

func (a *ChainAPI) GetAccounts(ctx context.Context, ids []prototype.ObjectID) ([]*prototype.Account, error) {
	var accs []*prototype.Account
	if err := a.db(ctx, "get_accounts", &accs, idStrings(ids)); err != nil {
		return nil, err
	}
	out := accs[:0]
	for _, acc := range accs {
		if acc != nil {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (a *ChainAPI) GetObjects(ctx context.Context, ids []prototype.ObjectID) ([]json.RawMessage, error) {
	var objs []json.RawMessage
	err := a.db(ctx, "get_objects", &objs, idStrings(ids))
	return objs, err
}

func (a *ChainAPI) GetAsset(ctx context.Context, symbol string) (*prototype.Asset, error) {
	if asset, ok := a.assets.BySymbol(symbol); ok {
		return asset, nil
	}
	var assets []*prototype.Asset
	if err := a.db(ctx, "lookup_asset_symbols", &assets, []string{symbol}); err != nil {
		return nil, err
	}
	if len(assets) == 0 || assets[0] == nil {
		return nil, errors.Wrapf(prototype.ErrAssetNotFound, "asset %s", symbol)
	}
	a.assets.Add(assets[0])
	return assets[0], nil
}

func (a *ChainAPI) GetAssetsByID(ctx context.Context, ids []prototype.ObjectID) ([]*prototype.Asset, error) {
	out := make([]*prototype.Asset, len(ids))
	var missing []prototype.ObjectID
	for i, id := range ids {
		if asset, ok := a.assets.ByID(id); ok {
			out[i] = asset
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}
	objs, err := a.GetObjects(ctx, missing)
	if err != nil {
		return nil, err
	}
	fetched := make(map[prototype.ObjectID]*prototype.Asset, len(objs))
	for _, raw := range objs {
		if isNull(raw) {
			continue
		}
		asset := &prototype.Asset{}
		if err := json.Unmarshal(raw, asset); err != nil {
			return nil, errors.Wrap(prototype.ErrJSONFormatErr, err.Error())
		}
		fetched[asset.ID] = asset
		a.assets.Add(asset)
	}
	for i, id := range ids {
		if out[i] != nil {
			continue
		}
		asset, ok := fetched[id]
		if !ok {
			return nil, errors.Wrapf(prototype.ErrAssetNotFound, "asset %s", id)
		}
		out[i] = asset
	}
	return out, nil
}

func (a *ChainAPI) GetGlobalProperties(ctx context.Context) (*prototype.GlobalProperties, error) {
	props := &prototype.GlobalProperties{}
	if err := a.db(ctx, "get_global_properties", props); err != nil {
		return nil, err
	}
	return props, nil
}

func (a *ChainAPI) GetHeadBlock(ctx context.Context) (*prototype.DynamicGlobalProperties, error) {
	props := &prototype.DynamicGlobalProperties{}
	if err := a.db(ctx, "get_dynamic_global_properties", props); err != nil {
		return nil, err
	}
	return props, nil
}

func (a *ChainAPI) GetRequiredFee(ctx context.Context, op prototype.Operation, feeAsset prototype.ObjectID) (prototype.AssetAmount, error) {
	var fees []prototype.AssetAmount
	ops := [][]interface{}{prototype.OperationPair(op)}
	if err := a.db(ctx, "get_required_fees", &fees, ops, feeAsset.String()); err != nil {
		return prototype.AssetAmount{}, err
	}
	if len(fees) != 1 {
		return prototype.AssetAmount{}, errors.Wrapf(prototype.ErrTransport, "expected 1 fee, got %d", len(fees))
	}
	return fees[0], nil
}

func (a *ChainAPI) GetKeyReferences(ctx context.Context, keys []string) ([][]prototype.ObjectID, error) {
	var refs [][]prototype.ObjectID
	err := a.db(ctx, "get_key_references", &refs, keys)
	return refs, err
}

// GetWitnessByAccount returns nil when the account is not a witness
func (a *ChainAPI) GetWitnessByAccount(ctx context.Context, account prototype.ObjectID) (*prototype.Witness, error) {
	var w *prototype.Witness
	err := a.db(ctx, "get_witness_by_account", &w, account.String())
	return w, err
}

// GetCommitteeMemberByAccount returns nil when the account is not a committee member
func (a *ChainAPI) GetCommitteeMemberByAccount(ctx context.Context, account prototype.ObjectID) (*prototype.CommitteeMember, error) {
	var m *prototype.CommitteeMember
	err := a.db(ctx, "get_committee_member_by_account", &m, account.String())
	return m, err
}

func (a *ChainAPI) GetAccountBalances(ctx context.Context, account prototype.ObjectID) ([]prototype.AssetAmount, error) {
	var balances []prototype.AssetAmount
	err := a.db(ctx, "get_account_balances", &balances, account.String(), []string{})
	return balances, err
}

func (a *ChainAPI) GetVestingBalance(ctx context.Context, id prototype.ObjectID) (*prototype.VestingBalance, error) {
	objs, err := a.GetObjects(ctx, []prototype.ObjectID{id})
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 || isNull(objs[0]) {
		return nil, errors.Errorf("vesting balance %s not found", id)
	}
	vb := &prototype.VestingBalance{}
	if err := json.Unmarshal(objs[0], vb); err != nil {
		return nil, err
	}
	return vb, nil
}

func (a *ChainAPI) Broadcast(ctx context.Context, trx *prototype.SignedTransaction) (*prototype.Confirmation, error) {
	conf := &prototype.Confirmation{}
	if err := a.c.Call(ctx, BroadcastAPI, "broadcast_transaction_synchronous", []interface{}{trx}, conf); err != nil {
		return nil, err
	}
	return conf, nil
}
