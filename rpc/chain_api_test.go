package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/gxchain/gxwallet/prototype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChainAPI(t *testing.T, handlers map[string]nodeHandler) (*ChainAPI, *fakeNode) {
	node := newFakeNode(t, handlers)
	cache, err := NewAssetCache(DefaultAssetCacheSize)
	require.NoError(t, err)
	c := newTestClient(node.url())
	t.Cleanup(func() {
		c.Close()
		node.Close()
	})
	return NewChainAPI(c, cache), node
}

func TestGetAccount(t *testing.T) {
	api, _ := newTestChainAPI(t, map[string]nodeHandler{
		"get_account_by_name": func(params []json.RawMessage) (interface{}, *rpcError) {
			var name string
			_ = json.Unmarshal(params[0], &name)
			if name != "alice" {
				return nil, nil
			}
			return json.RawMessage(`{"id":"1.2.17","name":"alice",
				"active":{"weight_threshold":1,"key_auths":[["GXC6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV",1]]},
				"options":{"memo_key":"GXC6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV","voting_account":"1.2.5","num_witness":0,"num_committee":0,"votes":["1:22"]}}`), nil
		},
	})

	acc, err := api.GetAccount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "1.2.17", acc.ID.String())
	assert.EqualValues(t, 1, acc.Active.KeyWeight("GXC6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"))
	assert.Equal(t, []prototype.VoteID{{Type: 1, Instance: 22}}, acc.Options.Votes)

	_, err = api.GetAccount(context.Background(), "nobody")
	assert.True(t, errors.Is(err, prototype.ErrAccountNotFound))
}

func TestGetAssetCached(t *testing.T) {
	api, node := newTestChainAPI(t, map[string]nodeHandler{
		"lookup_asset_symbols": func(params []json.RawMessage) (interface{}, *rpcError) {
			var symbols []string
			_ = json.Unmarshal(params[0], &symbols)
			if symbols[0] == "GXC" {
				return json.RawMessage(`[{"id":"1.3.1","symbol":"GXC","precision":5,"issuer":"1.2.0"}]`), nil
			}
			return json.RawMessage(`[null]`), nil
		},
	})
	ctx := context.Background()

	asset, err := api.GetAsset(ctx, "GXC")
	require.NoError(t, err)
	assert.Equal(t, prototype.CoreAssetID, asset.ID)
	assert.EqualValues(t, 5, asset.Precision)

	_, err = api.GetAsset(ctx, "GXC")
	require.NoError(t, err)
	assets, err := api.GetAssetsByID(ctx, []prototype.ObjectID{prototype.CoreAssetID})
	require.NoError(t, err)
	assert.Equal(t, "GXC", assets[0].Symbol)
	assert.EqualValues(t, 1, atomic.LoadInt32(&node.calls))

	api.Assets().Invalidate("GXC")
	_, err = api.GetAsset(ctx, "GXC")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&node.calls))

	_, err = api.GetAsset(ctx, "NOPE")
	assert.True(t, errors.Is(err, prototype.ErrAssetNotFound))
}

func TestGetAssetsByIDLargerThanCache(t *testing.T) {
	api, _ := newTestChainAPI(t, map[string]nodeHandler{
		"get_objects": func(params []json.RawMessage) (interface{}, *rpcError) {
			var ids []string
			_ = json.Unmarshal(params[0], &ids)
			out := make([]prototype.Asset, 0, len(ids))
			for _, id := range ids {
				oid := prototype.MustParseObjectID(id)
				out = append(out, prototype.Asset{ID: oid, Symbol: fmt.Sprintf("A%d", oid.Instance), Precision: 5})
			}
			return out, nil
		},
	})

	ids := make([]prototype.ObjectID, 0, DefaultAssetCacheSize)
	for i := 1; i <= DefaultAssetCacheSize; i++ {
		ids = append(ids, prototype.ObjectID{Space: 1, Type: 3, Instance: uint64(i)})
	}
	assets, err := api.GetAssetsByID(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, assets, len(ids))
	for i, asset := range assets {
		assert.Equal(t, ids[i], asset.ID)
	}
}

func TestGetRequiredFee(t *testing.T) {
	var gotAsset string
	var gotOps [][]json.RawMessage
	api, _ := newTestChainAPI(t, map[string]nodeHandler{
		"get_required_fees": func(params []json.RawMessage) (interface{}, *rpcError) {
			_ = json.Unmarshal(params[0], &gotOps)
			_ = json.Unmarshal(params[1], &gotAsset)
			return json.RawMessage(`[{"amount":1000,"asset_id":"1.3.1"}]`), nil
		},
	})

	op := &prototype.StakingClaimOperation{Owner: prototype.MustParseObjectID("1.2.17")}
	fee, err := api.GetRequiredFee(context.Background(), op, prototype.CoreAssetID)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, fee.Amount)
	assert.Equal(t, "1.3.1", gotAsset)
	require.Len(t, gotOps, 1)
	assert.Equal(t, "82", string(gotOps[0][0]))
}

func TestGetVestingBalance(t *testing.T) {
	api, _ := newTestChainAPI(t, map[string]nodeHandler{
		"get_objects": func(params []json.RawMessage) (interface{}, *rpcError) {
			return json.RawMessage(`[{"id":"1.13.4","owner":"1.2.17","balance":{"amount":"1000","asset_id":"1.3.1"},
				"policy":[1,{"vesting_seconds":1000,"coin_seconds_earned":"200","start_claim":"1970-01-01T00:00:00"}]}]`), nil
		},
	})

	vb, err := api.GetVestingBalance(context.Background(), prototype.MustParseObjectID("1.13.4"))
	require.NoError(t, err)
	assert.EqualValues(t, 1000, vb.Balance.Amount)
	assert.EqualValues(t, 1000, vb.Policy.VestingSeconds)
	assert.Equal(t, "200", vb.Policy.CoinSecondsEarned.String())
}

func TestWitnessByAccountNull(t *testing.T) {
	api, _ := newTestChainAPI(t, map[string]nodeHandler{
		"get_witness_by_account": func([]json.RawMessage) (interface{}, *rpcError) {
			return nil, nil
		},
	})
	w, err := api.GetWitnessByAccount(context.Background(), prototype.MustParseObjectID("1.2.17"))
	require.NoError(t, err)
	assert.Nil(t, w)
}

func TestBroadcastUsesBroadcastAPI(t *testing.T) {
	api, node := newTestChainAPI(t, map[string]nodeHandler{
		"broadcast_transaction_synchronous": func([]json.RawMessage) (interface{}, *rpcError) {
			return json.RawMessage(`{"id":"abcd","block_num":10,"trx_num":0,"expired":false}`), nil
		},
	})
	trx := &prototype.SignedTransaction{Trx: &prototype.Transaction{}}
	conf, err := api.Broadcast(context.Background(), trx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, conf.BlockNum)
	assert.Equal(t, BroadcastAPI, node.lastAPI.Load())
}
