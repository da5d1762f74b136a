package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/gxchain/gxwallet/db/storage"
	"github.com/gxchain/gxwallet/iservices/mock_iservices"
	"github.com/gxchain/gxwallet/mylog"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/gxchain/gxwallet/wallet"
	"github.com/gxchain/gxwallet/wallet/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testChain    = "4f7d07969c446f8342033acb3ab2ae5044cbe0fde93db02de75bd17fa8fd84b8"
	testWIF      = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	testPassword = "123456"
)

func testPub(t *testing.T) string {
	key, err := prototype.PrivateKeyFromWIF(testWIF)
	require.NoError(t, err)
	return key.PubKey().String()
}

func newTestImporter(t *testing.T, faucet string) (*Importer, *wallet.Store, *mock_iservices.MockIChainAPI, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	api := mock_iservices.NewMockIChainAPI(ctrl)
	backend, err := native.Select(native.PlatformWeb, nil, "")
	require.NoError(t, err)
	store := wallet.NewStore(storage.NewMemoryDatabase(), backend, mylog.Discard())
	return NewImporter(api, store, testChain, faucet, mylog.Discard()), store, api, ctrl
}

func account(id, name, pub string, weight uint16, threshold uint32) *prototype.Account {
	return &prototype.Account{
		ID:   prototype.MustParseObjectID(id),
		Name: name,
		Active: prototype.Authority{
			WeightThreshold: threshold,
			KeyAuths:        []prototype.KeyAuth{{Key: pub, Weight: weight}},
		},
	}
}

func TestImport(t *testing.T) {
	imp, store, api, ctrl := newTestImporter(t, "")
	defer ctrl.Finish()
	pub := testPub(t)
	ctx := context.Background()

	alice := account("1.2.17", "alice", pub, 1, 1)
	shared := account("1.2.18", "shared", pub, 1, 2)
	api.EXPECT().GetKeyReferences(gomock.Any(), []string{pub}).
		Return([][]prototype.ObjectID{{alice.ID, shared.ID, alice.ID}}, nil)
	api.EXPECT().GetAccounts(gomock.Any(), []prototype.ObjectID{alice.ID, shared.ID}).
		Return([]*prototype.Account{alice, shared}, nil)

	imported, err := imp.Import(ctx, testWIF, testPassword)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	assert.False(t, imported[0].Partial)
	assert.True(t, imported[1].Partial)

	wallets, err := store.Load(testChain)
	require.NoError(t, err)
	require.Len(t, wallets, 2)
	key, err := wallets[0].Unlock(testPassword)
	require.NoError(t, err)
	assert.Equal(t, testWIF, key.ToWIF())

	index, err := store.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
}

func TestImportReplacesExisting(t *testing.T) {
	imp, store, api, ctrl := newTestImporter(t, "")
	defer ctrl.Finish()
	pub := testPub(t)
	ctx := context.Background()

	old, err := wallet.NewWallet("alice", testWIF, "old password")
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, testChain, *old))

	alice := account("1.2.17", "alice", pub, 1, 1)
	api.EXPECT().GetKeyReferences(gomock.Any(), gomock.Any()).Return([][]prototype.ObjectID{{alice.ID}}, nil)
	api.EXPECT().GetAccounts(gomock.Any(), gomock.Any()).Return([]*prototype.Account{alice}, nil)

	_, err = imp.Import(ctx, testWIF, testPassword)
	require.NoError(t, err)
	w, err := store.Find(testChain, "alice")
	require.NoError(t, err)
	assert.NoError(t, w.CheckPassword(testPassword))
}

func TestImportNoReferences(t *testing.T) {
	imp, _, api, ctrl := newTestImporter(t, "")
	defer ctrl.Finish()

	api.EXPECT().GetKeyReferences(gomock.Any(), gomock.Any()).Return([][]prototype.ObjectID{{}}, nil)
	_, err := imp.Import(context.Background(), testWIF, testPassword)
	assert.True(t, errors.Is(err, prototype.ErrAccountNotFound))
}

func TestImportBadWIF(t *testing.T) {
	imp, _, _, ctrl := newTestImporter(t, "")
	defer ctrl.Finish()

	_, err := imp.Import(context.Background(), "not a key", testPassword)
	assert.True(t, errors.Is(err, prototype.ErrInvalidKeyFormat))
}

func TestImportReferences(t *testing.T) {
	imp, store, api, ctrl := newTestImporter(t, "")
	defer ctrl.Finish()
	pub := testPub(t)
	ctx := context.Background()

	w, err := wallet.NewWallet("alice", testWIF, testPassword)
	require.NoError(t, err)
	require.NoError(t, store.Add(ctx, testChain, *w))

	alice := account("1.2.17", "alice", pub, 1, 1)
	full := account("1.2.20", "full", pub, 3, 3)
	weak := account("1.2.21", "weak", pub, 1, 3)
	api.EXPECT().GetAccount(gomock.Any(), "alice").Return(alice, nil)
	api.EXPECT().GetKeyReferences(gomock.Any(), []string{pub}).
		Return([][]prototype.ObjectID{{alice.ID, full.ID, weak.ID}}, nil)
	api.EXPECT().GetAccounts(gomock.Any(), []prototype.ObjectID{full.ID, weak.ID}).
		Return([]*prototype.Account{full, weak}, nil)

	added, err := imp.ImportReferences(ctx, []string{"alice"})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "full", added[0].Account)
	assert.False(t, added[0].Partial)
	assert.Equal(t, "weak", added[1].Account)
	assert.True(t, added[1].Partial)

	wallets, err := store.Load(testChain)
	require.NoError(t, err)
	require.Len(t, wallets, 3)
	key, err := wallets[2].Unlock(testPassword)
	require.NoError(t, err)
	assert.Equal(t, pub, key.PubKey().String())

	// the active wallet is unchanged
	index, err := store.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 0, index)
}

func TestCreate(t *testing.T) {
	var got registerRequest
	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != registerPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"account":{"name":"newbie"}}`))
	}))
	defer faucet.Close()

	imp, store, _, ctrl := newTestImporter(t, faucet.URL+"/")
	defer ctrl.Finish()
	ctx := context.Background()

	created, err := imp.Create(ctx, "newbie", testPassword)
	require.NoError(t, err)
	assert.Equal(t, "newbie", got.Account.Name)
	assert.Equal(t, got.Account.OwnerKey, got.Account.ActiveKey)
	assert.Len(t, strings.Fields(created.BrainKey), 12)
	assert.Equal(t, strings.ToUpper(created.BrainKey), created.BrainKey)

	key, err := prototype.PrivateKeyFromBrainKey(created.BrainKey)
	require.NoError(t, err)
	assert.Equal(t, key.PubKey().String(), got.Account.ActiveKey)

	w, err := store.Find(testChain, "newbie")
	require.NoError(t, err)
	unlocked, err := w.Unlock(testPassword)
	require.NoError(t, err)
	assert.True(t, unlocked.Equal(key))
}

func TestCreateFaucetRejects(t *testing.T) {
	faucet := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"name taken"}`, http.StatusBadRequest)
	}))
	defer faucet.Close()

	imp, store, _, ctrl := newTestImporter(t, faucet.URL)
	defer ctrl.Finish()

	_, err := imp.Create(context.Background(), "taken", testPassword)
	assert.True(t, errors.Is(err, prototype.ErrTransport))
	assert.Contains(t, err.Error(), "name taken")

	wallets, err := store.Load(testChain)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
