package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/gxchain/gxwallet/db/storage"
	"github.com/gxchain/gxwallet/mylog"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/gxchain/gxwallet/wallet/native"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChain = "4f7d07969c446f8342033acb3ab2ae5044cbe0fde93db02de75bd17fa8fd84b8"

type failingHost struct {
	calls int
}

func (h *failingHost) Exec(context.Context, string, string, ...string) (string, error) {
	h.calls++
	return "", errors.New("cordova exec failed")
}

func newTestStore(t *testing.T, platform string, host native.Host) *Store {
	backend, err := native.Select(platform, host, "")
	require.NoError(t, err)
	return NewStore(storage.NewMemoryDatabase(), backend, mylog.Discard())
}

func names(wallets []Wallet) []string {
	out := make([]string, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, w.Account)
	}
	return out
}

func TestLoadEmpty(t *testing.T) {
	s := newTestStore(t, native.PlatformWeb, nil)
	wallets, err := s.Load(testChain)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

func TestSaveLoadPerChain(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)

	require.NoError(t, s.Save(ctx, "chainA", []Wallet{{Account: "alice"}}))
	require.NoError(t, s.Save(ctx, "chainB", []Wallet{{Account: "bob"}, {Account: "carol"}}))

	a, err := s.Load("chainA")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names(a))
	b, err := s.Load("chainB")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "carol"}, names(b))
}

func TestSaveMirrorsToNative(t *testing.T) {
	ctx := context.Background()
	nativeDB := storage.NewMemoryDatabase()
	host := native.NewDBHost(nativeDB)
	s := newTestStore(t, native.PlatformAndroid, host)

	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "alice"}}))
	raw, err := host.Exec(ctx, "AppConfig", "get", "gxb_wallets_"+testChain)
	require.NoError(t, err)
	var mirrored []Wallet
	require.NoError(t, json.Unmarshal([]byte(raw), &mirrored))
	assert.Equal(t, []string{"alice"}, names(mirrored))
}

func TestSaveIgnoresNativeFailure(t *testing.T) {
	ctx := context.Background()
	host := &failingHost{}
	s := newTestStore(t, native.PlatformIOS, host)

	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "alice"}}))
	assert.Equal(t, 1, host.calls)
	wallets, err := s.Load(testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names(wallets))
}

func TestBackupOnce(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)

	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "good"}}))
	require.NoError(t, s.BackupOnce(testChain))
	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "corrupt"}}))
	require.NoError(t, s.BackupOnce(testChain))

	backup, err := s.Backup(testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, names(backup))

	// a new process finds the slot taken
	s2 := NewStore(s.db, s.backend, mylog.Discard())
	require.NoError(t, s2.BackupOnce(testChain))
	backup, err = s2.Backup(testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, names(backup))
}

func TestMergeNativeWins(t *testing.T) {
	ctx := context.Background()
	host := native.NewDBHost(storage.NewMemoryDatabase())
	s := newTestStore(t, native.PlatformAndroid, host)

	local := []Wallet{
		{Account: "alice", EncryptionKey: "local"},
		{Account: "bob", EncryptionKey: "local"},
	}
	remote := []Wallet{
		{Account: "carol", EncryptionKey: "native"},
		{Account: "alice", EncryptionKey: "native"},
	}
	data, _ := json.Marshal(remote)
	_, err := host.Exec(ctx, "AppConfig", "set", "gxb_wallets_"+testChain, string(data))
	require.NoError(t, err)
	data, _ = json.Marshal(local)
	require.NoError(t, storage.NewScope(s.db, testChain).Put([]byte(walletsKey), data))

	merged, err := s.Merge(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, names(merged))
	assert.Equal(t, "native", merged[0].EncryptionKey)
	assert.Equal(t, "local", merged[1].EncryptionKey)

	persisted, err := s.Load(testChain)
	require.NoError(t, err)
	assert.Equal(t, merged, persisted)
}

func TestMergeWallets(t *testing.T) {
	merged := mergeWallets(nil, []Wallet{{Account: "a"}, {Account: "a"}, {Account: "b"}})
	assert.Equal(t, []string{"a", "b"}, names(merged))

	merged = mergeWallets([]Wallet{{Account: "a"}}, nil)
	assert.Equal(t, []string{"a"}, names(merged))
}

func TestMergeNonNative(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)
	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "alice"}}))

	merged, err := s.Merge(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names(merged))
}

func TestMergeBridgeFailure(t *testing.T) {
	ctx := context.Background()
	host := &failingHost{}
	s := newTestStore(t, native.PlatformIOS, host)

	_, err := s.Merge(ctx, testChain)
	assert.True(t, errors.Is(err, prototype.ErrNativeBridge))
}

func TestMergeOnceRetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	host := &failingHost{}
	s := newTestStore(t, native.PlatformIOS, host)
	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "alice"}}))
	host.calls = 0

	wallets, err := s.MergeOnce(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, names(wallets))
	_, err = s.MergeOnce(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 2, host.calls)
}

func TestMergeOnceRunsOnce(t *testing.T) {
	ctx := context.Background()
	host := native.NewDBHost(storage.NewMemoryDatabase())
	s := newTestStore(t, native.PlatformAndroid, host)

	data, _ := json.Marshal([]Wallet{{Account: "carol"}})
	_, err := host.Exec(ctx, "AppConfig", "set", "gxb_wallets_"+testChain, string(data))
	require.NoError(t, err)

	wallets, err := s.MergeOnce(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, names(wallets))

	data, _ = json.Marshal([]Wallet{{Account: "dave"}})
	_, err = host.Exec(ctx, "AppConfig", "set", "gxb_wallets_"+testChain, string(data))
	require.NoError(t, err)

	// native now holds dave but the session already merged
	wallets, err = s.MergeOnce(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, names(wallets))
}

func TestActiveIndexClamped(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)

	i, err := s.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	require.NoError(t, s.SetActiveIndex(ctx, testChain, 5))
	i, err = s.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Add(ctx, testChain, Wallet{Account: name}))
	}
	i, err = s.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	require.NoError(t, s.SetActiveIndex(ctx, testChain, 10))
	i, _ = s.ActiveIndex(ctx, testChain)
	assert.Equal(t, 2, i)
	require.NoError(t, s.SetActiveIndex(ctx, testChain, -3))
	i, _ = s.ActiveIndex(ctx, testChain)
	assert.Equal(t, 0, i)

	require.NoError(t, s.SetActiveIndex(ctx, testChain, 2))
	require.NoError(t, s.Delete(ctx, testChain, "c"))
	require.NoError(t, s.Delete(ctx, testChain, "b"))
	i, _ = s.ActiveIndex(ctx, testChain)
	assert.Equal(t, 0, i)
	require.NoError(t, s.Delete(ctx, testChain, "a"))
	i, _ = s.ActiveIndex(ctx, testChain)
	assert.Equal(t, 0, i)
}

func TestActiveIndexCorrectsStoredValue(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)
	require.NoError(t, s.Save(ctx, testChain, []Wallet{{Account: "a"}, {Account: "b"}}))
	require.NoError(t, storage.NewScope(s.db, testChain).Put([]byte(indexKey), []byte("7")))

	i, err := s.ActiveIndex(ctx, testChain)
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	raw, err := storage.NewScope(s.db, testChain).Get([]byte(indexKey))
	require.NoError(t, err)
	assert.Equal(t, "1", string(raw))
}

func TestDisclaimer(t *testing.T) {
	s := newTestStore(t, native.PlatformWeb, nil)

	ok, err := s.AcceptedDisclaimer(testChain)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetAcceptedDisclaimer(testChain, true))
	ok, _ = s.AcceptedDisclaimer(testChain)
	assert.True(t, ok)
	ok, _ = s.AcceptedDisclaimer("otherchain")
	assert.False(t, ok)

	require.NoError(t, s.SetAcceptedDisclaimer(testChain, false))
	ok, _ = s.AcceptedDisclaimer(testChain)
	assert.False(t, ok)
	has, _ := s.db.Has([]byte("gxb_disclaimer_accepted_" + testChain))
	assert.False(t, has)
}

func TestAddUpdateDeleteFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)

	require.NoError(t, s.Add(ctx, testChain, Wallet{Account: "alice", EncryptionKey: "1"}))
	require.NoError(t, s.Add(ctx, testChain, Wallet{Account: "bob"}))
	require.NoError(t, s.Add(ctx, testChain, Wallet{Account: "alice", EncryptionKey: "2"}))

	wallets, _ := s.Load(testChain)
	assert.Equal(t, []string{"alice", "bob"}, names(wallets))
	i, _ := s.ActiveIndex(ctx, testChain)
	assert.Equal(t, 0, i)

	w, err := s.Find(testChain, "alice")
	require.NoError(t, err)
	assert.Equal(t, "2", w.EncryptionKey)

	require.NoError(t, s.Update(ctx, testChain, Wallet{Account: "bob", Partial: true}))
	w, _ = s.Find(testChain, "bob")
	assert.True(t, w.Partial)

	assert.True(t, errors.Is(s.Update(ctx, testChain, Wallet{Account: "zed"}), prototype.ErrAccountNotFound))
	assert.True(t, errors.Is(s.Delete(ctx, testChain, "zed"), prototype.ErrAccountNotFound))
	_, err = s.Find(testChain, "zed")
	assert.True(t, errors.Is(err, prototype.ErrAccountNotFound))

	require.NoError(t, s.Delete(ctx, testChain, "alice"))
	wallets, _ = s.Load(testChain)
	assert.Equal(t, []string{"bob"}, names(wallets))
}

func TestMarkBackedUp(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, native.PlatformWeb, nil)
	require.NoError(t, s.Add(ctx, testChain, Wallet{Account: "alice"}))

	at := time.Date(2019, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkBackedUp(ctx, testChain, "alice", at))
	w, err := s.Find(testChain, "alice")
	require.NoError(t, err)
	require.NotNil(t, w.BackupDate)
	assert.True(t, at.Equal(*w.BackupDate))
}
