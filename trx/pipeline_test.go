package trx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gxchain/gxwallet/common/crypto"
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
	testPassword = "correct horse"
)

var (
	aliceID = prototype.MustParseObjectID("1.2.17")
	bobID   = prototype.MustParseObjectID("1.2.18")
)

func testKey(t *testing.T) *prototype.PrivateKeyType {
	key, err := prototype.PrivateKeyFromWIF(testWIF)
	require.NoError(t, err)
	return key
}

func newTestWallets(t *testing.T, partial ...string) *wallet.Store {
	backend, err := native.Select(native.PlatformWeb, nil, "")
	require.NoError(t, err)
	store := wallet.NewStore(storage.NewMemoryDatabase(), backend, mylog.Discard())
	w, err := wallet.NewWallet("alice", testWIF, testPassword)
	require.NoError(t, err)
	require.NoError(t, store.Add(context.Background(), testChain, *w))
	for _, name := range partial {
		require.NoError(t, store.Add(context.Background(), testChain, w.CloneAs(name, true)))
	}
	return store
}

func testHead() *prototype.DynamicGlobalProperties {
	return &prototype.DynamicGlobalProperties{
		ID:              prototype.DynamicGlobalPropertiesID,
		HeadBlockNumber: 0x0102a0b0,
		HeadBlockID:     "0102a0b0112233445566778899aabbccddeeff00",
		Time:            prototype.NewTimePointSec(time.Date(2019, 3, 1, 8, 0, 0, 0, time.UTC)),
	}
}

func newTestPipeline(t *testing.T) (*Pipeline, *mock_iservices.MockIChainAPI, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	api := mock_iservices.NewMockIChainAPI(ctrl)
	return NewPipeline(api, newTestWallets(t, "carol"), testChain, 0, mylog.Discard()), api, ctrl
}

func expectResolve(api *mock_iservices.MockIChainAPI, fee int64) {
	api.EXPECT().GetHeadBlock(gomock.Any()).Return(testHead(), nil)
	api.EXPECT().GetRequiredFee(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ prototype.Operation, asset prototype.ObjectID) (prototype.AssetAmount, error) {
			return prototype.NewAssetAmount(fee, asset), nil
		})
}

func claimContext(broadcast bool) *Context {
	return &Context{
		Account:   "alice",
		Operation: &prototype.StakingClaimOperation{Owner: aliceID, StakingID: prototype.MustParseObjectID("1.27.3")},
		FeeAsset:  prototype.CoreAssetID,
		Broadcast: broadcast,
	}
}

func TestProcessBroadcasts(t *testing.T) {
	p, api, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	expectResolve(api, 100)
	api.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(&prototype.Confirmation{ID: "ab", BlockNum: 7}, nil)

	res, err := p.Process(context.Background(), claimContext(true), testPassword)
	require.NoError(t, err)
	require.NotNil(t, res.Confirmation)
	assert.EqualValues(t, 7, res.Confirmation.BlockNum)

	trx := res.Transaction
	assert.EqualValues(t, 0xa0b0, trx.Trx.RefBlockNum)
	assert.EqualValues(t, 0x44332211, trx.Trx.RefBlockPrefix)
	assert.True(t, trx.Trx.Expiration.UtcSeconds >= testHead().Time.UtcSeconds+DefaultExpirationSeconds)
	assert.Equal(t, prototype.NewAssetAmount(100, prototype.CoreAssetID), trx.Trx.Operations[0].GetFee())
	require.Len(t, trx.Signatures, 1)
	assert.True(t, trx.VerifySig(testKey(t).PubKey(), testChain))
}

func TestProcessWithoutBroadcast(t *testing.T) {
	p, api, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	expectResolve(api, 100)

	res, err := p.Process(context.Background(), claimContext(false), testPassword)
	require.NoError(t, err)
	assert.Nil(t, res.Confirmation)
	assert.NotNil(t, res.Transaction)
}

func TestProcessRunsPrepareAfterUnlock(t *testing.T) {
	p, api, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	expectResolve(api, 100)

	c := claimContext(false)
	var sawKey bool
	c.Prepare = func(c *Context) error {
		sawKey = c.key != nil
		assert.Nil(t, c.HeadBlock)
		return nil
	}
	_, err := p.Process(context.Background(), c, testPassword)
	require.NoError(t, err)
	assert.True(t, sawKey)
}

func TestProcessPrepareFailureAborts(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	c := claimContext(true)
	c.Prepare = func(*Context) error {
		return prototype.ErrMemoSignerMismatch
	}
	_, err := p.Process(context.Background(), c, testPassword)
	assert.True(t, errors.Is(err, prototype.ErrMemoSignerMismatch))
}

func TestProcessWrongPassword(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	_, err := p.Process(context.Background(), claimContext(true), "wrong")
	assert.True(t, errors.Is(err, prototype.ErrInvalidPassword))
}

func TestProcessUnknownAccount(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	c := claimContext(true)
	c.Account = "nobody"
	_, err := p.Process(context.Background(), c, testPassword)
	assert.True(t, errors.Is(err, prototype.ErrAccountNotFound))
}

func TestProcessPartialWallet(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	c := claimContext(true)
	c.Account = "carol"
	_, err := p.Process(context.Background(), c, testPassword)
	assert.True(t, errors.Is(err, prototype.ErrInsufficientAuthorityWeight))
}

func TestProcessResolveFailure(t *testing.T) {
	p, api, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	api.EXPECT().GetHeadBlock(gomock.Any()).Return(nil, prototype.ErrTransport)
	api.EXPECT().GetRequiredFee(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(prototype.NewAssetAmount(100, prototype.CoreAssetID), nil).AnyTimes()

	_, err := p.Process(context.Background(), claimContext(true), testPassword)
	assert.True(t, errors.Is(err, prototype.ErrTransport))
}

func TestProcessBroadcastFailure(t *testing.T) {
	p, api, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	expectResolve(api, 100)
	api.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(nil, prototype.ErrTransport)

	_, err := p.Process(context.Background(), claimContext(true), testPassword)
	assert.True(t, errors.Is(err, prototype.ErrTransport))
}

func TestSignRequiresUnlock(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	c := claimContext(false)
	c.HeadBlock = testHead()
	_, err := p.Sign(c)
	assert.Error(t, err)
}

func TestSignArbitrary(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	data := []byte("login:1551427200")
	sigHex, err := p.SignArbitrary("alice", testPassword, data)
	require.NoError(t, err)
	sig, err := hex.DecodeString(sigHex)
	require.NoError(t, err)
	require.Len(t, sig, 65)

	digest := sha256.Sum256(data)
	pub, err := prototype.RecoverPublicKey(digest[:], sig)
	require.NoError(t, err)
	assert.True(t, pub.Equal(testKey(t).PubKey()))

	// partial wallets may still sign arbitrary data
	_, err = p.SignArbitrary("carol", testPassword, data)
	assert.NoError(t, err)

	_, err = p.SignArbitrary("alice", testPassword, []byte(strings.Repeat("x", MaxArbitraryDataLen+1)))
	assert.Error(t, err)

	_, err = p.SignArbitrary("alice", "wrong", data)
	assert.True(t, errors.Is(err, prototype.ErrInvalidPassword))
}

func TestSignArbitraryIsCanonical(t *testing.T) {
	p, _, ctrl := newTestPipeline(t)
	defer ctrl.Finish()

	pub := testKey(t).PubKey()
	for i := 0; i < 200; i++ {
		data := []byte(fmt.Sprintf("msg-%d", i))
		sigHex, err := p.SignArbitrary("alice", testPassword, data)
		require.NoError(t, err)
		sig, err := hex.DecodeString(sigHex)
		require.NoError(t, err)
		require.True(t, crypto.IsCanonical(sig), "msg-%d", i)

		digest := sha256.Sum256(data)
		recovered, err := prototype.RecoverPublicKey(digest[:], sig)
		require.NoError(t, err)
		assert.True(t, recovered.Equal(pub), "msg-%d", i)
	}
}
