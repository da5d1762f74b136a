package trx

import (
	"context"
	"encoding/json"
	"math"

	"github.com/gxchain/gxwallet/iservices"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"lukechampine.com/frand"
)

const DefaultCoreSymbol = "GXC"

// Options are shared by every operation
type Options struct {
	Account  string
	Password string
	// FeeSymbol overrides the asset the fee is paid in
	FeeSymbol string
	Broadcast bool
}

type TransferParams struct {
	Options
	To     string
	Amount decimal.Decimal
	Symbol string
	Memo   string
}

type LockBalanceParams struct {
	Options
	ProgramID    string
	Amount       decimal.Decimal
	InterestRate uint32
	LockDays     uint32
	Memo         string
}

type UnlockBalanceParams struct {
	Options
	LockID string
}

type StakingCreateParams struct {
	Options
	TrustNode   string
	Amount      decimal.Decimal
	ProgramID   string
	Weight      uint32
	StakingDays uint32
}

type StakingUpdateParams struct {
	Options
	TrustNode string
	StakingID string
}

type StakingClaimParams struct {
	Options
	StakingID string
}

type WithdrawVestingParams struct {
	Options
	VestingBalance string
	// ForceAll withdraws the whole balance regardless of what has vested
	ForceAll bool
}

type CallContractParams struct {
	Options
	Contract string
	Method   string
	Params   map[string]interface{}
	Amount   decimal.Decimal
	// Symbol of Amount, the core asset when empty
	Symbol string
}

type VoteParams struct {
	Options
	TrustNodes []string
	// Proxy is only used by UpdateVotes, empty means voting for self
	Proxy string
}

// Factory builds single operation transactions and runs them through the pipeline
type Factory struct {
	api        iservices.IChainAPI
	pipeline   *Pipeline
	coreSymbol string
	log        logrus.FieldLogger
}

func NewFactory(api iservices.IChainAPI, pipeline *Pipeline, coreSymbol string, log logrus.FieldLogger) *Factory {
	if coreSymbol == "" {
		coreSymbol = DefaultCoreSymbol
	}
	return &Factory{api: api, pipeline: pipeline, coreSymbol: coreSymbol, log: log}
}

// ToShare converts a display amount to minor units, dropping extra decimals
func ToShare(amount decimal.Decimal, precision uint8) (prototype.Share, error) {
	v := amount.Shift(int32(precision)).Truncate(0)
	if v.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || v.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, errors.Errorf("amount %s out of range", amount)
	}
	return prototype.Share(v.IntPart()), nil
}

func (f *Factory) symbolOrCore(symbol string) string {
	if symbol == "" {
		return f.coreSymbol
	}
	return symbol
}

// feeAsset resolves an explicit fee symbol, falling back to def
func (f *Factory) feeAsset(ctx context.Context, symbol string, def prototype.ObjectID) (prototype.ObjectID, error) {
	if symbol == "" {
		return def, nil
	}
	asset, err := f.api.GetAsset(ctx, symbol)
	if err != nil {
		return prototype.ObjectID{}, err
	}
	return asset.ID, nil
}

func (f *Factory) coreAsset(ctx context.Context) (*prototype.Asset, error) {
	assets, err := f.api.GetAssetsByID(ctx, []prototype.ObjectID{prototype.CoreAssetID})
	if err != nil {
		return nil, err
	}
	return assets[0], nil
}

func (f *Factory) trustNode(ctx context.Context, name string) (*prototype.Witness, error) {
	acc, err := f.api.GetAccount(ctx, name)
	if err != nil {
		return nil, err
	}
	w, err := f.api.GetWitnessByAccount(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, errors.Errorf("%s is not a trust node", name)
	}
	return w, nil
}

func (f *Factory) process(ctx context.Context, o Options, op prototype.Operation, feeAsset prototype.ObjectID, prepare func(*Context) error) (*Result, error) {
	op.SetFee(prototype.NewAssetAmount(0, feeAsset))
	return f.pipeline.Process(ctx, &Context{
		Account:   o.Account,
		Operation: op,
		FeeAsset:  feeAsset,
		Broadcast: o.Broadcast,
		Prepare:   prepare,
	}, o.Password)
}

func (f *Factory) Transfer(ctx context.Context, p TransferParams) (*Result, error) {
	from, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	to, err := f.api.GetAccount(ctx, p.To)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.Symbol))
	if err != nil {
		return nil, err
	}
	fee, err := f.feeAsset(ctx, p.FeeSymbol, prototype.CoreAssetID)
	if err != nil {
		return nil, err
	}
	amount, err := ToShare(p.Amount, asset.Precision)
	if err != nil {
		return nil, err
	}
	op := &prototype.TransferOperation{
		From:   from.ID,
		To:     to.ID,
		Amount: prototype.AssetAmount{Amount: amount, AssetID: asset.ID},
	}
	if err := op.Validate(); err != nil {
		return nil, err
	}
	return f.process(ctx, p.Options, op, fee, func(c *Context) error {
		if p.Memo == "" {
			return nil
		}
		fromKey, toKey := from.MemoKey(), to.MemoKey()
		if fromKey == nil || toKey == nil {
			return errors.Wrap(prototype.ErrMemoSignerMismatch, "memo keys are not set")
		}
		if !c.key.PubKey().Equal(fromKey) {
			return errors.Wrapf(prototype.ErrMemoSignerMismatch, "memo key of %s is not the unlocked key", from.Name)
		}
		op.Memo = prototype.EncryptMemo(c.key, toKey, frand.Uint64n(math.MaxUint64), []byte(p.Memo))
		return nil
	})
}

func (f *Factory) LockBalance(ctx context.Context, p LockBalanceParams) (*Result, error) {
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	objs, err := f.api.GetObjects(ctx, []prototype.ObjectID{prototype.DynamicGlobalPropertiesID})
	if err != nil {
		return nil, err
	}
	if len(objs) == 0 {
		return nil, errors.New("dynamic global properties not found")
	}
	dgp := &prototype.DynamicGlobalProperties{}
	if err := json.Unmarshal(objs[0], dgp); err != nil {
		return nil, errors.Wrap(prototype.ErrJSONFormatErr, err.Error())
	}
	core, err := f.coreAsset(ctx)
	if err != nil {
		return nil, err
	}
	amount, err := ToShare(p.Amount, core.Precision)
	if err != nil {
		return nil, err
	}
	fee, err := f.feeAsset(ctx, p.FeeSymbol, prototype.CoreAssetID)
	if err != nil {
		return nil, err
	}
	op := &prototype.BalanceLockOperation{
		Account:        acc.ID,
		CreateDateTime: dgp.Time,
		ProgramID:      p.ProgramID,
		Amount:         prototype.AssetAmount{Amount: amount, AssetID: core.ID},
		LockDays:       p.LockDays,
		InterestRate:   p.InterestRate,
		Memo:           p.Memo,
	}
	return f.process(ctx, p.Options, op, fee, nil)
}

func (f *Factory) UnlockBalance(ctx context.Context, p UnlockBalanceParams) (*Result, error) {
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	fee, err := f.feeAsset(ctx, p.FeeSymbol, prototype.CoreAssetID)
	if err != nil {
		return nil, err
	}
	op := &prototype.BalanceUnlockOperation{Account: acc.ID, LockID: p.LockID}
	return f.process(ctx, p.Options, op, fee, nil)
}

func (f *Factory) StakingCreate(ctx context.Context, p StakingCreateParams) (*Result, error) {
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	node, err := f.trustNode(ctx, p.TrustNode)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.FeeSymbol))
	if err != nil {
		return nil, err
	}
	amount, err := ToShare(p.Amount, asset.Precision)
	if err != nil {
		return nil, err
	}
	op := &prototype.StakingCreateOperation{
		Owner:       acc.ID,
		TrustNode:   node.ID,
		Amount:      prototype.AssetAmount{Amount: amount, AssetID: asset.ID},
		ProgramID:   p.ProgramID,
		Weight:      p.Weight,
		StakingDays: p.StakingDays,
	}
	return f.process(ctx, p.Options, op, asset.ID, nil)
}

func (f *Factory) StakingUpdate(ctx context.Context, p StakingUpdateParams) (*Result, error) {
	stakingID, err := prototype.ParseObjectID(p.StakingID)
	if err != nil {
		return nil, err
	}
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	node, err := f.trustNode(ctx, p.TrustNode)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.FeeSymbol))
	if err != nil {
		return nil, err
	}
	op := &prototype.StakingUpdateOperation{Owner: acc.ID, TrustNode: node.ID, StakingID: stakingID}
	return f.process(ctx, p.Options, op, asset.ID, nil)
}

func (f *Factory) StakingClaim(ctx context.Context, p StakingClaimParams) (*Result, error) {
	stakingID, err := prototype.ParseObjectID(p.StakingID)
	if err != nil {
		return nil, err
	}
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.FeeSymbol))
	if err != nil {
		return nil, err
	}
	op := &prototype.StakingClaimOperation{Owner: acc.ID, StakingID: stakingID}
	return f.process(ctx, p.Options, op, asset.ID, nil)
}

// WithdrawableVesting is how much of vb can be withdrawn now:
// floor(balance * earned / (vesting_seconds * balance)), capped at balance.
func WithdrawableVesting(vb *prototype.VestingBalance, forceAll bool) prototype.Share {
	balance := decimal.NewFromInt(int64(vb.Balance.Amount))
	if forceAll || vb.Balance.Amount <= 0 {
		return vb.Balance.Amount
	}
	if vb.Policy.VestingSeconds == 0 {
		return vb.Balance.Amount
	}
	denom := decimal.NewFromInt(int64(vb.Policy.VestingSeconds)).Mul(balance)
	q, _ := balance.Mul(vb.Policy.CoinSecondsEarned).QuoRem(denom, 0)
	if q.GreaterThan(balance) {
		return vb.Balance.Amount
	}
	if q.IsNegative() {
		return 0
	}
	return prototype.Share(q.IntPart())
}

func (f *Factory) WithdrawVesting(ctx context.Context, p WithdrawVestingParams) (*Result, error) {
	id, err := prototype.ParseObjectID(p.VestingBalance)
	if err != nil {
		return nil, err
	}
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.FeeSymbol))
	if err != nil {
		return nil, err
	}
	vb, err := f.api.GetVestingBalance(ctx, id)
	if err != nil {
		return nil, err
	}
	op := &prototype.VestingBalanceWithdrawOperation{
		VestingBalance: vb.ID,
		Owner:          acc.ID,
		Amount:         prototype.AssetAmount{Amount: WithdrawableVesting(vb, p.ForceAll), AssetID: vb.Balance.AssetID},
	}
	return f.process(ctx, p.Options, op, asset.ID, nil)
}

func (f *Factory) CallContract(ctx context.Context, p CallContractParams) (*Result, error) {
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	contract, err := f.api.GetAccount(ctx, p.Contract)
	if err != nil {
		return nil, err
	}
	if contract.Abi == nil {
		return nil, errors.Wrapf(prototype.ErrAbi, "%s is not a contract", p.Contract)
	}
	data, err := contract.Abi.EncodeAction(p.Method, p.Params)
	if err != nil {
		return nil, err
	}

	amount := prototype.NewAssetAmount(0, prototype.CoreAssetID)
	if !p.Amount.IsZero() {
		asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.Symbol))
		if err != nil {
			return nil, err
		}
		share, err := ToShare(p.Amount, asset.Precision)
		if err != nil {
			return nil, err
		}
		amount = prototype.AssetAmount{Amount: share, AssetID: asset.ID}
	}
	fee, err := f.feeAsset(ctx, p.FeeSymbol, amount.AssetID)
	if err != nil {
		return nil, err
	}

	op := &prototype.CallContractOperation{
		Account:    acc.ID,
		ContractID: contract.ID,
		MethodName: p.Method,
		Data:       data,
	}
	if action, ok := contract.Abi.Action(p.Method); ok && action.Payable && amount.NonZero() {
		op.Amount = &amount
	}
	return f.process(ctx, p.Options, op, fee, nil)
}

// candidateVotes collects the witness and committee vote ids of trust nodes.
// Accounts that are neither contribute nothing.
func (f *Factory) candidateVotes(ctx context.Context, names []string) ([]prototype.VoteID, error) {
	var votes []prototype.VoteID
	for _, name := range names {
		acc, err := f.api.GetAccount(ctx, name)
		if err != nil {
			return nil, err
		}
		w, err := f.api.GetWitnessByAccount(ctx, acc.ID)
		if err != nil {
			return nil, err
		}
		if w != nil {
			votes = append(votes, w.VoteID)
		}
		m, err := f.api.GetCommitteeMemberByAccount(ctx, acc.ID)
		if err != nil {
			return nil, err
		}
		if m != nil {
			votes = append(votes, m.VoteID)
		}
	}
	return votes, nil
}

// voteOptions caps the vote counts by the chain maxima and sorts the votes
func voteOptions(memoKey string, voting prototype.ObjectID, votes []prototype.VoteID, params prototype.ChainParameters) *prototype.AccountOptions {
	committee, witness := prototype.CountVotes(votes)
	if committee > int(params.MaximumCommitteeCount) {
		committee = int(params.MaximumCommitteeCount)
	}
	if witness > int(params.MaximumWitnessCount) {
		witness = int(params.MaximumWitnessCount)
	}
	prototype.SortVotes(votes)
	return &prototype.AccountOptions{
		MemoKey:       memoKey,
		VotingAccount: voting,
		NumWitness:    uint16(witness),
		NumCommittee:  uint16(committee),
		Votes:         votes,
	}
}

func (f *Factory) vote(ctx context.Context, p VoteParams, build func(acc *prototype.Account, votes []prototype.VoteID) (prototype.ObjectID, []prototype.VoteID, error)) (*Result, error) {
	acc, err := f.api.GetAccount(ctx, p.Account)
	if err != nil {
		return nil, err
	}
	props, err := f.api.GetGlobalProperties(ctx)
	if err != nil {
		return nil, err
	}
	asset, err := f.api.GetAsset(ctx, f.symbolOrCore(p.FeeSymbol))
	if err != nil {
		return nil, err
	}
	candidates, err := f.candidateVotes(ctx, p.TrustNodes)
	if err != nil {
		return nil, err
	}
	voting, votes, err := build(acc, candidates)
	if err != nil {
		return nil, err
	}
	f.log.WithFields(logrus.Fields{"account": acc.Name, "votes": len(votes)}).Debug("updating votes")
	op := &prototype.AccountUpdateOperation{
		Account:    acc.ID,
		NewOptions: voteOptions(acc.Options.MemoKey, voting, prototype.UniqueVotes(votes), props.Parameters),
	}
	return f.process(ctx, p.Options, op, asset.ID, nil)
}

// UpdateVotes replaces the account's votes with the trust nodes given
func (f *Factory) UpdateVotes(ctx context.Context, p VoteParams) (*Result, error) {
	return f.vote(ctx, p, func(_ *prototype.Account, votes []prototype.VoteID) (prototype.ObjectID, []prototype.VoteID, error) {
		if p.Proxy == "" {
			return prototype.ProxyToSelfAccount, votes, nil
		}
		proxy, err := f.api.GetAccount(ctx, p.Proxy)
		if err != nil {
			return prototype.ObjectID{}, nil, err
		}
		return proxy.ID, votes, nil
	})
}

// SimpleVote adds the trust nodes to the account's current votes, keeping its proxy
func (f *Factory) SimpleVote(ctx context.Context, p VoteParams) (*Result, error) {
	return f.vote(ctx, p, func(acc *prototype.Account, votes []prototype.VoteID) (prototype.ObjectID, []prototype.VoteID, error) {
		voting := acc.Options.VotingAccount
		if voting.IsZero() {
			voting = prototype.ProxyToSelfAccount
		}
		return voting, append(votes, acc.Options.Votes...), nil
	})
}
