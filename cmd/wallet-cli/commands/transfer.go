package commands

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/trx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var TransferCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   "transfer to another account",
		Example: "transfer [from] [to] [amount] [symbol] [memo]",
		Args:    cobra.RangeArgs(4, 5),
		Run:     runTrx(transfer),
	}
	addTrxFlags(cmd)
	return cmd
}

func transfer(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return nil, err
	}
	p := trx.TransferParams{Options: o, To: args[1], Amount: amount, Symbol: args[3]}
	if len(args) > 4 {
		p.Memo = args[4]
	}
	return factory(cmd).Transfer(ctx, p)
}

var LockCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lock",
		Short:   "lock core asset balance into a program",
		Example: "lock [account] [program_id] [amount] [interest_rate] [lock_days] [memo]",
		Args:    cobra.RangeArgs(5, 6),
		Run:     runTrx(lockBalance),
	}
	addTrxFlags(cmd)
	return cmd
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

func lockBalance(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return nil, err
	}
	rate, err := parseUint32(args[3])
	if err != nil {
		return nil, err
	}
	days, err := parseUint32(args[4])
	if err != nil {
		return nil, err
	}
	p := trx.LockBalanceParams{Options: o, ProgramID: args[1], Amount: amount, InterestRate: rate, LockDays: days}
	if len(args) > 5 {
		p.Memo = args[5]
	}
	return factory(cmd).LockBalance(ctx, p)
}

var UnlockBalanceCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unlock_balance",
		Short:   "unlock a locked balance",
		Example: "unlock_balance [account] [lock_id]",
		Args:    cobra.ExactArgs(2),
		Run:     runTrx(unlockBalance),
	}
	addTrxFlags(cmd)
	return cmd
}

func unlockBalance(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	return factory(cmd).UnlockBalance(ctx, trx.UnlockBalanceParams{Options: o, LockID: args[1]})
}

var StakeCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stake",
		Short:   "stake to a trust node",
		Example: "stake [account] [trust_node] [amount] [program_id] [weight] [staking_days]",
		Args:    cobra.ExactArgs(6),
		Run:     runTrx(stake),
	}
	addTrxFlags(cmd)
	return cmd
}

func stake(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	amount, err := decimal.NewFromString(args[2])
	if err != nil {
		return nil, err
	}
	weight, err := parseUint32(args[4])
	if err != nil {
		return nil, err
	}
	days, err := parseUint32(args[5])
	if err != nil {
		return nil, err
	}
	return factory(cmd).StakingCreate(ctx, trx.StakingCreateParams{
		Options:     o,
		TrustNode:   args[1],
		Amount:      amount,
		ProgramID:   args[3],
		Weight:      weight,
		StakingDays: days,
	})
}

var StakeUpdateCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stake_update",
		Short:   "move a stake to another trust node",
		Example: "stake_update [account] [trust_node] [staking_id]",
		Args:    cobra.ExactArgs(3),
		Run:     runTrx(stakeUpdate),
	}
	addTrxFlags(cmd)
	return cmd
}

func stakeUpdate(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	return factory(cmd).StakingUpdate(ctx, trx.StakingUpdateParams{Options: o, TrustNode: args[1], StakingID: args[2]})
}

var StakeClaimCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stake_claim",
		Short:   "claim an expired stake",
		Example: "stake_claim [account] [staking_id]",
		Args:    cobra.ExactArgs(2),
		Run:     runTrx(stakeClaim),
	}
	addTrxFlags(cmd)
	return cmd
}

func stakeClaim(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	return factory(cmd).StakingClaim(ctx, trx.StakingClaimParams{Options: o, StakingID: args[1]})
}

var VestingCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vesting",
		Short:   "withdraw the vested part of a vesting balance",
		Example: "vesting [account] [vesting_balance_id]",
		Args:    cobra.ExactArgs(2),
		Run:     runTrx(vesting),
	}
	addTrxFlags(cmd)
	cmd.Flags().BoolP("all", "a", false, "withdraw the whole balance")
	return cmd
}

func vesting(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	all, _ := cmd.Flags().GetBool("all")
	return factory(cmd).WithdrawVesting(ctx, trx.WithdrawVestingParams{Options: o, VestingBalance: args[1], ForceAll: all})
}

var CallCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "call",
		Short:   "call a contract action",
		Example: `call [account] [contract] [method] '{"to":"bob"}' --amount 1.5 --asset GXC`,
		Args:    cobra.RangeArgs(3, 4),
		Run:     runTrx(call),
	}
	addTrxFlags(cmd)
	cmd.Flags().StringP("amount", "m", "0", "amount sent to a payable action")
	cmd.Flags().StringP("asset", "s", "", "asset of --amount, the core asset by default")
	return cmd
}

func call(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	raw, _ := cmd.Flags().GetString("amount")
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	symbol, _ := cmd.Flags().GetString("asset")
	params := map[string]interface{}{}
	if len(args) > 3 {
		if err := json.Unmarshal([]byte(args[3]), &params); err != nil {
			return nil, errors.Wrap(err, "params must be a json object")
		}
	}
	return factory(cmd).CallContract(ctx, trx.CallContractParams{
		Options:  o,
		Contract: args[1],
		Method:   args[2],
		Params:   params,
		Amount:   amount,
		Symbol:   symbol,
	})
}

var VoteCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vote",
		Short:   "replace the votes of an account",
		Example: "vote [account] [trust_node]... --proxy [account]",
		Args:    cobra.MinimumNArgs(1),
		Run:     runTrx(vote),
	}
	addTrxFlags(cmd)
	cmd.Flags().StringP("proxy", "p", "", "let this account vote instead")
	return cmd
}

func vote(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	proxy, _ := cmd.Flags().GetString("proxy")
	return factory(cmd).UpdateVotes(ctx, trx.VoteParams{Options: o, TrustNodes: args[1:], Proxy: proxy})
}

var SimpleVoteCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "simple_vote",
		Short:   "add trust nodes to the votes of an account",
		Example: "simple_vote [account] [trust_node]...",
		Args:    cobra.MinimumNArgs(2),
		Run:     runTrx(simpleVote),
	}
	addTrxFlags(cmd)
	return cmd
}

func simpleVote(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error) {
	return factory(cmd).SimpleVote(ctx, trx.VoteParams{Options: o, TrustNodes: args[1:]})
}
