package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/prototype"
	"github.com/shopspring/decimal"
)

var BalanceCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "balance",
		Short:   "show the balances of an account",
		Example: "balance [account]",
		Args:    cobra.ExactArgs(1),
		Run:     balance,
	}
}

func balance(cmd *cobra.Command, args []string) {
	api := chainAPI(cmd)
	ctx := context.Background()
	acc, err := api.GetAccount(ctx, args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	balances, err := api.GetAccountBalances(ctx, acc.ID)
	if err != nil {
		fmt.Println(err)
		return
	}
	ids := make([]prototype.ObjectID, 0, len(balances))
	for _, b := range balances {
		ids = append(ids, b.AssetID)
	}
	assets, err := api.GetAssetsByID(ctx, ids)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, b := range balances {
		amount := decimal.New(int64(b.Amount), -int32(assets[i].Precision))
		fmt.Println(fmt.Sprintf("%s %s", amount.StringFixed(int32(assets[i].Precision)), assets[i].Symbol))
	}
}
