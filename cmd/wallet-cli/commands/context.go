package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/account"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils"
	"github.com/gxchain/gxwallet/config"
	"github.com/gxchain/gxwallet/iservices"
	"github.com/gxchain/gxwallet/trx"
	"github.com/gxchain/gxwallet/wallet"
	"github.com/spf13/pflag"
)

// keys of cobra.Command.Context
const (
	CtxConfig   = "config"
	CtxChainID  = "chainid"
	CtxStore    = "store"
	CtxChain    = "chain"
	CtxPipeline = "pipeline"
	CtxFactory  = "factory"
	CtxImporter = "importer"
	CtxReader   = "preader"
)

func chainID(cmd *cobra.Command) string {
	return cmd.Context[CtxChainID].(string)
}

func walletStore(cmd *cobra.Command) *wallet.Store {
	return cmd.Context[CtxStore].(*wallet.Store)
}

func chainAPI(cmd *cobra.Command) iservices.IChainAPI {
	return cmd.Context[CtxChain].(iservices.IChainAPI)
}

func pipeline(cmd *cobra.Command) *trx.Pipeline {
	return cmd.Context[CtxPipeline].(*trx.Pipeline)
}

func factory(cmd *cobra.Command) *trx.Factory {
	return cmd.Context[CtxFactory].(*trx.Factory)
}

func importer(cmd *cobra.Command) *account.Importer {
	return cmd.Context[CtxImporter].(*account.Importer)
}

func passwordReader(cmd *cobra.Command) utils.PasswordReader {
	return cmd.Context[CtxReader].(utils.PasswordReader)
}

func loadedConfig(cmd *cobra.Command) config.Config {
	return cmd.Context[CtxConfig].(config.Config)
}

func printJSON(v interface{}) {
	buf, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(buf))
}

// addTrxFlags adds --dry and --fee to a command that builds a transaction
func addTrxFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dry", "d", false, "sign without broadcasting and print the transaction")
	cmd.Flags().StringP("fee", "f", "", "pay the fee in this asset")
}

// resetFlags restores defaults so the next command in the shell starts clean
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// trxOptions reads the account password and the shared transaction flags
func trxOptions(cmd *cobra.Command, accountName string) (trx.Options, error) {
	dry, _ := cmd.Flags().GetBool("dry")
	fee, _ := cmd.Flags().GetString("fee")
	passphrase, err := utils.GetPassphrase(passwordReader(cmd))
	if err != nil {
		return trx.Options{}, err
	}
	return trx.Options{
		Account:   accountName,
		Password:  passphrase,
		FeeSymbol: fee,
		Broadcast: !dry,
	}, nil
}

func printResult(res *trx.Result) {
	if res.Confirmation != nil {
		fmt.Println(fmt.Sprintf("Result: trx %s in block %d", res.Confirmation.ID, res.Confirmation.BlockNum))
		return
	}
	printJSON(res.Transaction)
}

// runTrx wraps a transaction command: it reads the shared options, runs build
// and prints the outcome
func runTrx(build func(ctx context.Context, cmd *cobra.Command, o trx.Options, args []string) (*trx.Result, error)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		defer resetFlags(cmd)
		o, err := trxOptions(cmd, args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		res, err := build(context.Background(), cmd, o, args)
		if err != nil {
			fmt.Println(err)
			return
		}
		printResult(res)
	}
}
