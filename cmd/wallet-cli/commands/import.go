package commands

import (
	"context"
	"fmt"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils"
	"github.com/gxchain/gxwallet/config"
)

var ImportCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "import the accounts controlled by a private key",
		Long: "import the accounts whose active authority references a WIF key, " +
			"with --refs import accounts sharing a key with already stored ones",
		Example: "import [wif]\nimport --refs [account]...",
		Args:    cobra.MinimumNArgs(1),
		Run:     importAccount,
	}
	cmd.Flags().BoolP("refs", "r", false, "arguments are stored account names")
	return cmd
}

func importAccount(cmd *cobra.Command, args []string) {
	defer resetFlags(cmd)
	ctx := context.Background()
	if refs, _ := cmd.Flags().GetBool("refs"); refs {
		added, err := importer(cmd).ImportReferences(ctx, args)
		if err != nil {
			fmt.Println(err)
			return
		}
		for _, w := range added {
			fmt.Println(fmt.Sprintf("imported %s%s", w.Account, walletFlags(w)))
		}
		return
	}
	if len(args) != 1 {
		fmt.Println("import takes a single key")
		return
	}
	passphrase, err := utils.GetPassphrase(passwordReader(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	imported, err := importer(cmd).Import(ctx, args[0], passphrase)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, w := range imported {
		fmt.Println(fmt.Sprintf("imported %s%s", w.Account, walletFlags(w)))
	}
}

var CreateCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "create",
		Short:   "register a new account through the faucet",
		Example: "create [name]",
		Args:    cobra.ExactArgs(1),
		Run:     create,
	}
}

func create(cmd *cobra.Command, args []string) {
	passphrase, err := utils.GetNewPassphrase(passwordReader(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	created, err := importer(cmd).Create(context.Background(), args[0], passphrase)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("account %s created", created.Wallet.Account))
	fmt.Println(fmt.Sprintf("brain key: %s", created.BrainKey))
	fmt.Println("write the brain key down, it is the only way to recover the account")
}

var InitCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "write the current configuration to the data directory",
		Run:   initConfig,
	}
}

func initConfig(cmd *cobra.Command, args []string) {
	cfg := loadedConfig(cmd)
	if err := config.WriteConfigFile(cfg.DataDir, cfg, 0600); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("config written to %s", cfg.DataDir))
}
