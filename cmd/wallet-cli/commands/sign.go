package commands

import (
	"fmt"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils"
)

var SignCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "sign",
		Short:   "sign up to 64 bytes of text with an account key",
		Example: "sign [account] [text]",
		Args:    cobra.ExactArgs(2),
		Run:     sign,
	}
}

func sign(cmd *cobra.Command, args []string) {
	passphrase, err := utils.GetPassphrase(passwordReader(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	sig, err := pipeline(cmd).SignArbitrary(args[0], passphrase, []byte(args[1]))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sig)
}
