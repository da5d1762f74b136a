package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils"
	"github.com/gxchain/gxwallet/wallet"
)

var ListCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored wallets",
		Run:   list,
	}
}

func list(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	id := chainID(cmd)
	wallets, err := store.Load(id)
	if err != nil {
		fmt.Println(err)
		return
	}
	active, err := store.ActiveIndex(context.Background(), id)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, w := range wallets {
		marker := " "
		if i == active {
			marker = "*"
		}
		fmt.Println(fmt.Sprintf("%s %d %s%s", marker, i, w.Account, walletFlags(w)))
	}
}

func walletFlags(w wallet.Wallet) string {
	s := ""
	if w.Partial {
		s += " (partial)"
	}
	if w.BackupDate == nil {
		s += " (not backed up)"
	}
	return s
}

var IndexCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "index",
		Short:   "show or set the active wallet",
		Example: "index [n]",
		Args:    cobra.MaximumNArgs(1),
		Run:     index,
	}
}

func index(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	ctx := context.Background()
	if len(args) == 1 {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		if err := store.SetActiveIndex(ctx, chainID(cmd), i); err != nil {
			fmt.Println(err)
			return
		}
	}
	i, err := store.ActiveIndex(ctx, chainID(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(i)
}

var DisclaimerCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "disclaimer",
		Short:   "show, accept or decline the disclaimer",
		Example: "disclaimer [accept|decline]",
		Args:    cobra.MaximumNArgs(1),
		Run:     disclaimer,
	}
}

func disclaimer(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	if len(args) == 1 {
		var accepted bool
		switch args[0] {
		case "accept":
			accepted = true
		case "decline":
		default:
			fmt.Println(fmt.Sprintf("unknown choice %q", args[0]))
			return
		}
		if err := store.SetAcceptedDisclaimer(chainID(cmd), accepted); err != nil {
			fmt.Println(err)
			return
		}
	}
	accepted, err := store.AcceptedDisclaimer(chainID(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("accepted: %v", accepted))
}

var BackupCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "backup",
		Short:   "print the wallet backup, or mark an account as backed up",
		Example: "backup [account]",
		Args:    cobra.MaximumNArgs(1),
		Run:     backup,
	}
}

func backup(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	if len(args) == 1 {
		if err := store.MarkBackedUp(context.Background(), chainID(cmd), args[0], time.Now().UTC()); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(fmt.Sprintf("%s marked as backed up", args[0]))
		return
	}
	if err := store.BackupOnce(chainID(cmd)); err != nil {
		fmt.Println(err)
		return
	}
	wallets, err := store.Backup(chainID(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	printJSON(wallets)
}

var MergeCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:   "merge",
		Short: "merge wallets kept by the native host",
		Run:   merge,
	}
}

func merge(cmd *cobra.Command, args []string) {
	wallets, err := walletStore(cmd).MergeOnce(context.Background(), chainID(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("%d wallets", len(wallets)))
}

var DeleteCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Short:   "remove a wallet, the password is required",
		Example: "delete [account]",
		Args:    cobra.ExactArgs(1),
		Run:     deleteWallet,
	}
}

func deleteWallet(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	name := args[0]
	w, err := store.Find(chainID(cmd), name)
	if err != nil {
		fmt.Println(err)
		return
	}
	passphrase, err := utils.GetPassphrase(passwordReader(cmd))
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := w.CheckPassword(passphrase); err != nil {
		fmt.Println(err)
		return
	}
	if err := store.Delete(context.Background(), chainID(cmd), name); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(fmt.Sprintf("%s deleted", name))
}

var PasswdCmd = func() *cobra.Command {
	return &cobra.Command{
		Use:     "passwd",
		Short:   "change the password of a wallet",
		Example: "passwd [account]",
		Args:    cobra.ExactArgs(1),
		Run:     passwd,
	}
}

func passwd(cmd *cobra.Command, args []string) {
	store := walletStore(cmd)
	reader := passwordReader(cmd)
	w, err := store.Find(chainID(cmd), args[0])
	if err != nil {
		fmt.Println(err)
		return
	}
	old, err := utils.GetPassphrase(reader)
	if err != nil {
		fmt.Println(err)
		return
	}
	newPassphrase, err := utils.GetNewPassphrase(reader)
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := w.ChangePassword(old, newPassphrase); err != nil {
		fmt.Println(err)
		return
	}
	if err := store.Update(context.Background(), chainID(cmd), *w); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("password changed")
}
