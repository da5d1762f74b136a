package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/coschain/cobra"
	"github.com/gxchain/gxwallet/account"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands"
	"github.com/gxchain/gxwallet/cmd/wallet-cli/commands/utils"
	"github.com/gxchain/gxwallet/config"
	"github.com/gxchain/gxwallet/db/storage"
	"github.com/gxchain/gxwallet/mylog"
	"github.com/gxchain/gxwallet/rpc"
	"github.com/gxchain/gxwallet/trx"
	"github.com/gxchain/gxwallet/wallet"
	"github.com/gxchain/gxwallet/wallet/native"
	"github.com/sirupsen/logrus"
)

var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "wallet-cli manages GXChain accounts and signs their transactions",
}

func pcFromCommands(parent readline.PrefixCompleterInterface, c *cobra.Command) {
	pc := readline.PcItem(c.Use)
	parent.SetChildren(append(parent.GetChildren(), pc))
	for _, child := range c.Commands() {
		pcFromCommands(pc, child)
	}
}

func inheritContext(c *cobra.Command) {
	for _, child := range c.Commands() {
		child.Context = c.Context
		inheritContext(child)
	}
}

func runShell() {
	completer := readline.NewPrefixCompleter()
	for _, child := range rootCmd.Commands() {
		pcFromCommands(completer, child)
	}
	shell, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		AutoComplete: completer,
		EOFPrompt:    "exit",
	})
	if err != nil {
		panic(err)
	}
	defer shell.Close()

shell_loop:
	for {
		l, err := shell.Readline()
		if err != nil {
			break shell_loop
		}
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break shell_loop
		}
		cmd, flags, err := rootCmd.Find(fields)
		if err != nil || cmd == rootCmd {
			fmt.Println(fmt.Sprintf("unknown command %q", fields[0]))
			continue
		}
		if err := cmd.ParseFlags(flags); err != nil {
			fmt.Println(err)
			continue
		}
		args := cmd.Flags().Args()
		if cmd.Args != nil {
			if err := cmd.Args(cmd, args); err != nil {
				fmt.Println(err)
				fmt.Println("usage: " + cmd.Example)
				continue
			}
		}
		cmd.Run(cmd, args)
	}
}

func addCommands() {
	rootCmd.AddCommand(commands.InitCmd())
	rootCmd.AddCommand(commands.ListCmd())
	rootCmd.AddCommand(commands.IndexCmd())
	rootCmd.AddCommand(commands.DisclaimerCmd())
	rootCmd.AddCommand(commands.BackupCmd())
	rootCmd.AddCommand(commands.MergeCmd())
	rootCmd.AddCommand(commands.DeleteCmd())
	rootCmd.AddCommand(commands.PasswdCmd())
	rootCmd.AddCommand(commands.ImportCmd())
	rootCmd.AddCommand(commands.CreateCmd())
	rootCmd.AddCommand(commands.BalanceCmd())
	rootCmd.AddCommand(commands.TransferCmd())
	rootCmd.AddCommand(commands.LockCmd())
	rootCmd.AddCommand(commands.UnlockBalanceCmd())
	rootCmd.AddCommand(commands.StakeCmd())
	rootCmd.AddCommand(commands.StakeUpdateCmd())
	rootCmd.AddCommand(commands.StakeClaimCmd())
	rootCmd.AddCommand(commands.VestingCmd())
	rootCmd.AddCommand(commands.CallCmd())
	rootCmd.AddCommand(commands.VoteCmd())
	rootCmd.AddCommand(commands.SimpleVoteCmd())
	rootCmd.AddCommand(commands.SignCmd())
}

func init() {
	addCommands()
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		runShell()
	}
}

// openStore builds the wallet store for cfg, backs the list up and pulls in
// wallets kept by the native host. Backup and merge failures only warn.
func openStore(ctx context.Context, cfg config.Config, db storage.Database, log *logrus.Logger) (*wallet.Store, error) {
	var host native.Host
	if cfg.Platform != native.PlatformWeb && cfg.Platform != "" {
		host = native.NewDBHost(storage.NewScope(db, "native"))
	}
	backend, err := native.Select(cfg.Platform, host, cfg.HostVersion)
	if err != nil {
		return nil, err
	}
	store := wallet.NewStore(storage.NewScope(db, "wallet"), backend, log)
	if err := store.BackupOnce(cfg.ChainID); err != nil {
		log.WithError(err).Warn("wallet backup failed")
	}
	if _, err := store.MergeOnce(ctx, cfg.ChainID); err != nil {
		log.WithError(err).Warn("wallet merge failed")
	}
	return store, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	cfg, err := config.LoadConfig(os.Getenv("GXWALLET_DATADIR"))
	if err != nil {
		fatalf("%v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		fatalf("%v", err)
	}
	logPath := ""
	if cfg.Log.Dir != "" {
		logPath = filepath.Join(cfg.Log.Dir, "wallet.log")
	}
	log := mylog.Init(logPath, cfg.Log.Level, cfg.Log.MaxAgeDays)

	db, err := storage.NewLevelDatabase(filepath.Join(cfg.DataDir, "wallet.db"))
	if err != nil {
		fatalf("open wallet db: %v", err)
	}
	defer db.Close()

	store, err := openStore(context.Background(), cfg, db, log)
	if err != nil {
		fatalf("%v", err)
	}

	client := rpc.NewClient(cfg.RPC.Endpoint, rpc.Options{
		Timeout:            cfg.RPC.Timeout,
		CallsPerSecond:     cfg.RPC.CallsPerSecond,
		BreakerMaxFailures: cfg.RPC.BreakerMaxFailures,
	}, log)
	defer client.Close()
	assets, err := rpc.NewAssetCache(rpc.DefaultAssetCacheSize)
	if err != nil {
		fatalf("%v", err)
	}
	api := rpc.NewChainAPI(client, assets)

	pipeline := trx.NewPipeline(api, store, cfg.ChainID, cfg.Chain.ExpirationSeconds, log)

	rootCmd.SetContext(commands.CtxConfig, cfg)
	rootCmd.SetContext(commands.CtxChainID, cfg.ChainID)
	rootCmd.SetContext(commands.CtxStore, store)
	rootCmd.SetContext(commands.CtxChain, api)
	rootCmd.SetContext(commands.CtxPipeline, pipeline)
	rootCmd.SetContext(commands.CtxFactory, trx.NewFactory(api, pipeline, cfg.Chain.CoreSymbol, log))
	rootCmd.SetContext(commands.CtxImporter, account.NewImporter(api, store, cfg.ChainID, cfg.Faucet.Addr, log))
	rootCmd.SetContext(commands.CtxReader, utils.MyPasswordReader{})

	inheritContext(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
