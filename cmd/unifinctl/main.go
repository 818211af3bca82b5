package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/config"
	"github.com/spec-kit/unifin/internal/domain"
	"github.com/spec-kit/unifin/internal/wallet"
)

var (
	rpcURL     string
	account    string
	jsonOutput bool

	cfg       *config.Config
	provider  *wallet.RPCProvider
	contracts *chain.Contracts
)

var rootCmd = &cobra.Command{
	Use:          "unifinctl",
	Short:        "Inspect the university finance contracts",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if rpcURL == "" {
			rpcURL = cfg.Chain.RPCURL
		}
		contracts, err = chain.NewContracts(cfg.Contracts)
		if err != nil {
			return err
		}
		provider, err = wallet.DialRPCProvider(cmd.Context(), rpcURL, zap.NewNop())
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", rpcURL, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "Ethereum JSON-RPC URL (default CHAIN_RPC_URL)")
	rootCmd.PersistentFlags().StringVar(&account, "account", "", "account to read as (default first node account)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(applicationsCmd)
	rootCmd.AddCommand(studentsCmd)
	rootCmd.AddCommand(transactionsCmd)
}

// readWallet is a connected wallet for read-only calls.
type readWallet struct {
	address  string
	provider wallet.Provider
}

func (w readWallet) SessionID() string { return "cli" }

func (w readWallet) Session() domain.WalletSession {
	return domain.WalletSession{Address: w.address, Connected: w.address != ""}
}

func (w readWallet) Provider() wallet.Provider { return w.provider }

// currentWallet resolves --account, falling back to the node's first account.
func currentWallet(ctx context.Context) (readWallet, error) {
	if account != "" {
		return readWallet{address: account, provider: provider}, nil
	}
	var accounts []string
	if err := provider.Request(ctx, "eth_accounts", nil, &accounts); err != nil {
		return readWallet{}, fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		return readWallet{}, domain.ErrNoAccounts
	}
	return readWallet{address: accounts[0], provider: provider}, nil
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	// PersistentPostRun is skipped when RunE fails, so the client is closed here.
	if provider != nil {
		provider.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
