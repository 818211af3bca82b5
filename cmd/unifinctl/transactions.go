package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/unifin/internal/repository"
	"github.com/spec-kit/unifin/internal/service"
)

var recentBlocks int

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List recent transactions sent from or to an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := currentWallet(cmd.Context())
		if err != nil {
			return err
		}
		blocks := recentBlocks
		if blocks <= 0 {
			blocks = cfg.Chain.RecentBlocks
		}
		txs, err := service.NewTransactionService(repository.NewMemoryCallLogRepository(0), blocks).Recent(cmd.Context(), w)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(txs)
		}
		if len(txs) == 0 {
			fmt.Printf("No transactions for %s in the last %d blocks.\n", w.address, blocks)
			return nil
		}
		t := newTable()
		fmt.Fprintln(t, "BLOCK\tHASH\tFROM\tTO\tVALUE (ETH)")
		for _, tx := range txs {
			fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\n", tx.BlockNumber, tx.Hash, tx.From, tx.To, tx.ValueEther)
		}
		return t.Flush()
	},
}

func init() {
	transactionsCmd.Flags().IntVar(&recentBlocks, "blocks", 0, "number of blocks to scan (default CHAIN_RECENT_BLOCKS)")
}
