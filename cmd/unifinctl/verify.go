package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/service"
)

var expectedAdmin string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every configured contract is deployed and administered by the expected account",
	RunE: func(cmd *cobra.Command, args []string) error {
		admin := expectedAdmin
		if admin == "" {
			admin = cfg.Chain.ExpectedAdmin
		}
		report, err := service.NewDeploymentVerifier(contracts, zap.NewNop()).Verify(cmd.Context(), provider, admin)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := printJSON(report); err != nil {
				return err
			}
		} else {
			fmt.Printf("Chain ID: %d\n\n", report.ChainID)
			w := newTable()
			fmt.Fprintln(w, "CONTRACT\tADDRESS\tDEPLOYED\tCODE\tADMIN\tNOTE")
			for _, c := range report.Contracts {
				note := c.Error
				if !c.Configured {
					note = "not configured"
				} else if c.AdminMatches != nil && !*c.AdminMatches {
					note = "admin mismatch"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n", c.Name, c.Address, yesNo(c.Deployed), c.CodeSize, c.Admin, note)
			}
			w.Flush()
		}

		if !report.OK() {
			return fmt.Errorf("deployment verification failed")
		}
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&expectedAdmin, "admin", "", "expected admin address (default CHAIN_EXPECTED_ADMIN)")
}
