package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/unifin/internal/service"
)

var applicationsCmd = &cobra.Command{
	Use:   "applications",
	Short: "List scholarship applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := currentWallet(cmd.Context())
		if err != nil {
			return err
		}
		apps, err := service.NewScholarshipService(service.ChainDependencies{Contracts: contracts}).List(cmd.Context(), w)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(apps)
		}
		if len(apps) == 0 {
			fmt.Println("No applications.")
			return nil
		}
		t := newTable()
		fmt.Fprintln(t, "ID\tSTUDENT\tNAME\tDEPARTMENT\tYEAR\tAMOUNT (ETH)\tSTATUS")
		for _, a := range apps {
			fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n", a.ID, a.Student, a.Name, a.Department, a.Year, a.AmountEther, a.Status())
		}
		return t.Flush()
	},
}
