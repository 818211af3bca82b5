package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/unifin/internal/service"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List registered students",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := currentWallet(cmd.Context())
		if err != nil {
			return err
		}
		students, err := service.NewRegistryService(service.ChainDependencies{Contracts: contracts}).ListStudents(cmd.Context(), w)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(students)
		}
		if len(students) == 0 {
			fmt.Println("No students registered.")
			return nil
		}
		t := newTable()
		fmt.Fprintln(t, "ADDRESS\tNAME\tROLL NO\tDEPARTMENT\tFEES PAID (ETH)")
		for _, s := range students {
			fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", s.Address, s.Name, s.RollNo, s.Department, s.FeesPaid)
		}
		return t.Flush()
	},
}
