package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
	"github.com/tally-ledger/tally/internal/common"
)

func budgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "budget [amount]",
		Short: "Show or set the monthly budget",
		Long: `Without an argument, show the budget and what remains of it for the
current calendar month. With a positive amount, set a new budget.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				amount, err := strconv.ParseFloat(args[0], 64)
				if err != nil {
					return common.NewUserError("budget must be a positive number", err)
				}
				if err := led.SetBudget(ctx, amount); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("budget set to %.2f", led.Budget())))
				return nil
			}

			fmt.Println(cli.FormatTitle("Monthly budget"))
			fmt.Printf("Budget:     %.2f\n", led.Budget())
			fmt.Printf("Spent:      %.2f\n", led.MonthExpenseTotal())
			fmt.Printf("Remaining:  %.2f\n", led.RemainingBudget())
			if led.RemainingBudget() == 0 {
				fmt.Println(cli.FormatWarning("budget exhausted for this month"))
			}
			return nil
		},
	}
}
