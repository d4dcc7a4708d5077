package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
	"github.com/tally-ledger/tally/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring monthly templates",
		Long: `Recurring templates book one transaction per calendar month, on the
configured day, the first time tally runs in that month. Deleting a template
never removes transactions it already produced.`,
	}

	cmd.AddCommand(listRecurringCmd())
	cmd.AddCommand(addRecurringCmd())
	cmd.AddCommand(removeRecurringCmd())

	return cmd
}

func listRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cli.RenderTemplates(os.Stdout, led.RecurringTemplates(), led.Accounts())
			return nil
		},
	}
}

func addRecurringCmd() *cobra.Command {
	var (
		kindFlag     string
		amountFlag   float64
		categoryFlag string
		noteFlag     string
		accountFlag  string
		dayFlag      int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recurring template",
		Long: `Create a monthly template, e.g.:

  tally recurring add --amount 1500 --day 1 --category household --note 房租
  tally recurring add --kind income --amount 8000 --day 10 --category salary

Days past the end of a month clamp to its last day, so --day 31 works in
every month.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kind, ok := model.ParseKind(kindFlag)
			if !ok {
				return fmt.Errorf("unknown kind %q", kindFlag)
			}

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var category model.Category
			if categoryFlag != "" {
				c, parsed := model.ParseCategory(categoryFlag)
				if !parsed {
					return fmt.Errorf("unknown category %q", categoryFlag)
				}
				category = c
			}

			accountID, err := resolveAccount(led, accountFlag)
			if err != nil {
				return err
			}

			tmpl, err := led.AddRecurringTemplate(ctx, model.RecurringTemplate{
				Kind:       kind,
				Amount:     amountFlag,
				Category:   category,
				Note:       noteFlag,
				DayOfMonth: dayFlag,
				AccountID:  accountID,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("created template: %s %.2f on day %d", tmpl.Kind, tmpl.Amount, tmpl.DayOfMonth)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "expense", "template kind (expense or income)")
	cmd.Flags().Float64Var(&amountFlag, "amount", 0, "amount (required, positive)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "category (default: kind's fallback)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "note for materialized transactions")
	cmd.Flags().StringVar(&accountFlag, "account", "", "account name or id")
	cmd.Flags().IntVar(&dayFlag, "day", 1, "day of month (1-31, clamped to shorter months)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func removeRecurringCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a recurring template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := led.RemoveRecurringTemplate(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("removed template " + args[0]))
			return nil
		},
	}
}
