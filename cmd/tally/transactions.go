package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
	"github.com/tally-ledger/tally/internal/ledger"
	"github.com/tally-ledger/tally/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			filter, err := filterFromFlags(cmd, led)
			if err != nil {
				return err
			}

			cli.RenderTransactions(os.Stdout, led.Transactions(filter), led.Accounts())
			return nil
		},
	}

	filterFlags(cmd)
	return cmd
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction's amount, category, or note",
		Long: `Change the mutable fields of a transaction. Kind, accounts, date and
id are fixed at creation. Only the flags you pass are changed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var edit ledger.TransactionEdit
			if cmd.Flags().Changed("amount") {
				amount, _ := cmd.Flags().GetFloat64("amount")
				edit.Amount = &amount
			}
			if cmd.Flags().Changed("category") {
				raw, _ := cmd.Flags().GetString("category")
				category, ok := model.ParseCategory(raw)
				if !ok {
					return fmt.Errorf("unknown category %q", raw)
				}
				edit.Category = &category
			}
			if cmd.Flags().Changed("note") {
				note, _ := cmd.Flags().GetString("note")
				edit.Note = &note
			}
			if edit.Amount == nil && edit.Category == nil && edit.Note == nil {
				return fmt.Errorf("nothing to change: pass --amount, --category, or --note")
			}

			txn, err := led.EditTransaction(ctx, args[0], edit)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("updated %s: %.2f (%s)", txn.ID, txn.Amount, txn.Category)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "new amount")
	cmd.Flags().String("category", "", "new category (must match the transaction's kind)")
	cmd.Flags().String("note", "", "new note")

	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := led.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("deleted " + args[0]))
			return nil
		},
	}
}
