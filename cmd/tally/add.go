package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
	"github.com/tally-ledger/tally/internal/common"
	"github.com/tally-ledger/tally/internal/model"
)

func addCmd() *cobra.Command {
	var (
		categoryFlag string
		accountFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Record an expense from free text",
		Long: `Parse an expense from free text, e.g.:

  tally add 中午吃面25元
  tally add 打车 ￥18.5 --account Cash

The amount is extracted from the text and the category guessed from
keywords; use --category to override the guess.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.Join(args, " ")

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var category model.Category
			if categoryFlag != "" {
				c, ok := model.ParseCategory(categoryFlag)
				if !ok {
					return fmt.Errorf("unknown category %q", categoryFlag)
				}
				category = c
			}

			accountID, err := resolveAccount(led, accountFlag)
			if err != nil {
				return err
			}

			txn, err := led.AddFromText(ctx, text, category, accountID)
			if errors.Is(err, common.ErrNoAmount) {
				return common.NewUserError("no amount recognized; try something like: 中午吃面25元", err)
			}
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("recorded %.2f (%s)", txn.Amount, txn.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "override the guessed category")
	cmd.Flags().StringVar(&accountFlag, "account", "", "account name or id (default: first account)")

	return cmd
}

func recordCmd() *cobra.Command {
	var (
		kindFlag     string
		amountFlag   float64
		categoryFlag string
		noteFlag     string
		accountFlag  string
		toFlag       string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a transaction from structured flags",
		Long: `Record an expense, income, or transfer explicitly, e.g.:

  tally record --kind income --amount 8000 --category salary
  tally record --kind transfer --amount 500 --account Cash --to Savings`,
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
			toAccountID, err := resolveAccount(led, toFlag)
			if err != nil {
				return err
			}

			txn, err := led.AddTransaction(ctx, model.Transaction{
				Amount:      amountFlag,
				Kind:        kind,
				Category:    category,
				Note:        noteFlag,
				AccountID:   accountID,
				ToAccountID: toAccountID,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("recorded %s %.2f (%s)", txn.Kind, txn.Amount, txn.Category)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "expense", "transaction kind (expense, income, transfer)")
	cmd.Flags().Float64Var(&amountFlag, "amount", 0, "amount (required, positive)")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "category (default: kind's fallback)")
	cmd.Flags().StringVar(&noteFlag, "note", "", "free-form note")
	cmd.Flags().StringVar(&accountFlag, "account", "", "source account name or id")
	cmd.Flags().StringVar(&toFlag, "to", "", "destination account for transfers")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
