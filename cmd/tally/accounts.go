package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(removeAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cli.RenderAccounts(os.Stdout, led.Accounts())
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			account, err := led.AddAccount(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("created account %s (%s)", account.Name, account.ID)))
			return nil
		},
	}
}

func removeAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name-or-id>",
		Short: "Delete an account",
		Long:  `Delete an account. Refused while transactions or recurring templates still reference it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := resolveAccount(led, args[0])
			if err != nil {
				return err
			}

			if err := led.RemoveAccount(ctx, id); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("removed account " + args[0]))
			return nil
		},
	}
}

func balancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show per-account balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cli.RenderBalances(os.Stdout, led.Balances(), led.Accounts())
			return nil
		},
	}
}
