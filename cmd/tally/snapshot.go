package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-ledger/tally/internal/cli"
	"github.com/tally-ledger/tally/internal/ledger"
)

func exportCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a snapshot of the ledger",
		Long: `Write a JSON snapshot of the ledger: the filtered transactions plus the
full account and recurring template sets and the budget. Export never
mutates the ledger.`,
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

			snapshot := led.ExportSnapshot(filter)
			raw, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode snapshot: %w", err)
			}

			out := outFlag
			if out == "" {
				out = fmt.Sprintf("ledger-%s.json", time.Now().Format("2006-01-02"))
			}
			if out == "-" {
				fmt.Println(string(raw))
				return nil
			}

			if err := os.WriteFile(out, raw, 0600); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("exported %d transactions to %s", len(snapshot.Bills), out)))
			return nil
		},
	}

	filterFlags(cmd)
	cmd.Flags().StringVar(&outFlag, "out", "", "output file (default: ledger-<date>.json, '-' for stdout)")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a snapshot, replacing the ledger",
		Long: `Load a snapshot exported by tally, replacing the current ledger state.
The bills list is required; invalid records in it are dropped. Accounts,
recurring templates and budget are replaced only when the snapshot carries
them. A malformed snapshot changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}

			led, store, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := led.ImportSnapshot(ctx, raw); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("imported %d transactions", len(led.Transactions(ledger.Filter{})))))
			return nil
		},
	}
}
