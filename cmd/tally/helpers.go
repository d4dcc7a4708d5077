package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tally-ledger/tally/internal/config"
	"github.com/tally-ledger/tally/internal/ledger"
	"github.com/tally-ledger/tally/internal/model"
	"github.com/tally-ledger/tally/internal/storage"
)

// openLedger opens the database, loads the ledger, and runs the month-tick
// so due recurring templates book themselves before any command runs.
// Callers must Close the returned store.
func openLedger(ctx context.Context) (*ledger.Ledger, *storage.SQLiteStore, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	led, err := ledger.Open(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	changed, err := led.MaterializeRecurring(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to apply recurring templates: %w", err)
	}
	if changed {
		slog.Info("applied recurring templates for the current month")
	}

	return led, store, nil
}

// resolveAccount maps a --account flag value to an account id. Accepts a
// name or a raw id; empty input means "use the default account".
func resolveAccount(led *ledger.Ledger, ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	if a, ok := led.AccountByName(ref); ok {
		return a.ID, nil
	}
	for _, a := range led.Accounts() {
		if a.ID == ref {
			return a.ID, nil
		}
	}
	return "", fmt.Errorf("unknown account %q", ref)
}

// filterFlags registers the shared transaction filter flags on cmd.
func filterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("kind", nil, "filter by kind (expense, income, transfer)")
	cmd.Flags().StringSlice("category", nil, "filter by category")
	cmd.Flags().StringSlice("account", nil, "filter by account name or id")
	cmd.Flags().String("from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "inclusive end date (YYYY-MM-DD)")
}

// filterFromFlags builds a ledger.Filter from the flags registered by
// filterFlags.
func filterFromFlags(cmd *cobra.Command, led *ledger.Ledger) (ledger.Filter, error) {
	var f ledger.Filter

	kinds, _ := cmd.Flags().GetStringSlice("kind")
	for _, k := range kinds {
		kind, ok := model.ParseKind(k)
		if !ok {
			return ledger.Filter{}, fmt.Errorf("unknown kind %q", k)
		}
		f.Kinds = append(f.Kinds, kind)
	}

	categories, _ := cmd.Flags().GetStringSlice("category")
	for _, c := range categories {
		cat, ok := model.ParseCategory(c)
		if !ok {
			return ledger.Filter{}, fmt.Errorf("unknown category %q", c)
		}
		f.Categories = append(f.Categories, cat)
	}

	accounts, _ := cmd.Flags().GetStringSlice("account")
	for _, ref := range accounts {
		id, err := resolveAccount(led, ref)
		if err != nil {
			return ledger.Filter{}, err
		}
		f.AccountIDs = append(f.AccountIDs, id)
	}

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("invalid --from date: %w", err)
		}
		f.From = t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return ledger.Filter{}, fmt.Errorf("invalid --to date: %w", err)
		}
		// Inclusive: cover the whole end day.
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	return f, nil
}
