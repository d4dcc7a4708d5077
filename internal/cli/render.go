package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/tally-ledger/tally/internal/model"
)

// amountLabel renders an amount with the sign and color of its kind.
func amountLabel(t model.Transaction) string {
	switch t.Kind {
	case model.KindIncome:
		return IncomeStyle.Render(fmt.Sprintf("+%.2f", t.Amount))
	case model.KindTransfer:
		return TransferStyle.Render(fmt.Sprintf("⇄%.2f", t.Amount))
	default:
		return ExpenseStyle.Render(fmt.Sprintf("-%.2f", t.Amount))
	}
}

// accountLabel maps an account id to its name, falling back to the raw id
// for dangling references.
func accountLabel(id string, accounts []model.Account) string {
	for _, a := range accounts {
		if a.ID == id {
			return a.Name
		}
	}
	return id
}

// RenderTransactions writes a transaction table, newest first.
func RenderTransactions(w io.Writer, txns []model.Transaction, accounts []model.Account) {
	if len(txns) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No transactions recorded."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Account"),
		HeaderStyle.Render("Note"),
		HeaderStyle.Render("ID"))

	for _, t := range txns {
		account := accountLabel(t.AccountID, accounts)
		if t.Kind == model.KindTransfer {
			account += " → " + accountLabel(t.ToAccountID, accounts)
		}
		note := t.Note
		if note == "" {
			note = SubtleStyle.Render("(none)")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.Date.Format("2006-01-02"),
			amountLabel(t),
			t.Category,
			account,
			note,
			SubtleStyle.Render(t.ID))
	}
}

// RenderBalances writes a per-account balance table in stable name order.
func RenderBalances(w io.Writer, balances map[string]float64, accounts []model.Account) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render("Account"), HeaderStyle.Render("Balance"))

	known := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
		fmt.Fprintf(tw, "%s\t%s\n", a.Name, balanceLabel(balances[a.ID]))
	}

	// Balances recorded under account ids the account set no longer knows.
	var orphans []string
	for id := range balances {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		fmt.Fprintf(tw, "%s\t%s\n", SubtleStyle.Render(shortID(id)), balanceLabel(balances[id]))
	}
}

func balanceLabel(v float64) string {
	if v < 0 {
		return ExpenseStyle.Render(fmt.Sprintf("%.2f", v))
	}
	return IncomeStyle.Render(fmt.Sprintf("%.2f", v))
}

// RenderAccounts writes the account list.
func RenderAccounts(w io.Writer, accounts []model.Account) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\n", HeaderStyle.Render("Name"), HeaderStyle.Render("ID"))
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\n", a.Name, SubtleStyle.Render(a.ID))
	}
}

// RenderTemplates writes the recurring template list.
func RenderTemplates(w io.Writer, templates []model.RecurringTemplate, accounts []model.Account) {
	if len(templates) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No recurring templates."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Day"),
		HeaderStyle.Render("Kind"),
		HeaderStyle.Render("Amount"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Account"),
		HeaderStyle.Render("Last applied"),
		HeaderStyle.Render("ID"))

	for _, t := range templates {
		last := t.LastApplied.String()
		if last == "" {
			last = SubtleStyle.Render("never")
		}
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
			t.DayOfMonth,
			t.Kind,
			t.Amount,
			t.Category,
			accountLabel(t.AccountID, accounts),
			last,
			SubtleStyle.Render(t.ID))
	}
}

// shortID trims a uuid to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
