package engine

import "github.com/tally-ledger/tally/internal/model"

// Balances folds the transaction log into per-account signed balances.
// Every known account appears in the result, starting at zero. Transactions
// referencing an unknown account id still contribute; the balance is simply
// recorded under that id. A transfer without a destination debits the source
// and credits nothing.
//
// Addition commutes, so the result is independent of log order.
func Balances(accounts []model.Account, txns []model.Transaction) map[string]float64 {
	balances := make(map[string]float64, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = 0
	}

	for _, t := range txns {
		switch t.Kind {
		case model.KindExpense:
			balances[t.AccountID] -= t.Amount
		case model.KindIncome:
			balances[t.AccountID] += t.Amount
		case model.KindTransfer:
			balances[t.AccountID] -= t.Amount
			if t.ToAccountID != "" {
				balances[t.ToAccountID] += t.Amount
			}
		}
	}

	return balances
}
