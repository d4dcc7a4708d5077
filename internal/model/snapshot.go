package model

// SnapshotVersion is the version stamped on exported snapshots. Version 1
// files, produced before accounts and recurring templates existed, carry
// only budget and bills and import cleanly because the extra fields are
// optional.
const SnapshotVersion = 2

// DefaultBudget is the monthly budget assumed when none has been stored.
const DefaultBudget = 2000

// Snapshot is the import/export exchange format for a whole ledger.
// Bills is the only required field on import.
type Snapshot struct {
	Accounts  []Account           `json:"accounts,omitempty"`
	Recurring []RecurringTemplate `json:"recurring,omitempty"`
	Bills     []Transaction       `json:"bills"`
	Version   int                 `json:"version"`
	Budget    float64             `json:"budget"`
}
