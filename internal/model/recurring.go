package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PeriodKey identifies one calendar month, the window in which a recurring
// template materializes at most one transaction. The zero value means
// "never applied" and encodes as an empty JSON string.
type PeriodKey struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) PeriodKey {
	return PeriodKey{Year: t.Year(), Month: t.Month()}
}

// IsZero reports whether the key is the "never applied" marker.
func (p PeriodKey) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p PeriodKey) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalJSON encodes the period as "YYYY-MM", or "" for the zero value.
func (p PeriodKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON accepts "YYYY-MM"; empty or unparsable input yields the
// zero value so templates from older snapshots simply re-apply.
func (p *PeriodKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*p = PeriodKey{}
		return nil
	}
	var year, month int
	if _, err := fmt.Sscanf(s, "%d-%d", &year, &month); err != nil || month < 1 || month > 12 {
		*p = PeriodKey{}
		return nil
	}
	*p = PeriodKey{Year: year, Month: time.Month(month)}
	return nil
}

// RecurringTemplate is a rule that auto-generates one transaction per
// calendar month. Kind is never KindTransfer. DayOfMonth is clamped to the
// days of the month being applied, so 31 is valid and lands on the last
// day of shorter months.
type RecurringTemplate struct {
	ID          string          `json:"id"`
	Kind        TransactionKind `json:"kind"`
	Category    Category        `json:"category"`
	Note        string          `json:"note"`
	AccountID   string          `json:"accountId"`
	LastApplied PeriodKey       `json:"lastAppliedPeriod"`
	DayOfMonth  int             `json:"dayOfMonth"`
	Amount      float64         `json:"amount"`
}

// DaysInMonth returns the number of days in the given period's month.
func DaysInMonth(p PeriodKey) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
