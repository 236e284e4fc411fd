package fund

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	TypeDeposit    EntryType = "deposit"
	TypeWithdrawal EntryType = "withdrawal"
	TypeAdjustment EntryType = "adjustment"
)

// Entry is one row of the append-only ranch fund ledger. BalanceAfter is
// the balance the fund held immediately after this entry was applied, so
// the ledger replays to the current balance without reading the fund row.
type Entry struct {
	ID           int64           `json:"id"`
	Type         EntryType       `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	ActorID      int64           `json:"actor_id"`
	ActorName    string          `json:"actor_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Summary is the fund balance plus its most recent ledger page.
type Summary struct {
	Balance decimal.Decimal `json:"balance"`
	Entries []Entry         `json:"entries"`
	Total   int             `json:"total"`
}
