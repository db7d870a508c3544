package domain

import "time"

type CardStatus string

const (
	CardStatusActive    CardStatus = "active"
	CardStatusPending   CardStatus = "pending"
	CardStatusFrozen    CardStatus = "frozen"
	CardStatusCancelled CardStatus = "cancelled"
	CardStatusExpired   CardStatus = "expired"
)

// SlotStatuses are the statuses that occupy one of the user's active-card
// slots. A pending card becomes active once review approves it.
var SlotStatuses = []CardStatus{CardStatusActive, CardStatusPending}

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionReload   TransactionType = "reload"
)

func (t TransactionType) Valid() bool {
	return t == TransactionPurchase || t == TransactionReload
}

type User struct {
	ID          string    `db:"id"`
	KYCTier     int       `db:"kyc_tier"`
	KYCVerified bool      `db:"kyc_verified"`
	CreatedAt   time.Time `db:"created_at"`
}

type CardBalance struct {
	Initial float64 `db:"initial_balance"`
	Current float64 `db:"current_balance"`
}

type ReloadEntry struct {
	Amount     float64   `db:"amount"`
	ReloadedAt time.Time `db:"reloaded_at"`
}

type Reloadable struct {
	Enabled     bool          `db:"reloadable"`
	MaxReloads  int           `db:"max_reloads"`
	ReloadCount int           `db:"reload_count"`
	History     []ReloadEntry `db:"-"`
}

// CardMetadata is captured from the request that created the card.
// Chargeback is set by whoever records the dispute; Notes stays free text.
type CardMetadata struct {
	IPAddress  string `db:"ip_address"`
	UserAgent  string `db:"user_agent"`
	Notes      string `db:"notes"`
	Chargeback bool   `db:"chargeback"`
}

type Card struct {
	ID         string       `db:"id"`
	UserID     string       `db:"user_id"`
	Status     CardStatus   `db:"status"`
	Balance    CardBalance  `db:"-"`
	Reloadable Reloadable   `db:"-"`
	Metadata   CardMetadata `db:"-"`
	CreatedAt  time.Time    `db:"created_at"`
}

// CardFilter narrows card queries to one user. Empty Statuses and zero
// CreatedAfter mean "any". Disputed keeps only cards with a recorded
// chargeback or a note mentioning one.
type CardFilter struct {
	UserID       string
	Statuses     []CardStatus
	CreatedAfter time.Time
	Disputed     bool
}
