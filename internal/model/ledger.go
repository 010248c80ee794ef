package model

import "time"

// LedgerEntry is one recorded advertising-revenue transaction attributed to
// a show. Entries are read-only from this system's perspective; they are
// loaded from the books, never created or edited here.
type LedgerEntry struct {
	ID         string
	ShowID     string
	Agency     string
	Advertiser string
	Campaign   string
	Dates      string // free-text period descriptor, e.g. "1/1/25 - 3/31/25"
	TotalNet   float64
	// EvergreenComp and PartnerComp should sum to TotalNet under the
	// show's revenue split; the books are the arbiter, not this client.
	EvergreenComp float64
	PartnerComp   float64
	AmountPaid    *float64
	DatePaid      *string
	Notes         string
	CreatedAt     time.Time
}

// Paid reports whether any payment has been recorded for the entry.
func (e *LedgerEntry) Paid() bool {
	return e.AmountPaid != nil && *e.AmountPaid > 0
}
