package repository

import (
	"context"
	"database/sql"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// LedgerRepo reads the revenue ledger. The ledger is append-only and
// maintained by the books import upstream; this service never writes it.
type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

const ledgerColumns = `id, show_id, agency, advertiser, campaign, dates,
	total_net, evergreen_comp, partner_comp, amount_paid, date_paid, notes, created_at`

// ListAll returns every ledger entry, newest first.
func (r *LedgerRepo) ListAll(ctx context.Context) ([]model.LedgerEntry, error) {
	return r.list(ctx, "SELECT "+ledgerColumns+" FROM ledger_entries ORDER BY created_at DESC")
}

// ListForPartner returns entries for shows in the partner's set,
// restricted to shows flagged for partner ledger access.
func (r *LedgerRepo) ListForPartner(ctx context.Context, userID string) ([]model.LedgerEntry, error) {
	q := `SELECT ` + ledgerColumns + ` FROM ledger_entries
		WHERE show_id IN (
			SELECT sp.show_id FROM show_partners sp
			JOIN shows s ON s.id = sp.show_id
			WHERE sp.user_id = ? AND s.requires_partner_access = TRUE
		)
		ORDER BY created_at DESC`
	return r.list(ctx, q, userID)
}

func (r *LedgerRepo) list(ctx context.Context, q string, args ...any) ([]model.LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		var amountPaid sql.NullFloat64
		var datePaid, notes sql.NullString
		if err := rows.Scan(
			&e.ID, &e.ShowID, &e.Agency, &e.Advertiser, &e.Campaign, &e.Dates,
			&e.TotalNet, &e.EvergreenComp, &e.PartnerComp, &amountPaid, &datePaid, &notes, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		if amountPaid.Valid {
			v := amountPaid.Float64
			e.AmountPaid = &v
		}
		if datePaid.Valid {
			v := datePaid.String
			e.DatePaid = &v
		}
		if notes.Valid {
			e.Notes = notes.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
