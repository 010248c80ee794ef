// Package repository: show persistence. A show row carries the canonical
// field values (enums in their display form); annual revenue figures and
// partner associations live in side tables keyed by show id.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// showColumns is the column list shared by every show SELECT; the scan
// order in scanShow must match it.
const showColumns = `id, title, show_type, select_type, subnetwork_id, media_type,
	relationship_level, genre_id, tentpole, is_original, is_active, is_undersized,
	age_months, start_date, minimum_guarantee, evergreen_ownership_pct,
	branded_revenue_amount, marketing_revenue_amount, web_mgmt_revenue_amount,
	latest_cpm_usd, has_sponsorship_revenue, has_non_evergreen_revenue,
	requires_partner_access, shows_per_year, ad_slots, avg_show_length_mins,
	host_contact_name, host_contact_address, host_contact_phone, host_contact_email,
	show_contact_name, show_contact_address, show_contact_phone, show_contact_email,
	age_demographic, gender_demographic, created_at, updated_at`

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// DB exposes the underlying handle for callers needing transactions that
// span repositories.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// Create inserts a new show and its annual revenue rows, assigning a fresh
// ID to the given record.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	s.ID = uuid.NewString()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if err = insertShowTx(ctx, tx, s); err != nil {
		return err
	}
	if err = replaceAnnualRevenueTx(ctx, tx, s.ID, s.AnnualRevenue); err != nil {
		return err
	}
	return nil
}

func insertShowTx(ctx context.Context, tx *sql.Tx, s *model.Show) error {
	const q = `INSERT INTO shows (
		id, title, show_type, select_type, subnetwork_id, media_type,
		relationship_level, genre_id, tentpole, is_original, is_active, is_undersized,
		age_months, start_date, minimum_guarantee, evergreen_ownership_pct,
		branded_revenue_amount, marketing_revenue_amount, web_mgmt_revenue_amount,
		latest_cpm_usd, has_sponsorship_revenue, has_non_evergreen_revenue,
		requires_partner_access, shows_per_year, ad_slots, avg_show_length_mins,
		host_contact_name, host_contact_address, host_contact_phone, host_contact_email,
		show_contact_name, show_contact_address, show_contact_phone, show_contact_email,
		age_demographic, gender_demographic
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := tx.ExecContext(ctx, q, showArgs(s)...)
	return err
}

// showArgs flattens a show into the insert/update argument order.
func showArgs(s *model.Show) []any {
	var startDate any
	if s.StartDate != nil {
		startDate = s.StartDate.Format("2006-01-02")
	}
	return []any{
		s.ID, s.Name, s.ShowType, s.SelectType, s.Subnetwork, string(s.Format),
		string(s.Relationship), s.Genre, s.IsTentpole, s.IsOriginal, s.IsActive, s.IsUndersized,
		s.AgeMonths, startDate, s.MinimumGuarantee, s.OwnershipPercentage,
		s.BrandedRevenueAmount, s.MarketingRevenueAmount, s.WebManagementRevenue,
		s.LatestCPM, s.HasSponsorshipRevenue, s.HasNonEvergreenRevenue,
		s.RequiresPartnerLedgerAccess, s.ShowsPerYear, s.AdSlots, s.AverageLength,
		s.HostContact.Name, s.HostContact.Address, s.HostContact.Phone, s.HostContact.Email,
		s.ShowContact.Name, s.ShowContact.Address, s.ShowContact.Phone, s.ShowContact.Email,
		string(s.AgeDemographic), string(s.GenderDemographic),
	}
}

func replaceAnnualRevenueTx(ctx context.Context, tx *sql.Tx, showID string, revenue map[int]float64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM show_annual_revenue WHERE show_id=?", showID); err != nil {
		return err
	}
	for year, amount := range revenue {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO show_annual_revenue (show_id, year, amount_usd) VALUES (?,?,?)",
			showID, year, amount); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a show with its annual revenue and partner set. It
// returns ErrShowNotFound when no row matches.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+showColumns+" FROM shows WHERE id = ?", id)
	s, err := scanShow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	shows := []model.Show{s}
	if err := r.attach(ctx, shows); err != nil {
		return nil, err
	}
	return &shows[0], nil
}

// ListAll returns the full catalog ordered by title, with side tables
// attached. Admin scope only; partner scope goes through ListForPartner.
func (r *ShowRepo) ListAll(ctx context.Context) ([]model.Show, error) {
	return r.list(ctx, "SELECT "+showColumns+" FROM shows ORDER BY title ASC")
}

// ListForPartner returns only shows whose partner set contains the user.
func (r *ShowRepo) ListForPartner(ctx context.Context, userID string) ([]model.Show, error) {
	q := `SELECT ` + showColumns + ` FROM shows
		WHERE id IN (SELECT show_id FROM show_partners WHERE user_id = ?)
		ORDER BY title ASC`
	return r.list(ctx, q, userID)
}

// FilterQuery is the server-side conjunction of optional equality filters
// exposed by the filter endpoint. Nil fields are unconstrained.
type FilterQuery struct {
	Title                  *string
	MediaType              *model.Format
	Tentpole               *bool
	RelationshipLevel      *model.Relationship
	ShowType               *string
	HasSponsorshipRevenue  *bool
	HasNonEvergreenRevenue *bool
	RequiresPartnerAccess  *bool
	IsOriginal             *bool
}

// Filter runs the conjunction in SQL. Title matches case-insensitively as
// a substring; everything else is exact.
func (r *ShowRepo) Filter(ctx context.Context, fq FilterQuery) ([]model.Show, error) {
	where := []string{}
	args := []any{}
	if fq.Title != nil && *fq.Title != "" {
		where = append(where, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(*fq.Title)+"%")
	}
	if fq.MediaType != nil {
		where = append(where, "media_type = ?")
		args = append(args, string(*fq.MediaType))
	}
	if fq.Tentpole != nil {
		where = append(where, "tentpole = ?")
		args = append(args, *fq.Tentpole)
	}
	if fq.RelationshipLevel != nil {
		where = append(where, "relationship_level = ?")
		args = append(args, string(*fq.RelationshipLevel))
	}
	if fq.ShowType != nil && *fq.ShowType != "" {
		where = append(where, "show_type = ?")
		args = append(args, *fq.ShowType)
	}
	if fq.HasSponsorshipRevenue != nil {
		where = append(where, "has_sponsorship_revenue = ?")
		args = append(args, *fq.HasSponsorshipRevenue)
	}
	if fq.HasNonEvergreenRevenue != nil {
		where = append(where, "has_non_evergreen_revenue = ?")
		args = append(args, *fq.HasNonEvergreenRevenue)
	}
	if fq.RequiresPartnerAccess != nil {
		where = append(where, "requires_partner_access = ?")
		args = append(args, *fq.RequiresPartnerAccess)
	}
	if fq.IsOriginal != nil {
		where = append(where, "is_original = ?")
		args = append(args, *fq.IsOriginal)
	}
	q := "SELECT " + showColumns + " FROM shows"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY title ASC"
	return r.list(ctx, q, args...)
}

// Update rewrites the show row and its annual revenue rows. The caller is
// expected to have loaded the record and merged the partial edit into it;
// the ID never changes.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	const q = `UPDATE shows SET
		title=?, show_type=?, select_type=?, subnetwork_id=?, media_type=?,
		relationship_level=?, genre_id=?, tentpole=?, is_original=?, is_active=?, is_undersized=?,
		age_months=?, start_date=?, minimum_guarantee=?, evergreen_ownership_pct=?,
		branded_revenue_amount=?, marketing_revenue_amount=?, web_mgmt_revenue_amount=?,
		latest_cpm_usd=?, has_sponsorship_revenue=?, has_non_evergreen_revenue=?,
		requires_partner_access=?, shows_per_year=?, ad_slots=?, avg_show_length_mins=?,
		host_contact_name=?, host_contact_address=?, host_contact_phone=?, host_contact_email=?,
		show_contact_name=?, show_contact_address=?, show_contact_phone=?, show_contact_email=?,
		age_demographic=?, gender_demographic=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?`
	args := showArgs(s)
	// showArgs leads with the id for inserts; updates bind it last.
	args = append(args[1:], s.ID)
	var res sql.Result
	if res, err = tx.ExecContext(ctx, q, args...); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing" from "identical values" the cheap way: a
		// rewrite of identical values still matches the WHERE clause in
		// MySQL but reports zero affected rows, so probe for existence.
		var one int
		if probeErr := tx.QueryRowContext(ctx, "SELECT 1 FROM shows WHERE id=? LIMIT 1", s.ID).Scan(&one); probeErr != nil {
			if errors.Is(probeErr, sql.ErrNoRows) {
				err = ErrShowNotFound
				return err
			}
			err = probeErr
			return err
		}
	}
	if err = replaceAnnualRevenueTx(ctx, tx, s.ID, s.AnnualRevenue); err != nil {
		return err
	}
	return nil
}

// Delete removes a show together with its revenue rows and partner links.
// Ledger entries survive; the books are append-only and keep their own
// copy of the show reference.
func (r *ShowRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM show_annual_revenue WHERE show_id=?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM show_partners WHERE show_id=?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM shows WHERE id=?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrShowNotFound
		return err
	}
	return nil
}

// AddPartner grants a partner user view access to a show. Adding an
// existing association is a no-op.
func (r *ShowRepo) AddPartner(ctx context.Context, showID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT IGNORE INTO show_partners (show_id, user_id) VALUES (?,?)", showID, userID)
	return err
}

// RemovePartner revokes a partner's access to a show.
func (r *ShowRepo) RemovePartner(ctx context.Context, showID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM show_partners WHERE show_id=? AND user_id=?", showID, userID)
	return err
}

// IsPartner reports whether the user is in the show's partner set.
func (r *ShowRepo) IsPartner(ctx context.Context, showID, userID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM show_partners WHERE show_id=? AND user_id=? LIMIT 1", showID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ShowRepo) list(ctx context.Context, q string, args ...any) ([]model.Show, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Show
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanShow(sc scanner) (model.Show, error) {
	var s model.Show
	var format, relationship, ageBand, gender string
	var ageMonths sql.NullInt64
	var startDate sql.NullTime
	err := sc.Scan(
		&s.ID, &s.Name, &s.ShowType, &s.SelectType, &s.Subnetwork, &format,
		&relationship, &s.Genre, &s.IsTentpole, &s.IsOriginal, &s.IsActive, &s.IsUndersized,
		&ageMonths, &startDate, &s.MinimumGuarantee, &s.OwnershipPercentage,
		&s.BrandedRevenueAmount, &s.MarketingRevenueAmount, &s.WebManagementRevenue,
		&s.LatestCPM, &s.HasSponsorshipRevenue, &s.HasNonEvergreenRevenue,
		&s.RequiresPartnerLedgerAccess, &s.ShowsPerYear, &s.AdSlots, &s.AverageLength,
		&s.HostContact.Name, &s.HostContact.Address, &s.HostContact.Phone, &s.HostContact.Email,
		&s.ShowContact.Name, &s.ShowContact.Address, &s.ShowContact.Phone, &s.ShowContact.Email,
		&ageBand, &gender, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return model.Show{}, err
	}
	s.Format = model.Format(format)
	s.Relationship = model.Relationship(relationship)
	s.AgeDemographic = model.AgeBand(ageBand)
	s.GenderDemographic = model.Gender(gender)
	if ageMonths.Valid {
		s.AgeMonths = int(ageMonths.Int64)
	}
	if startDate.Valid {
		t := startDate.Time
		s.StartDate = &t
	}
	return s, nil
}

// attach loads annual revenue and partner sets for the given shows in two
// queries keyed by the collected IDs.
func (r *ShowRepo) attach(ctx context.Context, shows []model.Show) error {
	if len(shows) == 0 {
		return nil
	}
	index := make(map[string]*model.Show, len(shows))
	ids := make([]any, 0, len(shows))
	for i := range shows {
		index[shows[i].ID] = &shows[i]
		ids = append(ids, shows[i].ID)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	rows, err := r.db.QueryContext(ctx,
		"SELECT show_id, year, amount_usd FROM show_annual_revenue WHERE show_id IN ("+placeholders+")", ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var showID string
		var year int
		var amount float64
		if err := rows.Scan(&showID, &year, &amount); err != nil {
			return err
		}
		if s := index[showID]; s != nil {
			if s.AnnualRevenue == nil {
				s.AnnualRevenue = make(map[int]float64, 3)
			}
			s.AnnualRevenue[year] = amount
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := r.db.QueryContext(ctx,
		"SELECT show_id, user_id FROM show_partners WHERE show_id IN ("+placeholders+")", ids...)
	if err != nil {
		return err
	}
	defer prows.Close()
	for prows.Next() {
		var showID, userID string
		if err := prows.Scan(&showID, &userID); err != nil {
			return err
		}
		if s := index[showID]; s != nil {
			s.PartnerUsers = append(s.PartnerUsers, userID)
		}
	}
	return prows.Err()
}
