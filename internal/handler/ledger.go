package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/repository"
	"github.com/evergreenmedia/showdesk/internal/view"
)

// LedgerHandler serves the read-only revenue ledger. Entries come from the
// books; this service never writes them.
type LedgerHandler struct {
	Ledger *repository.LedgerRepo
}

func NewLedgerHandler(l *repository.LedgerRepo) *LedgerHandler {
	return &LedgerHandler{Ledger: l}
}

// entryWire is the JSON shape of one ledger entry.
type entryWire struct {
	ID            string   `json:"id"`
	ShowID        string   `json:"show_id"`
	Agency        string   `json:"agency"`
	Advertiser    string   `json:"advertiser"`
	Campaign      string   `json:"campaign"`
	Dates         string   `json:"dates"`
	TotalNet      float64  `json:"total_net"`
	EvergreenComp float64  `json:"evergreen_comp"`
	PartnerComp   float64  `json:"partner_comp"`
	AmountPaid    *float64 `json:"amount_paid"`
	DatePaid      *string  `json:"date_paid"`
	Notes         string   `json:"notes"`
	CreatedAt     string   `json:"created_at"`
}

// List handles GET /ledger. Admins see every entry; partners see only
// entries for their shows, and only where the show grants ledger access.
// The optional show_id, dates, and agency query params narrow the result.
func (h *LedgerHandler) List(c echo.Context) error {
	entries, err := h.load(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load ledger"})
	}
	entries = view.ApplyLedgerFilters(entries, filtersFromQuery(c))

	out := make([]entryWire, 0, len(entries))
	for _, e := range entries {
		out = append(out, entryWire{
			ID:            e.ID,
			ShowID:        e.ShowID,
			Agency:        e.Agency,
			Advertiser:    e.Advertiser,
			Campaign:      e.Campaign,
			Dates:         e.Dates,
			TotalNet:      e.TotalNet,
			EvergreenComp: e.EvergreenComp,
			PartnerComp:   e.PartnerComp,
			AmountPaid:    e.AmountPaid,
			DatePaid:      e.DatePaid,
			Notes:         e.Notes,
			CreatedAt:     e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Summary handles GET /ledger/summary: the aggregate fold over the same
// role-scoped, filtered entry set the list endpoint returns.
func (h *LedgerHandler) Summary(c echo.Context) error {
	entries, err := h.load(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "failed to load ledger"})
	}
	entries = view.ApplyLedgerFilters(entries, filtersFromQuery(c))

	t := view.ComputeTotals(entries)
	return c.JSON(http.StatusOK, echo.Map{
		"total_net":      t.TotalNet,
		"evergreen_comp": t.EvergreenComp,
		"partner_comp":   t.PartnerComp,
		"amount_paid":    t.AmountPaid,
		"payments":       t.Payments,
		"evergreen_pct":  t.EvergreenShare(),
		"partner_pct":    t.PartnerShare(),
	})
}

func (h *LedgerHandler) load(c echo.Context) ([]model.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if middleware.Role(c) == string(model.RoleAdmin) {
		return h.Ledger.ListAll(ctx)
	}
	return h.Ledger.ListForPartner(ctx, middleware.UserID(c))
}

func filtersFromQuery(c echo.Context) view.LedgerFilters {
	return view.LedgerFilters{
		ShowID: c.QueryParam("show_id"),
		Dates:  c.QueryParam("dates"),
		Agency: c.QueryParam("agency"),
	}
}
