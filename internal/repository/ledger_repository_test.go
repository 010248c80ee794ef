package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var ledgerCols = []string{"id", "show_id", "agency", "advertiser", "campaign", "dates",
	"total_net", "evergreen_comp", "partner_comp", "amount_paid", "date_paid", "notes", "created_at"}

func TestLedgerRepoListForPartner(t *testing.T) {
	mock, _, _, ledger, done := setupMock(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries").
		WithArgs("u7").
		WillReturnRows(sqlmock.NewRows(ledgerCols).
			AddRow("l1", "s1", "AdWorks", "Acme", "Q1 push", "1/1/25 - 3/31/25",
				12000.0, 8400.0, 3600.0, nil, nil, nil, time.Now()))

	entries, err := ledger.ListForPartner(context.Background(), "u7")
	if err != nil {
		t.Fatalf("ListForPartner: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	e := entries[0]
	if e.AmountPaid != nil || e.DatePaid != nil || e.Notes != "" {
		t.Errorf("nullable columns misread: %+v", e)
	}
	if e.TotalNet != 12000 || e.EvergreenComp != 8400 {
		t.Errorf("amounts misread: %+v", e)
	}
}

func TestLedgerRepoListAllPaidEntry(t *testing.T) {
	mock, _, _, ledger, done := setupMock(t)
	defer done()

	mock.ExpectQuery("SELECT (.+) FROM ledger_entries ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(ledgerCols).
			AddRow("l2", "s2", "MediaMax", "Globex", "Spring flight", "4/1/25 - 6/30/25",
				5000.0, 3500.0, 1500.0, 1500.0, "7/15/25", "wired", time.Now()))

	entries, err := ledger.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	e := entries[0]
	if e.AmountPaid == nil || *e.AmountPaid != 1500 {
		t.Errorf("AmountPaid = %v", e.AmountPaid)
	}
	if e.DatePaid == nil || *e.DatePaid != "7/15/25" {
		t.Errorf("DatePaid = %v", e.DatePaid)
	}
	if e.Notes != "wired" {
		t.Errorf("Notes = %q", e.Notes)
	}
}
