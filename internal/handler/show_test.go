package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/repository"
)

func TestValidateShow(t *testing.T) {
	valid := func() model.Show {
		return model.Show{
			Name:                "The History Hour",
			Genre:               "History",
			OwnershipPercentage: 70,
			ShowsPerYear:        52,
		}
	}
	cases := []struct {
		name   string
		mutate func(*model.Show)
		want   string
	}{
		{"valid", func(s *model.Show) {}, ""},
		{"missing title", func(s *model.Show) { s.Name = "" }, "title is required"},
		{"ownership over 100", func(s *model.Show) { s.OwnershipPercentage = 101 },
			"evergreen_ownership_pct must be between 0 and 100"},
		{"ownership negative", func(s *model.Show) { s.OwnershipPercentage = -1 },
			"evergreen_ownership_pct must be between 0 and 100"},
		{"bad genre", func(s *model.Show) { s.Genre = "Polka" }, "unknown genre_id"},
		{"empty genre allowed", func(s *model.Show) { s.Genre = "" }, ""},
		{"negative age", func(s *model.Show) { s.AgeMonths = -3 }, "age_months must not be negative"},
		{"negative guarantee", func(s *model.Show) { s.MinimumGuarantee = -1 },
			"revenue amounts must not be negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			assert.Equal(t, tc.want, validateShow(&s))
		})
	}
}

func TestGetMasksForeignShowAsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{
		"id", "title", "show_type", "select_type", "subnetwork_id", "media_type",
		"relationship_level", "genre_id", "tentpole", "is_original", "is_active", "is_undersized",
		"age_months", "start_date", "minimum_guarantee", "evergreen_ownership_pct",
		"branded_revenue_amount", "marketing_revenue_amount", "web_mgmt_revenue_amount",
		"latest_cpm_usd", "has_sponsorship_revenue", "has_non_evergreen_revenue",
		"requires_partner_access", "shows_per_year", "ad_slots", "avg_show_length_mins",
		"host_contact_name", "host_contact_address", "host_contact_phone", "host_contact_email",
		"show_contact_name", "show_contact_address", "show_contact_phone", "show_contact_email",
		"age_demographic", "gender_demographic", "created_at", "updated_at",
	}
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM shows WHERE id").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"s1", "The History Hour", "Original", "Podcasts", "EV-North", "Audio",
			"Strong", "History", false, true, true, false,
			12, nil, 50000.0, 70.0,
			0.0, 0.0, 0.0,
			25.5, true, false,
			true, 52, 3, 45,
			"", "", "", "",
			"", "", "", "",
			"25-34", "Male", now, now,
		))
	mock.ExpectQuery("SELECT show_id, year, amount_usd FROM show_annual_revenue").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"show_id", "year", "amount_usd"}))
	// Partner set holds somebody else, not the caller.
	mock.ExpectQuery("SELECT show_id, user_id FROM show_partners").
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"show_id", "user_id"}).AddRow("s1", "other-user"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("s1")
	c.Set("user_id", "u7")
	c.Set("role", string(model.RolePartner))

	h := NewShowHandler(repository.NewShowRepo(db))
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign shows mask as not found")
	assert.Contains(t, rec.Body.String(), "show not found")
}
