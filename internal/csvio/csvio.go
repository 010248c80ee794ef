// Package csvio implements the fixed 31-column CSV interchange format for
// show records. Every value is double-quoted on export and booleans are
// rendered "Yes"/"No". The three revenue columns are the sliding window
// anchored on the current year, so the header is generated, not constant.
package csvio

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// NumColumns is the fixed width of the schema.
const NumColumns = 31

// Headers returns the column headers for the revenue window anchored on
// now.
func Headers(now time.Time) []string {
	years := model.RevenueWindow(now)
	return []string{
		"Show Name",
		"Show Type",
		"Select Type",
		"Subnetwork",
		"Format",
		"Relationship",
		"Age (Months)",
		"Genre",
		"Shows per Year",
		"Minimum Guarantee",
		"Ownership %",
		fmt.Sprintf("Revenue %d", years[0]),
		fmt.Sprintf("Revenue %d", years[1]),
		fmt.Sprintf("Revenue %d", years[2]),
		"Is Tentpole",
		"Is Original",
		"Is Active",
		"Age Demographic",
		"Gender Demographic",
		"Branded Revenue Amount",
		"Marketing Revenue Amount",
		"Web Management Revenue",
		"Latest CPM",
		"Has Sponsorship Revenue",
		"Has Non Evergreen Revenue",
		"Requires Partner Ledger Access",
		"Ad Slots",
		"Average Length",
		"Primary Contact Host",
		"Primary Contact Show",
		"Is Undersized",
	}
}

// Record flattens one show into its 31 column values.
func Record(s model.Show, now time.Time) []string {
	rev := s.WindowRevenue(now)
	return []string{
		s.Name,
		s.ShowType,
		s.SelectType,
		s.Subnetwork,
		string(s.Format),
		string(s.Relationship),
		strconv.Itoa(s.AgeMonths),
		s.Genre,
		strconv.Itoa(s.ShowsPerYear),
		formatAmount(s.MinimumGuarantee),
		formatAmount(s.OwnershipPercentage),
		formatAmount(rev[0]),
		formatAmount(rev[1]),
		formatAmount(rev[2]),
		yesNo(s.IsTentpole),
		yesNo(s.IsOriginal),
		yesNo(s.IsActive),
		string(s.AgeDemographic),
		string(s.GenderDemographic),
		formatAmount(s.BrandedRevenueAmount),
		formatAmount(s.MarketingRevenueAmount),
		formatAmount(s.WebManagementRevenue),
		formatAmount(s.LatestCPM),
		yesNo(s.HasSponsorshipRevenue),
		yesNo(s.HasNonEvergreenRevenue),
		yesNo(s.RequiresPartnerLedgerAccess),
		strconv.Itoa(s.AdSlots),
		strconv.Itoa(s.AverageLength),
		s.HostContact.LegacyString(),
		s.ShowContact.LegacyString(),
		yesNo(s.IsUndersized),
	}
}

// Encode writes the header row and one row per show. Every field is
// wrapped in double quotes, with embedded quotes doubled.
func Encode(shows []model.Show, now time.Time) string {
	var b strings.Builder
	writeRow(&b, Headers(now))
	for _, s := range shows {
		writeRow(&b, Record(s, now))
	}
	return b.String()
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// Decode parses CSV content in the 31-column schema back into shows. The
// header row is required and must carry exactly 31 columns; revenue years
// are read from the header itself so files exported under a different
// window anchor still import correctly.
func Decode(content string, now time.Time) ([]model.Show, error) {
	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = NumColumns
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv: header row required")
	}
	years, err := headerYears(rows[0])
	if err != nil {
		return nil, err
	}
	shows := make([]model.Show, 0, len(rows)-1)
	for i, row := range rows[1:] {
		s, err := decodeRow(row, years)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		shows = append(shows, s)
	}
	return shows, nil
}

// headerYears validates the fixed columns and extracts the three revenue
// years from the header.
func headerYears(header []string) ([3]int, error) {
	var years [3]int
	want := Headers(time.Now())
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i >= 11 && i <= 13 {
			var y int
			if _, err := fmt.Sscanf(h, "Revenue %d", &y); err != nil {
				return years, fmt.Errorf("column %d: expected a Revenue year header, got %q", i+1, h)
			}
			years[i-11] = y
			continue
		}
		if h != want[i] {
			return years, fmt.Errorf("column %d: expected header %q, got %q", i+1, want[i], h)
		}
	}
	return years, nil
}

func decodeRow(row []string, years [3]int) (model.Show, error) {
	age, err := parseInt(row[6], "Age (Months)")
	if err != nil {
		return model.Show{}, err
	}
	perYear, err := parseInt(row[8], "Shows per Year")
	if err != nil {
		return model.Show{}, err
	}
	adSlots, err := parseInt(row[26], "Ad Slots")
	if err != nil {
		return model.Show{}, err
	}
	avgLen, err := parseInt(row[27], "Average Length")
	if err != nil {
		return model.Show{}, err
	}
	s := model.Show{
		Name:                        row[0],
		ShowType:                    row[1],
		SelectType:                  row[2],
		Subnetwork:                  row[3],
		Format:                      model.Format(row[4]),
		Relationship:                model.Relationship(row[5]),
		AgeMonths:                   age,
		Genre:                       row[7],
		ShowsPerYear:                perYear,
		MinimumGuarantee:            parseAmount(row[9]),
		OwnershipPercentage:         parseAmount(row[10]),
		IsTentpole:                  isYes(row[14]),
		IsOriginal:                  isYes(row[15]),
		IsActive:                    isYes(row[16]),
		AgeDemographic:              model.AgeBand(row[17]),
		GenderDemographic:           model.Gender(row[18]),
		BrandedRevenueAmount:        parseAmount(row[19]),
		MarketingRevenueAmount:      parseAmount(row[20]),
		WebManagementRevenue:        parseAmount(row[21]),
		LatestCPM:                   parseAmount(row[22]),
		HasSponsorshipRevenue:       isYes(row[23]),
		HasNonEvergreenRevenue:      isYes(row[24]),
		RequiresPartnerLedgerAccess: isYes(row[25]),
		AdSlots:                     adSlots,
		AverageLength:               avgLen,
		HostContact:                 model.ParseLegacyContact(row[28]),
		ShowContact:                 model.ParseLegacyContact(row[29]),
		IsUndersized:                isYes(row[30]),
	}
	s.AnnualRevenue = map[int]float64{
		years[0]: parseAmount(row[11]),
		years[1]: parseAmount(row[12]),
		years[2]: parseAmount(row[13]),
	}
	return s, nil
}

// Template returns the downloadable import template: headers plus one
// sample row.
func Template(now time.Time) string {
	sample := model.Show{
		Name:                        "The History Hour",
		ShowType:                    "Original",
		SelectType:                  "Podcasts",
		Subnetwork:                  "Evergreen History",
		Format:                      model.FormatAudio,
		Relationship:                model.RelationshipStrong,
		AgeMonths:                   12,
		Genre:                       "History",
		ShowsPerYear:                52,
		MinimumGuarantee:            50000,
		OwnershipPercentage:         70,
		IsTentpole:                  true,
		IsOriginal:                  true,
		IsActive:                    true,
		AgeDemographic:              model.Age35to44,
		GenderDemographic:           model.GenderMale,
		BrandedRevenueAmount:        15000,
		MarketingRevenueAmount:      8000,
		WebManagementRevenue:        3000,
		LatestCPM:                   25.50,
		HasSponsorshipRevenue:       true,
		AdSlots:                     3,
		AverageLength:               45,
		HostContact:                 model.Contact{Name: "John Smith", Address: "123 Main St, New York, NY", Phone: "(555) 123-4567", Email: "john@example.com"},
		ShowContact:                 model.Contact{Name: "Sarah Johnson", Address: "456 Oak Ave, Los Angeles, CA", Phone: "(555) 987-6543", Email: "sarah@example.com"},
		RequiresPartnerLedgerAccess: true,
	}
	years := model.RevenueWindow(now)
	sample.AnnualRevenue = map[int]float64{
		years[0]: 125000,
		years[1]: 150000,
		years[2]: 180000,
	}
	return Encode([]model.Show{sample}, now)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// formatAmount renders numbers without a fixed precision so values
// round-trip exactly.
func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseAmount reads a numeric column, tolerating blank cells as 0.
func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s, column string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number", column, s)
	}
	return n, nil
}
