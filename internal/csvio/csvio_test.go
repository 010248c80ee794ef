package csvio

import (
	"strings"
	"testing"
	"time"

	"github.com/evergreenmedia/showdesk/internal/model"
)

var testNow = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestHeaders(t *testing.T) {
	h := Headers(testNow)
	if len(h) != NumColumns {
		t.Fatalf("header has %d columns, want %d", len(h), NumColumns)
	}
	if h[0] != "Show Name" || h[30] != "Is Undersized" {
		t.Errorf("unexpected boundary headers: %q, %q", h[0], h[30])
	}
	if h[11] != "Revenue 2024" || h[13] != "Revenue 2026" {
		t.Errorf("revenue window headers wrong: %q .. %q", h[11], h[13])
	}
}

func TestEncodeQuotesEveryField(t *testing.T) {
	s := model.Show{Name: `The "Big" Show`, IsActive: true}
	out := Encode([]model.Show{s}, testNow)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1 row", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"The ""Big"" Show",`) {
		t.Errorf("embedded quotes not doubled: %s", lines[1])
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Errorf("line not fully quoted: %s", line)
		}
	}
	if !strings.Contains(lines[1], `"Yes"`) || !strings.Contains(lines[1], `"No"`) {
		t.Errorf("booleans not rendered Yes/No: %s", lines[1])
	}
}

func TestRoundTrip(t *testing.T) {
	orig := model.Show{
		Name:                        "Market Movers",
		ShowType:                    "Branded",
		SelectType:                  "Podcasts",
		Subnetwork:                  "EV-North",
		Format:                      model.FormatAudio,
		Relationship:                model.RelationshipMedium,
		AgeMonths:                   18,
		Genre:                       "Financial",
		ShowsPerYear:                24,
		MinimumGuarantee:            12500.5,
		OwnershipPercentage:         55,
		IsTentpole:                  true,
		IsActive:                    true,
		AgeDemographic:              model.Age45to54,
		GenderDemographic:           model.GenderFemale,
		BrandedRevenueAmount:        4000,
		MarketingRevenueAmount:      1500.25,
		WebManagementRevenue:        900,
		LatestCPM:                   18.75,
		HasSponsorshipRevenue:       true,
		RequiresPartnerLedgerAccess: true,
		AdSlots:                     2,
		AverageLength:               30,
		HostContact:                 model.Contact{Name: "Pat Host", Phone: "555-0101", Email: "pat@example.com"},
		ShowContact:                 model.Contact{Name: "Sam Lead", Address: "9 Elm St", Phone: "555-0102", Email: "sam@example.com"},
		AnnualRevenue:               map[int]float64{2024: 80000, 2025: 95000, 2026: 110000},
	}

	decoded, err := Decode(Encode([]model.Show{orig}, testNow), testNow)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d shows, want 1", len(decoded))
	}
	got := decoded[0]

	if got.Name != orig.Name || got.Format != orig.Format || got.Relationship != orig.Relationship {
		t.Errorf("classification fields lost: %+v", got)
	}
	if got.AgeMonths != 18 || got.ShowsPerYear != 24 || got.AdSlots != 2 || got.AverageLength != 30 {
		t.Errorf("count fields lost: %+v", got)
	}
	if got.MinimumGuarantee != 12500.5 || got.MarketingRevenueAmount != 1500.25 || got.LatestCPM != 18.75 {
		t.Errorf("amounts lost precision: %+v", got)
	}
	if !got.IsTentpole || !got.IsActive || got.IsOriginal || got.IsUndersized {
		t.Errorf("boolean Yes/No did not round-trip: %+v", got)
	}
	if !got.HasSponsorshipRevenue || got.HasNonEvergreenRevenue || !got.RequiresPartnerLedgerAccess {
		t.Errorf("revenue flags did not round-trip: %+v", got)
	}
	if got.HostContact != orig.HostContact || got.ShowContact != orig.ShowContact {
		t.Errorf("contacts did not round-trip: %+v vs %+v", got.HostContact, orig.HostContact)
	}
	for y, want := range orig.AnnualRevenue {
		if got.AnnualRevenue[y] != want {
			t.Errorf("revenue %d = %.2f, want %.2f", y, got.AnnualRevenue[y], want)
		}
	}
	if got.AgeDemographic != orig.AgeDemographic || got.GenderDemographic != orig.GenderDemographic {
		t.Errorf("demographics lost: %+v", got)
	}
}

func TestDecodeReadsYearsFromHeader(t *testing.T) {
	// A file exported a year earlier carries an older window; the years
	// come from its header, not from the current clock.
	older := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	s := model.Show{Name: "Archive Show", AnnualRevenue: map[int]float64{2023: 10, 2024: 20, 2025: 30}}
	decoded, err := Decode(Encode([]model.Show{s}, older), testNow)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if decoded[0].AnnualRevenue[2023] != 10 || decoded[0].AnnualRevenue[2025] != 30 {
		t.Errorf("header years ignored: %+v", decoded[0].AnnualRevenue)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"wrong width", `"Show Name","Show Type"` + "\n"},
		{"bad header", strings.Replace(Encode(nil, testNow), "Show Name", "Name", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.content, testNow); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDecodeRejectsNonNumericCount(t *testing.T) {
	s := model.Show{Name: "X", AgeMonths: 5}
	content := strings.Replace(Encode([]model.Show{s}, testNow), `"5"`, `"five"`, 1)
	_, err := Decode(content, testNow)
	if err == nil || !strings.Contains(err.Error(), "Age (Months)") {
		t.Errorf("want column-named error, got %v", err)
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template(testNow)
	lines := strings.Split(strings.TrimRight(tmpl, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("template has %d lines, want header + sample", len(lines))
	}
	shows, err := Decode(tmpl, testNow)
	if err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if shows[0].Name != "The History Hour" {
		t.Errorf("sample row name = %q", shows[0].Name)
	}
}
