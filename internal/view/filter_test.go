package view

import (
	"testing"

	"github.com/evergreenmedia/showdesk/internal/model"
)

func sampleShows() []model.Show {
	return []model.Show{
		{
			ID: "s1", Name: "The History Hour", ShowType: "Original",
			Subnetwork: "EV-North", Format: model.FormatAudio,
			Relationship: model.RelationshipStrong, Genre: "History",
			MinimumGuarantee: 50000, OwnershipPercentage: 70,
			IsTentpole: true, IsActive: true,
			AgeDemographic: model.Age25to34, GenderDemographic: model.GenderMale,
			HostContact: model.Contact{Name: "Jane Host", Email: "jane@example.com"},
		},
		{
			ID: "s2", Name: "Crime Weekly", ShowType: "Partner",
			Subnetwork: "EV-South", Format: model.FormatVideo,
			Relationship: model.RelationshipStrong, Genre: "True Crime",
			MinimumGuarantee: 10000, OwnershipPercentage: 40,
			IsActive: true,
			AgeDemographic: model.Age35to44, GenderDemographic: model.GenderFemale,
		},
		{
			ID: "s3", Name: "Market Movers", ShowType: "Branded",
			Subnetwork: "EV-North", Format: model.FormatAudio,
			Relationship: model.RelationshipWeak, Genre: "Financial",
			MinimumGuarantee: 25000, OwnershipPercentage: 70,
			IsActive: false,
		},
	}
}

func ids(shows []model.Show) []string {
	out := make([]string, len(shows))
	for i, s := range shows {
		out[i] = s.ID
	}
	return out
}

func TestApplyShowFiltersConjunction(t *testing.T) {
	shows := sampleShows()

	// One Audio/Strong show and one Video/Strong show: the conjunction
	// must return exactly the first.
	got := ApplyShowFilters(shows, ShowFilters{Format: "Audio", Relationship: "Strong"})
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("Audio+Strong returned %v, want [s1]", ids(got))
	}
}

func TestApplyShowFiltersOrderIndependent(t *testing.T) {
	shows := sampleShows()
	a := ApplyShowFilters(shows, ShowFilters{Format: "Audio", Subnetwork: "EV-North", IsActive: "yes"})
	b := ApplyShowFilters(shows, ShowFilters{IsActive: "yes", Subnetwork: "EV-North", Format: "Audio"})
	if len(a) != len(b) {
		t.Fatalf("filter order changed result size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("filter order changed results: %v vs %v", ids(a), ids(b))
		}
	}
}

func TestApplyShowFiltersCases(t *testing.T) {
	shows := sampleShows()
	tests := []struct {
		name    string
		filters ShowFilters
		want    []string
	}{
		{"no criteria", ShowFilters{}, []string{"s1", "s2", "s3"}},
		{"all sentinel", ShowFilters{Format: All, ShowType: All}, []string{"s1", "s2", "s3"}},
		{"search name", ShowFilters{Search: "history"}, []string{"s1"}},
		{"search contact email", ShowFilters{Search: "jane@example"}, []string{"s1"}},
		{"search relationship", ShowFilters{Search: "weak"}, []string{"s3"}},
		{"guarantee threshold is gte", ShowFilters{MinimumGuarantee: "25000"}, []string{"s1", "s3"}},
		{"ownership exact match", ShowFilters{OwnershipPercentage: "70"}, []string{"s1", "s3"}},
		{"tentpole yes", ShowFilters{Tentpole: "yes"}, []string{"s1"}},
		{"tentpole no", ShowFilters{Tentpole: "no"}, []string{"s2", "s3"}},
		{"active no", ShowFilters{IsActive: "no"}, []string{"s3"}},
		{"genre", ShowFilters{Genre: "True Crime"}, []string{"s2"}},
		{"no match", ShowFilters{Genre: "Sports"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(ApplyShowFilters(shows, tt.filters))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApplyLedgerFilters(t *testing.T) {
	entries := []model.LedgerEntry{
		{ID: "l1", ShowID: "s1", Agency: "AdWorks", Advertiser: "Acme", Dates: "1/1/25 - 3/31/25"},
		{ID: "l2", ShowID: "s2", Agency: "MediaBuy", Advertiser: "Globex", Dates: "4/1/25 - 6/30/25"},
	}

	got := ApplyLedgerFilters(entries, LedgerFilters{ShowID: "s1"})
	if len(got) != 1 || got[0].ID != "l1" {
		t.Fatalf("show filter returned %d entries", len(got))
	}

	got = ApplyLedgerFilters(entries, LedgerFilters{Dates: "4/1/25"})
	if len(got) != 1 || got[0].ID != "l2" {
		t.Fatalf("dates substring returned %d entries", len(got))
	}

	// Agency matches against agency or advertiser, case-insensitively.
	got = ApplyLedgerFilters(entries, LedgerFilters{Agency: "globex"})
	if len(got) != 1 || got[0].ID != "l2" {
		t.Fatalf("advertiser match returned %d entries", len(got))
	}

	got = ApplyLedgerFilters(entries, LedgerFilters{ShowID: All})
	if len(got) != 2 {
		t.Fatalf("all sentinel returned %d entries", len(got))
	}
}
