// Package view holds the pure client-side working-set logic: filtering a
// loaded record set, aggregating ledger totals, and tracking a selection.
// Nothing here talks to the network or the database.
package view

import (
	"strconv"
	"strings"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// All is the sentinel a categorical criterion uses to mean "no constraint".
// An empty string means the same thing.
const All = "all"

// ShowFilters is a conjunction of independently optional criteria over a
// loaded show set. Boolean criteria use "yes"/"no" with ""/"all" meaning
// unconstrained, matching the select controls they back.
type ShowFilters struct {
	Search                      string
	MinimumGuarantee            string // numeric threshold, matches >= value
	Subnetwork                  string
	Format                      string
	Tentpole                    string
	Relationship                string
	ShowType                    string
	Genre                       string
	HasSponsorshipRevenue       string
	HasNonEvergreenRevenue      string
	RequiresPartnerLedgerAccess string
	IsOriginal                  string
	IsActive                    string
	AgeDemographic              string
	GenderDemographic           string
	OwnershipPercentage         string // exact numeric match
}

// ApplyShowFilters returns the subset of shows matching every set
// criterion. It is pure and order-independent: criteria AND together, so
// the same filters in any order produce the same subset.
func ApplyShowFilters(shows []model.Show, f ShowFilters) []model.Show {
	out := make([]model.Show, 0, len(shows))
	for _, s := range shows {
		if matchesShow(s, f) {
			out = append(out, s)
		}
	}
	return out
}

func matchesShow(s model.Show, f ShowFilters) bool {
	if f.Search != "" && !matchesSearch(s, f.Search) {
		return false
	}
	if f.MinimumGuarantee != "" {
		min, err := strconv.ParseFloat(f.MinimumGuarantee, 64)
		if err == nil && s.MinimumGuarantee < min {
			return false
		}
	}
	if !matchCategory(f.Subnetwork, s.Subnetwork) {
		return false
	}
	if !matchCategory(f.Format, string(s.Format)) {
		return false
	}
	if !matchBool(f.Tentpole, s.IsTentpole) {
		return false
	}
	if !matchCategory(f.Relationship, string(s.Relationship)) {
		return false
	}
	if !matchCategory(f.ShowType, s.ShowType) {
		return false
	}
	if !matchCategory(f.Genre, s.Genre) {
		return false
	}
	if !matchBool(f.HasSponsorshipRevenue, s.HasSponsorshipRevenue) {
		return false
	}
	if !matchBool(f.HasNonEvergreenRevenue, s.HasNonEvergreenRevenue) {
		return false
	}
	if !matchBool(f.RequiresPartnerLedgerAccess, s.RequiresPartnerLedgerAccess) {
		return false
	}
	if !matchBool(f.IsOriginal, s.IsOriginal) {
		return false
	}
	if !matchBool(f.IsActive, s.IsActive) {
		return false
	}
	if !matchCategory(f.AgeDemographic, string(s.AgeDemographic)) {
		return false
	}
	if !matchCategory(f.GenderDemographic, string(s.GenderDemographic)) {
		return false
	}
	if f.OwnershipPercentage != "" && f.OwnershipPercentage != All {
		pct, err := strconv.ParseFloat(f.OwnershipPercentage, 64)
		if err == nil && s.OwnershipPercentage != pct {
			return false
		}
	}
	return true
}

// matchesSearch checks the case-insensitive free-text term against the
// fixed list of searchable fields; a hit in any one field qualifies.
func matchesSearch(s model.Show, term string) bool {
	term = strings.ToLower(term)
	fields := []string{
		s.Name,
		s.ShowType,
		s.SelectType,
		s.Subnetwork,
		s.Genre,
		s.HostContact.Name,
		s.HostContact.Email,
		s.HostContact.Phone,
		s.ShowContact.Name,
		s.ShowContact.Email,
		s.ShowContact.Phone,
		string(s.Relationship),
		string(s.Format),
		string(s.AgeDemographic),
		string(s.GenderDemographic),
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func matchCategory(criterion, value string) bool {
	if criterion == "" || criterion == All {
		return true
	}
	return criterion == value
}

func matchBool(criterion string, value bool) bool {
	switch criterion {
	case "", All:
		return true
	case "yes":
		return value
	default:
		return !value
	}
}

// LedgerFilters narrows a loaded ledger set. ShowID uses the "all"
// sentinel; Dates is a substring match against the free-text period;
// Agency matches against either the agency or the advertiser.
type LedgerFilters struct {
	ShowID string
	Dates  string
	Agency string
}

// ApplyLedgerFilters returns the entries matching every set criterion.
func ApplyLedgerFilters(entries []model.LedgerEntry, f LedgerFilters) []model.LedgerEntry {
	out := make([]model.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if f.ShowID != "" && f.ShowID != All && e.ShowID != f.ShowID {
			continue
		}
		if f.Dates != "" && !strings.Contains(e.Dates, f.Dates) {
			continue
		}
		if f.Agency != "" {
			needle := strings.ToLower(f.Agency)
			if !strings.Contains(strings.ToLower(e.Agency), needle) &&
				!strings.Contains(strings.ToLower(e.Advertiser), needle) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
