// Package adapter owns the translation between the snake_case, nullable
// wire format spoken by the HTTP API and the canonical model types. Two
// divergent field-naming conventions existed historically; this package is
// the only place either of them appears, and model.Show is the single
// internal representation.
package adapter

import (
	"strconv"
	"strings"
	"time"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// dateLayout is the wire form of start_date.
const dateLayout = "2006-01-02"

// ShowWire is the JSON shape of a show on the wire. Numeric and enum
// fields are nullable; absent values decode as nil and encode as null.
type ShowWire struct {
	ID                     string             `json:"id"`
	Title                  *string            `json:"title"`
	MinimumGuarantee       *float64           `json:"minimum_guarantee"`
	AnnualUSD              map[string]float64 `json:"annual_usd"`
	SubnetworkID           *string            `json:"subnetwork_id"`
	MediaType              *string            `json:"media_type"`         // video | audio | both
	Tentpole               bool               `json:"tentpole"`
	RelationshipLevel      *string            `json:"relationship_level"` // strong | medium | weak
	ShowType               *string            `json:"show_type"`          // Branded | Original | Partner
	SelectType             *string            `json:"select_type"`
	EvergreenOwnershipPct  *float64           `json:"evergreen_ownership_pct"`
	HasSponsorshipRevenue  *bool              `json:"has_sponsorship_revenue"`
	HasNonEvergreenRevenue *bool              `json:"has_non_evergreen_revenue"`
	RequiresPartnerAccess  *bool              `json:"requires_partner_access"`
	HasBrandedRevenue      *bool              `json:"has_branded_revenue"`
	HasMarketingRevenue    *bool              `json:"has_marketing_revenue"`
	HasWebMgmtRevenue      *bool              `json:"has_web_mgmt_revenue"`
	BrandedRevenueAmount   *float64           `json:"branded_revenue_amount"`
	MarketingRevenueAmount *float64           `json:"marketing_revenue_amount"`
	WebMgmtRevenueAmount   *float64           `json:"web_mgmt_revenue_amount"`
	GenreID                *string            `json:"genre_id"`
	IsOriginal             *bool              `json:"is_original"`
	ShowsPerYear           *int               `json:"shows_per_year"`
	LatestCPMUSD           *float64           `json:"latest_cpm_usd"`
	AdSlots                *int               `json:"ad_slots"`
	AvgShowLengthMins      *int               `json:"avg_show_length_mins"`
	AgeMonths              *int               `json:"age_months"`
	StartDate              *string            `json:"start_date"`
	AgeDemographic         *string            `json:"age_demographic"`
	GenderDemographic      *string            `json:"gender_demographic"`
	IsActive               *bool              `json:"is_active"`
	IsUndersized           *bool              `json:"is_undersized"`
	ShowHostContact        *string            `json:"show_host_contact"`
	ShowPrimaryContact     *string            `json:"show_primary_contact"`
	PartnerUsers           []string           `json:"partner_users"`
	CreatedAt              string             `json:"created_at,omitempty"`
	UpdatedAt              string             `json:"updated_at,omitempty"`
}

// FromWire builds the canonical show from its wire form. Nil numerics read
// as zero; enum strings are normalized; the legacy comma-joined contact
// strings are parsed into structured contacts.
func FromWire(w ShowWire) model.Show {
	s := model.Show{
		ID:                          w.ID,
		Name:                        deref(w.Title),
		ShowType:                    deref(w.ShowType),
		SelectType:                  deref(w.SelectType),
		Subnetwork:                  deref(w.SubnetworkID),
		Format:                      formatFromWire(deref(w.MediaType)),
		Relationship:                relationshipFromWire(deref(w.RelationshipLevel)),
		Genre:                       deref(w.GenreID),
		IsTentpole:                  w.Tentpole,
		IsOriginal:                  derefBool(w.IsOriginal),
		IsActive:                    derefBoolDefault(w.IsActive, true),
		IsUndersized:                derefBool(w.IsUndersized),
		MinimumGuarantee:            derefF(w.MinimumGuarantee),
		OwnershipPercentage:         derefF(w.EvergreenOwnershipPct),
		BrandedRevenueAmount:        derefF(w.BrandedRevenueAmount),
		MarketingRevenueAmount:      derefF(w.MarketingRevenueAmount),
		WebManagementRevenue:        derefF(w.WebMgmtRevenueAmount),
		LatestCPM:                   derefF(w.LatestCPMUSD),
		HasSponsorshipRevenue:       derefBool(w.HasSponsorshipRevenue),
		HasNonEvergreenRevenue:      derefBool(w.HasNonEvergreenRevenue),
		RequiresPartnerLedgerAccess: derefBool(w.RequiresPartnerAccess),
		ShowsPerYear:                derefI(w.ShowsPerYear),
		AdSlots:                     derefI(w.AdSlots),
		AverageLength:               derefI(w.AvgShowLengthMins),
		AgeMonths:                   derefI(w.AgeMonths),
		HostContact:                 model.ParseLegacyContact(deref(w.ShowHostContact)),
		ShowContact:                 model.ParseLegacyContact(deref(w.ShowPrimaryContact)),
		AgeDemographic:              model.AgeBand(deref(w.AgeDemographic)),
		GenderDemographic:           genderFromWire(deref(w.GenderDemographic)),
		PartnerUsers:                w.PartnerUsers,
	}
	if len(w.AnnualUSD) > 0 {
		s.AnnualRevenue = make(map[int]float64, len(w.AnnualUSD))
		for year, amount := range w.AnnualUSD {
			if y, err := strconv.Atoi(year); err == nil {
				s.AnnualRevenue[y] = amount
			}
		}
	}
	if w.StartDate != nil && *w.StartDate != "" {
		if t, err := time.Parse(dateLayout, *w.StartDate); err == nil {
			s.StartDate = &t
		}
	}
	if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
		s.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, w.UpdatedAt); err == nil {
		s.UpdatedAt = t
	}
	return s
}

// ToWire serializes the canonical show. The legacy has_* revenue flags are
// derived from the amounts so that form versions reading either variant
// agree with each other.
func ToWire(s model.Show) ShowWire {
	w := ShowWire{
		ID:                     s.ID,
		Title:                  ptr(s.Name),
		MinimumGuarantee:       ptrF(s.MinimumGuarantee),
		SubnetworkID:           ptr(s.Subnetwork),
		MediaType:              ptr(strings.ToLower(string(s.Format))),
		Tentpole:               s.IsTentpole,
		RelationshipLevel:      ptr(strings.ToLower(string(s.Relationship))),
		ShowType:               ptr(s.ShowType),
		SelectType:             ptr(s.SelectType),
		EvergreenOwnershipPct:  ptrF(s.OwnershipPercentage),
		HasSponsorshipRevenue:  ptrB(s.HasSponsorshipRevenue),
		HasNonEvergreenRevenue: ptrB(s.HasNonEvergreenRevenue),
		RequiresPartnerAccess:  ptrB(s.RequiresPartnerLedgerAccess),
		HasBrandedRevenue:      ptrB(s.BrandedRevenueAmount > 0),
		HasMarketingRevenue:    ptrB(s.MarketingRevenueAmount > 0),
		HasWebMgmtRevenue:      ptrB(s.WebManagementRevenue > 0),
		BrandedRevenueAmount:   ptrF(s.BrandedRevenueAmount),
		MarketingRevenueAmount: ptrF(s.MarketingRevenueAmount),
		WebMgmtRevenueAmount:   ptrF(s.WebManagementRevenue),
		GenreID:                ptr(s.Genre),
		IsOriginal:             ptrB(s.IsOriginal),
		ShowsPerYear:           ptrI(s.ShowsPerYear),
		LatestCPMUSD:           ptrF(s.LatestCPM),
		AdSlots:                ptrI(s.AdSlots),
		AvgShowLengthMins:      ptrI(s.AverageLength),
		AgeMonths:              ptrI(s.AgeMonths),
		AgeDemographic:         ptr(string(s.AgeDemographic)),
		GenderDemographic:      ptr(string(s.GenderDemographic)),
		IsActive:               ptrB(s.IsActive),
		IsUndersized:           ptrB(s.IsUndersized),
		ShowHostContact:        ptr(s.HostContact.LegacyString()),
		ShowPrimaryContact:     ptr(s.ShowContact.LegacyString()),
		PartnerUsers:           s.PartnerUsers,
	}
	if len(s.AnnualRevenue) > 0 {
		w.AnnualUSD = make(map[string]float64, len(s.AnnualRevenue))
		for y, amount := range s.AnnualRevenue {
			w.AnnualUSD[strconv.Itoa(y)] = amount
		}
	}
	if s.StartDate != nil {
		w.StartDate = ptr(s.StartDate.Format(dateLayout))
	}
	if !s.CreatedAt.IsZero() {
		w.CreatedAt = s.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !s.UpdatedAt.IsZero() {
		w.UpdatedAt = s.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return w
}

func formatFromWire(s string) model.Format {
	switch strings.ToLower(s) {
	case "video":
		return model.FormatVideo
	case "both":
		return model.FormatBoth
	default:
		return model.FormatAudio
	}
}

func relationshipFromWire(s string) model.Relationship {
	switch strings.ToLower(s) {
	case "strong":
		return model.RelationshipStrong
	case "weak":
		return model.RelationshipWeak
	default:
		return model.RelationshipMedium
	}
}

func genderFromWire(s string) model.Gender {
	// The structured split variant is normalized to the coarse enum.
	if gs, err := model.ParseGenderSplit(s); err == nil {
		return gs.Dominant()
	}
	switch s {
	case string(model.GenderFemale):
		return model.GenderFemale
	case string(model.GenderOthers):
		return model.GenderOthers
	default:
		return model.GenderMale
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefI(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool { return p != nil && *p }

func derefBoolDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func ptr(s string) *string     { return &s }
func ptrF(f float64) *float64  { return &f }
func ptrI(i int) *int          { return &i }
func ptrB(b bool) *bool        { return &b }
