package adapter

import (
	"strconv"
	"time"

	"github.com/evergreenmedia/showdesk/internal/model"
)

// ShowPatch is the body of a partial update. Every field is optional;
// edits are merged into the stored record, never replace it wholesale.
type ShowPatch struct {
	Title                  *string            `json:"title"`
	MinimumGuarantee       *float64           `json:"minimum_guarantee"`
	AnnualUSD              map[string]float64 `json:"annual_usd"`
	SubnetworkID           *string            `json:"subnetwork_id"`
	MediaType              *string            `json:"media_type"`
	Tentpole               *bool              `json:"tentpole"`
	RelationshipLevel      *string            `json:"relationship_level"`
	ShowType               *string            `json:"show_type"`
	SelectType             *string            `json:"select_type"`
	EvergreenOwnershipPct  *float64           `json:"evergreen_ownership_pct"`
	HasSponsorshipRevenue  *bool              `json:"has_sponsorship_revenue"`
	HasNonEvergreenRevenue *bool              `json:"has_non_evergreen_revenue"`
	RequiresPartnerAccess  *bool              `json:"requires_partner_access"`
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
}

// Apply merges the present patch fields into the show. The ID is never
// touched; it is stable across edits.
func (p ShowPatch) Apply(s *model.Show) {
	if p.Title != nil {
		s.Name = *p.Title
	}
	if p.MinimumGuarantee != nil {
		s.MinimumGuarantee = *p.MinimumGuarantee
	}
	if len(p.AnnualUSD) > 0 {
		if s.AnnualRevenue == nil {
			s.AnnualRevenue = make(map[int]float64, len(p.AnnualUSD))
		}
		for year, amount := range p.AnnualUSD {
			if y, err := strconv.Atoi(year); err == nil {
				s.AnnualRevenue[y] = amount
			}
		}
	}
	if p.SubnetworkID != nil {
		s.Subnetwork = *p.SubnetworkID
	}
	if p.MediaType != nil {
		s.Format = formatFromWire(*p.MediaType)
	}
	if p.Tentpole != nil {
		s.IsTentpole = *p.Tentpole
	}
	if p.RelationshipLevel != nil {
		s.Relationship = relationshipFromWire(*p.RelationshipLevel)
	}
	if p.ShowType != nil {
		s.ShowType = *p.ShowType
	}
	if p.SelectType != nil {
		s.SelectType = *p.SelectType
	}
	if p.EvergreenOwnershipPct != nil {
		s.OwnershipPercentage = *p.EvergreenOwnershipPct
	}
	if p.HasSponsorshipRevenue != nil {
		s.HasSponsorshipRevenue = *p.HasSponsorshipRevenue
	}
	if p.HasNonEvergreenRevenue != nil {
		s.HasNonEvergreenRevenue = *p.HasNonEvergreenRevenue
	}
	if p.RequiresPartnerAccess != nil {
		s.RequiresPartnerLedgerAccess = *p.RequiresPartnerAccess
	}
	if p.BrandedRevenueAmount != nil {
		s.BrandedRevenueAmount = *p.BrandedRevenueAmount
	}
	if p.MarketingRevenueAmount != nil {
		s.MarketingRevenueAmount = *p.MarketingRevenueAmount
	}
	if p.WebMgmtRevenueAmount != nil {
		s.WebManagementRevenue = *p.WebMgmtRevenueAmount
	}
	if p.GenreID != nil {
		s.Genre = *p.GenreID
	}
	if p.IsOriginal != nil {
		s.IsOriginal = *p.IsOriginal
	}
	if p.ShowsPerYear != nil {
		s.ShowsPerYear = *p.ShowsPerYear
	}
	if p.LatestCPMUSD != nil {
		s.LatestCPM = *p.LatestCPMUSD
	}
	if p.AdSlots != nil {
		s.AdSlots = *p.AdSlots
	}
	if p.AvgShowLengthMins != nil {
		s.AverageLength = *p.AvgShowLengthMins
	}
	if p.AgeMonths != nil {
		s.AgeMonths = *p.AgeMonths
	}
	if p.StartDate != nil {
		if t, err := time.Parse(dateLayout, *p.StartDate); err == nil {
			s.StartDate = &t
		}
	}
	if p.AgeDemographic != nil {
		s.AgeDemographic = model.AgeBand(*p.AgeDemographic)
	}
	if p.GenderDemographic != nil {
		s.GenderDemographic = genderFromWire(*p.GenderDemographic)
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.IsUndersized != nil {
		s.IsUndersized = *p.IsUndersized
	}
	if p.ShowHostContact != nil {
		s.HostContact = model.ParseLegacyContact(*p.ShowHostContact)
	}
	if p.ShowPrimaryContact != nil {
		s.ShowContact = model.ParseLegacyContact(*p.ShowPrimaryContact)
	}
}
