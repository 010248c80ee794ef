// Package model defines the canonical in-memory representation of the
// show-desk domain. Exactly one internal Show type exists; the snake_case
// wire shapes used by the HTTP API live in the adapter package and are
// mapped at the boundary only.
package model

import "time"

// Format describes the media type of a show.
type Format string

const (
	FormatVideo Format = "Video"
	FormatAudio Format = "Audio"
	FormatBoth  Format = "Both"
)

// Relationship is the qualitative strength of the network's relationship
// with a show's owner or partner.
type Relationship string

const (
	RelationshipStrong Relationship = "Strong"
	RelationshipMedium Relationship = "Medium"
	RelationshipWeak   Relationship = "Weak"
)

// AgeBand is one of the five audience age demographics.
type AgeBand string

const (
	Age18to24 AgeBand = "18-24"
	Age25to34 AgeBand = "25-34"
	Age35to44 AgeBand = "35-44"
	Age45to54 AgeBand = "45-54"
	Age55Plus AgeBand = "55+"
)

// Gender is the dominant audience gender demographic.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOthers Gender = "Others"
)

// Genres is the fixed list of content genres a show can carry.
var Genres = []string{
	"History",
	"Human Resources",
	"Human Interest",
	"Fun & Nostalgia",
	"True Crime",
	"Financial",
	"News & Politics",
	"Movies",
	"Music",
	"Religious",
	"Health & Wellness",
	"Parenting",
	"Lifestyle",
	"Storytelling",
	"Literature",
	"Sports",
	"Pop Culture",
	"Arts",
	"Business",
	"Philosophy",
}

// ValidGenre reports whether g is one of the fixed genres.
func ValidGenre(g string) bool {
	for _, known := range Genres {
		if known == g {
			return true
		}
	}
	return false
}

// RevenueSplit is the percentage division of a show's net revenue between
// the network ("evergreen") and its partner. Evergreen + Partner is always
// 100 because Partner is derived.
type RevenueSplit struct {
	Evergreen float64 `json:"evergreen"`
	Partner   float64 `json:"partner"`
}

// Show is one podcast property tracked by the network.
type Show struct {
	ID   string
	Name string

	// Classification
	ShowType     string // Branded | Original | Partner
	SelectType   string // Podcasts | Video Series | Live Show | Interview Series
	Subnetwork   string
	Format       Format
	Relationship Relationship
	Genre        string

	// Lifecycle flags; independent of each other.
	IsTentpole   bool
	IsOriginal   bool
	IsActive     bool
	IsUndersized bool

	// AgeMonths is the stored age of the show. The stored field is
	// authoritative; StartDate exists only so that records without a
	// stored age can fall back to a derived value (DerivedAgeMonths).
	AgeMonths int
	StartDate *time.Time

	// Financial terms
	MinimumGuarantee       float64
	OwnershipPercentage    float64 // network's equity share, 0..100
	BrandedRevenueAmount   float64
	MarketingRevenueAmount float64
	WebManagementRevenue   float64
	LatestCPM              float64
	AnnualRevenue          map[int]float64 // keyed by calendar year

	HasSponsorshipRevenue       bool
	HasNonEvergreenRevenue      bool
	RequiresPartnerLedgerAccess bool

	// Content attributes
	ShowsPerYear  int
	AdSlots       int
	AverageLength int // minutes

	HostContact Contact
	ShowContact Contact

	// Demographics
	AgeDemographic    AgeBand
	GenderDemographic Gender

	// PartnerUsers is the set of partner user IDs with view access.
	// The show owns this list; partner-scoped listing filters on it.
	PartnerUsers []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Split returns the derived revenue split for the show.
func (s *Show) Split() RevenueSplit {
	return RevenueSplit{
		Evergreen: s.OwnershipPercentage,
		Partner:   100 - s.OwnershipPercentage,
	}
}

// daysPerMonth is the approximation used when deriving age from a start
// date. The stored AgeMonths field remains the source of truth.
const daysPerMonth = 30

// DerivedAgeMonths computes the show's age from its start date using
// 30-day months. It returns 0 when no start date is recorded.
func (s *Show) DerivedAgeMonths(now time.Time) int {
	if s.StartDate == nil {
		return 0
	}
	days := int(now.Sub(*s.StartDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / daysPerMonth
}

// EffectiveAgeMonths prefers the stored age and falls back to derivation
// only when nothing was stored.
func (s *Show) EffectiveAgeMonths(now time.Time) int {
	if s.AgeMonths > 0 {
		return s.AgeMonths
	}
	return s.DerivedAgeMonths(now)
}

// HasPartner reports whether the given user ID is in the show's partner set.
func (s *Show) HasPartner(userID string) bool {
	for _, id := range s.PartnerUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// RevenueWindow returns the three calendar years of the sliding annual
// revenue window anchored on the current year: {Y-2, Y-1, Y}.
func RevenueWindow(now time.Time) [3]int {
	y := now.Year()
	return [3]int{y - 2, y - 1, y}
}

// WindowRevenue returns the revenue figures for the three window years, in
// window order, reading 0 for years with no recorded figure.
func (s *Show) WindowRevenue(now time.Time) [3]float64 {
	var out [3]float64
	for i, y := range RevenueWindow(now) {
		out[i] = s.AnnualRevenue[y]
	}
	return out
}
