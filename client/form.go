package client

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/evergreenmedia/showdesk/internal/adapter"
	"github.com/evergreenmedia/showdesk/internal/model"
)

// Section is one of the four ordered tabs of the show form.
type Section int

const (
	SectionBasic Section = iota
	SectionFinancial
	SectionContent
	SectionDemographics
)

var sectionOrder = []Section{SectionBasic, SectionFinancial, SectionContent, SectionDemographics}

func (s Section) String() string {
	switch s {
	case SectionBasic:
		return "basic"
	case SectionFinancial:
		return "financial"
	case SectionContent:
		return "content"
	default:
		return "demographics"
	}
}

// Field names one editable form field.
type Field string

const (
	FieldName                Field = "name"
	FieldShowType            Field = "showType"
	FieldSelectType          Field = "selectType"
	FieldSubnetwork          Field = "subnetwork"
	FieldFormat              Field = "format"
	FieldRelationship        Field = "relationship"
	FieldAgeMonths           Field = "ageMonths"
	FieldStartDate           Field = "startDate"
	FieldMinimumGuarantee    Field = "minimumGuarantee"
	FieldOwnershipPercentage Field = "ownershipPercentage"
	FieldBrandedRevenue      Field = "brandedRevenueAmount"
	FieldMarketingRevenue    Field = "marketingRevenueAmount"
	FieldWebManagement       Field = "webManagementRevenue"
	FieldLatestCPM           Field = "latestCPM"
	FieldGenre               Field = "genre"
	FieldShowsPerYear        Field = "showsPerYear"
	FieldAdSlots             Field = "adSlots"
	FieldAverageLength       Field = "averageLength"
	FieldHostContact         Field = "primaryContactHost"
	FieldShowContact         Field = "primaryContactShow"
	FieldAgeDemographic      Field = "ageDemographic"
	FieldGenderDemographic   Field = "genderDemographic"
)

// requiredFields is the static section → required-field table. Required-ness
// is declared here, never inferred; validation touches exactly these lists.
var requiredFields = map[Section][]Field{
	SectionBasic: {
		FieldName, FieldShowType, FieldSelectType, FieldSubnetwork,
		FieldFormat, FieldRelationship, FieldAgeMonths,
	},
	SectionFinancial: {
		FieldMinimumGuarantee, FieldOwnershipPercentage,
		FieldBrandedRevenue, FieldMarketingRevenue, FieldWebManagement,
	},
	SectionContent: {
		FieldGenre, FieldShowsPerYear, FieldShowContact,
	},
	SectionDemographics: {
		FieldAgeDemographic, FieldGenderDemographic,
	},
}

// rule checks one non-empty value and returns an error message, or "".
type rule func(value string) string

// fieldRules is the per-field validator table. Fields absent here are
// presence-only. Presence itself is checked before any rule runs.
var fieldRules = map[Field]rule{
	FieldAgeMonths:           nonNegativeInt("Age must be a valid positive number"),
	FieldShowsPerYear:        atLeastOne("Shows per year must be at least 1"),
	FieldAdSlots:             nonNegativeInt("Ad slots must be a valid positive number"),
	FieldAverageLength:       nonNegativeInt("Average length must be a valid positive number"),
	FieldOwnershipPercentage: percentage("Ownership percentage must be between 0 and 100"),
	FieldMinimumGuarantee:    currency(),
	FieldBrandedRevenue:      currency(),
	FieldMarketingRevenue:    currency(),
	FieldWebManagement:       currency(),
	FieldLatestCPM:           currency(),
	FieldGenderDemographic:   genderValue,
}

func nonNegativeInt(msg string) rule {
	return func(v string) string {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return msg
		}
		return ""
	}
}

func atLeastOne(msg string) rule {
	return func(v string) string {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return msg
		}
		return ""
	}
}

func percentage(msg string) rule {
	return func(v string) string {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 100 {
			return msg
		}
		return ""
	}
}

func currency() rule {
	return func(v string) string {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return "Amount must be a valid positive number"
		}
		return ""
	}
}

// genderValue accepts either the coarse enum or the structured split form.
// A value containing "%" is held to the split grammar, with the format
// failure and the sum failure reported as distinct messages.
func genderValue(v string) string {
	if !strings.Contains(v, "%") {
		return ""
	}
	_, err := model.ParseGenderSplit(v)
	switch {
	case errors.Is(err, model.ErrGenderSplitSum):
		return "Gender split percentages must sum to 100"
	case err != nil:
		return "Gender split must match the format M-NN%-F-NN%"
	}
	return ""
}

// Draft holds the transient edit state for one show. Text inputs stay
// strings until submit; flags are real booleans and are always considered
// present.
type Draft struct {
	ID string // empty until the record exists server-side

	Name         string
	ShowType     string
	SelectType   string
	Subnetwork   string
	Format       string
	Relationship string
	AgeMonths    string
	StartDate    string

	MinimumGuarantee    string
	OwnershipPercentage string
	BrandedRevenue      string
	MarketingRevenue    string
	WebManagement       string
	LatestCPM           string
	Annual              map[int]string // window year → amount text

	Genre         string
	ShowsPerYear  string
	AdSlots       string
	AverageLength string
	HostContact   string
	ShowContact   string

	AgeDemographic    string
	GenderDemographic string

	IsTentpole                  bool
	IsOriginal                  bool
	IsActive                    bool
	IsUndersized                bool
	HasSponsorshipRevenue       bool
	HasNonEvergreenRevenue      bool
	RequiresPartnerLedgerAccess bool
}

// ShowForm owns one draft across the four ordered sections and guarantees
// it is fully valid before anything is persisted.
type ShowForm struct {
	client *Client

	draft     Draft
	section   int // index into sectionOrder
	errors    map[Field]string
	attempted bool // a Submit has run since the last reset
}

// NewShowForm starts a blank create form.
func NewShowForm(c *Client) *ShowForm {
	return &ShowForm{
		client: c,
		draft:  Draft{IsActive: true, Annual: map[int]string{}},
		errors: map[Field]string{},
	}
}

// NewShowFormFrom starts an edit form pre-populated from an existing wire
// record. The record's id makes Submit an update instead of a create.
func NewShowFormFrom(c *Client, w adapter.ShowWire) *ShowForm {
	f := NewShowForm(c)
	s := adapter.FromWire(w)
	d := &f.draft
	d.ID = s.ID
	d.Name = s.Name
	d.ShowType = s.ShowType
	d.SelectType = s.SelectType
	d.Subnetwork = s.Subnetwork
	d.Format = string(s.Format)
	d.Relationship = string(s.Relationship)
	d.AgeMonths = strconv.Itoa(s.AgeMonths)
	if s.StartDate != nil {
		d.StartDate = s.StartDate.Format("2006-01-02")
	}
	d.MinimumGuarantee = formatNum(s.MinimumGuarantee)
	d.OwnershipPercentage = formatNum(s.OwnershipPercentage)
	d.BrandedRevenue = formatNum(s.BrandedRevenueAmount)
	d.MarketingRevenue = formatNum(s.MarketingRevenueAmount)
	d.WebManagement = formatNum(s.WebManagementRevenue)
	d.LatestCPM = formatNum(s.LatestCPM)
	for y, amount := range s.AnnualRevenue {
		d.Annual[y] = formatNum(amount)
	}
	d.Genre = s.Genre
	d.ShowsPerYear = strconv.Itoa(s.ShowsPerYear)
	d.AdSlots = strconv.Itoa(s.AdSlots)
	d.AverageLength = strconv.Itoa(s.AverageLength)
	d.HostContact = s.HostContact.LegacyString()
	d.ShowContact = s.ShowContact.LegacyString()
	d.AgeDemographic = string(s.AgeDemographic)
	d.GenderDemographic = string(s.GenderDemographic)
	d.IsTentpole = s.IsTentpole
	d.IsOriginal = s.IsOriginal
	d.IsActive = s.IsActive
	d.IsUndersized = s.IsUndersized
	d.HasSponsorshipRevenue = s.HasSponsorshipRevenue
	d.HasNonEvergreenRevenue = s.HasNonEvergreenRevenue
	d.RequiresPartnerLedgerAccess = s.RequiresPartnerLedgerAccess
	return f
}

// Draft returns a copy of the current draft.
func (f *ShowForm) Draft() Draft { return f.draft }

// Section returns the active section.
func (f *ShowForm) Section() Section { return sectionOrder[f.section] }

// Errors returns the live field → message map.
func (f *ShowForm) Errors() map[Field]string { return f.errors }

// SubmitAttempted reports whether Submit has run since the last reset.
// Presentation layers use it to hold back error banners until the user has
// actually tried to save.
func (f *ShowForm) SubmitAttempted() bool { return f.attempted }

// SetField updates a text field and optimistically clears its error; the
// field is not re-validated until the next section check.
func (f *ShowForm) SetField(name Field, value string) {
	f.setValue(name, value)
	delete(f.errors, name)
}

// SetFlag updates a boolean field. Flags are always valid, so no error
// bookkeeping happens.
func (f *ShowForm) SetFlag(name Field, value bool) {
	switch name {
	case "isTentpole":
		f.draft.IsTentpole = value
	case "isOriginal":
		f.draft.IsOriginal = value
	case "isActive":
		f.draft.IsActive = value
	case "isUndersized":
		f.draft.IsUndersized = value
	case "hasSponsorshipRevenue":
		f.draft.HasSponsorshipRevenue = value
	case "hasNonEvergreenRevenue":
		f.draft.HasNonEvergreenRevenue = value
	case "requiresPartnerLedgerAccess":
		f.draft.RequiresPartnerLedgerAccess = value
	}
}

// SetAnnual updates one window-year revenue figure.
func (f *ShowForm) SetAnnual(year int, value string) {
	f.draft.Annual[year] = value
}

// ValidateSection re-evaluates only the required fields declared for the
// given section, repopulating their error entries, and reports whether all
// of them pass.
func (f *ShowForm) ValidateSection(s Section) bool {
	ok := true
	for _, field := range requiredFields[s] {
		if msg := f.checkField(field); msg != "" {
			f.errors[field] = msg
			ok = false
		} else {
			delete(f.errors, field)
		}
	}
	return ok
}

// ValidateAll validates every section's required fields regardless of the
// active tab. Used only at submit time.
func (f *ShowForm) ValidateAll() bool {
	ok := true
	for _, s := range sectionOrder {
		if !f.ValidateSection(s) {
			ok = false
		}
	}
	return ok
}

// Advance moves to the next section only if the current one validates.
func (f *ShowForm) Advance() bool {
	if !f.ValidateSection(f.Section()) {
		return false
	}
	if f.section < len(sectionOrder)-1 {
		f.section++
	}
	return true
}

// Retreat moves back one section. Going backwards never validates.
func (f *ShowForm) Retreat() {
	if f.section > 0 {
		f.section--
	}
}

// Submit validates everything, then persists. On validation failure the
// active section jumps to the first section containing an invalid field
// and nothing is sent. On remote failure the draft is left intact so the
// user can retry; the form resets only after the call succeeds.
func (f *ShowForm) Submit(ctx context.Context) error {
	f.attempted = true
	if !f.ValidateAll() {
		for i, s := range sectionOrder {
			if f.sectionHasError(s) {
				f.section = i
				break
			}
		}
		return errors.New("form has invalid fields")
	}

	w := f.toWire()
	var err error
	if f.draft.ID == "" {
		_, err = f.client.CreateShow(ctx, w)
	} else {
		_, err = f.client.UpdateShow(ctx, f.draft.ID, f.toPatch(w))
	}
	if err != nil {
		// Draft stays as typed; no silent data loss on a flaky network.
		log.Printf("form: submit failed: %v", err)
		return err
	}

	f.draft = Draft{IsActive: true, Annual: map[int]string{}}
	f.section = 0
	f.errors = map[Field]string{}
	f.attempted = false
	return nil
}

func (f *ShowForm) sectionHasError(s Section) bool {
	for _, field := range requiredFields[s] {
		if _, bad := f.errors[field]; bad {
			return true
		}
	}
	return false
}

// checkField applies presence and then the field's rule, returning an
// error message or "".
func (f *ShowForm) checkField(field Field) string {
	v := strings.TrimSpace(f.value(field))
	if v == "" {
		return "This field is required"
	}
	if r, ok := fieldRules[field]; ok {
		return r(v)
	}
	return ""
}

// toWire serializes the draft, parsing numeric strings with a 0 fallback
// for anything empty or unparsable.
func (f *ShowForm) toWire() adapter.ShowWire {
	d := f.draft
	annual := map[string]float64{}
	for y, amount := range d.Annual {
		annual[strconv.Itoa(y)] = parseNum(amount)
	}
	ageMonths := int(parseNum(d.AgeMonths))
	showsPerYear := int(parseNum(d.ShowsPerYear))
	adSlots := int(parseNum(d.AdSlots))
	avgLen := int(parseNum(d.AverageLength))

	w := adapter.ShowWire{
		ID:                     d.ID,
		Title:                  &d.Name,
		ShowType:               &d.ShowType,
		SelectType:             &d.SelectType,
		SubnetworkID:           &d.Subnetwork,
		MediaType:              strPtr(strings.ToLower(d.Format)),
		RelationshipLevel:      strPtr(strings.ToLower(d.Relationship)),
		GenreID:                &d.Genre,
		Tentpole:               d.IsTentpole,
		IsOriginal:             &d.IsOriginal,
		IsActive:               &d.IsActive,
		IsUndersized:           &d.IsUndersized,
		HasSponsorshipRevenue:  &d.HasSponsorshipRevenue,
		HasNonEvergreenRevenue: &d.HasNonEvergreenRevenue,
		RequiresPartnerAccess:  &d.RequiresPartnerLedgerAccess,
		MinimumGuarantee:       numPtr(d.MinimumGuarantee),
		EvergreenOwnershipPct:  numPtr(d.OwnershipPercentage),
		BrandedRevenueAmount:   numPtr(d.BrandedRevenue),
		MarketingRevenueAmount: numPtr(d.MarketingRevenue),
		WebMgmtRevenueAmount:   numPtr(d.WebManagement),
		LatestCPMUSD:           numPtr(d.LatestCPM),
		AnnualUSD:              annual,
		AgeMonths:              &ageMonths,
		ShowsPerYear:           &showsPerYear,
		AdSlots:                &adSlots,
		AvgShowLengthMins:      &avgLen,
		ShowHostContact:        &d.HostContact,
		ShowPrimaryContact:     &d.ShowContact,
		AgeDemographic:         &d.AgeDemographic,
		GenderDemographic:      &d.GenderDemographic,
	}
	if d.StartDate != "" {
		w.StartDate = &d.StartDate
	}
	return w
}

// toPatch turns the full wire record into a patch carrying every edited
// field. Edits are merged server-side; the id never rides in the body.
func (f *ShowForm) toPatch(w adapter.ShowWire) adapter.ShowPatch {
	return adapter.ShowPatch{
		Title:                  w.Title,
		MinimumGuarantee:       w.MinimumGuarantee,
		AnnualUSD:              w.AnnualUSD,
		SubnetworkID:           w.SubnetworkID,
		MediaType:              w.MediaType,
		Tentpole:               &f.draft.IsTentpole,
		RelationshipLevel:      w.RelationshipLevel,
		ShowType:               w.ShowType,
		SelectType:             w.SelectType,
		EvergreenOwnershipPct:  w.EvergreenOwnershipPct,
		HasSponsorshipRevenue:  w.HasSponsorshipRevenue,
		HasNonEvergreenRevenue: w.HasNonEvergreenRevenue,
		RequiresPartnerAccess:  w.RequiresPartnerAccess,
		BrandedRevenueAmount:   w.BrandedRevenueAmount,
		MarketingRevenueAmount: w.MarketingRevenueAmount,
		WebMgmtRevenueAmount:   w.WebMgmtRevenueAmount,
		GenreID:                w.GenreID,
		IsOriginal:             w.IsOriginal,
		ShowsPerYear:           w.ShowsPerYear,
		LatestCPMUSD:           w.LatestCPMUSD,
		AdSlots:                w.AdSlots,
		AvgShowLengthMins:      w.AvgShowLengthMins,
		AgeMonths:              w.AgeMonths,
		StartDate:              w.StartDate,
		AgeDemographic:         w.AgeDemographic,
		GenderDemographic:      w.GenderDemographic,
		IsActive:               w.IsActive,
		IsUndersized:           w.IsUndersized,
		ShowHostContact:        w.ShowHostContact,
		ShowPrimaryContact:     w.ShowPrimaryContact,
	}
}

func (f *ShowForm) setValue(name Field, value string) {
	d := &f.draft
	switch name {
	case FieldName:
		d.Name = value
	case FieldShowType:
		d.ShowType = value
	case FieldSelectType:
		d.SelectType = value
	case FieldSubnetwork:
		d.Subnetwork = value
	case FieldFormat:
		d.Format = value
	case FieldRelationship:
		d.Relationship = value
	case FieldAgeMonths:
		d.AgeMonths = value
	case FieldStartDate:
		d.StartDate = value
	case FieldMinimumGuarantee:
		d.MinimumGuarantee = value
	case FieldOwnershipPercentage:
		d.OwnershipPercentage = value
	case FieldBrandedRevenue:
		d.BrandedRevenue = value
	case FieldMarketingRevenue:
		d.MarketingRevenue = value
	case FieldWebManagement:
		d.WebManagement = value
	case FieldLatestCPM:
		d.LatestCPM = value
	case FieldGenre:
		d.Genre = value
	case FieldShowsPerYear:
		d.ShowsPerYear = value
	case FieldAdSlots:
		d.AdSlots = value
	case FieldAverageLength:
		d.AverageLength = value
	case FieldHostContact:
		d.HostContact = value
	case FieldShowContact:
		d.ShowContact = value
	case FieldAgeDemographic:
		d.AgeDemographic = value
	case FieldGenderDemographic:
		d.GenderDemographic = value
	}
}

func (f *ShowForm) value(name Field) string {
	d := f.draft
	switch name {
	case FieldName:
		return d.Name
	case FieldShowType:
		return d.ShowType
	case FieldSelectType:
		return d.SelectType
	case FieldSubnetwork:
		return d.Subnetwork
	case FieldFormat:
		return d.Format
	case FieldRelationship:
		return d.Relationship
	case FieldAgeMonths:
		return d.AgeMonths
	case FieldStartDate:
		return d.StartDate
	case FieldMinimumGuarantee:
		return d.MinimumGuarantee
	case FieldOwnershipPercentage:
		return d.OwnershipPercentage
	case FieldBrandedRevenue:
		return d.BrandedRevenue
	case FieldMarketingRevenue:
		return d.MarketingRevenue
	case FieldWebManagement:
		return d.WebManagement
	case FieldLatestCPM:
		return d.LatestCPM
	case FieldGenre:
		return d.Genre
	case FieldShowsPerYear:
		return d.ShowsPerYear
	case FieldAdSlots:
		return d.AdSlots
	case FieldAverageLength:
		return d.AverageLength
	case FieldHostContact:
		return d.HostContact
	case FieldShowContact:
		return d.ShowContact
	case FieldAgeDemographic:
		return d.AgeDemographic
	case FieldGenderDemographic:
		return d.GenderDemographic
	}
	return ""
}

func parseNum(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatNum(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func strPtr(s string) *string { return &s }

func numPtr(s string) *float64 {
	v := parseNum(s)
	return &v
}
