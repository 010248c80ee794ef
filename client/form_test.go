package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenmedia/showdesk/internal/adapter"
)

// fillValid populates every required field with a passing value.
func fillValid(f *ShowForm) {
	f.SetField(FieldName, "The History Hour")
	f.SetField(FieldShowType, "Original")
	f.SetField(FieldSelectType, "Podcasts")
	f.SetField(FieldSubnetwork, "EV-North")
	f.SetField(FieldFormat, "Audio")
	f.SetField(FieldRelationship, "Strong")
	f.SetField(FieldAgeMonths, "12")

	f.SetField(FieldMinimumGuarantee, "50000")
	f.SetField(FieldOwnershipPercentage, "70")
	f.SetField(FieldBrandedRevenue, "0")
	f.SetField(FieldMarketingRevenue, "0")
	f.SetField(FieldWebManagement, "0")

	f.SetField(FieldGenre, "History")
	f.SetField(FieldShowsPerYear, "52")
	f.SetField(FieldShowContact, "Sam Lead, 12 Main St, 555-0102, sam@example.com")

	f.SetField(FieldAgeDemographic, "25-34")
	f.SetField(FieldGenderDemographic, "Male")
}

func TestAdvanceBlockedByMissingRequiredField(t *testing.T) {
	f := NewShowForm(nil)
	assert.False(t, f.Advance(), "blank basic section must not advance")
	assert.Equal(t, SectionBasic, f.Section())
	assert.Equal(t, "This field is required", f.Errors()[FieldName])

	fillValid(f)
	assert.True(t, f.Advance())
	assert.Equal(t, SectionFinancial, f.Section())
}

func TestRetreatNeverValidates(t *testing.T) {
	f := NewShowForm(nil)
	fillValid(f)
	require.True(t, f.Advance())
	f.SetField(FieldMinimumGuarantee, "not a number")
	f.Retreat()
	assert.Equal(t, SectionBasic, f.Section())
	assert.Empty(t, f.Errors(), "retreat must not add errors")
}

func TestAgeMonthsRule(t *testing.T) {
	f := NewShowForm(nil)
	fillValid(f)

	f.SetField(FieldAgeMonths, "-1")
	assert.False(t, f.ValidateSection(SectionBasic))
	assert.Equal(t, "Age must be a valid positive number", f.Errors()[FieldAgeMonths])

	f.SetField(FieldAgeMonths, "12")
	assert.True(t, f.ValidateSection(SectionBasic))
	assert.NotContains(t, f.Errors(), FieldAgeMonths)
}

func TestOwnershipPercentageBounds(t *testing.T) {
	f := NewShowForm(nil)
	fillValid(f)

	f.SetField(FieldOwnershipPercentage, "101")
	assert.False(t, f.ValidateSection(SectionFinancial))
	assert.Equal(t, "Ownership percentage must be between 0 and 100",
		f.Errors()[FieldOwnershipPercentage])

	f.SetField(FieldOwnershipPercentage, "100")
	assert.True(t, f.ValidateSection(SectionFinancial))
}

func TestGenderSplitMessages(t *testing.T) {
	f := NewShowForm(nil)
	fillValid(f)

	f.SetField(FieldGenderDemographic, "M-30%-F-71%")
	assert.False(t, f.ValidateSection(SectionDemographics))
	assert.Equal(t, "Gender split percentages must sum to 100",
		f.Errors()[FieldGenderDemographic])

	f.SetField(FieldGenderDemographic, "M-50%-M-50%")
	assert.False(t, f.ValidateSection(SectionDemographics))
	assert.Equal(t, "Gender split must match the format M-NN%-F-NN%",
		f.Errors()[FieldGenderDemographic])

	f.SetField(FieldGenderDemographic, "M-60%-F-40%")
	assert.True(t, f.ValidateSection(SectionDemographics))

	// The coarse enum carries no percent sign and passes untouched.
	f.SetField(FieldGenderDemographic, "Female")
	assert.True(t, f.ValidateSection(SectionDemographics))
}

func TestSetFieldClearsErrorOptimistically(t *testing.T) {
	f := NewShowForm(nil)
	assert.False(t, f.ValidateSection(SectionBasic))
	require.Contains(t, f.Errors(), FieldName)

	f.SetField(FieldName, "x")
	assert.NotContains(t, f.Errors(), FieldName,
		"typing clears the error before re-validation")
}

func TestSubmitJumpsToFirstInvalidSectionWithoutNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	// Walk to the last section, then blank a financial field behind us.
	f := NewShowForm(New(srv.URL, nil))
	fillValid(f)
	require.True(t, f.Advance())
	require.True(t, f.Advance())
	require.True(t, f.Advance())
	f.SetField(FieldBrandedRevenue, "")

	err := f.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, SectionFinancial, f.Section(), "submit jumps to the first failing section")
	assert.Zero(t, atomic.LoadInt32(&hits), "invalid form must not reach the server")
}

func TestSubmitCreateResetsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/podcasts", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s-new"}`))
	}))
	defer srv.Close()

	f := NewShowForm(New(srv.URL, nil))
	fillValid(f)
	require.NoError(t, f.Submit(context.Background()))

	d := f.Draft()
	assert.Empty(t, d.Name, "draft resets after a successful create")
	assert.True(t, d.IsActive, "reset restores the active default")
	assert.Equal(t, SectionBasic, f.Section())
}

func TestSubmitRemoteFailureKeepsDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer srv.Close()

	f := NewShowForm(New(srv.URL, nil))
	fillValid(f)
	err := f.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "The History Hour", f.Draft().Name, "draft survives a failed submit")
}

func TestSubmitWithIDSendsUpdate(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"s1"}`))
	}))
	defer srv.Close()

	id := "s1"
	title := "The History Hour"
	f := NewShowFormFrom(New(srv.URL, nil), adapter.ShowWire{ID: id, Title: &title})
	fillValid(f)
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/podcasts/s1", path)
}

func TestSubmitAttemptedTracksLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s-new"}`))
	}))
	defer srv.Close()

	f := NewShowForm(New(srv.URL, nil))
	assert.False(t, f.SubmitAttempted(), "fresh form has no attempt")

	require.Error(t, f.Submit(context.Background()))
	assert.True(t, f.SubmitAttempted(), "a failed submit still counts as attempted")

	fillValid(f)
	require.NoError(t, f.Submit(context.Background()))
	assert.False(t, f.SubmitAttempted(), "reset clears the attempt flag")
}

func TestNewShowFormFromPrefillsDraft(t *testing.T) {
	title := "Crime Weekly"
	media := "video"
	pct := 55.5
	f := NewShowFormFrom(nil, adapter.ShowWire{
		ID:                    "s2",
		Title:                 &title,
		MediaType:             &media,
		EvergreenOwnershipPct: &pct,
	})
	d := f.Draft()
	assert.Equal(t, "s2", d.ID)
	assert.Equal(t, "Crime Weekly", d.Name)
	assert.Equal(t, "Video", d.Format, "wire enums prefill in display form")
	assert.Equal(t, "55.5", d.OwnershipPercentage)
}
