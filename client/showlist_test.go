package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenmedia/showdesk/internal/view"
)

const showListBody = `[
	{"id":"s1","title":"The History Hour","media_type":"audio","relationship_level":"strong"},
	{"id":"s2","title":"Crime Weekly","media_type":"video","relationship_level":"strong"}
]`

func showListServer(t *testing.T, fail *bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if *fail {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"boom"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(showListBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestShowListLoadAndRetry(t *testing.T) {
	fail := true
	srv := showListServer(t, &fail)
	l := NewShowList(New(srv.URL, nil))

	require.Error(t, l.Load(context.Background()))
	assert.Error(t, l.Err())
	assert.Empty(t, l.Shows())
	assert.False(t, l.Loading(), "loading flag clears after failure")

	fail = false
	require.NoError(t, l.Load(context.Background()))
	assert.NoError(t, l.Err(), "error state clears on a successful retry")
	assert.Len(t, l.Shows(), 2)
	assert.Equal(t, "The History Hour", l.Shows()[0].Name)
}

func TestShowListFilteredAndSelectAll(t *testing.T) {
	fail := false
	srv := showListServer(t, &fail)
	l := NewShowList(New(srv.URL, nil))
	require.NoError(t, l.Load(context.Background()))

	l.Filters = view.ShowFilters{Format: "Audio"}
	filtered := l.Filtered()
	require.Len(t, filtered, 1)
	assert.Equal(t, "s1", filtered[0].ID)

	l.ToggleSelectAll()
	assert.True(t, l.Selected.Has("s1"))
	assert.False(t, l.Selected.Has("s2"), "select-all covers only the filtered set")

	l.ToggleSelectAll()
	assert.Zero(t, l.Selected.Len(), "second toggle clears")
}

func TestShowListExportIsLocal(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(showListBody))
	}))
	defer srv.Close()

	l := NewShowList(New(srv.URL, nil))
	require.NoError(t, l.Load(context.Background()))
	loaded := atomic.LoadInt32(&hits)

	// Nothing checked: the whole filtered set exports.
	l.Filters = view.ShowFilters{Format: "Video"}
	out := l.ExportSelection()
	assert.Contains(t, out, `"Crime Weekly"`)
	assert.NotContains(t, out, `"The History Hour"`)

	// A checked row hidden by the filters stays out of the export.
	l.Selected.Toggle("s2")
	l.Filters = view.ShowFilters{Format: "Audio"}
	out = l.ExportSelection()
	assert.NotContains(t, out, `"Crime Weekly"`)
	assert.NotContains(t, out, `"The History Hour"`)
	assert.Equal(t, 1, strings.Count(out, "\n"), "only the header row remains")

	// A checked row inside the filters exports alone.
	l.Selected.Toggle("s1")
	out = l.ExportSelection()
	assert.Contains(t, out, `"The History Hour"`)
	assert.NotContains(t, out, `"Crime Weekly"`)

	assert.Equal(t, loaded, atomic.LoadInt32(&hits), "export never makes a server round-trip")
}
