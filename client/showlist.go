package client

import (
	"context"
	"time"

	"github.com/evergreenmedia/showdesk/internal/adapter"
	"github.com/evergreenmedia/showdesk/internal/csvio"
	"github.com/evergreenmedia/showdesk/internal/model"
	"github.com/evergreenmedia/showdesk/internal/view"
)

// ShowList is the working set behind the shows table: the loaded records,
// the active filters, and the checkbox selection. Load is role-scoped
// server-side, so admins and partners use the same call. Like ShowForm it
// is a single-caller view model, not safe for concurrent use.
type ShowList struct {
	client *Client

	shows   []model.Show
	loading bool
	err     error

	Filters  view.ShowFilters
	Selected *view.Selection
}

func NewShowList(c *Client) *ShowList {
	return &ShowList{client: c, Selected: view.NewSelection()}
}

// Loading reports whether a Load call is in flight.
func (l *ShowList) Loading() bool { return l.loading }

// Err returns the last Load failure; nil after a successful Load. Retrying
// is just calling Load again.
func (l *ShowList) Err() error { return l.err }

// Shows returns the loaded set unfiltered.
func (l *ShowList) Shows() []model.Show { return l.shows }

// Load fetches the caller's role-scoped show set. On failure the previous
// set stays visible alongside the error.
func (l *ShowList) Load(ctx context.Context) error {
	l.loading = true
	defer func() { l.loading = false }()

	wires, err := l.client.ListShows(ctx)
	if err != nil {
		l.err = err
		return err
	}
	shows := make([]model.Show, 0, len(wires))
	for _, w := range wires {
		shows = append(shows, adapter.FromWire(w))
	}
	l.shows = shows
	l.err = nil
	return nil
}

// Filtered applies the active filters to the loaded set.
func (l *ShowList) Filtered() []model.Show {
	return view.ApplyShowFilters(l.shows, l.Filters)
}

// ToggleSelectAll toggles the selection against the currently filtered
// IDs, not the full loaded set.
func (l *ShowList) ToggleSelectAll() {
	filtered := l.Filtered()
	ids := make([]string, 0, len(filtered))
	for _, s := range filtered {
		ids = append(ids, s.ID)
	}
	l.Selected.ToggleAll(ids)
}

// ExportSelection serializes the checked rows among the currently filtered
// set to CSV, entirely locally. A checked row hidden by the active filters
// does not export; with nothing checked the whole filtered set exports.
func (l *ShowList) ExportSelection() string {
	filtered := l.Filtered()
	rows := filtered
	if l.Selected.Len() > 0 {
		rows = make([]model.Show, 0, len(filtered))
		for _, s := range filtered {
			if l.Selected.Has(s.ID) {
				rows = append(rows, s)
			}
		}
	}
	return csvio.Encode(rows, time.Now())
}
