package client

import (
	"context"
	"errors"
)

// ErrNotConfirmed is returned when Execute runs before both confirmations.
var ErrNotConfirmed = errors.New("delete not confirmed twice")

// DeleteFlow enforces the double confirmation before a show is removed:
// an initial confirmation and a second "are you absolutely sure" step.
// Cancelling at either point aborts with no remote call made.
type DeleteFlow struct {
	client    *Client
	showID    string
	confirms  int
	cancelled bool
}

// NewDeleteFlow starts a delete flow for one show.
func NewDeleteFlow(c *Client, showID string) *DeleteFlow {
	return &DeleteFlow{client: c, showID: showID}
}

// Confirm records one confirmation. The flow needs exactly two.
func (d *DeleteFlow) Confirm() {
	if !d.cancelled && d.confirms < 2 {
		d.confirms++
	}
}

// Cancel aborts the flow permanently; later confirms are ignored.
func (d *DeleteFlow) Cancel() {
	d.cancelled = true
}

// Confirmed reports whether both confirmations have been given.
func (d *DeleteFlow) Confirmed() bool {
	return !d.cancelled && d.confirms >= 2
}

// Execute fires the remote delete. It refuses to touch the network unless
// both confirmations were given and the flow was never cancelled.
func (d *DeleteFlow) Execute(ctx context.Context) error {
	if !d.Confirmed() {
		return ErrNotConfirmed
	}
	return d.client.DeleteShow(ctx, d.showID)
}
