package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteTestServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/podcasts/s1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDeleteFlowNeedsTwoConfirms(t *testing.T) {
	var hits int32
	srv := deleteTestServer(t, &hits)
	d := NewDeleteFlow(New(srv.URL, nil), "s1")

	assert.ErrorIs(t, d.Execute(context.Background()), ErrNotConfirmed)
	d.Confirm()
	assert.ErrorIs(t, d.Execute(context.Background()), ErrNotConfirmed)
	assert.Zero(t, atomic.LoadInt32(&hits), "unconfirmed flow must stay offline")

	d.Confirm()
	assert.True(t, d.Confirmed())
	assert.NoError(t, d.Execute(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDeleteFlowCancelIsPermanent(t *testing.T) {
	var hits int32
	srv := deleteTestServer(t, &hits)
	d := NewDeleteFlow(New(srv.URL, nil), "s1")

	d.Confirm()
	d.Cancel()
	d.Confirm()
	d.Confirm()
	assert.False(t, d.Confirmed(), "confirms after cancel are ignored")
	assert.ErrorIs(t, d.Execute(context.Background()), ErrNotConfirmed)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestDeleteFlowExtraConfirmsCap(t *testing.T) {
	var hits int32
	srv := deleteTestServer(t, &hits)
	d := NewDeleteFlow(New(srv.URL, nil), "s1")

	for i := 0; i < 5; i++ {
		d.Confirm()
	}
	assert.True(t, d.Confirmed())
	assert.NoError(t, d.Execute(context.Background()))
}
