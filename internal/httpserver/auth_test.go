package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_MissingAccountAndDBFailure(t *testing.T) {
	e := newTestEnv(t)

	stats := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/stats/me", nil)
		req = req.WithContext(context.WithValue(req.Context(), ctxUserKey{}, &authUser{ID: "gone", Username: "ghost"}))
		rec := httptest.NewRecorder()
		e.srv.handleStats(rec, req)
		return rec
	}

	rec := stats()
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())

	require.NoError(t, e.srv.db.Close())
	rec = stats()
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"db_error"}`, rec.Body.String())
}
