package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLimitOrDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/properties?limit=25", nil)
	limit, err := GetLimitOrDefault(req)
	require.NoError(t, err)
	require.Equal(t, 25, limit)

	req = httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	limit, err = GetLimitOrDefault(req)
	require.NoError(t, err)
	require.Equal(t, 0, limit)

	req = httptest.NewRequest(http.MethodGet, "/api/properties?limit=abc", nil)
	_, err = GetLimitOrDefault(req)
	require.Error(t, err)
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONError(rec, http.StatusConflict, "Property already rented")

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"error": "Property already rented"}`, rec.Body.String())
}
