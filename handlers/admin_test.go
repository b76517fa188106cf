package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdminLogin_WrongPassword(t *testing.T) {
	a := newTestApp(t, time.Minute)
	w, _ := a.do(t, "POST", "/api/v1/admin/login", `{"password":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLogin_MissingPassword(t *testing.T) {
	a := newTestApp(t, time.Minute)
	w, _ := a.do(t, "POST", "/api/v1/admin/login", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin_NoPasswordConfigured(t *testing.T) {
	a := newTestApp(t, time.Minute)
	a.cfg.Admin.Password = ""
	w, _ := a.do(t, "POST", "/api/v1/admin/login", `{"password":""}`)
	// empty credential never matches, even when unset
	require.True(t, w.Code == http.StatusUnauthorized || w.Code == http.StatusBadRequest)
}

func TestAdminLogout(t *testing.T) {
	a := newTestApp(t, time.Minute)

	w, got := a.do(t, "POST", "/api/v1/admin/login", `{"password":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := got["accessToken"].(string)

	req := httptest.NewRequest("POST", "/api/v1/admin/logout", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	rw := httptest.NewRecorder()
	a.router.ServeHTTP(rw, req)
	require.Equal(t, http.StatusOK, rw.Code)
}

func TestAdminDonations_RequiresToken(t *testing.T) {
	a := newTestApp(t, time.Minute)
	w, _ := a.do(t, "GET", "/api/v1/admin/donations", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminLoginAndDonations(t *testing.T) {
	a := newTestApp(t, time.Minute)

	a.ledger.Record(context.Background(), 10, "Payer One")
	a.ledger.Record(context.Background(), 5.5, "Payer Two")

	w, got := a.do(t, "POST", "/api/v1/admin/login", `{"password":"letmein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := got["accessToken"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest("GET", "/api/v1/admin/donations", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer "+token)
	rw := httptest.NewRecorder()
	a.router.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &resp))
	require.Equal(t, float64(2), resp["count"])
	require.Equal(t, 15.5, resp["totalAmount"])
}
