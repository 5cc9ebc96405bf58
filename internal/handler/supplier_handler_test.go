package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Nethupa05/Hardware-Backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func supplierPayload(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":                 "Acme Rep",
		"email":                email,
		"phone":                "0711111111",
		"company":              "Acme Ltd",
		"agreement_start_date": time.Now().AddDate(0, -6, 0).Format(time.RFC3339),
		"agreement_end_date":   time.Now().AddDate(0, 6, 0).Format(time.RFC3339),
	}
}

func TestSupplierRoutes_AdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, customerToken := env.signUp(t, "cust@example.com", model.RoleCustomer)
	_, adminToken := env.signUp(t, "admin@example.com", model.RoleAdmin)

	payload := supplierPayload("rep@acme.com")

	rec := env.request(t, http.MethodPost, "/api/suppliers", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/suppliers", customerToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/suppliers", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	data := dataOf(t, rec)
	assert.Equal(t, "rep@acme.com", data["email"])
	assert.Equal(t, false, data["agreement_expired"])

	// duplicate email
	rec = env.request(t, http.MethodPost, "/api/suppliers", adminToken, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/suppliers", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, listOf(t, rec), 1)
}

func TestSupplierCreate_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.signUp(t, "admin@example.com", model.RoleAdmin)

	rec := env.request(t, http.MethodPost, "/api/suppliers", adminToken, map[string]interface{}{
		"name": "Only A Name",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errObj := decodeBody(t, rec)["error"].(map[string]interface{})
	fields := errObj["fields"].(map[string]interface{})
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "company")
}
