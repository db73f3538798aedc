package httppresentation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appInventory "github.com/warehouse-ops/warehouse-api/internal/application/inventory"
	appOrder "github.com/warehouse-ops/warehouse-api/internal/application/order"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/memory"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
)

func newTestRouter() http.Handler {
	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()

	inventorySvc := appInventory.NewService(inventoryRepo, nil, observability.Nop())
	orderSvc := appOrder.NewService(orderRepo, inventoryRepo, nil, observability.Nop())

	return NewHandler(inventorySvc, orderSvc, observability.Nop()).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func TestInventoryCRUDFlow(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":10,"price":12.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created itemResponse
	decode(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Widget", created.Name)

	rec = do(t, h, http.MethodGet, "/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []itemResponse
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created, listed[0])

	rec = do(t, h, http.MethodGet, "/inventory/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodPut, "/inventory/1", `{"name":"Widget","quantity":25,"price":11.0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var replaced itemResponse
	decode(t, rec, &replaced)
	assert.Equal(t, 25, replaced.Quantity)

	rec = do(t, h, http.MethodPatch, "/inventory/1", `{"price":9.99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var patched itemResponse
	decode(t, rec, &patched)
	assert.Equal(t, 9.99, patched.Price)
	assert.Equal(t, "Widget", patched.Name)
	assert.Equal(t, 25, patched.Quantity)

	rec = do(t, h, http.MethodDelete, "/inventory/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/inventory", "")
	decode(t, rec, &listed)
	assert.Empty(t, listed)

	rec = do(t, h, http.MethodGet, "/inventory/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryValidation(t *testing.T) {
	h := newTestRouter()

	// POST with a missing field
	rec := do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// POST with an out-of-range field
	rec = do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":-1,"price":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// malformed body
	rec = do(t, h, http.MethodPost, "/inventory", `{`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// unknown field
	rec = do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":1,"price":1,"color":"red"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":10,"price":12.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// PUT requires every field
	rec = do(t, h, http.MethodPut, "/inventory/1", `{"name":"Widget","quantity":10}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// PATCH validates supplied fields individually
	rec = do(t, h, http.MethodPatch, "/inventory/1", `{"price":-2}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// mutating an absent id
	rec = do(t, h, http.MethodPut, "/inventory/99", `{"name":"x","quantity":1,"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, "/inventory/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// non-integer id
	rec = do(t, h, http.MethodGet, "/inventory/abc", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderCRUDFlow(t *testing.T) {
	h := newTestRouter()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/inventory", `{"name":"Gear","quantity":5,"price":20.0}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/inventory", `{"name":"Bolt","quantity":50,"price":1.5}`).Code)

	rec := do(t, h, http.MethodPost, "/orders", `{"customer":"Ada Lovelace","items":[1,2],"status":"pending"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderResponse
	decode(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Ada Lovelace", created.Customer)
	assert.Equal(t, []int64{1, 2}, created.Items)

	rec = do(t, h, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderResponse
	decode(t, rec, &fetched)
	assert.Equal(t, created, fetched)

	rec = do(t, h, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []orderResponse
	decode(t, rec, &listed)
	require.Len(t, listed, 1)

	rec = do(t, h, http.MethodPut, "/orders/1", `{"customer":"Ada Lovelace","items":[2],"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var replaced orderResponse
	decode(t, rec, &replaced)
	assert.Equal(t, "confirmed", replaced.Status)
	assert.Equal(t, []int64{2}, replaced.Items)

	rec = do(t, h, http.MethodPatch, "/orders/1", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var patched orderResponse
	decode(t, rec, &patched)
	assert.Equal(t, "shipped", patched.Status)
	assert.Equal(t, []int64{2}, patched.Items)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/orders/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/orders/1", "").Code)
}

func TestOrderValidation(t *testing.T) {
	h := newTestRouter()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/inventory", `{"name":"Gear","quantity":5,"price":20.0}`).Code)

	// unknown referenced item: rejected, nothing created
	rec := do(t, h, http.MethodPost, "/orders", `{"customer":"Ada","items":[1,99],"status":"pending"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var listed []orderResponse
	rec = do(t, h, http.MethodGet, "/orders", "")
	decode(t, rec, &listed)
	assert.Empty(t, listed)

	// unrecognized status
	rec = do(t, h, http.MethodPost, "/orders", `{"customer":"Ada","items":[1],"status":"teleported"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// empty customer
	rec = do(t, h, http.MethodPost, "/orders", `{"customer":"","items":[1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/orders", `{"customer":"Ada","items":[1],"status":"pending"}`).Code)

	// PUT requires every field
	rec = do(t, h, http.MethodPut, "/orders/1", `{"customer":"Ada","items":[1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// mutating an absent id
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPatch, "/orders/42", `{"status":"shipped"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/orders/42", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/orders/abc", "").Code)
}

func TestOrderCreateDefaults(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/orders", `{"customer":"Ada"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderResponse
	decode(t, rec, &created)
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, []int64{}, created.Items)
}

func TestDeletedItemLeavesStaleOrderReference(t *testing.T) {
	h := newTestRouter()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":10,"price":12.5}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/orders", `{"customer":"Ada","items":[1],"status":"pending"}`).Code)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/inventory/1", "").Code)

	// The order survives and still references the deleted item.
	rec := do(t, h, http.MethodGet, "/orders/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderResponse
	decode(t, rec, &fetched)
	assert.Equal(t, []int64{1}, fetched.Items)

	// A status-only patch still works on the stale order.
	rec = do(t, h, http.MethodPatch, "/orders/1", `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Re-supplying the item list now fails the existence check.
	rec = do(t, h, http.MethodPatch, "/orders/1", `{"items":[1]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestWorkedExample(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodPost, "/inventory", `{"name":"Widget","quantity":10,"price":12.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]any
	decode(t, rec, &body)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, float64(10), body["quantity"])
	assert.Equal(t, 12.5, body["price"])

	rec = do(t, h, http.MethodPost, "/orders", `{"customer":"Ada","items":[1],"status":"pending"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created orderResponse
	decode(t, rec, &created)
	assert.Equal(t, int64(1), created.ID)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/orders/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched orderResponse
	decode(t, rec, &fetched)
	assert.Equal(t, created, fetched)
}

func TestMonotonicIDsAcrossDelete(t *testing.T) {
	h := newTestRouter()

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/inventory", `{"name":"a","quantity":1,"price":1}`).Code)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/inventory/1", "").Code)

	rec := do(t, h, http.MethodPost, "/inventory", `{"name":"b","quantity":1,"price":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created itemResponse
	decode(t, rec, &created)
	assert.Equal(t, int64(2), created.ID)
}

func TestHealthAndRequestID(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter()

	rec := do(t, h, http.MethodOptions, "/inventory", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
