package httppresentation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	appInventory "github.com/warehouse-ops/warehouse-api/internal/application/inventory"
	appOrder "github.com/warehouse-ops/warehouse-api/internal/application/order"
	domainInventory "github.com/warehouse-ops/warehouse-api/internal/domain/inventory"
	domainOrder "github.com/warehouse-ops/warehouse-api/internal/domain/order"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
)

const componentHTTPHandler = "http_server"

type Handler struct {
	inventory *appInventory.Service
	orders    *appOrder.Service
	log       observability.Logger
	tel       observability.Observability
}

func NewHandler(inventorySvc *appInventory.Service, orderSvc *appOrder.Service, tel observability.Observability) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		inventory: inventorySvc,
		orders:    orderSvc,
		log:       tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:       tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Order matters: CORS → server span → request logger → access log + metrics.
	r.Use(withCORS)
	r.Use(h.withTrace)
	r.Use(RequestLogger(h.log))
	r.Use(h.withObservedAccess)

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.handleListItems)
		r.Post("/", h.handleCreateItem)
		r.Get("/{id}", h.handleGetItem)
		r.Put("/{id}", h.handleReplaceItem)
		r.Patch("/{id}", h.handlePatchItem)
		r.Delete("/{id}", h.handleDeleteItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.handleListOrders)
		r.Post("/", h.handleCreateOrder)
		r.Get("/{id}", h.handleGetOrder)
		r.Put("/{id}", h.handleReplaceOrder)
		r.Patch("/{id}", h.handlePatchOrder)
		r.Delete("/{id}", h.handleDeleteOrder)
	})

	r.Get("/health", h.handleHealth)

	return r
}

type itemPayload struct {
	Name     *string  `json:"name"`
	Quantity *int     `json:"quantity"`
	Price    *float64 `json:"price"`
}

type itemResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func toItemResponse(i *domainInventory.Item) itemResponse {
	return itemResponse{ID: i.ID, Name: i.Name, Quantity: i.Quantity, Price: i.Price}
}

func (h *Handler) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]itemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := requireItemFields(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	item, err := h.inventory.Create(r.Context(), appInventory.CreateItemInput{
		Name:     *req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

func (h *Handler) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.inventory.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) handleReplaceItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req itemPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err := requireItemFields(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	item, err := h.inventory.Replace(r.Context(), appInventory.ReplaceItemInput{
		ID:       id,
		Name:     *req.Name,
		Quantity: *req.Quantity,
		Price:    *req.Price,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req itemPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	item, err := h.inventory.Patch(r.Context(), appInventory.PatchItemInput{
		ID: id,
		Patch: domainInventory.Patch{
			Name:     req.Name,
			Quantity: req.Quantity,
			Price:    req.Price,
		},
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItemResponse(item))
}

func (h *Handler) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.inventory.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderPayload struct {
	Customer *string  `json:"customer"`
	Items    *[]int64 `json:"items"`
	Status   *string  `json:"status"`
}

type orderResponse struct {
	ID       int64   `json:"id"`
	Customer string  `json:"customer"`
	Items    []int64 `json:"items"`
	Status   string  `json:"status"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	items := o.Items
	if items == nil {
		items = []int64{}
	}
	return orderResponse{ID: o.ID, Customer: o.Customer, Items: items, Status: string(o.Status)}
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if req.Customer == nil {
		writeError(w, http.StatusUnprocessableEntity, errFieldRequired("customer"))
		return
	}

	// Creation defaults: empty item list, pending status.
	items := []int64{}
	if req.Items != nil {
		items = *req.Items
	}
	status := domainOrder.StatusPending
	if req.Status != nil {
		parsed, err := domainOrder.ParseStatus(*req.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		status = parsed
	}

	o, err := h.orders.Create(r.Context(), appOrder.CreateOrderInput{
		Customer: *req.Customer,
		Items:    items,
		Status:   status,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) handleReplaceOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req orderPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	// Full replace requires every field.
	if req.Customer == nil {
		writeError(w, http.StatusUnprocessableEntity, errFieldRequired("customer"))
		return
	}
	if req.Items == nil {
		writeError(w, http.StatusUnprocessableEntity, errFieldRequired("items"))
		return
	}
	if req.Status == nil {
		writeError(w, http.StatusUnprocessableEntity, errFieldRequired("status"))
		return
	}
	status, err := domainOrder.ParseStatus(*req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	o, err := h.orders.Replace(r.Context(), appOrder.ReplaceOrderInput{
		ID:       id,
		Customer: *req.Customer,
		Items:    *req.Items,
		Status:   status,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) handlePatchOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req orderPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	patch := domainOrder.Patch{
		Customer: req.Customer,
		Items:    req.Items,
	}
	if req.Status != nil {
		status, err := domainOrder.ParseStatus(*req.Status)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		patch.Status = &status
	}

	o, err := h.orders.Patch(r.Context(), appOrder.PatchOrderInput{ID: id, Patch: patch})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.orders.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// pathID parses the {id} segment. A non-integer id can never name an
// existing record, so it maps to NotFound rather than a validation error.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, errors.New("not found"))
		return 0, false
	}
	return id, true
}

func requireItemFields(p itemPayload) error {
	if p.Name == nil {
		return errFieldRequired("name")
	}
	if p.Quantity == nil {
		return errFieldRequired("quantity")
	}
	if p.Price == nil {
		return errFieldRequired("price")
	}
	return nil
}

func errFieldRequired(name string) error {
	return fmt.Errorf("field %q is required", name)
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainInventory.ErrNotFound),
		errors.Is(err, domainOrder.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainInventory.ErrInvalidName),
		errors.Is(err, domainInventory.ErrInvalidQuantity),
		errors.Is(err, domainInventory.ErrInvalidPrice),
		errors.Is(err, domainOrder.ErrInvalidCustomer),
		errors.Is(err, domainOrder.ErrInvalidStatus),
		errors.Is(err, domainOrder.ErrUnknownItem):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
